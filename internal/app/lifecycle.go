package app

import (
	"sync"

	"image-captioner/internal/gui"
	"image-captioner/internal/logger"
	"image-captioner/internal/pipeline"
	"image-captioner/internal/tts"
)

// Lifecycle shuts components down in reverse dependency order, exactly once.
type Lifecycle struct {
	coordinator *pipeline.Coordinator
	guiManager  *gui.Manager
	synthesizer tts.Synthesizer
	logger      logger.Logger
	once        sync.Once
}

func NewLifecycle(coord *pipeline.Coordinator, gm *gui.Manager, synth tts.Synthesizer, log logger.Logger) *Lifecycle {
	return &Lifecycle{
		coordinator: coord,
		guiManager:  gm,
		synthesizer: synth,
		logger:      log,
	}
}

func (l *Lifecycle) Shutdown() {
	l.once.Do(func() {
		l.logger.Info("Lifecycle", "shutdown sequence initiated", nil)

		if err := l.synthesizer.Close(); err != nil {
			l.logger.Warning("Lifecycle", "speech engine close failed", map[string]interface{}{
				"error": err.Error(),
			})
		}

		l.coordinator.Cleanup()
		l.guiManager.Shutdown()

		l.logger.Info("Lifecycle", "shutdown sequence completed", nil)
	})
}
