// Package app assembles the application: window, GUI manager, captioning
// pipeline, speech engine, and the handlers that wire them together.
package app

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"image-captioner/internal/captioner"
	"image-captioner/internal/config"
	"image-captioner/internal/gui"
	"image-captioner/internal/logger"
	"image-captioner/internal/pipeline"
	"image-captioner/internal/tts"
)

const (
	AppName    = "Accessible Image Captioner"
	AppID      = "com.accessibility.imagecaptioner"
	AppVersion = "1.0.0"

	WindowWidth  = 900
	WindowHeight = 700

	engineProbeTimeout = 5 * time.Minute
)

type Application struct {
	fyneApp     fyne.App
	window      fyne.Window
	guiManager  *gui.Manager
	coordinator *pipeline.Coordinator
	synthesizer tts.Synthesizer
	handlers    *Handlers
	lifecycle   *Lifecycle
	logger      logger.Logger
}

func NewApplication(cfg *config.Config, log logger.Logger) (*Application, error) {
	fyneApp := fyneapp.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	window.CenterOnScreen()
	window.SetMaster()

	log.Info("Application", "starting application", map[string]interface{}{
		"version":          AppVersion,
		"captioner_engine": cfg.Captioner.Engine,
		"tts_engine":       cfg.TTS.Engine,
	})

	engine, err := captioner.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create captioner engine: %w", err)
	}

	synthesizer, err := tts.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech engine: %w", err)
	}

	guiManager := gui.NewManager(fyneApp, window, log)
	coordinator := pipeline.NewCoordinator(engine, log)
	handlers := NewHandlers(coordinator, guiManager, synthesizer, log)
	lifecycle := NewLifecycle(coordinator, guiManager, synthesizer, log)

	application := &Application{
		fyneApp:     fyneApp,
		window:      window,
		guiManager:  guiManager,
		coordinator: coordinator,
		synthesizer: synthesizer,
		handlers:    handlers,
		lifecycle:   lifecycle,
		logger:      log,
	}

	application.setupHandlers()
	application.setupMenus()
	application.setupShortcuts()
	application.setupDragAndDrop()

	log.Info("Application", "initialization complete", nil)
	return application, nil
}

func (a *Application) setupHandlers() {
	a.guiManager.SetSelectHandler(a.handlers.HandleImageSelect)
	a.guiManager.SetGenerateHandler(a.handlers.HandleGenerateCaption)
	a.guiManager.SetReadHandler(a.handlers.HandleReadAloud)
	a.guiManager.SetExportHandler(a.handlers.HandleExportCaption)
}

func (a *Application) setupDragAndDrop() {
	a.window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		if len(uris) == 0 {
			return
		}
		// Only the first dropped file is loaded; there is one session.
		a.handlers.HandleImageDrop(uris[0])
	})
}

// Run shows the window, kicks off the engine warm-up probe, and blocks in
// the Fyne event loop until the window closes.
func (a *Application) Run() error {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.lifecycle.Shutdown()
		a.window.Close()
	})

	a.window.SetContent(a.guiManager.GetMainContainer())
	a.window.Show()

	a.probeEngines()

	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	return nil
}

// quitFromUI is the quit path shared by the File menu item and Ctrl+Q. It
// runs the lifecycle before stopping the event loop so all quit routes
// converge on the same ordered shutdown.
func (a *Application) quitFromUI() {
	a.lifecycle.Shutdown()
	a.fyneApp.Quit()
}

// Quit triggers an orderly shutdown from outside the event loop, e.g. on
// SIGTERM.
func (a *Application) Quit() {
	a.lifecycle.Shutdown()
	fyne.Do(func() {
		a.fyneApp.Quit()
	})
}

// probeEngines checks the captioning model and the speech engine in the
// background so the window stays responsive during model load.
func (a *Application) probeEngines() {
	a.guiManager.UpdateStatus("Loading captioning model, please wait...")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), engineProbeTimeout)
		defer cancel()

		if err := a.coordinator.EngineReady(ctx); err != nil {
			a.guiManager.UpdateStatus("Captioning model unavailable. Check the inference service and restart.")
			a.guiManager.ShowError("Model Error", fmt.Errorf("failed to load captioning model: %w", err))
			return
		}

		a.handlers.SetEngineReady()
		a.guiManager.UpdateStatus("Model loaded. Select an image to begin.")
	}()

	go func() {
		if err := a.synthesizer.Available(); err != nil {
			a.logger.Warning("Application", "speech engine unavailable", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()
}
