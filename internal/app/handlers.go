package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"image-captioner/internal/gui"
	"image-captioner/internal/logger"
	"image-captioner/internal/models"
	"image-captioner/internal/pipeline"
	"image-captioner/internal/tts"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp"}

const (
	captionTimeout = 5 * time.Minute
	speechTimeout  = 2 * time.Minute
)

// Handlers implements the user-driven actions. Long-running work happens in
// goroutines; results come back to the UI through the gui.Manager, which
// routes every mutation via fyne.Do.
type Handlers struct {
	coordinator *pipeline.Coordinator
	guiManager  *gui.Manager
	synthesizer tts.Synthesizer
	logger      logger.Logger

	engineReady atomic.Bool
	speaking    atomic.Bool
}

func NewHandlers(coord *pipeline.Coordinator, gm *gui.Manager, synth tts.Synthesizer, log logger.Logger) *Handlers {
	return &Handlers{
		coordinator: coord,
		guiManager:  gm,
		synthesizer: synth,
		logger:      log,
	}
}

// SetEngineReady marks the captioning model as loaded. Generate stays locked
// until both the model and an image are present.
func (h *Handlers) SetEngineReady() {
	h.engineReady.Store(true)

	if h.coordinator.CurrentImage() != nil {
		h.guiManager.SetGenerateEnabled(true)
	}
}

// HandleImageSelect opens the file dialog and loads the chosen image.
func (h *Handlers) HandleImageSelect() {
	fileOpen := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			h.guiManager.ShowError("File Load Error", err)
			return
		}
		if reader == nil {
			return
		}

		h.guiManager.UpdateStatus("Loading image...")

		go func() {
			loaded, loadErr := h.coordinator.LoadImage(reader)
			reader.Close()
			h.finishImageLoad(loaded, loadErr)
		}()
	}, h.guiManager.GetWindow())

	fileOpen.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	fileOpen.Show()
}

// HandleImageDrop loads an image dropped onto the window.
func (h *Handlers) HandleImageDrop(uri fyne.URI) {
	h.logger.Debug("Handlers", "image dropped", map[string]interface{}{
		"path": uri.Path(),
	})

	h.guiManager.UpdateStatus("Loading image...")

	go func() {
		loaded, err := h.coordinator.LoadImageFromPath(uri.Path())
		h.finishImageLoad(loaded, err)
	}()
}

func (h *Handlers) finishImageLoad(loaded *models.LoadedImage, err error) {
	if err != nil {
		h.guiManager.ShowError("Image Load Error", err)
		h.guiManager.UpdateStatus("Ready")
		return
	}

	h.guiManager.SetImage(loaded.Thumbnail)
	h.guiManager.SetGenerateEnabled(h.engineReady.Load())
	h.guiManager.UpdateStatus(fmt.Sprintf("Image loaded: %s", filepath.Base(loaded.Path)))
}

// HandleGenerateCaption runs a caption request off the UI thread. The
// generate button is locked and the progress bar runs until the request
// settles; on success the caption is spoken once automatically.
func (h *Handlers) HandleGenerateCaption() {
	if h.coordinator.CurrentImage() == nil {
		h.guiManager.ShowInfo("No Image", "Please select an image first.")
		return
	}

	if !h.engineReady.Load() {
		h.guiManager.ShowInfo("Model Not Ready", "Please wait for the captioning model to load.")
		return
	}

	if h.coordinator.CaptionInFlight() {
		h.guiManager.UpdateStatus("Caption generation already in progress")
		return
	}

	h.guiManager.SetBusy(true)
	h.guiManager.UpdateStatus("Generating caption...")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), captionTimeout)
		defer cancel()

		caption, err := h.coordinator.GenerateCaption(ctx)

		if errors.Is(err, pipeline.ErrCaptionInFlight) {
			// Another request is still running; leave its progress state
			// alone.
			h.guiManager.UpdateStatus("Caption generation already in progress")
			return
		}

		h.guiManager.SetBusy(false)
		h.guiManager.SetGenerateEnabled(true)

		switch {
		case errors.Is(err, pipeline.ErrImageChanged):
			h.guiManager.UpdateStatus("Image changed, caption discarded")
		case err != nil:
			h.guiManager.UpdateStatus("Caption generation failed")
			h.guiManager.ShowError("Caption Error", err)
		default:
			h.guiManager.SetCaption(caption)
			h.guiManager.UpdateStatus("Caption generated")
			h.speak(caption)
		}
	}()
}

// HandleReadAloud speaks the current caption again.
func (h *Handlers) HandleReadAloud() {
	caption := h.coordinator.CurrentCaption()
	if caption == "" {
		h.guiManager.ShowInfo("No Caption", "Please generate a caption first.")
		return
	}

	h.speak(caption)
}

// speak runs speech synthesis in the background. A request arriving while
// speech is still playing is dropped with a status note instead of talking
// over the current one. The availability check happens inside the goroutine;
// for the HTTP engine it is a network call and must stay off the UI thread.
func (h *Handlers) speak(text string) {
	if !h.speaking.CompareAndSwap(false, true) {
		h.guiManager.UpdateStatus("Already reading aloud")
		return
	}

	h.guiManager.UpdateStatus("Reading caption aloud...")

	go func() {
		defer h.speaking.Store(false)

		if err := h.synthesizer.Available(); err != nil {
			h.guiManager.UpdateStatus("Speech unavailable")
			h.guiManager.ShowError("Speech Error", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), speechTimeout)
		defer cancel()

		if err := h.synthesizer.Speak(ctx, text); err != nil {
			h.guiManager.UpdateStatus("Speech failed")
			h.guiManager.ShowError("Speech Error", err)
			return
		}

		h.guiManager.UpdateStatus("Ready")
	}()
}

// HandleExportCaption saves the caption through a file-save dialog, with a
// name suggested from the image file.
func (h *Handlers) HandleExportCaption() {
	caption := h.coordinator.CurrentCaption()
	if caption == "" {
		h.guiManager.ShowInfo("No Caption", "Please generate a caption first.")
		return
	}

	fileSave := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			h.guiManager.ShowError("Export Error", err)
			return
		}
		if writer == nil {
			return
		}

		go func() {
			defer writer.Close()

			if exportErr := h.coordinator.ExportCaption(writer); exportErr != nil {
				h.guiManager.ShowError("Export Error", exportErr)
				return
			}

			h.guiManager.UpdateStatus(fmt.Sprintf("Caption exported to %s", writer.URI().Name()))
		}()
	}, h.guiManager.GetWindow())

	imagePath := ""
	if img := h.coordinator.CurrentImage(); img != nil {
		imagePath = img.Path
	}

	fileSave.SetFileName(pipeline.SuggestedFileName(imagePath))
	fileSave.SetFilter(storage.NewExtensionFileFilter([]string{".txt"}))
	fileSave.Show()
}

// HandleToggleHighContrast flips the accessibility theme.
func (h *Handlers) HandleToggleHighContrast() {
	if h.guiManager.ToggleHighContrast() {
		h.guiManager.UpdateStatus("High contrast mode enabled")
	} else {
		h.guiManager.UpdateStatus("Normal mode enabled")
	}
}
