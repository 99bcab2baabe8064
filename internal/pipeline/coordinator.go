package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"fyne.io/fyne/v2"

	"image-captioner/internal/captioner"
	"image-captioner/internal/logger"
	"image-captioner/internal/models"
)

var (
	ErrNoImage         = errors.New("no image loaded")
	ErrNoCaption       = errors.New("no caption generated yet")
	ErrCaptionInFlight = errors.New("caption generation already in progress")
	ErrImageChanged    = errors.New("image changed while generating caption")
)

// Coordinator owns the session and serializes the load / caption / export
// flow. At most one caption request is in flight at a time; the UI disables
// the trigger as well, the inFlight flag is the hard guarantee.
var _ CaptionCoordinator = (*Coordinator)(nil)

type Coordinator struct {
	session  *models.Session
	loader   ImageLoader
	exporter CaptionExporter
	engine   captioner.Engine
	logger   logger.Logger
	inFlight atomic.Bool
}

func NewCoordinator(engine captioner.Engine, log logger.Logger) *Coordinator {
	return &Coordinator{
		session:  models.NewSession(),
		loader:   NewLoader(log),
		exporter: NewExporter(log),
		engine:   engine,
		logger:   log,
	}
}

// LoadImage decodes the selected file and begins a new session around it.
// Any previous caption is cleared.
func (c *Coordinator) LoadImage(reader fyne.URIReadCloser) (*models.LoadedImage, error) {
	loaded, err := c.loader.LoadFromReader(reader)
	if err != nil {
		return nil, err
	}

	c.session.SetImage(loaded)
	return loaded, nil
}

// LoadImageFromPath is the drag-and-drop entry point.
func (c *Coordinator) LoadImageFromPath(path string) (*models.LoadedImage, error) {
	loaded, err := c.loader.LoadFromPath(path)
	if err != nil {
		return nil, err
	}

	c.session.SetImage(loaded)
	return loaded, nil
}

// GenerateCaption asks the engine to describe the current image and records
// the result in the session. The result is discarded when the user selected
// a different image while the request was running.
func (c *Coordinator) GenerateCaption(ctx context.Context) (string, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return "", ErrCaptionInFlight
	}
	defer c.inFlight.Store(false)

	img := c.session.Image()
	if img == nil {
		return "", ErrNoImage
	}
	sessionID := c.session.ID()

	caption, err := c.engine.Generate(ctx, captioner.Request{
		ImagePath: img.Path,
		ImageData: img.Data,
	})
	if err != nil {
		return "", fmt.Errorf("caption generation failed: %w", err)
	}

	if !c.session.SetCaption(sessionID, caption) {
		c.logger.Warning("Coordinator", "discarding stale caption", map[string]interface{}{
			"session_id": sessionID,
		})
		return "", ErrImageChanged
	}

	return caption, nil
}

// ExportCaption writes the current caption through the writer.
func (c *Coordinator) ExportCaption(writer io.Writer) error {
	caption := c.session.Caption()
	if caption == "" {
		return ErrNoCaption
	}

	return c.exporter.SaveToWriter(writer, caption)
}

// ExportCaptionToPath writes the current caption to a file path.
func (c *Coordinator) ExportCaptionToPath(path string) error {
	caption := c.session.Caption()
	if caption == "" {
		return ErrNoCaption
	}

	return c.exporter.SaveToPath(path, caption)
}

// CaptionInFlight reports whether a caption request is currently running.
// The CompareAndSwap in GenerateCaption stays the hard guarantee; this is a
// pre-check so callers can skip UI churn for a request that would be
// rejected anyway.
func (c *Coordinator) CaptionInFlight() bool {
	return c.inFlight.Load()
}

func (c *Coordinator) CurrentImage() *models.LoadedImage {
	return c.session.Image()
}

func (c *Coordinator) CurrentCaption() string {
	return c.session.Caption()
}

// EngineReady reports whether the captioning model is loaded and reachable.
func (c *Coordinator) EngineReady(ctx context.Context) error {
	return c.engine.Ready(ctx)
}

// Cleanup releases the engine and drops session state.
func (c *Coordinator) Cleanup() {
	if err := c.engine.Close(); err != nil {
		c.logger.Warning("Coordinator", "engine close failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	c.session.Clear()
}
