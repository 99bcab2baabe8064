// Package pipeline wires the linear select -> caption -> speak -> export
// flow around the session state.
package pipeline

import (
	"context"
	"io"

	"fyne.io/fyne/v2"

	"image-captioner/internal/models"
)

// ImageLoader decodes a user-selected file into a displayable image.
type ImageLoader interface {
	LoadFromReader(reader fyne.URIReadCloser) (*models.LoadedImage, error)
	LoadFromPath(path string) (*models.LoadedImage, error)
	LoadFromBytes(data []byte, path string) (*models.LoadedImage, error)
}

// CaptionExporter writes a caption string out as alt-text.
type CaptionExporter interface {
	SaveToWriter(writer io.Writer, caption string) error
	SaveToPath(path, caption string) error
}

// CaptionCoordinator drives the pipeline and owns the session.
type CaptionCoordinator interface {
	LoadImage(reader fyne.URIReadCloser) (*models.LoadedImage, error)
	LoadImageFromPath(path string) (*models.LoadedImage, error)
	GenerateCaption(ctx context.Context) (string, error)
	CaptionInFlight() bool
	ExportCaption(writer io.Writer) error
	CurrentImage() *models.LoadedImage
	CurrentCaption() string
	EngineReady(ctx context.Context) error
}
