// Package captioner turns an image into a natural-language description by
// delegating to a pretrained BLIP vision-language model running behind a
// local inference server or binary.
package captioner

import (
	"context"
	"errors"
	"fmt"

	"image-captioner/internal/config"
	"image-captioner/internal/logger"
)

var (
	ErrImagePathEmpty = errors.New("image path cannot be empty")
	ErrEmptyCaption   = errors.New("model returned an empty caption")
)

// Request carries one captioning call. ImageData holds the raw encoded file
// bytes; ImagePath is kept for engines that pass a path to a subprocess.
type Request struct {
	ImagePath string
	ImageData []byte
	MaxLength int
	NumBeams  int
}

// Engine is the contract for caption generation backends.
type Engine interface {
	// Generate produces a caption for the given image. The returned string
	// is trimmed and never empty on success.
	Generate(ctx context.Context, req Request) (string, error)

	// Ready reports whether the backing model is loaded and reachable.
	Ready(ctx context.Context) error

	Close() error
}

// New builds the engine selected by the configuration.
func New(cfg *config.Config, log logger.Logger) (Engine, error) {
	switch cfg.Captioner.Engine {
	case config.CaptionerEngineHTTP:
		return NewHTTPEngine(cfg.Captioner, log), nil
	case config.CaptionerEngineExec:
		return NewExecEngine(cfg.Captioner, log)
	default:
		return nil, fmt.Errorf("unknown captioner engine %q", cfg.Captioner.Engine)
	}
}
