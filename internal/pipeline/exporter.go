package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"image-captioner/internal/logger"
)

var ErrCaptionEmpty = errors.New("caption cannot be empty")

const exportFilePermissions = 0o600

type captionExporter struct {
	logger logger.Logger
}

// NewExporter builds the alt-text exporter used by the coordinator.
func NewExporter(log logger.Logger) CaptionExporter {
	return &captionExporter{logger: log}
}

// SaveToWriter writes exactly the caption string; what the user sees in the
// caption panel is what lands in the file.
func (e *captionExporter) SaveToWriter(writer io.Writer, caption string) error {
	if caption == "" {
		return ErrCaptionEmpty
	}

	if _, err := io.WriteString(writer, caption); err != nil {
		return fmt.Errorf("failed to write caption: %w", err)
	}

	return nil
}

func (e *captionExporter) SaveToPath(path, caption string) error {
	if caption == "" {
		return ErrCaptionEmpty
	}

	if err := os.WriteFile(path, []byte(caption), exportFilePermissions); err != nil {
		return fmt.Errorf("failed to write caption file: %w", err)
	}

	e.logger.Info("CaptionExporter", "caption exported", map[string]interface{}{
		"path":  path,
		"bytes": len(caption),
	})

	return nil
}

// SuggestedFileName derives the export name from the image file stem, e.g.
// sunset.jpg -> sunset_caption.txt.
func SuggestedFileName(imagePath string) string {
	if imagePath == "" {
		return "caption.txt"
	}

	base := filepath.Base(imagePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return "caption.txt"
	}

	return stem + "_caption.txt"
}
