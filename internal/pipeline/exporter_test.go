package pipeline_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-captioner/internal/logger"
	"image-captioner/internal/pipeline"
)

func TestSaveToWriterExactContents(t *testing.T) {
	exporter := pipeline.NewExporter(logger.Nop{})

	captions := []string{
		"a dog on a beach",
		"multi\nline caption",
		"trailing space ",
		"unicode: ein Hund am Strand 🐕",
	}

	for _, caption := range captions {
		var buf bytes.Buffer
		require.NoError(t, exporter.SaveToWriter(&buf, caption))
		assert.Equal(t, caption, buf.String())
	}
}

func TestSaveToWriterRejectsEmpty(t *testing.T) {
	exporter := pipeline.NewExporter(logger.Nop{})

	assert.ErrorIs(t, exporter.SaveToWriter(&bytes.Buffer{}, ""), pipeline.ErrCaptionEmpty)
}

func TestSaveToPath(t *testing.T) {
	exporter := pipeline.NewExporter(logger.Nop{})
	path := filepath.Join(t.TempDir(), "photo_caption.txt")

	require.NoError(t, exporter.SaveToPath(path, "a dog on a beach"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a dog on a beach", string(data))
}

func TestSaveToPathWriteFailure(t *testing.T) {
	exporter := pipeline.NewExporter(logger.Nop{})

	err := exporter.SaveToPath(filepath.Join(t.TempDir(), "no", "such", "dir", "c.txt"), "caption")
	assert.Error(t, err)
}

func TestSuggestedFileName(t *testing.T) {
	assert.Equal(t, "sunset_caption.txt", pipeline.SuggestedFileName("/home/user/photos/sunset.jpg"))
	assert.Equal(t, "archive.tar_caption.txt", pipeline.SuggestedFileName("archive.tar.png"))
	assert.Equal(t, "caption.txt", pipeline.SuggestedFileName(""))
	assert.Equal(t, "photo_caption.txt", pipeline.SuggestedFileName("photo"))
}
