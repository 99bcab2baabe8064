package captioner

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-captioner/internal/config"
	"image-captioner/internal/logger"
)

func TestCleanRunnerOutput(t *testing.T) {
	raw := `clip_model_load: loaded
llama_print_timings: eval time
encoding image (577 tokens per image patch)
 a cat sitting on a windowsill

llama_print_timings: total time`

	assert.Equal(t, "a cat sitting on a windowsill", cleanRunnerOutput(raw))
}

func TestCleanRunnerOutputEmpty(t *testing.T) {
	assert.Empty(t, cleanRunnerOutput("llama_init: done\n"))
}

func TestNewExecEngineValidation(t *testing.T) {
	cfg := config.Default().Captioner

	_, err := NewExecEngine(cfg, logger.Nop{})
	assert.ErrorIs(t, err, ErrBinaryPathEmpty)

	cfg.BinaryPath = "/usr/local/bin/llava"
	_, err = NewExecEngine(cfg, logger.Nop{})
	assert.ErrorIs(t, err, ErrModelPathEmpty)
}

func TestExecEngineReady(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "runner")
	model := filepath.Join(dir, "model.gguf")
	require.NoError(t, os.WriteFile(binary, []byte("#!/bin/sh\n"), 0o755))

	cfg := config.Default().Captioner
	cfg.BinaryPath = binary
	cfg.ModelPath = model

	engine, err := NewExecEngine(cfg, logger.Nop{})
	require.NoError(t, err)

	assert.Error(t, engine.Ready(context.Background()), "model file missing")

	require.NoError(t, os.WriteFile(model, []byte{0}, 0o600))
	assert.NoError(t, engine.Ready(context.Background()))
}

func TestExecEngineGenerate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture")
	}

	dir := t.TempDir()
	binary := filepath.Join(dir, "runner")
	model := filepath.Join(dir, "model.gguf")
	image := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(binary, []byte("#!/bin/sh\necho ' a red bicycle leaning on a wall'\n"), 0o755))
	require.NoError(t, os.WriteFile(model, []byte{0}, 0o600))
	require.NoError(t, os.WriteFile(image, []byte{0}, 0o600))

	cfg := config.Default().Captioner
	cfg.BinaryPath = binary
	cfg.ModelPath = model

	engine, err := NewExecEngine(cfg, logger.Nop{})
	require.NoError(t, err)

	caption, err := engine.Generate(context.Background(), Request{ImagePath: image})
	require.NoError(t, err)
	assert.Equal(t, "a red bicycle leaning on a wall", caption)
}

func TestExecEngineGenerateRequiresPath(t *testing.T) {
	cfg := config.Default().Captioner
	cfg.BinaryPath = "/usr/local/bin/llava"
	cfg.ModelPath = "/usr/local/share/model.gguf"

	engine, err := NewExecEngine(cfg, logger.Nop{})
	require.NoError(t, err)

	_, err = engine.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrImagePathEmpty)
}
