package tts

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

func TestNewCommandEngineRequiresCommand(t *testing.T) {
	cfg := config.Default().TTS
	cfg.Command = ""

	_, err := NewCommandEngine(cfg, logger.Nop{})
	assert.ErrorIs(t, err, ErrCommandEmpty)
}

func TestCommandEngineSpeakRejectsEmptyText(t *testing.T) {
	engine, err := NewCommandEngine(config.Default().TTS, logger.Nop{})
	require.NoError(t, err)

	assert.ErrorIs(t, engine.Speak(context.Background(), "   "), ErrTextEmpty)
}

func TestCommandEngineAvailable(t *testing.T) {
	cfg := config.Default().TTS
	cfg.Command = "definitely-not-a-speech-engine"

	engine, err := NewCommandEngine(cfg, logger.Nop{})
	require.NoError(t, err)

	assert.Error(t, engine.Available())
}

func TestCommandEngineDirectArgs(t *testing.T) {
	cfg := config.Default().TTS
	cfg.Command = "espeak-ng"
	cfg.Voice = "en-us"
	cfg.Rate = 150
	cfg.Volume = 0.9

	engine, err := NewCommandEngine(cfg, logger.Nop{})
	require.NoError(t, err)

	args := engine.directArgs("hello")
	assert.Equal(t, []string{"-v", "en-us", "-s", "150", "-a", "180", "hello"}, args)
}

func TestCommandEngineDirectArgsSay(t *testing.T) {
	cfg := config.Default().TTS
	cfg.Command = "/usr/bin/say"
	cfg.Voice = "Samantha"
	cfg.Rate = 150

	engine, err := NewCommandEngine(cfg, logger.Nop{})
	require.NoError(t, err)

	args := engine.directArgs("hello")
	assert.Equal(t, []string{"-v", "Samantha", "-r", "150", "hello"}, args)
}

func TestCommandEngineSpeakDirect(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "fake-espeak")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexit 0\n"), 0o755))

	cfg := config.Default().TTS
	cfg.Command = script

	engine, err := NewCommandEngine(cfg, logger.Nop{})
	require.NoError(t, err)

	assert.NoError(t, engine.Speak(context.Background(), "a dog on a beach"))
}

func TestCommandEngineSpeakFailureIncludesStderr(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "fake-espeak")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho 'no audio device' >&2\nexit 1\n"), 0o755))

	cfg := config.Default().TTS
	cfg.Command = script

	engine, err := NewCommandEngine(cfg, logger.Nop{})
	require.NoError(t, err)

	err = engine.Speak(context.Background(), "a dog on a beach")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no audio device")
}

func TestCommandEngineSpeakViaPiper(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture")
	}

	dir := t.TempDir()
	// Fake piper reads text on stdin and writes the file named by
	// --output_file.
	piper := filepath.Join(dir, "piper")
	require.NoError(t, os.WriteFile(piper, []byte("#!/bin/sh\nwhile [ $# -gt 0 ]; do\n  if [ \"$1\" = \"--output_file\" ]; then out=\"$2\"; fi\n  shift\ndone\ncat > /dev/null\nprintf 'RIFF' > \"$out\"\n"), 0o755))

	cfg := config.Default().TTS
	cfg.Command = piper
	cfg.Player = "true"

	engine, err := NewCommandEngine(cfg, logger.Nop{})
	require.NoError(t, err)

	// filepath.Base of the command decides the synthesis mode.
	assert.True(t, engine.isFileSynthesizer())
	assert.NoError(t, engine.Speak(context.Background(), "a dog on a beach"))
}
