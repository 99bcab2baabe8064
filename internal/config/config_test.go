package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-captioner/internal/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, config.CaptionerEngineHTTP, cfg.Captioner.Engine)
	assert.Equal(t, "Salesforce/blip-image-captioning-base", cfg.Captioner.Model)
	assert.Equal(t, 50, cfg.Captioner.MaxLength)
	assert.Equal(t, 4, cfg.Captioner.NumBeams)
	assert.Equal(t, config.TTSEngineCommand, cfg.TTS.Engine)
	assert.Equal(t, 150, cfg.TTS.Rate)
	assert.InDelta(t, 0.9, cfg.TTS.Volume, 0.001)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := writeConfigFile(t, `
captioner:
  endpoint: http://127.0.0.1:9000
  max_length: 30
tts:
  engine: http
  endpoint: http://127.0.0.1:9001
logging:
  level: debug
  json: true
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9000", cfg.Captioner.Endpoint)
	assert.Equal(t, 30, cfg.Captioner.MaxLength)
	// Untouched fields keep their defaults.
	assert.Equal(t, 4, cfg.Captioner.NumBeams)
	assert.Equal(t, config.TTSEngineHTTP, cfg.TTS.Engine)
	assert.Equal(t, "aplay", cfg.TTS.Player)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.JSON)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsUnknownCaptionerEngine(t *testing.T) {
	path := writeConfigFile(t, "captioner:\n  engine: carrier-pigeon\n")

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon")
}

func TestLoadRejectsUnknownTTSEngine(t *testing.T) {
	path := writeConfigFile(t, "tts:\n  engine: gramophone\n")

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveGenerationParameters(t *testing.T) {
	path := writeConfigFile(t, "captioner:\n  num_beams: 0\n")

	_, err := config.Load(path)
	assert.Error(t, err)
}
