package captioner_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-captioner/internal/captioner"
	"image-captioner/internal/config"
	"image-captioner/internal/logger"
)

func testCaptionerConfig(endpoint string) config.CaptionerConfig {
	cfg := config.Default().Captioner
	cfg.Endpoint = endpoint
	cfg.TimeoutSeconds = 5

	return cfg
}

func TestHTTPEngineGenerate(t *testing.T) {
	imageData := []byte("not-really-a-jpeg")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/caption", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			ImageB64  string `json:"image_base64"`
			Model     string `json:"model"`
			MaxLength int    `json:"max_length"`
			NumBeams  int    `json:"num_beams"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		decoded, err := base64.StdEncoding.DecodeString(req.ImageB64)
		require.NoError(t, err)
		assert.Equal(t, imageData, decoded)
		assert.Equal(t, "Salesforce/blip-image-captioning-base", req.Model)
		assert.Equal(t, 50, req.MaxLength)
		assert.Equal(t, 4, req.NumBeams)

		json.NewEncoder(w).Encode(map[string]string{"caption": "  a dog on a beach \n"})
	}))
	defer server.Close()

	engine := captioner.NewHTTPEngine(testCaptionerConfig(server.URL), logger.Nop{})

	caption, err := engine.Generate(context.Background(), captioner.Request{ImageData: imageData})
	require.NoError(t, err)
	assert.Equal(t, "a dog on a beach", caption)
}

func TestHTTPEngineGenerateEmptyImage(t *testing.T) {
	engine := captioner.NewHTTPEngine(testCaptionerConfig("http://127.0.0.1:0"), logger.Nop{})

	_, err := engine.Generate(context.Background(), captioner.Request{})
	assert.ErrorIs(t, err, captioner.ErrImageDataEmpty)
}

func TestHTTPEngineGenerateEmptyCaption(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"caption": "   "})
	}))
	defer server.Close()

	engine := captioner.NewHTTPEngine(testCaptionerConfig(server.URL), logger.Nop{})

	_, err := engine.Generate(context.Background(), captioner.Request{ImageData: []byte{1}})
	assert.ErrorIs(t, err, captioner.ErrEmptyCaption)
}

func TestHTTPEngineGenerateServerErrorDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"detail": "model still loading"})
	}))
	defer server.Close()

	engine := captioner.NewHTTPEngine(testCaptionerConfig(server.URL), logger.Nop{})

	_, err := engine.Generate(context.Background(), captioner.Request{ImageData: []byte{1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model still loading")
}

func TestHTTPEngineGenerateUnreachable(t *testing.T) {
	engine := captioner.NewHTTPEngine(testCaptionerConfig("http://127.0.0.1:1"), logger.Nop{})

	_, err := engine.Generate(context.Background(), captioner.Request{ImageData: []byte{1}})
	assert.Error(t, err)
}

func TestHTTPEngineReady(t *testing.T) {
	healthy := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	engine := captioner.NewHTTPEngine(testCaptionerConfig(server.URL), logger.Nop{})

	assert.Error(t, engine.Ready(context.Background()))

	healthy = true
	assert.NoError(t, engine.Ready(context.Background()))
}

func TestNewSelectsConfiguredEngine(t *testing.T) {
	cfg := config.Default()
	engine, err := captioner.New(cfg, logger.Nop{})
	require.NoError(t, err)
	assert.IsType(t, &captioner.HTTPEngine{}, engine)

	cfg.Captioner.Engine = config.CaptionerEngineExec
	_, err = captioner.New(cfg, logger.Nop{})
	// Exec engine requires explicit paths.
	assert.ErrorIs(t, err, captioner.ErrBinaryPathEmpty)
}
