package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"image-captioner/internal/config"
	"image-captioner/internal/logger"
)

const (
	apiGenerateSpeech = "/v1/generate/speech"
	apiHealth         = "/health"

	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"
)

// speechRequest is the JSON payload sent to the TTS server.
type speechRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice,omitempty"`
	Rate  int    `json:"rate,omitempty"`
}

// HTTPEngine synthesizes speech through a local TTS server and plays the
// returned WAV through the player command. Speaks are serialized by the
// server; the engine only keeps the request/playback sequence intact.
type HTTPEngine struct {
	httpClient *http.Client
	baseURL    string
	cfg        config.TTSConfig
	player     *Player
	logger     logger.Logger
}

func NewHTTPEngine(cfg config.TTSConfig, log logger.Logger) (*HTTPEngine, error) {
	if cfg.Player == "" {
		return nil, ErrPlayerEmpty
	}

	return &HTTPEngine{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		baseURL: strings.TrimRight(cfg.Endpoint, "/"),
		cfg:     cfg,
		player:  NewPlayer(cfg.Player, log),
		logger:  log,
	}, nil
}

func (e *HTTPEngine) Speak(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrTextEmpty
	}

	audio, err := e.synthesize(ctx, text)
	if err != nil {
		return err
	}

	wavFile, err := os.CreateTemp("", "caption-*.wav")
	if err != nil {
		return fmt.Errorf("failed to create temp audio file: %w", err)
	}
	wavPath := wavFile.Name()
	defer os.Remove(wavPath)

	if _, err := wavFile.Write(audio); err != nil {
		wavFile.Close()
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	wavFile.Close()

	return e.player.Play(ctx, wavPath)
}

func (e *HTTPEngine) synthesize(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(speechRequest{
		Text:  text,
		Voice: e.cfg.Voice,
		Rate:  e.cfg.Rate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal speech request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+apiGenerateSpeech, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build speech request: %w", err)
	}
	httpReq.Header.Set(headerContentType, contentTypeJSON)

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("speech service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("speech service error: %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	if len(audio) == 0 {
		return nil, ErrReceivedNoAudio
	}

	e.logger.Debug("HTTPEngine", "speech synthesized", map[string]interface{}{
		"audio_bytes": len(audio),
		"text_len":    len(text),
	})

	return audio, nil
}

// Available probes the TTS server health endpoint and the player command.
func (e *HTTPEngine) Available() error {
	if err := e.player.Available(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+apiHealth, nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("speech service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("speech service unhealthy: status %s", resp.Status)
	}

	return nil
}

func (e *HTTPEngine) Close() error {
	e.httpClient.CloseIdleConnections()
	return nil
}
