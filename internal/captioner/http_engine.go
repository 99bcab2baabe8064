package captioner

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"image-captioner/internal/config"
	"image-captioner/internal/logger"
)

const (
	apiCaption = "/v1/caption"
	apiHealth  = "/health"

	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"

	// Error responses larger than this are truncated before they reach a
	// dialog box.
	maxErrorBodyBytes = 2048
)

var ErrImageDataEmpty = errors.New("image data cannot be empty")

// captionRequest is the JSON payload sent to the BLIP inference server.
type captionRequest struct {
	ImageB64  string `json:"image_base64"`
	Model     string `json:"model,omitempty"`
	MaxLength int    `json:"max_length"`
	NumBeams  int    `json:"num_beams"`
}

// captionResponse is the JSON payload returned by the inference server.
type captionResponse struct {
	Caption string `json:"caption"`
	Detail  string `json:"detail,omitempty"`
}

// HTTPEngine generates captions through a local BLIP inference server. The
// server loads the pretrained model once; this engine only ships image bytes
// back and forth.
type HTTPEngine struct {
	httpClient *http.Client
	baseURL    string
	cfg        config.CaptionerConfig
	logger     logger.Logger
}

func NewHTTPEngine(cfg config.CaptionerConfig, log logger.Logger) *HTTPEngine {
	return &HTTPEngine{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		baseURL: strings.TrimRight(cfg.Endpoint, "/"),
		cfg:     cfg,
		logger:  log,
	}
}

func (e *HTTPEngine) Generate(ctx context.Context, req Request) (string, error) {
	if len(req.ImageData) == 0 {
		return "", ErrImageDataEmpty
	}

	if req.MaxLength <= 0 {
		req.MaxLength = e.cfg.MaxLength
	}
	if req.NumBeams <= 0 {
		req.NumBeams = e.cfg.NumBeams
	}

	payload := captionRequest{
		ImageB64:  base64.StdEncoding.EncodeToString(req.ImageData),
		Model:     e.cfg.Model,
		MaxLength: req.MaxLength,
		NumBeams:  req.NumBeams,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal caption request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+apiCaption, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build caption request: %w", err)
	}
	httpReq.Header.Set(headerContentType, contentTypeJSON)

	start := time.Now()

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("caption service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("caption service error: %s", readErrorDetail(resp))
	}

	var decoded captionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode caption response: %w", err)
	}

	caption := strings.TrimSpace(decoded.Caption)
	if caption == "" {
		return "", ErrEmptyCaption
	}

	e.logger.Info("HTTPEngine", "caption generated", map[string]interface{}{
		"duration_ms": time.Since(start).Milliseconds(),
		"image_bytes": len(req.ImageData),
		"caption_len": len(caption),
	})

	return caption, nil
}

// Ready probes the inference server health endpoint.
func (e *HTTPEngine) Ready(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+apiHealth, nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("caption service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("caption service unhealthy: status %s", resp.Status)
	}

	return nil
}

func (e *HTTPEngine) Close() error {
	e.httpClient.CloseIdleConnections()
	return nil
}

// readErrorDetail extracts a human-readable message from a non-OK response,
// preferring the structured detail field over the raw body.
func readErrorDetail(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil || len(body) == 0 {
		return resp.Status
	}

	var decoded captionResponse
	if json.Unmarshal(body, &decoded) == nil && decoded.Detail != "" {
		return fmt.Sprintf("%s (%s)", decoded.Detail, resp.Status)
	}

	return fmt.Sprintf("%s: %s", resp.Status, strings.TrimSpace(string(body)))
}
