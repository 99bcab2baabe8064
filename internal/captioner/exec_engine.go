package captioner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"image-captioner/internal/config"
	"image-captioner/internal/logger"
)

var (
	ErrBinaryPathEmpty = errors.New("captioner binary path cannot be empty")
	ErrModelPathEmpty  = errors.New("captioner model path cannot be empty")
)

// ExecEngine runs a local multimodal runner binary (llama.cpp style) per
// request. Requests are serialized: one model instance rarely fits twice in
// VRAM on the machines this runs on.
type ExecEngine struct {
	mu     sync.Mutex
	cfg    config.CaptionerConfig
	logger logger.Logger
}

func NewExecEngine(cfg config.CaptionerConfig, log logger.Logger) (*ExecEngine, error) {
	if cfg.BinaryPath == "" {
		return nil, ErrBinaryPathEmpty
	}
	if cfg.ModelPath == "" {
		return nil, ErrModelPathEmpty
	}

	return &ExecEngine{cfg: cfg, logger: log}, nil
}

func (e *ExecEngine) Generate(ctx context.Context, req Request) (string, error) {
	if req.ImagePath == "" {
		return "", ErrImagePathEmpty
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	args := []string{
		"-m", e.cfg.ModelPath,
		"--image", req.ImagePath,
		"--temp", "0.1",
		"-p", e.cfg.Prompt,
	}
	if e.cfg.ProjectorPath != "" {
		args = append(args, "--mmproj", e.cfg.ProjectorPath)
	}

	cmd := exec.CommandContext(ctx, e.cfg.BinaryPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug("ExecEngine", "running caption binary", map[string]interface{}{
		"binary": e.cfg.BinaryPath,
		"image":  req.ImagePath,
	})

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("caption binary failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	caption := cleanRunnerOutput(stdout.String())
	if caption == "" {
		return "", ErrEmptyCaption
	}

	return caption, nil
}

// Ready checks that the binary and model files exist; the real load happens
// per invocation.
func (e *ExecEngine) Ready(ctx context.Context) error {
	for _, path := range []string{e.cfg.BinaryPath, e.cfg.ModelPath} {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("caption binary not usable: %w", err)
		}
	}

	return ctx.Err()
}

func (e *ExecEngine) Close() error {
	return nil
}

// cleanRunnerOutput strips the runner's loading chatter, which precedes the
// generated text on stdout, and returns the trimmed caption.
func cleanRunnerOutput(raw string) string {
	const anchor = "per image patch)"
	if idx := strings.Index(raw, anchor); idx != -1 {
		raw = raw[idx+len(anchor):]
	}

	lines := strings.Split(strings.TrimSpace(raw), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "llama_") || strings.HasPrefix(line, "clip_") {
			continue
		}
		kept = append(kept, line)
	}

	return strings.TrimSpace(strings.Join(kept, " "))
}
