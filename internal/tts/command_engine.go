package tts

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"image-captioner/internal/config"
	"image-captioner/internal/logger"
)

// CommandEngine speaks through a local speech binary. espeak-ng and say play
// directly; piper synthesizes a WAV which is then handed to the player
// command. Speaks are serialized so overlapping requests queue instead of
// talking over each other.
type CommandEngine struct {
	mu     sync.Mutex
	cfg    config.TTSConfig
	player *Player
	logger logger.Logger
}

func NewCommandEngine(cfg config.TTSConfig, log logger.Logger) (*CommandEngine, error) {
	if cfg.Command == "" {
		return nil, ErrCommandEmpty
	}

	return &CommandEngine{
		cfg:    cfg,
		player: NewPlayer(cfg.Player, log),
		logger: log,
	}, nil
}

func (e *CommandEngine) Speak(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrTextEmpty
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.isFileSynthesizer() {
		return e.speakViaFile(ctx, text)
	}

	return e.speakDirect(ctx, text)
}

// Available checks that the speech binary resolves on PATH.
func (e *CommandEngine) Available() error {
	if _, err := exec.LookPath(e.cfg.Command); err != nil {
		return fmt.Errorf("speech engine not available: %w", err)
	}

	if e.isFileSynthesizer() {
		return e.player.Available()
	}

	return nil
}

func (e *CommandEngine) Close() error {
	return nil
}

// isFileSynthesizer reports whether the configured binary writes a WAV file
// instead of playing audio itself.
func (e *CommandEngine) isFileSynthesizer() bool {
	return filepath.Base(e.cfg.Command) == "piper"
}

func (e *CommandEngine) speakDirect(ctx context.Context, text string) error {
	args := e.directArgs(text)
	cmd := exec.CommandContext(ctx, e.cfg.Command, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	e.logger.Debug("CommandEngine", "speaking", map[string]interface{}{
		"command":  e.cfg.Command,
		"text_len": len(text),
	})

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("speech command failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return nil
}

// directArgs maps the configured voice, rate and volume onto the flags of
// the known direct-playback engines.
func (e *CommandEngine) directArgs(text string) []string {
	var args []string

	switch filepath.Base(e.cfg.Command) {
	case "say":
		if e.cfg.Voice != "" {
			args = append(args, "-v", e.cfg.Voice)
		}
		if e.cfg.Rate > 0 {
			args = append(args, "-r", strconv.Itoa(e.cfg.Rate))
		}
	default:
		// espeak / espeak-ng flag set. Amplitude range is 0-200.
		if e.cfg.Voice != "" {
			args = append(args, "-v", e.cfg.Voice)
		}
		if e.cfg.Rate > 0 {
			args = append(args, "-s", strconv.Itoa(e.cfg.Rate))
		}
		if e.cfg.Volume > 0 {
			args = append(args, "-a", strconv.Itoa(int(e.cfg.Volume*200)))
		}
	}

	return append(args, text)
}

func (e *CommandEngine) speakViaFile(ctx context.Context, text string) error {
	wavFile, err := os.CreateTemp("", "caption-*.wav")
	if err != nil {
		return fmt.Errorf("failed to create temp audio file: %w", err)
	}
	wavPath := wavFile.Name()
	wavFile.Close()
	defer os.Remove(wavPath)

	args := []string{"--output_file", wavPath}
	if e.cfg.Voice != "" {
		args = append(args, "--model", e.cfg.Voice)
	}

	cmd := exec.CommandContext(ctx, e.cfg.Command, args...)
	cmd.Stdin = strings.NewReader(text)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("speech synthesis failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return e.player.Play(ctx, wavPath)
}
