package tts

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"image-captioner/internal/logger"
)

// Player plays a WAV file through an external audio player command (aplay,
// paplay, afplay).
type Player struct {
	command string
	logger  logger.Logger
}

func NewPlayer(command string, log logger.Logger) *Player {
	return &Player{command: command, logger: log}
}

func (p *Player) Available() error {
	if p.command == "" {
		return ErrPlayerEmpty
	}

	if _, err := exec.LookPath(p.command); err != nil {
		return fmt.Errorf("audio player not available: %w", err)
	}

	return nil
}

// Play blocks until the player exits.
func (p *Player) Play(ctx context.Context, wavPath string) error {
	if p.command == "" {
		return ErrPlayerEmpty
	}

	cmd := exec.CommandContext(ctx, p.command, wavPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	p.logger.Debug("Player", "playing audio", map[string]interface{}{
		"player": p.command,
		"file":   wavPath,
	})

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("audio playback failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return nil
}
