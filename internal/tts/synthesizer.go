// Package tts speaks caption text aloud through an external speech engine,
// either a local speech binary or a local synthesis server.
package tts

import (
	"context"
	"errors"
	"fmt"

	"image-captioner/internal/config"
	"image-captioner/internal/logger"
)

var (
	ErrTextEmpty       = errors.New("text cannot be empty")
	ErrCommandEmpty    = errors.New("tts command cannot be empty")
	ErrPlayerEmpty     = errors.New("audio player command cannot be empty")
	ErrReceivedNoAudio = errors.New("received empty audio data")
)

// Synthesizer is the contract for speech backends. Speak blocks until
// playback finishes; callers run it off the UI thread.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error

	// Available reports whether the engine can be used right now.
	Available() error

	Close() error
}

// New builds the synthesizer selected by the configuration.
func New(cfg *config.Config, log logger.Logger) (Synthesizer, error) {
	switch cfg.TTS.Engine {
	case config.TTSEngineCommand:
		return NewCommandEngine(cfg.TTS, log)
	case config.TTSEngineHTTP:
		return NewHTTPEngine(cfg.TTS, log)
	default:
		return nil, fmt.Errorf("unknown tts engine %q", cfg.TTS.Engine)
	}
}
