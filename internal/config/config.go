// Package config loads application configuration from a YAML file. Every
// field has a default so the application starts with no config file present.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Engine selection values for the captioner section.
const (
	CaptionerEngineHTTP = "http"
	CaptionerEngineExec = "exec"
)

// Engine selection values for the tts section.
const (
	TTSEngineCommand = "command"
	TTSEngineHTTP    = "http"
)

// CaptionerConfig configures the captioning engine. The HTTP engine talks to
// a local BLIP inference server; the exec engine runs a multimodal runner
// binary directly.
type CaptionerConfig struct {
	Engine         string `yaml:"engine"`
	Endpoint       string `yaml:"endpoint"`
	Model          string `yaml:"model"`
	MaxLength      int    `yaml:"max_length"`
	NumBeams       int    `yaml:"num_beams"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	BinaryPath     string `yaml:"binary_path"`
	ModelPath      string `yaml:"model_path"`
	ProjectorPath  string `yaml:"projector_path"`
	Prompt         string `yaml:"prompt"`
}

// TTSConfig configures the speech engine. The command engine execs a local
// speech binary; the http engine posts text to a local synthesis server and
// plays the returned WAV through the player command.
type TTSConfig struct {
	Engine         string  `yaml:"engine"`
	Command        string  `yaml:"command"`
	Voice          string  `yaml:"voice"`
	Rate           int     `yaml:"rate"`
	Volume         float64 `yaml:"volume"`
	Player         string  `yaml:"player"`
	Endpoint       string  `yaml:"endpoint"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// LoggingConfig selects log level and output format.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Config is the root configuration structure.
type Config struct {
	Captioner CaptionerConfig `yaml:"captioner"`
	TTS       TTSConfig       `yaml:"tts"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Captioner: CaptionerConfig{
			Engine:         CaptionerEngineHTTP,
			Endpoint:       "http://127.0.0.1:8600",
			Model:          "Salesforce/blip-image-captioning-base",
			MaxLength:      50,
			NumBeams:       4,
			TimeoutSeconds: 120,
			Prompt:         "Describe this image in one sentence.",
		},
		TTS: TTSConfig{
			Engine:         TTSEngineCommand,
			Command:        "espeak-ng",
			Rate:           150,
			Volume:         0.9,
			Player:         "aplay",
			Endpoint:       "http://127.0.0.1:8601",
			TimeoutSeconds: 30,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path, merged on top of the defaults. An empty
// path returns the defaults unchanged; a missing file is an error so typos
// in --config do not silently fall back.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Captioner.Engine {
	case CaptionerEngineHTTP, CaptionerEngineExec:
	default:
		return fmt.Errorf("unknown captioner engine %q", c.Captioner.Engine)
	}

	switch c.TTS.Engine {
	case TTSEngineCommand, TTSEngineHTTP:
	default:
		return fmt.Errorf("unknown tts engine %q", c.TTS.Engine)
	}

	if c.Captioner.MaxLength <= 0 {
		return fmt.Errorf("captioner max_length must be positive, got %d", c.Captioner.MaxLength)
	}

	if c.Captioner.NumBeams <= 0 {
		return fmt.Errorf("captioner num_beams must be positive, got %d", c.Captioner.NumBeams)
	}

	return nil
}
