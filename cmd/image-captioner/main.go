package main

import (
	"flag"
	"log"
	"os"

	"image-captioner/internal/app"
	"image-captioner/internal/config"
	"image-captioner/internal/logger"
	"image-captioner/internal/shutdown"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Configuration load failed: %v", err)
	}

	appLogger := newLogger(cfg)

	application, err := app.NewApplication(cfg, appLogger)
	if err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}

	shutdownManager := shutdown.NewManager(appLogger)
	shutdownManager.Register(quitter{application})
	shutdownManager.Listen()

	if err := application.Run(); err != nil {
		log.Fatalf("Application execution failed: %v", err)
	}
}

func newLogger(cfg *config.Config) logger.Logger {
	level := logger.ParseLevel(cfg.Logging.Level)
	if cfg.Logging.JSON {
		return logger.NewJSONLogger(level)
	}
	return logger.NewConsoleLogger(level)
}

// defaultConfigPath points at the per-user config file when it exists, so
// launching without flags picks up the user's engine settings.
func defaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	path := configDir + "/image-captioner/config.yaml"
	if _, err := os.Stat(path); err != nil {
		return ""
	}

	return path
}

// quitter adapts the application to the shutdown manager.
type quitter struct {
	app *app.Application
}

func (q quitter) Shutdown() {
	q.app.Quit()
}
