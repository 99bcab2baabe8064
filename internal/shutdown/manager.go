// Package shutdown coordinates orderly teardown on OS signals.
package shutdown

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"image-captioner/internal/logger"
)

type Shutdownable interface {
	Shutdown()
}

// Manager fans a termination signal out to registered components, once.
type Manager struct {
	mu         sync.Mutex
	components []Shutdownable
	logger     logger.Logger
	once       sync.Once
}

func NewManager(log logger.Logger) *Manager {
	return &Manager{logger: log}
}

func (m *Manager) Register(component Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.components = append(m.components, component)
}

// Listen installs the signal handler. Shutdown runs on the signal goroutine.
func (m *Manager) Listen() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		m.logger.Info("ShutdownManager", "shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})
		m.Shutdown()
	}()
}

func (m *Manager) Shutdown() {
	m.once.Do(func() {
		m.mu.Lock()
		components := make([]Shutdownable, len(m.components))
		copy(components, m.components)
		m.mu.Unlock()

		// Reverse registration order, dependents first.
		for i := len(components) - 1; i >= 0; i-- {
			components[i].Shutdown()
		}

		m.logger.Info("ShutdownManager", "shutdown complete", nil)
	})
}
