// Package shutdown coordinates graceful teardown of the API process.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"scenecast/internal/pkg/logger"
)

// Manager runs registered cleanup handlers on shutdown, newest first.
type Manager struct {
	log      *logger.Logger
	timeout  time.Duration
	handlers []handler
	mu       sync.Mutex
	done     chan struct{}
}

type handler struct {
	name    string
	cleanup func(ctx context.Context) error
}

// NewManager creates a shutdown manager with the given per-shutdown timeout.
func NewManager(log *logger.Logger, timeout time.Duration) *Manager {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Manager{
		log:     log,
		timeout: timeout,
		done:    make(chan struct{}),
	}
}

// Register adds a cleanup handler.
func (m *Manager) Register(name string, cleanup func(ctx context.Context) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, handler{name: name, cleanup: cleanup})
}

// Wait blocks until a shutdown signal is received, then runs cleanup.
func (m *Manager) Wait() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	m.log.Info("shutdown signal received", "signal", sig.String())

	m.Shutdown()
}

// Shutdown runs all cleanup handlers in reverse registration order.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	handlers := make([]handler, len(m.handlers))
	copy(handlers, m.handlers)
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	m.log.Info("starting graceful shutdown", "handlers", len(handlers))

	for i := len(handlers) - 1; i >= 0; i-- {
		h := handlers[i]
		start := time.Now()
		if err := h.cleanup(ctx); err != nil {
			m.log.Error("shutdown handler failed",
				"name", h.name,
				"error", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
			continue
		}
		m.log.Debug("shutdown handler completed", "name", h.name)
	}

	m.log.Info("graceful shutdown completed")
	close(m.done)
}

// Done returns a channel closed once shutdown has completed.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}
