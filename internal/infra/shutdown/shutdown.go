package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Hook is a cleanup function. The context expires after the handler's
// timeout.
type Hook func(ctx context.Context) error

// Handler collects hooks and runs them once, in reverse registration order.
type Handler struct {
	timeout time.Duration
	signals []os.Signal

	mu    sync.Mutex
	hooks []Hook

	once sync.Once
	err  error
	done chan struct{}
}

// NewHandler creates a handler. Without signals it listens for SIGINT and
// SIGTERM.
func NewHandler(timeout time.Duration, signals ...os.Signal) *Handler {
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}
	return &Handler{
		timeout: timeout,
		signals: signals,
		hooks:   make([]Hook, 0),
		done:    make(chan struct{}),
	}
}

// OnShutdown registers a hook.
func (h *Handler) OnShutdown(hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook)
}

// Wait blocks until one of the handler's signals arrives, then runs the
// hooks.
func (h *Handler) Wait() error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, h.signals...)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
	case <-h.done:
		return h.err
	}
	return h.Shutdown()
}

// Shutdown runs every hook, even when some fail, and returns their joined
// errors. Only the first call runs the hooks; later calls return the same
// result.
func (h *Handler) Shutdown() error {
	h.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		h.mu.Lock()
		hooks := make([]Hook, len(h.hooks))
		copy(hooks, h.hooks)
		h.mu.Unlock()

		var errs []error
		for i := len(hooks) - 1; i >= 0; i-- {
			if err := hooks[i](ctx); err != nil {
				errs = append(errs, err)
			}
		}
		h.err = errors.Join(errs...)
		close(h.done)
	})
	return h.err
}

// Done is closed once the hooks have run.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}
