// Package hooks implements the change_config extension point: a registry of
// handlers that all receive every configuration snapshot. The node bootstrap
// and administrative actions publish through [Registry.ChangeConfig]; the
// change dispatcher registers itself here, and external plugins may register
// alongside it to observe the same snapshots.
package hooks

import (
	"context"
	"log/slog"
	"sync"

	"github.com/codewandler/confplane-go/core/config"
)

// Handler receives a configuration snapshot: a list of (namespace, settings)
// pairs.
type Handler func(ctx context.Context, snapshot []config.NamespaceSettings) error

type Registry struct {
	log *slog.Logger

	mu       sync.RWMutex
	handlers []registered
}

type registered struct {
	name string
	h    Handler
}

func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{log: log}
}

// RegisterChangeConfig adds a handler under a diagnostic name.
func (r *Registry) RegisterChangeConfig(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, registered{name: name, h: h})
}

// ChangeConfig fans the snapshot out to every registered handler, in
// registration order. A failing handler is logged and does not stop the
// fan-out; the first failure is returned after all handlers ran.
func (r *Registry) ChangeConfig(ctx context.Context, snapshot []config.NamespaceSettings) error {
	r.mu.RLock()
	handlers := make([]registered, len(r.handlers))
	copy(handlers, r.handlers)
	r.mu.RUnlock()

	var first error
	for _, reg := range handlers {
		if err := reg.h(ctx, snapshot); err != nil {
			r.log.Error("change_config handler failed",
				slog.String("handler", reg.name),
				slog.Any("error", err),
			)
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}
