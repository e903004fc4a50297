package config

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/codewandler/confplane-go/ports/store"
)

type WriterOptions struct {
	Node  string
	Store store.Store
	Cache *Cache
	Log   *slog.Logger
}

// Writer implements the write path: one store transaction at this node's
// scoped identity, then an unconditional local cache overwrite.
type Writer struct {
	node  string
	store store.Store
	cache *Cache
	log   *slog.Logger
}

func NewWriter(opts WriterOptions) *Writer {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Cache == nil {
		opts.Cache = NewCache()
	}
	return &Writer{
		node:  opts.Node,
		store: opts.Store,
		cache: opts.Cache,
		log:   opts.Log,
	}
}

// Set writes value as this node's override for (namespace, item). A storage
// failure propagates to the caller untouched: no retry, no cache update.
// On success the cache is overwritten even if the value did not change —
// locally, this node's own write always wins.
func (w *Writer) Set(ctx context.Context, namespace, item string, value any) error {
	id := store.NodeScoped(w.node, namespace, item)

	rec, err := w.store.Write(ctx, id, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", id, err)
	}

	w.cache.Put(namespace, item, value)
	w.log.Debug("config set",
		slog.String("id", id.String()),
		rec.Clock.SlogAttr(),
	)
	return nil
}
