package config

import (
	"context"
	"fmt"
	"log/slog"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/codewandler/confplane-go/core/metrics"
	"github.com/codewandler/confplane-go/ports/store"
)

type PlaneOptions struct {
	// Node is this node's cluster identity. Defaults to a random
	// "node-XXXXXX" id.
	Node     string
	Store    store.Store
	Defaults Defaults
	Hook     ChangeConfigFunc
	Log      *slog.Logger
	Metrics  metrics.ResolverMetrics
}

// Plane wires cache, resolver, writer and bootstrap into one node-local
// configuration plane sharing a single cache.
type Plane struct {
	node      string
	cache     *Cache
	resolver  *Resolver
	writer    *Writer
	bootstrap *Bootstrap
}

func NewPlane(opts PlaneOptions) (*Plane, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if opts.Node == "" {
		opts.Node = fmt.Sprintf("node-%s", gonanoid.Must(6))
	}
	if opts.Defaults == nil {
		opts.Defaults = NewEnvDefaults()
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	log := opts.Log.With(slog.String("node", opts.Node))

	cache := NewCache()
	resolver := NewResolver(ResolverOptions{
		Node:     opts.Node,
		Store:    opts.Store,
		Defaults: opts.Defaults,
		Cache:    cache,
		Log:      log,
		Metrics:  opts.Metrics,
	})
	writer := NewWriter(WriterOptions{
		Node:  opts.Node,
		Store: opts.Store,
		Cache: cache,
		Log:   log,
	})
	bootstrap := NewBootstrap(BootstrapOptions{
		Cache:    cache,
		Resolver: resolver,
		Defaults: opts.Defaults,
		Hook:     opts.Hook,
		Log:      log,
	})

	return &Plane{
		node:      opts.Node,
		cache:     cache,
		resolver:  resolver,
		writer:    writer,
		bootstrap: bootstrap,
	}, nil
}

func (p *Plane) Node() string        { return p.node }
func (p *Plane) Cache() *Cache       { return p.cache }
func (p *Plane) Resolver() *Resolver { return p.resolver }

func (p *Plane) Resolve(ctx context.Context, namespace, item string, def any) (any, error) {
	return p.resolver.Resolve(ctx, namespace, item, def)
}

func (p *Plane) ResolveAll(ctx context.Context, namespace string) ([]Setting, error) {
	return p.resolver.ResolveAll(ctx, namespace)
}

func (p *Plane) Set(ctx context.Context, namespace, item string, value any) error {
	return p.writer.Set(ctx, namespace, item, value)
}

func (p *Plane) ConfigureNode(ctx context.Context) error {
	return p.bootstrap.ConfigureNode(ctx)
}
