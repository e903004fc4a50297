package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/codewandler/confplane-go/core/metrics"
	"github.com/codewandler/confplane-go/core/sf"
	"github.com/codewandler/confplane-go/ports/store"
)

type ResolverOptions struct {
	Node     string
	Store    store.Store
	Defaults Defaults
	Cache    *Cache
	Log      *slog.Logger
	Metrics  metrics.ResolverMetrics
}

// Resolver implements the read path: cache fast path, then the ordered
// fallback chain against the store, memoizing whatever it finds.
type Resolver struct {
	node     string
	store    store.Store
	defaults Defaults
	cache    *Cache
	log      *slog.Logger
	m        metrics.ResolverMetrics
	flight   *sf.Singleflight[any]
}

func NewResolver(opts ResolverOptions) *Resolver {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NopResolverMetrics()
	}
	if opts.Cache == nil {
		opts.Cache = NewCache()
	}
	return &Resolver{
		node:     opts.Node,
		store:    opts.Store,
		defaults: opts.Defaults,
		cache:    opts.Cache,
		log:      opts.Log,
		m:        opts.Metrics,
		flight:   sf.New[any](),
	}
}

// layer is one step of the fallback chain. found=false falls through to the
// next layer; an error aborts the resolution (storage failures are fatal,
// never papered over with a default).
type layer struct {
	name string
	read func(ctx context.Context) (val any, found bool, err error)
}

func (r *Resolver) chain(namespace, item string, def any) []layer {
	return []layer{
		{"node", func(ctx context.Context) (any, bool, error) {
			return r.readStore(ctx, store.NodeScoped(r.node, namespace, item))
		}},
		{"global", func(ctx context.Context) (any, bool, error) {
			return r.readStore(ctx, store.Global(namespace, item))
		}},
		{"default", func(context.Context) (any, bool, error) {
			return def, true, nil
		}},
	}
}

func (r *Resolver) readStore(ctx context.Context, id store.Identity) (any, bool, error) {
	rec, err := r.store.Read(ctx, id)
	switch {
	case err == nil:
		return rec.Value, true, nil
	case errors.Is(err, store.ErrNotFound):
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("read %s: %w", id, err)
	}
}

// Resolve returns the value applicable to this node for (namespace, item):
// node-scoped setting over cluster-global setting over the supplied compiled
// default. The result is cached and shadowed into the defaults provider; the
// store is consulted at most once per key per cache lifetime, with concurrent
// misses for the same key collapsed into a single load.
func (r *Resolver) Resolve(ctx context.Context, namespace, item string, def any) (any, error) {
	if v, ok := r.cache.Get(namespace, item); ok {
		r.m.CacheLookup(true)
		return v, nil
	}
	r.m.CacheLookup(false)

	return r.flight.Do(namespace+"/"+item, func() (any, error) {
		return r.resolveSlow(ctx, namespace, item, def)
	})
}

func (r *Resolver) resolveSlow(ctx context.Context, namespace, item string, def any) (any, error) {
	for _, l := range r.chain(namespace, item, def) {
		val, found, err := l.read(ctx)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}

		r.cache.Put(namespace, item, val)
		r.defaults.Shadow(namespace, item, val)
		r.m.Resolved(l.name)
		r.log.Debug("resolved",
			slog.String("namespace", namespace),
			slog.String("item", item),
			slog.String("layer", l.name),
		)
		return val, nil
	}
	// unreachable: the default layer always reports found
	return def, nil
}

// ResolveAll resolves every item the defaults provider knows for namespace,
// so items never explicitly set still appear with their compiled default.
func (r *Resolver) ResolveAll(ctx context.Context, namespace string) ([]Setting, error) {
	items := r.defaults.Items(namespace)
	settings := make([]Setting, 0, len(items))
	for _, item := range items {
		def, _ := r.defaults.Lookup(namespace, item)
		val, err := r.Resolve(ctx, namespace, item, def)
		if err != nil {
			return nil, err
		}
		settings = append(settings, Setting{Item: item, Value: val})
	}
	return settings, nil
}
