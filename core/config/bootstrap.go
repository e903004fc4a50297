package config

import (
	"context"
	"fmt"
	"log/slog"
)

// ChangeConfigFunc is the change-hook entry point the bootstrap hands full
// snapshots to (see core/hooks for the registry that fans it out).
type ChangeConfigFunc func(ctx context.Context, snapshot []NamespaceSettings) error

type BootstrapOptions struct {
	Cache    *Cache
	Resolver *Resolver
	Defaults Defaults
	Hook     ChangeConfigFunc
	Log      *slog.Logger
}

// Bootstrap gathers the full configuration of every participating namespace
// when a node (re)joins the cluster and pushes it through the change hook.
type Bootstrap struct {
	cache    *Cache
	resolver *Resolver
	defaults Defaults
	hook     ChangeConfigFunc
	log      *slog.Logger
}

func NewBootstrap(opts BootstrapOptions) *Bootstrap {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Hook == nil {
		opts.Hook = func(context.Context, []NamespaceSettings) error { return nil }
	}
	return &Bootstrap{
		cache:    opts.Cache,
		resolver: opts.Resolver,
		defaults: opts.Defaults,
		hook:     opts.Hook,
		log:      opts.Log,
	}
}

// ConfigureNode clears the cache, re-resolves the full settings of every
// registered namespace from the store (repopulating the cache as it goes),
// and hands the assembled snapshot to the change hook.
func (b *Bootstrap) ConfigureNode(ctx context.Context) error {
	b.cache.Clear()

	namespaces := b.defaults.Namespaces()
	snapshot := make([]NamespaceSettings, 0, len(namespaces))
	for _, ns := range namespaces {
		settings, err := b.resolver.ResolveAll(ctx, ns)
		if err != nil {
			return fmt.Errorf("configure node: %w", err)
		}
		snapshot = append(snapshot, NamespaceSettings{Namespace: ns, Settings: settings})
	}

	b.log.Info("node configured", slog.Int("namespaces", len(snapshot)))
	return b.hook(ctx, snapshot)
}
