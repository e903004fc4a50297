package config

import (
	"sort"
	"sync"
)

// Setting is one resolved (item, value) pair.
type Setting struct {
	Item  string `json:"item"`
	Value any    `json:"value"`
}

// NamespaceSettings bundles a namespace's full resolved settings, as handed
// to the change hook at bootstrap.
type NamespaceSettings struct {
	Namespace string    `json:"namespace"`
	Settings  []Setting `json:"settings"`
}

// Defaults is the compiled-default provider: the last fallback of the read
// path and the enumeration source for ResolveAll. Namespaces registered here
// are the "config participating" set the node bootstrap walks.
type Defaults interface {
	// Lookup returns the default for (namespace, item).
	Lookup(namespace, item string) (any, bool)
	// Shadow overwrites the stored default with a resolved value, so
	// consumers reading defaults directly observe the resolution too.
	Shadow(namespace, item string, value any)
	// Items lists every known item of a namespace, sorted.
	Items(namespace string) []string
	// Namespaces lists every registered namespace, sorted.
	Namespaces() []string
}

// EnvDefaults is an in-memory Defaults implementation seeded from compiled-in
// values at startup.
type EnvDefaults struct {
	mu   sync.RWMutex
	data map[string]map[string]any
}

func NewEnvDefaults() *EnvDefaults {
	return &EnvDefaults{data: make(map[string]map[string]any)}
}

// Register adds a namespace with its compiled defaults. Registering an
// existing namespace merges the given items over the present ones.
func (d *EnvDefaults) Register(namespace string, defaults map[string]any) *EnvDefaults {
	d.mu.Lock()
	defer d.mu.Unlock()

	ns, ok := d.data[namespace]
	if !ok {
		ns = make(map[string]any, len(defaults))
		d.data[namespace] = ns
	}
	for item, v := range defaults {
		ns[item] = v
	}
	return d
}

func (d *EnvDefaults) Lookup(namespace, item string) (any, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.data[namespace][item]
	return v, ok
}

func (d *EnvDefaults) Shadow(namespace, item string, value any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ns, ok := d.data[namespace]
	if !ok {
		ns = make(map[string]any)
		d.data[namespace] = ns
	}
	ns[item] = value
}

func (d *EnvDefaults) Items(namespace string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	items := make([]string, 0, len(d.data[namespace]))
	for item := range d.data[namespace] {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

func (d *EnvDefaults) Namespaces() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, 0, len(d.data))
	for ns := range d.data {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

var _ Defaults = (*EnvDefaults)(nil)
