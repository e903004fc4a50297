package dispatch

import "github.com/codewandler/confplane-go/core/config"

// Group names a subsystem config group.
type Group string

const (
	GroupRegistry Group = "registry"
	GroupSession  Group = "session"
	GroupExpiry   Group = "expiry"
	GroupListener Group = "listener"
)

// Reconfigurer is a subsystem entry point taking the changed subset of its
// settings. Implementations must be idempotent and safe to call with any
// subset.
type Reconfigurer interface {
	Reconfigure(settings []config.Setting) error
}

// Expirer is the expiration sweeper's entry point: it takes only the new
// persistent-client expiration duration in seconds.
type Expirer interface {
	SetDuration(seconds int) error
}

// Subsystems holds the reconfiguration entry points the router fans out to.
// Nil fields are simply never called.
type Subsystems struct {
	Registry Reconfigurer
	Session  Reconfigurer
	Expirer  Expirer
	Listener Reconfigurer
}

// ModuleResolver answers whether a symbolic module reference named in config
// corresponds to a currently loaded capability.
type ModuleResolver interface {
	Resolvable(name string) bool
}

// ModuleSet is a fixed ModuleResolver backed by a name set.
type ModuleSet map[string]struct{}

func NewModuleSet(names ...string) ModuleSet {
	s := make(ModuleSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s ModuleSet) Resolvable(name string) bool {
	_, ok := s[name]
	return ok
}
