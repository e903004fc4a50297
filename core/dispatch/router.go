package dispatch

import (
	"log/slog"

	"github.com/codewandler/confplane-go/core/config"
	"github.com/codewandler/confplane-go/core/metrics"
)

// router classifies changed settings into subsystem groups and forwards each
// non-empty group to its reconfiguration entry point.
type router struct {
	rules map[string]rule
	subs  Subsystems
	log   *slog.Logger
	m     metrics.DispatchMetrics
}

// route validates and forwards changed settings, returning the names of the
// groups actually called and the items dropped by validation. Subsystem call
// failures are logged, never fatal to the batch.
func (r *router) route(changed []config.Setting) (called []Group, dropped []string) {
	groups := make(map[Group][]config.Setting)

	for _, s := range changed {
		rl, ok := r.rules[s.Item]
		if !ok {
			// not a routable key, fine
			continue
		}
		val, err := rl.validate(s.Value)
		if err != nil {
			// only this item is skipped, the batch proceeds
			r.log.Warn("config value rejected",
				slog.String("item", s.Item),
				slog.String("group", string(rl.group)),
				slog.Any("error", err),
			)
			r.m.KeyDropped(string(rl.group))
			dropped = append(dropped, s.Item)
			continue
		}
		groups[rl.group] = append(groups[rl.group], config.Setting{Item: s.Item, Value: val})
	}

	// empty groups trigger no call at all
	if g := groups[GroupRegistry]; len(g) > 0 && r.subs.Registry != nil {
		r.call(GroupRegistry, func() error { return r.subs.Registry.Reconfigure(g) })
		called = append(called, GroupRegistry)
	}
	if g := groups[GroupSession]; len(g) > 0 && r.subs.Session != nil {
		r.call(GroupSession, func() error { return r.subs.Session.Reconfigure(g) })
		called = append(called, GroupSession)
	}
	if g := groups[GroupExpiry]; len(g) > 0 && r.subs.Expirer != nil {
		// the expiry group can only ever hold persistent_client_expiration,
		// already normalized to int by its rule
		secs := g[0].Value.(int)
		r.call(GroupExpiry, func() error { return r.subs.Expirer.SetDuration(secs) })
		called = append(called, GroupExpiry)
	}
	if g := groups[GroupListener]; len(g) > 0 && r.subs.Listener != nil {
		r.call(GroupListener, func() error { return r.subs.Listener.Reconfigure(g) })
		called = append(called, GroupListener)
	}
	return called, dropped
}

func (r *router) call(g Group, f func() error) {
	r.m.SubsystemCall(string(g))
	if err := f(); err != nil {
		r.log.Error("subsystem reconfigure failed",
			slog.String("group", string(g)),
			slog.Any("error", err),
		)
	}
}
