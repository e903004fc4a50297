package dispatch

import (
	"encoding/json"
	"fmt"
	"math"
)

// rule classifies one config key into its subsystem group and validates the
// proposed value, returning the normalized value or a reason to drop the key.
type rule struct {
	group    Group
	validate func(v any) (any, error)
}

// ruleTable builds the static per-key classification table. Keys absent from
// the table are ignored by the router.
func ruleTable(modules ModuleResolver) map[string]rule {
	return map[string]rule{
		// registry
		"reg_views": {GroupRegistry, asSymbolList},

		// session manager
		"allow_anonymous":         {GroupSession, asBool},
		"upgrade_outgoing_qos":    {GroupSession, asBool},
		"trade_consistency":       {GroupSession, asBool},
		"allow_multiple_sessions": {GroupSession, asBool},
		"max_client_id_size":      {GroupSession, asNonNegInt},
		"max_inflight_messages":   {GroupSession, asNonNegInt},
		"message_size_limit":      {GroupSession, asNonNegInt},
		"retry_interval":          {GroupSession, asPosInt},
		"default_reg_view":        {GroupSession, asModuleRef(modules)},

		// expiration sweeper
		"persistent_client_expiration": {GroupExpiry, asNonNegInt},

		// listeners: passed through as-is, no value-shape validation
		"listeners":          {GroupListener, passThrough},
		"tcp_listen_options": {GroupListener, passThrough},
	}
}

func passThrough(v any) (any, error) { return v, nil }

func asBool(v any) (any, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("expected bool, got %T", v)
	}
	return b, nil
}

// toInt normalizes the integer shapes a value can arrive in. Snapshots cross
// a JSON boundary on their way through the dispatcher actor, so numbers show
// up as float64.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

func asNonNegInt(v any) (any, error) {
	n, ok := toInt(v)
	if !ok {
		return nil, fmt.Errorf("expected integer, got %T (%v)", v, v)
	}
	if n < 0 {
		return nil, fmt.Errorf("expected non-negative integer, got %d", n)
	}
	return n, nil
}

func asPosInt(v any) (any, error) {
	n, ok := toInt(v)
	if !ok {
		return nil, fmt.Errorf("expected integer, got %T (%v)", v, v)
	}
	if n <= 0 {
		return nil, fmt.Errorf("expected positive integer, got %d", n)
	}
	return n, nil
}

// asSymbolList accepts a sequence whose every element is a non-empty
// symbolic name.
func asSymbolList(v any) (any, error) {
	var raw []any
	switch l := v.(type) {
	case []any:
		raw = l
	case []string:
		out := make([]string, len(l))
		copy(out, l)
		return checkSymbols(out)
	default:
		return nil, fmt.Errorf("expected list of symbols, got %T", v)
	}

	out := make([]string, 0, len(raw))
	for _, e := range raw {
		s, ok := e.(string)
		if !ok {
			return nil, fmt.Errorf("expected symbol, got %T", e)
		}
		out = append(out, s)
	}
	return checkSymbols(out)
}

func checkSymbols(names []string) (any, error) {
	for _, n := range names {
		if n == "" {
			return nil, fmt.Errorf("empty symbol")
		}
	}
	return names, nil
}

// asModuleRef validates a symbolic module reference as currently resolvable.
func asModuleRef(modules ModuleResolver) func(v any) (any, error) {
	return func(v any) (any, error) {
		name, ok := v.(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("expected module name, got %T", v)
		}
		if modules == nil || !modules.Resolvable(name) {
			return nil, fmt.Errorf("module %q not loaded", name)
		}
		return name, nil
	}
}
