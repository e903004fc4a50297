package dispatch

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/codewandler/confplane-go/core/actor"
	"github.com/codewandler/confplane-go/core/config"
	"github.com/codewandler/confplane-go/core/metrics"
)

// DefaultNamespace is the namespace whose settings the dispatcher routes.
const DefaultNamespace = "broker"

type Options struct {
	// Namespace selects which entry of a snapshot is diffed and routed.
	// Other namespaces pass through untouched for other hook consumers.
	Namespace  string
	Subsystems Subsystems
	// Modules resolves symbolic module references (default_reg_view).
	Modules ModuleResolver
	Context context.Context
	Log     *slog.Logger
	Metrics metrics.DispatchMetrics
}

type (
	// SubmitSnapshot asks the dispatcher to diff and route a snapshot.
	SubmitSnapshot struct {
		Snapshot []config.NamespaceSettings `json:"snapshot"`
	}

	// Receipt reports what one submission did. Previous holds the
	// superseded value for keys that changed (absent for unseen keys).
	Receipt struct {
		Changed    []string       `json:"changed,omitempty"`
		Suppressed []string       `json:"suppressed,omitempty"`
		Dropped    []string       `json:"dropped,omitempty"`
		Called     []Group        `json:"called,omitempty"`
		Previous   map[string]any `json:"previous,omitempty"`
	}
)

// Dispatcher is the serialized change gate: it owns the last-known-value
// table and forwards only genuine changes to the subsystem router. All state
// lives inside the actor goroutine; the only way in is a request.
type Dispatcher struct {
	a         actor.Actor
	namespace string
}

func New(opts Options) *Dispatcher {
	if opts.Namespace == "" {
		opts.Namespace = DefaultNamespace
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NopDispatchMetrics()
	}
	log := opts.Log.With(slog.String("component", "dispatcher"))

	rt := &router{
		rules: ruleTable(opts.Modules),
		subs:  opts.Subsystems,
		log:   log,
		m:     opts.Metrics,
	}

	// owned exclusively by the handler goroutine
	lastKnown := make(map[string]any)

	d := &Dispatcher{namespace: opts.Namespace}
	d.a = actor.Handlers(
		actor.HandleRequest[SubmitSnapshot, Receipt](func(hc actor.HandlerCtx, s SubmitSnapshot) (*Receipt, error) {
			opts.Metrics.Snapshot()
			rec := &Receipt{}

			for _, ns := range s.Snapshot {
				if ns.Namespace != d.namespace {
					continue
				}
				changed := make([]config.Setting, 0, len(ns.Settings))
				for _, setting := range ns.Settings {
					outcome, prev := diff(lastKnown, setting)
					switch outcome {
					case diffUnseen:
						opts.Metrics.KeyDiffed("unseen")
						rec.Changed = append(rec.Changed, setting.Item)
						changed = append(changed, setting)
					case diffChanged:
						opts.Metrics.KeyDiffed("changed")
						rec.Changed = append(rec.Changed, setting.Item)
						if rec.Previous == nil {
							rec.Previous = make(map[string]any)
						}
						rec.Previous[setting.Item] = prev
						changed = append(changed, setting)
					case diffUnchanged:
						opts.Metrics.KeyDiffed("unchanged")
						rec.Suppressed = append(rec.Suppressed, setting.Item)
					}
				}
				if len(changed) == 0 {
					continue
				}
				called, dropped := rt.route(changed)
				rec.Called = append(rec.Called, called...)
				rec.Dropped = append(rec.Dropped, dropped...)
			}

			hc.Log().Debug("snapshot dispatched",
				slog.Int("changed", len(rec.Changed)),
				slog.Int("suppressed", len(rec.Suppressed)),
				slog.Int("dropped", len(rec.Dropped)),
			)
			return rec, nil
		}),
	).Start(actor.Options{Context: opts.Context, Logger: log})

	return d
}

type diffOutcome int

const (
	diffUnseen diffOutcome = iota
	diffChanged
	diffUnchanged
)

// diff applies the change gate for one key, updating the last-known table
// and reporting the superseded value on change. Values have crossed a JSON
// boundary, so equality is structural.
func diff(lastKnown map[string]any, s config.Setting) (diffOutcome, any) {
	prev, seen := lastKnown[s.Item]
	if !seen {
		lastKnown[s.Item] = s.Value
		return diffUnseen, nil
	}
	if reflect.DeepEqual(prev, s.Value) {
		return diffUnchanged, prev
	}
	lastKnown[s.Item] = s.Value
	return diffChanged, prev
}

// Submit diffs and routes a snapshot, returning the receipt. Calls serialize
// with each other through the actor mailbox.
func (d *Dispatcher) Submit(ctx context.Context, snapshot []config.NamespaceSettings) (*Receipt, error) {
	return actor.Request[SubmitSnapshot, Receipt](ctx, d.a, SubmitSnapshot{Snapshot: snapshot})
}

// ChangeConfig is the hook-compatible entry point (config.ChangeConfigFunc).
func (d *Dispatcher) ChangeConfig(ctx context.Context, snapshot []config.NamespaceSettings) error {
	_, err := d.Submit(ctx, snapshot)
	return err
}

func (d *Dispatcher) Stop() { d.a.Stop() }
