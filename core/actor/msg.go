package actor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/codewandler/confplane-go/internal/reflector"
)

type (
	emptyOut struct{}

	// MsgHandlerFunc handles one decoded message.
	MsgHandlerFunc func(hc HandlerCtx, msg any) (any, error)

	// Registration adds a handler to a registry; create with [HandleMsg]
	// or [HandleRequest].
	Registration func(r *Registry)

	// Registry dispatches incoming messages to typed handlers by message
	// type name. It is populated before Start and never mutated after.
	Registry struct {
		handlers map[string]MsgHandlerFunc
		types    map[string]func() any
		inits    []func(hc HandlerCtx) error
	}
)

// Handlers builds a registry from the given registrations.
func Handlers(regs ...Registration) *Registry {
	r := &Registry{
		handlers: make(map[string]MsgHandlerFunc),
		types:    make(map[string]func() any),
	}
	for _, reg := range regs {
		reg(r)
	}
	return r
}

// Start creates and starts an actor serving this registry.
func (r *Registry) Start(opts Options) Actor {
	return New(opts, r)
}

func (r *Registry) Init(hc HandlerCtx) error {
	for _, init := range r.inits {
		if err := init(hc); err != nil {
			return fmt.Errorf("handler init: %w", err)
		}
	}
	return nil
}

func (r *Registry) Handle(hc HandlerCtx, msgType string, data []byte) (any, error) {
	h, ok := r.handlers[msgType]
	if !ok {
		return nil, fmt.Errorf("no handler for message type %s", msgType)
	}
	msg := r.types[msgType]()
	if err := json.Unmarshal(data, msg); err != nil {
		return nil, err
	}
	return h(hc, msg)
}

var _ Handler = (*Registry)(nil)

// Init registers a function run once when the actor starts.
func Init(init func(hc HandlerCtx) error) Registration {
	return func(r *Registry) { r.inits = append(r.inits, init) }
}

// HandleMsg registers a fire-and-forget handler for IN.
func HandleMsg[IN any](h func(hc HandlerCtx, i IN) error) Registration {
	return HandleRequest[IN, emptyOut](func(hc HandlerCtx, i IN) (*emptyOut, error) {
		return nil, h(hc, i)
	})
}

// HandleRequest registers a request/response handler: IN in, *OUT out.
func HandleRequest[IN any, OUT any](h func(hc HandlerCtx, i IN) (*OUT, error)) Registration {
	return func(r *Registry) {
		mt := reflector.NameFor[IN]()
		r.types[mt] = func() any { return new(IN) }
		r.handlers[mt] = func(hc HandlerCtx, msg any) (any, error) {
			i, ok := msg.(*IN)
			if !ok {
				return nil, fmt.Errorf("invalid message type: %T", msg)
			}
			return h(hc, *i)
		}
	}
}

// Request sends i to the actor and waits for the typed response. The message
// is JSON-encoded and routed by IN's type name.
func Request[IN any, OUT any](ctx context.Context, a Actor, i IN) (*OUT, error) {
	data, err := json.Marshal(i)
	if err != nil {
		return nil, err
	}

	replyChan := make(chan Reply, 1)
	if err := a.Send(ctx, Envelope{Type: reflector.NameFor[IN](), Data: data, Reply: replyChan}); err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case reply := <-replyChan:
		if reply.Error != nil {
			return nil, reply.Error
		}
		if reply.Result == nil {
			return nil, nil
		}
		return reply.Result.(*OUT), nil
	}
}

// Publish sends a fire-and-forget message, waiting only for the handler to
// run (dispatch calls serialize with each other).
func Publish[IN any](ctx context.Context, a Actor, i IN) error {
	_, err := Request[IN, emptyOut](ctx, a, i)
	return err
}
