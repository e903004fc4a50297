package actor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

var ErrStopped = errors.New("actor stopped")

type (
	// Reply carries the result of one handler execution.
	Reply struct {
		Result any
		Error  error
	}

	// Envelope wraps a message for delivery to the mailbox.
	Envelope struct {
		Type  string
		Data  []byte
		Reply chan Reply
	}

	// Handler is the low-level message interface; use [Handlers] for the
	// typed layer.
	Handler interface {
		Init(hc HandlerCtx) error
		Handle(hc HandlerCtx, msgType string, data []byte) (any, error)
	}

	// HandlerCtx is what handlers see of their hosting actor.
	HandlerCtx interface {
		context.Context
		Log() *slog.Logger
	}

	Actor interface {
		Send(ctx context.Context, e Envelope) error
		Stop()
		Done() <-chan struct{}
	}
)

type Options struct {
	MailboxSize int
	Context     context.Context
	Logger      *slog.Logger
}

type mailboxActor struct {
	log     *slog.Logger
	mailbox chan Envelope

	stop chan struct{}
	done chan struct{}

	mu     sync.Mutex
	closed bool
}

type handlerCtx struct {
	context.Context
	log *slog.Logger
}

func (hc *handlerCtx) Log() *slog.Logger { return hc.log }

// New starts an actor running handler's loop.
func New(opts Options, handler Handler) Actor {
	if opts.MailboxSize <= 0 {
		opts.MailboxSize = 1024
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	a := &mailboxActor{
		log:     opts.Logger,
		mailbox: make(chan Envelope, opts.MailboxSize),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	hc := &handlerCtx{Context: opts.Context, log: opts.Logger}
	go a.loop(hc, handler)
	return a
}

func (a *mailboxActor) Done() <-chan struct{} { return a.done }

// Stop requests shutdown and waits for the loop to exit. Idempotent.
func (a *mailboxActor) Stop() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		<-a.done
		return
	}
	a.closed = true
	a.mu.Unlock()

	close(a.stop)
	<-a.done
}

// Send enqueues a message, blocking until enqueued, ctx cancelled or the
// actor stopped.
func (a *mailboxActor) Send(ctx context.Context, e Envelope) error {
	a.mu.Lock()
	closed := a.closed
	a.mu.Unlock()
	if closed {
		return ErrStopped
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("send failed: %w", ctx.Err())
	case <-a.stop:
		return ErrStopped
	case a.mailbox <- e:
		return nil
	}
}

func (a *mailboxActor) loop(hc *handlerCtx, h Handler) {
	defer close(a.done)

	safeHandle := func(mt string, data []byte) (res any, err error) {
		defer func() {
			if r := recover(); r != nil {
				a.log.Error("actor panicked",
					slog.Any("recovered", r),
					slog.String("msg_type", mt),
					slog.String("stack", string(debug.Stack())),
				)
				err = fmt.Errorf("handler panic: %v", r)
			}
		}()
		return h.Handle(hc, mt, data)
	}

	if err := h.Init(hc); err != nil {
		a.log.Error("actor init failed", slog.Any("error", err))
		return
	}

	for {
		select {
		case <-a.stop:
			return
		case <-hc.Done():
			return
		case msg := <-a.mailbox:
			res, err := safeHandle(msg.Type, msg.Data)
			if msg.Reply != nil {
				msg.Reply <- Reply{Result: res, Error: err}
			}
		}
	}
}
