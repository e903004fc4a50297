package actor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type (
	addCmd struct {
		N int `json:"n"`
	}
	sumQuery struct{}
	sumReply struct {
		Sum int `json:"sum"`
	}
	boomCmd struct{}
)

func newCounterActor(t *testing.T) Actor {
	t.Helper()

	sum := 0
	a := Handlers(
		HandleMsg[addCmd](func(hc HandlerCtx, c addCmd) error {
			sum += c.N
			return nil
		}),
		HandleRequest[sumQuery, sumReply](func(hc HandlerCtx, _ sumQuery) (*sumReply, error) {
			return &sumReply{Sum: sum}, nil
		}),
		HandleMsg[boomCmd](func(hc HandlerCtx, _ boomCmd) error {
			panic("boom")
		}),
	).Start(Options{Context: t.Context()})
	t.Cleanup(a.Stop)
	return a
}

func Test_Actor_RequestResponse(t *testing.T) {
	a := newCounterActor(t)

	require.NoError(t, Publish(t.Context(), a, addCmd{N: 2}))
	require.NoError(t, Publish(t.Context(), a, addCmd{N: 3}))

	res, err := Request[sumQuery, sumReply](t.Context(), a, sumQuery{})
	require.NoError(t, err)
	require.Equal(t, 5, res.Sum)
}

func Test_Actor_SerializesState(t *testing.T) {
	a := newCounterActor(t)

	const workers = 25
	done := make(chan error, workers)
	for range workers {
		go func() { done <- Publish(t.Context(), a, addCmd{N: 1}) }()
	}
	for range workers {
		require.NoError(t, <-done)
	}

	res, err := Request[sumQuery, sumReply](t.Context(), a, sumQuery{})
	require.NoError(t, err)
	require.Equal(t, workers, res.Sum)
}

func Test_Actor_PanicContained(t *testing.T) {
	a := newCounterActor(t)

	err := Publish(t.Context(), a, boomCmd{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "handler panic")

	// actor keeps processing after the panic
	require.NoError(t, Publish(t.Context(), a, addCmd{N: 1}))
	res, err := Request[sumQuery, sumReply](t.Context(), a, sumQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, res.Sum)
}

func Test_Actor_UnknownMessage(t *testing.T) {
	a := newCounterActor(t)

	type strangerCmd struct{}
	err := Publish(t.Context(), a, strangerCmd{})
	require.Error(t, err)
}

func Test_Actor_Stop(t *testing.T) {
	a := Handlers().Start(Options{})
	a.Stop()
	a.Stop() // idempotent

	err := Publish(t.Context(), a, addCmd{N: 1})
	require.ErrorIs(t, err, ErrStopped)

	select {
	case <-a.Done():
	default:
		t.Fatal("done not closed after stop")
	}
}

func Test_Actor_InitFailureStopsLoop(t *testing.T) {
	a := Handlers(
		Init(func(hc HandlerCtx) error { return errors.New("no good") }),
	).Start(Options{})
	<-a.Done()
}
