// Package actor provides a small mailbox actor: state owned by a single
// goroutine, reachable only through request/response message passing. There
// is no lock around the state by construction — single-writer access is the
// concurrency model.
//
// Define handlers with [Handlers] and the typed registrations, then start
// the actor:
//
//	a := actor.Handlers(
//	    actor.HandleRequest[SubmitQuery, *Result](handleSubmit),
//	    actor.HandleMsg[ResetCmd](handleReset),
//	).Start(actor.Options{})
//	defer a.Stop()
//
//	res, err := actor.Request[SubmitQuery, *Result](ctx, a, SubmitQuery{...})
//
// Messages are JSON-encoded and dispatched by the qualified type name of the
// request type. Handler panics are contained: the actor logs and keeps
// processing.
package actor
