// Package dispatch turns accepted configuration changes into live
// reconfiguration calls on the server's subsystems.
//
// The [Dispatcher] is a single serialized actor owning the last-known-value
// table. Every submitted snapshot passes the diff gate first: keys whose
// value is unchanged since the last dispatch are suppressed and never reach
// validation. Surviving keys are classified by a static per-key rule table
// into at most one subsystem group (registry, session, expiry, listener),
// type-checked, and each non-empty group is forwarded to exactly one
// subsystem reconfiguration entry point. Keys failing validation are dropped
// individually with a diagnostic; keys matching no rule are ignored.
package dispatch
