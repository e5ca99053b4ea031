// Package relay contains the event filter and dispatcher: it decides which
// host mutation events are eligible for forwarding and schedules best-effort
// asynchronous delivery.
//
// Hooks are pass-through by contract: every path returns the caller's result
// unchanged, and no delivery outcome is ever surfaced to the host pipeline.
package relay
