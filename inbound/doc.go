// Package inbound exposes the relay's HTTP surface: the handshake self-test
// endpoint and the translation helper the admin configuration UI relies on.
//
// The router is only built when the handshake is configured. In disabled mode
// there is no surface at all, not an erroring one.
package inbound
