// Package handshake verifies the challenge exchange an external bouncer uses
// to prove both sides hold the same shared secret and endpoint configuration.
//
// Every rejection, whether a malformed body or a credential mismatch, is
// reported through one opaque envelope so callers cannot probe which check
// failed.
package handshake
