// Package core contains the canonical relay domain contracts, entities, and
// runtime composition. Feature packages (relay, handshake, transport, inbound)
// must depend on this package; core must not depend on any of them.
package core
