// Package bouncer relays moderation events from a host comment pipeline to
// an external bouncer ingestion service. The host embeds the relay through
// three surfaces: mutation hooks it installs around comment and flag
// creation, an HTTP router it mounts for handshake verification, and a
// command/query facade for dispatcher-based integrations.
package bouncer

import (
	"github.com/go-chi/chi/v5"
	"github.com/goliatone/go-bouncer/core"
	"github.com/goliatone/go-bouncer/handshake"
	"github.com/goliatone/go-bouncer/inbound"
	"github.com/goliatone/go-bouncer/relay"
	"github.com/goliatone/go-bouncer/transport"
)

// Version is the client version reported during handshake verification.
const Version = core.Version

// Re-exported core types so hosts can configure the relay without importing
// internal packages.
type (
	Config               = core.Config
	Option               = core.Option
	Logger               = core.Logger
	Comment              = core.Comment
	CommentStatus        = core.CommentStatus
	Flag                 = core.Flag
	NotificationPayload  = core.NotificationPayload
	CommentCreatedResult = core.CommentCreatedResult
	FlagCreatedResult    = core.FlagCreatedResult
	CommentReader        = core.CommentReader
	IngestTransport      = core.IngestTransport
	Scheduler            = core.Scheduler
	Translator           = core.Translator
	Authorizer           = core.Authorizer
	MetricsRecorder      = core.MetricsRecorder
)

var (
	WithLogger            = core.WithLogger
	WithLoggerProvider    = core.WithLoggerProvider
	WithMetricsRecorder   = core.WithMetricsRecorder
	WithConfigProvider    = core.WithConfigProvider
	WithCommentStore      = core.WithCommentStore
	WithIngestTransport   = core.WithIngestTransport
	WithScheduler         = core.WithScheduler
	WithTranslator        = core.WithTranslator
	WithAuthorizer        = core.WithAuthorizer
	WithPersistenceClient = core.WithPersistenceClient
	WithRepositoryFactory = core.WithRepositoryFactory
)

// DefaultConfig returns the baseline relay configuration before environment
// and host overrides are applied.
func DefaultConfig() Config {
	return core.DefaultConfig()
}

// Relay is the fully wired module. Hosts build one with Setup and then
// install Hooks into their mutation pipeline and Router into their mux.
type Relay struct {
	runtime    *core.Runtime
	dispatcher *relay.Dispatcher
	verifier   *handshake.Verifier
	router     chi.Router
	hooks      *ExtensionHooks
}

// Setup resolves configuration, wires collaborators, and returns the relay.
// Partial configuration is not an error: the relay comes up disabled and
// every surface degrades to a pass-through.
func Setup(cfg Config, opts ...Option) (*Relay, error) {
	runtime, err := core.NewRuntime(cfg, opts...)
	if err != nil {
		return nil, err
	}

	var dispatcherOpts []relay.Option
	if runtime.Transport() == nil && runtime.Config().DeliveryEnabled() {
		dispatcherOpts = append(dispatcherOpts, relay.WithTransport(transport.NewIngestClient(runtime.Config(), nil)))
	}

	dispatcher, err := relay.NewDispatcher(runtime, dispatcherOpts...)
	if err != nil {
		return nil, err
	}

	verifier, err := handshake.NewVerifier(runtime)
	if err != nil {
		return nil, err
	}

	router, err := inbound.NewRouter(runtime, verifier)
	if err != nil {
		return nil, err
	}

	r := &Relay{
		runtime:    runtime,
		dispatcher: dispatcher,
		verifier:   verifier,
		router:     router,
	}
	r.hooks = newExtensionHooks(r)
	return r, nil
}

// Runtime exposes the shared configuration and collaborators.
func (r *Relay) Runtime() *core.Runtime {
	if r == nil {
		return nil
	}
	return r.runtime
}

// Dispatcher exposes the hook dispatcher for direct pipeline integration.
func (r *Relay) Dispatcher() *relay.Dispatcher {
	if r == nil {
		return nil
	}
	return r.dispatcher
}

// Verifier exposes the handshake verifier.
func (r *Relay) Verifier() *handshake.Verifier {
	if r == nil {
		return nil
	}
	return r.verifier
}

// Router returns the mountable handshake router. It is nil while the relay
// is disabled by configuration.
func (r *Relay) Router() chi.Router {
	if r == nil {
		return nil
	}
	return r.router
}

// Hooks returns the mutation hook set the host registers into its pipeline.
func (r *Relay) Hooks() *ExtensionHooks {
	if r == nil {
		return nil
	}
	return r.hooks
}
