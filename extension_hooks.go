package bouncer

import (
	"context"
	"net/http"
	"sort"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-bouncer/core"
	"github.com/goliatone/go-bouncer/inbound"
)

// Mutation names the relay hooks into on the host pipeline.
const (
	MutationCreateComment = "createComment"
	MutationCreateFlag    = "createFlag"
)

// CommentCreatedHook runs after the host creates a comment. It must return
// the result it was given, modified or not.
type CommentCreatedHook func(ctx context.Context, res CommentCreatedResult) CommentCreatedResult

// FlagCreatedHook runs after the host records a flag action.
type FlagCreatedHook func(ctx context.Context, res FlagCreatedResult) FlagCreatedResult

// RouteRegistrar is the slice of the host mux needed to install the relay
// endpoints. chi.Router satisfies it.
type RouteRegistrar interface {
	Mount(pattern string, handler http.Handler)
}

// ExtensionHooks is what the host registers into its pipeline: the relay's
// own dispatch runs first, then any extra hooks installed by the host. Every
// hook is pass-through, so a registration error or a disabled relay never
// changes mutation results.
type ExtensionHooks struct {
	relay *Relay

	mu             sync.RWMutex
	commentCreated map[string]CommentCreatedHook
	flagCreated    map[string]FlagCreatedHook
}

func newExtensionHooks(relay *Relay) *ExtensionHooks {
	return &ExtensionHooks{
		relay:          relay,
		commentCreated: map[string]CommentCreatedHook{},
		flagCreated:    map[string]FlagCreatedHook{},
	}
}

// Names lists the host mutations the relay hooks into.
func (h *ExtensionHooks) Names() []string {
	return []string{MutationCreateComment, MutationCreateFlag}
}

// Set returns the hook funcs keyed by the mutation they wrap, ready to be
// spliced into the host's hook table.
func (h *ExtensionHooks) Set() map[string]any {
	return map[string]any{
		MutationCreateComment: CommentCreatedHook(h.CommentCreated),
		MutationCreateFlag:    FlagCreatedHook(h.FlagCreated),
	}
}

// CommentCreated is the createComment hook. The result always comes back
// unchanged by the relay itself; host-registered hooks may transform it.
func (h *ExtensionHooks) CommentCreated(ctx context.Context, res CommentCreatedResult) CommentCreatedResult {
	if h == nil {
		return res
	}
	if h.relay != nil && h.relay.dispatcher != nil {
		res = h.relay.dispatcher.CommentCreated(ctx, res)
	}

	h.mu.RLock()
	names := make([]string, 0, len(h.commentCreated))
	for name := range h.commentCreated {
		names = append(names, name)
	}
	sort.Strings(names)
	hooks := make([]CommentCreatedHook, 0, len(names))
	for _, name := range names {
		hooks = append(hooks, h.commentCreated[name])
	}
	h.mu.RUnlock()

	for _, hook := range hooks {
		res = hook(ctx, res)
	}
	return res
}

// FlagCreated is the createFlag hook.
func (h *ExtensionHooks) FlagCreated(ctx context.Context, res FlagCreatedResult) FlagCreatedResult {
	if h == nil {
		return res
	}
	if h.relay != nil && h.relay.dispatcher != nil {
		res = h.relay.dispatcher.FlagCreated(ctx, res)
	}

	h.mu.RLock()
	names := make([]string, 0, len(h.flagCreated))
	for name := range h.flagCreated {
		names = append(names, name)
	}
	sort.Strings(names)
	hooks := make([]FlagCreatedHook, 0, len(names))
	for _, name := range names {
		hooks = append(hooks, h.flagCreated[name])
	}
	h.mu.RUnlock()

	for _, hook := range hooks {
		res = hook(ctx, res)
	}
	return res
}

// RegisterCommentCreated adds a host hook that runs after the relay's own
// createComment dispatch. Names must be unique.
func (h *ExtensionHooks) RegisterCommentCreated(name string, hook CommentCreatedHook) error {
	if h == nil {
		return hookError("hooks are not initialized")
	}
	if name == "" || hook == nil {
		return hookError("hook name and func are required")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.commentCreated[name]; exists {
		return hookError("comment created hook already registered: " + name)
	}
	h.commentCreated[name] = hook
	return nil
}

// RegisterFlagCreated adds a host hook that runs after the relay's own
// createFlag dispatch. Names must be unique.
func (h *ExtensionHooks) RegisterFlagCreated(name string, hook FlagCreatedHook) error {
	if h == nil {
		return hookError("hooks are not initialized")
	}
	if name == "" || hook == nil {
		return hookError("hook name and func are required")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.flagCreated[name]; exists {
		return hookError("flag created hook already registered: " + name)
	}
	h.flagCreated[name] = hook
	return nil
}

// RegisterRoutes mounts the relay endpoints onto the host mux. It is a no-op
// while the relay is disabled by configuration.
func (h *ExtensionHooks) RegisterRoutes(registrar RouteRegistrar) error {
	if h == nil || h.relay == nil {
		return hookError("hooks are not initialized")
	}
	if registrar == nil {
		return hookError("route registrar is required")
	}

	router := h.relay.Router()
	if router == nil {
		return nil
	}

	registrar.Mount(inbound.BasePath, router)
	return nil
}

func hookError(message string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithTextCode(core.RelayErrorBadInput)
}
