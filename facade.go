package bouncer

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-bouncer/adapters/gocommand"
	bouncercommand "github.com/goliatone/go-bouncer/command"
	"github.com/goliatone/go-bouncer/core"
	bouncerquery "github.com/goliatone/go-bouncer/query"
)

// Commands bundles the relay command handlers.
type Commands struct {
	NotifyCommentCreated *bouncercommand.NotifyCommentCreatedCommand
	NotifyFlagCreated    *bouncercommand.NotifyFlagCreatedCommand
	VerifyHandshake      *bouncercommand.VerifyHandshakeCommand
}

// Queries bundles the relay query handlers.
type Queries struct {
	GetComment *bouncerquery.GetCommentQuery
	Translate  *bouncerquery.TranslateQuery
}

// Facade exposes the relay through command and query handlers so hosts built
// on a message dispatcher can integrate without touching the hook surface.
type Facade struct {
	relay    *Relay
	commands Commands
	queries  Queries
}

// NewFacade builds the handler set over an already wired relay.
func NewFacade(relay *Relay) (*Facade, error) {
	if relay == nil || relay.runtime == nil {
		return nil, facadeError("a wired relay is required")
	}

	runtime := relay.runtime
	return &Facade{
		relay: relay,
		commands: Commands{
			NotifyCommentCreated: bouncercommand.NewNotifyCommentCreatedCommand(relay.dispatcher),
			NotifyFlagCreated:    bouncercommand.NewNotifyFlagCreatedCommand(relay.dispatcher),
			VerifyHandshake:      bouncercommand.NewVerifyHandshakeCommand(relay.verifier),
		},
		queries: Queries{
			GetComment: bouncerquery.NewGetCommentQuery(runtime.Comments()),
			Translate:  bouncerquery.NewTranslateQuery(runtime.Translator()),
		},
	}, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

// RelayHandlers returns the handler set in the shape the dispatcher adapter
// registers.
func (f *Facade) RelayHandlers() gocommand.RelayHandlers {
	if f == nil {
		return gocommand.RelayHandlers{}
	}
	return gocommand.RelayHandlers{
		NotifyCommentCreated: f.commands.NotifyCommentCreated,
		NotifyFlagCreated:    f.commands.NotifyFlagCreated,
		VerifyHandshake:      f.commands.VerifyHandshake,
		GetComment:           f.queries.GetComment,
		Translate:            f.queries.Translate,
	}
}

func facadeError(message string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithTextCode(core.RelayErrorBadInput)
}
