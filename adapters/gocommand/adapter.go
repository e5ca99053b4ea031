// Package gocommand wires the relay's commands and queries into a host
// go-command registry and message bus.
package gocommand

import (
	"context"
	"fmt"
	"strings"

	gocmd "github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	"github.com/goliatone/go-bouncer/command"
	"github.com/goliatone/go-bouncer/query"
)

// ValidateMessageContract enforces the Type() plus optional Validate()
// contract before a message reaches the bus.
func ValidateMessageContract(msg any) error {
	if err := gocmd.ValidateMessage(msg); err != nil {
		return err
	}
	m, ok := msg.(gocmd.Message)
	if !ok {
		return fmt.Errorf("gocommand: message must implement Type() string")
	}
	if strings.TrimSpace(m.Type()) == "" {
		return fmt.Errorf("gocommand: message type is required")
	}
	return nil
}

type RegistryAdapter struct {
	registry *gocmd.Registry
}

func NewRegistryAdapter(registry *gocmd.Registry) *RegistryAdapter {
	if registry == nil {
		registry = gocmd.NewRegistry()
	}
	return &RegistryAdapter{registry: registry}
}

func (a *RegistryAdapter) Registry() *gocmd.Registry {
	if a == nil {
		return nil
	}
	return a.registry
}

func (a *RegistryAdapter) RegisterCommand(cmd any) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.RegisterCommand(cmd)
}

func (a *RegistryAdapter) RegisterQuery(qry any) error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.RegisterCommand(qry)
}

func (a *RegistryAdapter) Initialize() error {
	if a == nil || a.registry == nil {
		return fmt.Errorf("gocommand: registry is not configured")
	}
	return a.registry.Initialize()
}

func SubscribeCommand[T any](cmd gocmd.Commander[T], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeCommand(cmd, runnerOpts...)
}

func SubscribeQuery[T any, R any](qry gocmd.Querier[T, R], runnerOpts ...runner.Option) commanddispatcher.Subscription {
	return commanddispatcher.SubscribeQuery(qry, runnerOpts...)
}

func Dispatch[T any](ctx context.Context, msg T) error {
	return commanddispatcher.Dispatch(ctx, msg)
}

func Query[T any, R any](ctx context.Context, msg T) (R, error) {
	return commanddispatcher.Query[T, R](ctx, msg)
}

// RelayHandlers bundles the handlers RegisterRelay subscribes.
type RelayHandlers struct {
	NotifyCommentCreated *command.NotifyCommentCreatedCommand
	NotifyFlagCreated    *command.NotifyFlagCreatedCommand
	VerifyHandshake      *command.VerifyHandshakeCommand
	GetComment           *query.GetCommentQuery
	Translate            *query.TranslateQuery
}

// RegisterRelay subscribes every non-nil relay handler on the dispatcher and
// registers it with the adapter's registry. Returned subscriptions unwind the
// bus wiring on shutdown.
func RegisterRelay(adapter *RegistryAdapter, handlers RelayHandlers) ([]commanddispatcher.Subscription, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, fmt.Errorf("gocommand: registry is not configured")
	}

	subscriptions := []commanddispatcher.Subscription{}
	unwind := func() {
		for _, subscription := range subscriptions {
			if subscription != nil {
				subscription.Unsubscribe()
			}
		}
	}

	if handlers.NotifyCommentCreated != nil {
		subscriptions = append(subscriptions, SubscribeCommand(handlers.NotifyCommentCreated))
		if err := adapter.RegisterCommand(handlers.NotifyCommentCreated); err != nil {
			unwind()
			return nil, err
		}
	}
	if handlers.NotifyFlagCreated != nil {
		subscriptions = append(subscriptions, SubscribeCommand(handlers.NotifyFlagCreated))
		if err := adapter.RegisterCommand(handlers.NotifyFlagCreated); err != nil {
			unwind()
			return nil, err
		}
	}
	if handlers.VerifyHandshake != nil {
		subscriptions = append(subscriptions, SubscribeCommand(handlers.VerifyHandshake))
		if err := adapter.RegisterCommand(handlers.VerifyHandshake); err != nil {
			unwind()
			return nil, err
		}
	}
	if handlers.GetComment != nil {
		subscriptions = append(subscriptions, SubscribeQuery(handlers.GetComment))
		if err := adapter.RegisterQuery(handlers.GetComment); err != nil {
			unwind()
			return nil, err
		}
	}
	if handlers.Translate != nil {
		subscriptions = append(subscriptions, SubscribeQuery(handlers.Translate))
		if err := adapter.RegisterQuery(handlers.Translate); err != nil {
			unwind()
			return nil, err
		}
	}

	return subscriptions, nil
}
