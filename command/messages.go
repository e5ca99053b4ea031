package command

import (
	"fmt"

	"github.com/goliatone/go-bouncer/core"
)

const (
	TypeNotifyCommentCreated = "bouncer.command.notify.comment_created"
	TypeNotifyFlagCreated    = "bouncer.command.notify.flag_created"
	TypeVerifyHandshake      = "bouncer.command.handshake.verify"
)

// NotifyCommentCreatedMessage wraps a comment-created mutation result. Every
// shape is accepted: the dispatcher decides eligibility, not the message.
type NotifyCommentCreatedMessage struct {
	Result core.CommentCreatedResult
}

func (NotifyCommentCreatedMessage) Type() string { return TypeNotifyCommentCreated }

func (NotifyCommentCreatedMessage) Validate() error { return nil }

// NotifyFlagCreatedMessage wraps a flag-created mutation result.
type NotifyFlagCreatedMessage struct {
	Result core.FlagCreatedResult
}

func (NotifyFlagCreatedMessage) Type() string { return TypeNotifyFlagCreated }

func (NotifyFlagCreatedMessage) Validate() error { return nil }

// VerifyHandshakeMessage carries the raw handshake request body. Shape
// validation happens inside the verifier so every failure mode shares one
// opaque envelope.
type VerifyHandshakeMessage struct {
	Body []byte
}

func (VerifyHandshakeMessage) Type() string { return TypeVerifyHandshake }

func (m VerifyHandshakeMessage) Validate() error {
	if len(m.Body) == 0 {
		return fmt.Errorf("command: handshake body is required")
	}
	return nil
}
