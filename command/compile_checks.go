package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[NotifyCommentCreatedMessage] = (*NotifyCommentCreatedCommand)(nil)
	_ gocmd.Commander[NotifyFlagCreatedMessage]    = (*NotifyFlagCreatedCommand)(nil)
	_ gocmd.Commander[VerifyHandshakeMessage]      = (*VerifyHandshakeCommand)(nil)
)
