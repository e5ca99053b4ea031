package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-bouncer/core"
)

var (
	_ gocmd.Querier[GetCommentMessage, core.Comment] = (*GetCommentQuery)(nil)
	_ gocmd.Querier[TranslateMessage, string]        = (*TranslateQuery)(nil)
)
