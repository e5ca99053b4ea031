package query

import (
	"fmt"
	"strings"
)

const (
	TypeGetComment = "bouncer.query.comment.get"
	TypeTranslate  = "bouncer.query.translate"
)

type GetCommentMessage struct {
	CommentID string
}

func (GetCommentMessage) Type() string { return TypeGetComment }

func (m GetCommentMessage) Validate() error {
	if strings.TrimSpace(m.CommentID) == "" {
		return fmt.Errorf("query: comment id is required")
	}
	return nil
}

type TranslateMessage struct {
	Key          string
	Replacements map[string]string
}

func (TranslateMessage) Type() string { return TypeTranslate }

func (m TranslateMessage) Validate() error {
	if strings.TrimSpace(m.Key) == "" {
		return fmt.Errorf("query: translation key is required")
	}
	return nil
}
