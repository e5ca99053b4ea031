package query

import (
	"context"

	"github.com/goliatone/go-bouncer/core"
)

type GetCommentQuery struct {
	reader core.CommentReader
}

func NewGetCommentQuery(reader core.CommentReader) *GetCommentQuery {
	return &GetCommentQuery{reader: reader}
}

func (q *GetCommentQuery) Query(ctx context.Context, msg GetCommentMessage) (core.Comment, error) {
	if q == nil || q.reader == nil {
		return core.Comment{}, queryDependencyError("query: comment reader is required")
	}
	return q.reader.GetByID(ctx, msg.CommentID)
}

type TranslateQuery struct {
	translator core.Translator
}

func NewTranslateQuery(translator core.Translator) *TranslateQuery {
	return &TranslateQuery{translator: translator}
}

func (q *TranslateQuery) Query(ctx context.Context, msg TranslateMessage) (string, error) {
	if q == nil || q.translator == nil {
		return "", queryDependencyError("query: translator is required")
	}
	return q.translator.Translate(ctx, msg.Key, msg.Replacements)
}
