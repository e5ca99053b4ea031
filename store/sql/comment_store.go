package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/goliatone/go-bouncer/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// CommentStore is the read-only SQL lookup the flag-created hook uses to
// decide eligibility. The relay never writes the comments table; it belongs
// to the host platform.
type CommentStore struct {
	db   *bun.DB
	repo repository.Repository[*commentRecord]
}

func NewCommentStore(db *bun.DB) (*CommentStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*commentRecord](db, commentHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid comment repository wiring: %w", err)
		}
	}
	return &CommentStore{
		db:   db,
		repo: repo,
	}, nil
}

func (s *CommentStore) GetByID(ctx context.Context, id string) (core.Comment, error) {
	if s == nil || s.db == nil {
		return core.Comment{}, fmt.Errorf("sqlstore: comment store is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return core.Comment{}, fmt.Errorf("sqlstore: comment id is required")
	}

	record := &commentRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return core.Comment{}, fmt.Errorf("sqlstore: comment %q not found", id)
		}
		return core.Comment{}, err
	}
	return commentToDomain(record), nil
}

var _ core.CommentReader = (*CommentStore)(nil)
