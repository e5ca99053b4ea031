package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-bouncer/core"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const commentCacheKeyPrefix = "go-bouncer::comment::v1"

// CachedCommentStore fronts a comment reader with a short-lived cache so the
// flag-created hook can look up a comment the mutation already loaded without
// a second round trip.
type CachedCommentStore struct {
	base  core.CommentReader
	cache repositorycache.CacheService
}

func NewCachedCommentStore(
	base core.CommentReader,
	cacheService repositorycache.CacheService,
) (*CachedCommentStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base comment store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: comment cache service is required")
	}
	return &CachedCommentStore{base: base, cache: cacheService}, nil
}

// CommentCacheKey returns the deterministic cache key contract for comment
// reads: go-bouncer::comment::v1::<id> with the id URL-path escaped after
// trimming.
func CommentCacheKey(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("sqlstore: comment id is required")
	}
	return commentCacheKeyPrefix + "::" + url.PathEscape(id), nil
}

func (s *CachedCommentStore) GetByID(ctx context.Context, id string) (core.Comment, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.Comment{}, fmt.Errorf("sqlstore: cached comment store is not configured")
	}

	cacheKey, err := CommentCacheKey(id)
	if err != nil {
		return core.Comment{}, err
	}

	comment, err := repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) (core.Comment, error) {
		fetched, fetchErr := s.base.GetByID(ctx, strings.TrimSpace(id))
		if fetchErr != nil {
			return core.Comment{}, fetchErr
		}
		return cloneComment(fetched), nil
	})
	if err != nil {
		return core.Comment{}, err
	}
	return cloneComment(comment), nil
}

// Invalidate drops a cached comment, for hosts that mutate status or action
// counts mid-operation.
func (s *CachedCommentStore) Invalidate(ctx context.Context, id string) error {
	if s == nil || s.cache == nil {
		return fmt.Errorf("sqlstore: cached comment store is not configured")
	}
	cacheKey, err := CommentCacheKey(id)
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx, cacheKey)
}

func cloneComment(comment core.Comment) core.Comment {
	cloned := comment
	if len(comment.StatusHistory) > 0 {
		cloned.StatusHistory = make([]core.StatusHistoryEntry, len(comment.StatusHistory))
		copy(cloned.StatusHistory, comment.StatusHistory)
	}
	return cloned
}

var _ core.CommentReader = (*CachedCommentStore)(nil)
