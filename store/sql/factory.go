package sqlstore

import (
	"fmt"

	"github.com/goliatone/go-bouncer/core"
	persistence "github.com/goliatone/go-persistence-bun"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// RepositoryFactory resolves a bun DB from whatever persistence wiring the
// host hands over and builds the comment reader on top of it.
type RepositoryFactory struct {
	db    *bun.DB
	cache repositorycache.CacheService

	commentStore *CommentStore
}

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{}
}

// NewRepositoryFactoryWithCache builds a factory whose comment reader is
// wrapped in the given cache service.
func NewRepositoryFactoryWithCache(cacheService repositorycache.CacheService) *RepositoryFactory {
	return &RepositoryFactory{cache: cacheService}
}

func NewRepositoryFactoryFromPersistence(client *persistence.Client) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if _, err := factory.BuildCommentStore(client); err != nil {
		return nil, err
	}
	return factory, nil
}

func NewRepositoryFactoryFromDB(db *bun.DB) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if _, err := factory.BuildCommentStore(db); err != nil {
		return nil, err
	}
	return factory, nil
}

// BuildCommentStore resolves the bun DB and returns the comment reader,
// cached when the factory carries a cache service.
func (f *RepositoryFactory) BuildCommentStore(persistenceClient any) (core.CommentReader, error) {
	if f == nil {
		return nil, fmt.Errorf("sqlstore: repository factory is nil")
	}
	if f.db == nil {
		db, err := resolveBunDB(persistenceClient)
		if err != nil {
			return nil, err
		}
		f.db = db
	}
	if f.commentStore == nil {
		store, err := NewCommentStore(f.db)
		if err != nil {
			return nil, err
		}
		f.commentStore = store
	}

	if f.cache != nil {
		return NewCachedCommentStore(f.commentStore, f.cache)
	}
	return f.commentStore, nil
}

func (f *RepositoryFactory) CommentStore() *CommentStore {
	if f == nil {
		return nil
	}
	return f.commentStore
}

func (f *RepositoryFactory) DB() *bun.DB {
	if f == nil {
		return nil
	}
	return f.db
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client type %T", candidate)
	}
}

var _ core.CommentStoreFactory = (*RepositoryFactory)(nil)
