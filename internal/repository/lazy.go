package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/mututech/site/internal/db"
	"github.com/mututech/site/internal/model"
	"github.com/mututech/site/internal/util/compression"
)

// LazyRecordStore opens the record database on first use and tries again on
// every call until it succeeds. Calls made while the database cannot be
// opened fail with ErrRemote, so reads fall back to the snapshot.
type LazyRecordStore struct { // implements RecordStore
	mu         sync.Mutex
	database   *db.SQLite
	compressor compression.Compressor
	store      *DBRecordStore
}

func NewLazyRecordStore(database *db.SQLite, compressor compression.Compressor) *LazyRecordStore {
	return &LazyRecordStore{
		database:   database,
		compressor: compressor,
	}
}

func (l *LazyRecordStore) get(ctx context.Context) (*DBRecordStore, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.store != nil {
		return l.store, nil
	}
	if err := l.database.InitDB(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemote, err)
	}

	repoLogger.Info().Msg("Record database reachable again")
	l.store = NewDBRecordStore(l.database, l.compressor)
	return l.store, nil
}

func (l *LazyRecordStore) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.store == nil {
		return nil
	}
	return l.database.Close()
}

func (l *LazyRecordStore) ListBlog(ctx context.Context) ([]model.BlogPost, error) {
	s, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return s.ListBlog(ctx)
}

func (l *LazyRecordStore) ListPortfolio(ctx context.Context) ([]model.PortfolioItem, error) {
	s, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return s.ListPortfolio(ctx)
}

func (l *LazyRecordStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	s, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return s.ListProducts(ctx)
}

func (l *LazyRecordStore) UpsertBlog(ctx context.Context, post model.BlogPost) error {
	s, err := l.get(ctx)
	if err != nil {
		return err
	}
	return s.UpsertBlog(ctx, post)
}

func (l *LazyRecordStore) UpsertPortfolio(ctx context.Context, item model.PortfolioItem) error {
	s, err := l.get(ctx)
	if err != nil {
		return err
	}
	return s.UpsertPortfolio(ctx, item)
}

func (l *LazyRecordStore) UpsertProduct(ctx context.Context, product model.Product) error {
	s, err := l.get(ctx)
	if err != nil {
		return err
	}
	return s.UpsertProduct(ctx, product)
}

func (l *LazyRecordStore) Delete(ctx context.Context, c model.Collection, id string) error {
	s, err := l.get(ctx)
	if err != nil {
		return err
	}
	return s.Delete(ctx, c, id)
}
