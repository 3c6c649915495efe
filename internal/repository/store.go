package repository

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mututech/site/internal/model"
)

// Source tells where a dataset returned by GetDatabase came from.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceSnapshot Source = "snapshot"
	SourceSeed     Source = "seed"
)

// RecordFailure is one record the record database refused during SaveDatabase.
type RecordFailure struct {
	Collection model.Collection
	ID         string
	Err        error
}

// SaveResult reports which legs of SaveDatabase succeeded.
type SaveResult struct {
	RemoteAttempted bool
	RemoteSynced    bool
	RemoteFailures  []RecordFailure
	LocalSaved      bool
}

// Synced reports whether both the record database and the snapshot hold the dataset.
func (r SaveResult) Synced() bool {
	return r.RemoteSynced && r.LocalSaved
}

// Status describes the persistence layer for the admin status page.
type Status struct {
	RemoteConfigured bool   `json:"remote_configured"`
	SnapshotReadable bool   `json:"snapshot_readable"`
	Source           Source `json:"source"`
	Counts           struct {
		Blog      int `json:"blog"`
		Portfolio int `json:"portfolio"`
		Products  int `json:"products"`
	} `json:"counts"`
}

// Store is the single entry point to the dataset.
type Store struct {
	remote RecordStore
	local  SnapshotStore
	seed   model.Database
}

// NewStore builds the facade. remote may be nil when no record database is
// configured. seed is copied and handed out when nothing else can be read.
func NewStore(remote RecordStore, local SnapshotStore, seed model.Database) *Store {
	return &Store{
		remote: remote,
		local:  local,
		seed:   seed.Clone(),
	}
}

func (s *Store) RemoteAvailable() bool {
	return s.remote != nil
}

// GetDatabase never fails. It reads the record database, mirroring the result
// to the snapshot, then falls back to the snapshot and finally to the seed.
func (s *Store) GetDatabase(ctx context.Context) model.Database {
	db, _ := s.getDatabase(ctx)
	return db
}

func (s *Store) getDatabase(ctx context.Context) (model.Database, Source) {
	if s.remote == nil {
		return s.seed.Clone(), SourceSeed
	}

	db, err := s.listAll(ctx)
	if err == nil {
		if err := s.local.Save(db); err != nil {
			repoLogger.Warn().Err(err).Msg("Failed to back up remote data to snapshot")
		}
		return db, SourceRemote
	}

	repoLogger.Warn().Err(err).Msg("Remote read failed, falling back to snapshot")

	db, err = s.local.Load()
	if err == nil {
		return db, SourceSnapshot
	}

	repoLogger.Warn().Err(err).Msg("Snapshot unavailable, serving seed data")
	return s.seed.Clone(), SourceSeed
}

// listAll fetches the three collections concurrently. Any failure fails the whole read.
func (s *Store) listAll(ctx context.Context) (model.Database, error) {
	var db model.Database

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		db.Blog, err = s.remote.ListBlog(gctx)
		return err
	})
	g.Go(func() (err error) {
		db.Portfolio, err = s.remote.ListPortfolio(gctx)
		return err
	})
	g.Go(func() (err error) {
		db.Products, err = s.remote.ListProducts(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return model.Database{}, err
	}
	return db.Clone(), nil
}

// SaveDatabase upserts every record to the record database one at a time and
// then always writes the snapshot. A record that fails is logged and the loop
// carries on with the next one. The returned error is ErrPersist and only
// occurs when the snapshot write failed and the record database is not fully
// in sync.
func (s *Store) SaveDatabase(ctx context.Context, db model.Database) (SaveResult, error) {
	var result SaveResult

	if s.remote != nil {
		result.RemoteAttempted = true
		result.RemoteFailures = s.upsertAll(ctx, db)
		result.RemoteSynced = len(result.RemoteFailures) == 0
	}

	localErr := s.local.Save(db)
	if localErr == nil {
		result.LocalSaved = true
	} else {
		repoLogger.Error().Err(localErr).Msg("Failed to write snapshot")
	}

	if localErr != nil && !result.RemoteSynced {
		return result, fmt.Errorf("%w: %w", ErrPersist, errors.Join(localErr, remoteErr(result.RemoteFailures)))
	}
	return result, nil
}

// upsertAll walks each collection from the tail so that, on a fresh table,
// creation order matches the newest-first order of the list.
func (s *Store) upsertAll(ctx context.Context, db model.Database) []RecordFailure {
	var failures []RecordFailure
	fail := func(c model.Collection, id string, err error) {
		repoLogger.Error().Err(err).Str("collection", string(c)).Str("id", id).Msg("Failed to upsert record")
		failures = append(failures, RecordFailure{Collection: c, ID: id, Err: err})
	}

	for i := len(db.Blog) - 1; i >= 0; i-- {
		if err := s.remote.UpsertBlog(ctx, db.Blog[i]); err != nil {
			fail(model.CollectionBlog, db.Blog[i].ID, err)
		}
	}
	for i := len(db.Portfolio) - 1; i >= 0; i-- {
		if err := s.remote.UpsertPortfolio(ctx, db.Portfolio[i]); err != nil {
			fail(model.CollectionPortfolio, db.Portfolio[i].ID, err)
		}
	}
	for i := len(db.Products) - 1; i >= 0; i-- {
		if err := s.remote.UpsertProduct(ctx, db.Products[i]); err != nil {
			fail(model.CollectionProducts, db.Products[i].ID, err)
		}
	}

	return failures
}

func remoteErr(failures []RecordFailure) error {
	if len(failures) == 0 {
		return nil
	}
	errs := make([]error, len(failures))
	for i, f := range failures {
		errs[i] = f.Err
	}
	return errors.Join(errs...)
}

func (s *Store) DeleteBlogPost(ctx context.Context, id string) error {
	return s.delete(ctx, model.CollectionBlog, id)
}

func (s *Store) DeletePortfolioItem(ctx context.Context, id string) error {
	return s.delete(ctx, model.CollectionPortfolio, id)
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return s.delete(ctx, model.CollectionProducts, id)
}

// Delete removes a record from the record database only. The snapshot is
// left alone; callers persist the filtered dataset themselves.
func (s *Store) Delete(ctx context.Context, c model.Collection, id string) error {
	return s.delete(ctx, c, id)
}

func (s *Store) delete(ctx context.Context, c model.Collection, id string) error {
	if s.remote == nil {
		return fmt.Errorf("%w: %w", ErrRemote, ErrRemoteUnavailable)
	}
	if err := s.remote.Delete(ctx, c, id); err != nil {
		if errors.Is(err, ErrRemote) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrRemote, err)
	}
	return nil
}

// Status reads the dataset the same way GetDatabase does and reports where it came from.
func (s *Store) Status(ctx context.Context) Status {
	db, source := s.getDatabase(ctx)

	var st Status
	st.RemoteConfigured = s.remote != nil
	if _, err := s.local.Load(); err == nil {
		st.SnapshotReadable = true
	}
	st.Source = source
	st.Counts.Blog = len(db.Blog)
	st.Counts.Portfolio = len(db.Portfolio)
	st.Counts.Products = len(db.Products)
	return st
}
