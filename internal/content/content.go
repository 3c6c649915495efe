// Package content implements the admin actions that add, update and delete
// blog posts, portfolio items and product packages.
package content

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/mututech/site/internal/model"
	"github.com/mututech/site/internal/repository"
)

var contentLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	contentLogger = l
}

var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("record not found")
)

// Store is the persistence the actions run against.
type Store interface {
	GetDatabase(ctx context.Context) model.Database
	SaveDatabase(ctx context.Context, db model.Database) (repository.SaveResult, error)
	Delete(ctx context.Context, c model.Collection, id string) error
}

// ImageFile is an uploaded file. An empty Data means no file was attached.
type ImageFile struct {
	Name string
	Data []byte
}

func (f *ImageFile) attached() bool {
	return f != nil && len(f.Data) > 0
}

// Result is what an action reports back to the admin panel. Exactly one of
// Message and Error is set. Err carries the cause for logging and status codes.
type Result struct {
	Message string
	Error   string
	Err     error

	// Sync reports how the write went. Zero when nothing was written.
	Sync repository.SaveResult
}

func (r Result) OK() bool {
	return r.Err == nil
}

func ok(message string, sync repository.SaveResult) Result {
	return Result{Message: message, Sync: sync}
}

func failed(message string, err error) Result {
	return Result{Error: message, Err: err}
}

type Service struct {
	store  Store
	images repository.ImageStore

	now func() time.Time
}

// NewService builds the actions. images may be nil, in which case attached
// files are replaced by placeholder images.
func NewService(store Store, images repository.ImageStore) *Service {
	return &Service{
		store:  store,
		images: images,
		now:    time.Now,
	}
}

func (s *Service) imageURL(ctx context.Context, f *ImageFile) string {
	return repository.UploadOrPlaceholder(ctx, s.images, f.Data, f.Name, s.now())
}

func (s *Service) save(ctx context.Context, db model.Database, message, failure string) Result {
	sync, err := s.store.SaveDatabase(ctx, db)
	if err != nil {
		contentLogger.Error().Err(err).Msg("Failed to persist dataset")
		return Result{Error: failure, Err: err, Sync: sync}
	}
	if !sync.Synced() {
		contentLogger.Warn().
			Bool("remote_attempted", sync.RemoteAttempted).
			Int("remote_failures", len(sync.RemoteFailures)).
			Bool("local_saved", sync.LocalSaved).
			Msg("Dataset saved without full sync")
	}
	return ok(message, sync)
}
