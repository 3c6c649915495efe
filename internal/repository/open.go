package repository

import (
	"context"
	"fmt"
	"io"

	"github.com/mututech/site/internal/config"
	"github.com/mututech/site/internal/db"
	"github.com/mututech/site/internal/model"
	"github.com/mututech/site/internal/util/compression"
)

// DriverMemory keeps records in process for local development. They are
// lost on restart; the snapshot still holds the last saved dataset.
const DriverMemory = "memory"

// Backend is everything Open wired up from the configuration.
type Backend struct {
	Store  *Store
	Images ImageStore

	closer io.Closer
}

func (b *Backend) Close() error {
	if b.closer != nil {
		return b.closer.Close()
	}
	return nil
}

// Open builds the persistence layer. A record database that cannot be opened
// yet is logged and retried on use; until then reads come from the snapshot
// or the seed. The object store is only set up when ImagesConfig.Enabled.
func Open(ctx context.Context, cfg *config.Config, seed model.Database) (*Backend, error) {
	b := &Backend{}

	var remote RecordStore
	switch {
	case cfg.Remote.Driver == DriverMemory:
		repoLogger.Warn().Msg("Using the in-memory record store, records are lost on restart")
		remote = NewMemoryRecordStore()
	case cfg.Remote.DSN != "":
		compressor, err := compression.ByName(cfg.Remote.Compression)
		if err != nil {
			return nil, err
		}

		database := db.NewSQLite(cfg.Remote.Driver, cfg.Remote.DSN)
		if err := database.InitDB(ctx); err != nil {
			repoLogger.Error().Err(err).Str("driver", cfg.Remote.Driver).Msg("Record database unavailable, will retry on use")
			lazy := NewLazyRecordStore(database, compressor)
			b.closer = lazy
			remote = lazy
		} else {
			b.closer = database
			remote = NewDBRecordStore(database, compressor)
		}
	}

	if cfg.Images.Enabled() {
		objects, err := NewS3ObjectStore(ctx, cfg.Images)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("error setting up image storage: %w", err)
		}
		b.Images = NewImageUploader(objects, cfg.Images)
	} else {
		repoLogger.Info().Msg("Image storage not configured, uploads use placeholder images")
	}

	b.Store = NewStore(remote, NewFSSnapshotStore(cfg.Storage.SnapshotPath), seed)
	return b, nil
}
