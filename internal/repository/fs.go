package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mututech/site/internal/model"
)

const snapshotTempPrefix = "snapshot-tmp-"

type FSSnapshotStore struct { // implements SnapshotStore
	path string
}

func NewFSSnapshotStore(path string) *FSSnapshotStore {
	return &FSSnapshotStore{path: path}
}

func (s *FSSnapshotStore) Path() string {
	return s.path
}

// Load reads the snapshot. A missing or malformed file yields ErrIO.
func (s *FSSnapshotStore) Load() (model.Database, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return model.Database{}, fmt.Errorf("%w: error reading %s: %w", ErrIO, s.path, err)
	}

	var db model.Database
	if err := json.Unmarshal(data, &db); err != nil {
		return model.Database{}, fmt.Errorf("%w: error parsing %s: %w", ErrIO, s.path, err)
	}

	// Absent keys load as empty collections.
	return db.Clone(), nil
}

// Save overwrites the snapshot with the pretty-printed dataset. The file is
// written next to the target and renamed over it.
func (s *FSSnapshotStore) Save(db model.Database) error {
	data, err := json.MarshalIndent(db.Clone(), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: error encoding snapshot: %w", ErrIO, err)
	}

	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	repoLogger.Debug().Str("path", s.path).Int("bytes", len(data)).Msg("Snapshot written")
	return nil
}

func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, snapshotTempPrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}

	return nil
}
