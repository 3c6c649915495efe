package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mututech/site/internal/model"
	"github.com/mututech/site/internal/repository"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	cfg := "storage:\n" +
		"  snapshot_path: " + filepath.Join(dir, "db.json") + "\n" +
		"remote:\n" +
		"  driver: sqlite\n" +
		"  dsn: " + filepath.Join(dir, "site.db") + "\n" +
		"  compression: zstd\n"

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDatasetCommands(t *testing.T) {
	cfg := writeTestConfig(t)
	dir := filepath.Dir(cfg)

	t.Run("Seed", func(t *testing.T) {
		out, err := run(t, "-c", cfg, "seed")
		require.NoError(t, err)
		assert.Contains(t, out, "Saved")
	})

	t.Run("Seed refuses to run twice", func(t *testing.T) {
		_, err := run(t, "-c", cfg, "seed")
		assert.ErrorContains(t, err, "--force")
	})

	t.Run("Status", func(t *testing.T) {
		out, err := run(t, "-c", cfg, "--format", "json", "status")
		require.NoError(t, err)

		var status repository.Status
		require.NoError(t, json.Unmarshal([]byte(out), &status))
		assert.Equal(t, repository.SourceRemote, status.Source)
		assert.True(t, status.RemoteConfigured)
		assert.True(t, status.SnapshotReadable)
		assert.Equal(t, 2, status.Counts.Blog)
		assert.Equal(t, 3, status.Counts.Portfolio)
		assert.Equal(t, 3, status.Counts.Products)
	})

	exported := filepath.Join(dir, "export.json")

	t.Run("Export", func(t *testing.T) {
		_, err := run(t, "-c", cfg, "export", exported)
		require.NoError(t, err)

		data, err := os.ReadFile(exported)
		require.NoError(t, err)
		var got model.Database
		require.NoError(t, json.Unmarshal(data, &got))

		if diff := cmp.Diff(model.DefaultSeed(), got); diff != "" {
			t.Errorf("Exported dataset mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Import", func(t *testing.T) {
		// A partial file only touches the records it names.
		db := model.Database{Blog: []model.BlogPost{{
			ID:      "blog-3",
			Title:   "Imported",
			Slug:    "imported",
			Content: "From a file.",
			Date:    "1/1/2026",
		}}}
		data, err := json.Marshal(db)
		require.NoError(t, err)
		path := filepath.Join(dir, "import.json")
		require.NoError(t, os.WriteFile(path, data, 0o644))

		out, err := run(t, "-c", cfg, "--format", "json", "import", path)
		require.NoError(t, err)
		assert.Contains(t, out, `"remote_synced": true`)

		out, err = run(t, "-c", cfg, "--format", "json", "status")
		require.NoError(t, err)
		var status repository.Status
		require.NoError(t, json.Unmarshal([]byte(out), &status))
		assert.Equal(t, 3, status.Counts.Blog)
		assert.Equal(t, 3, status.Counts.Portfolio)
		assert.Equal(t, 3, status.Counts.Products)

		snapshot, err := repository.NewFSSnapshotStore(filepath.Join(dir, "db.json")).Load()
		require.NoError(t, err)
		require.Len(t, snapshot.Blog, 3)
		assert.Equal(t, "blog-3", snapshot.Blog[0].ID)
	})

	t.Run("Seed with force keeps imported records", func(t *testing.T) {
		_, err := run(t, "-c", cfg, "seed", "--force")
		require.NoError(t, err)

		out, err := run(t, "-c", cfg, "--format", "json", "status")
		require.NoError(t, err)
		var status repository.Status
		require.NoError(t, json.Unmarshal([]byte(out), &status))
		assert.Equal(t, 3, status.Counts.Blog)
	})

	t.Run("Upload without image storage", func(t *testing.T) {
		img := filepath.Join(dir, "logo.png")
		require.NoError(t, os.WriteFile(img, []byte("not really a png"), 0o644))

		_, err := run(t, "-c", cfg, "upload", img)
		assert.ErrorContains(t, err, "not configured")
	})
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, "-c", writeTestConfig(t), "--format", "xml", "status")
	assert.ErrorContains(t, err, "invalid format")
}

func TestConfigCommand(t *testing.T) {
	out, err := run(t, "-c", filepath.Join(t.TempDir(), "none.yaml"), "config", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "snapshot_path: db.json")
	assert.NotContains(t, out, "secret")
}

func TestMergeDatabase(t *testing.T) {
	base := model.Database{
		Blog: []model.BlogPost{
			{ID: "b2", Title: "Second"},
			{ID: "b1", Title: "First"},
		},
		Products: []model.Product{{ID: "x1", Name: "Starter", Features: []string{}}},
	}
	incoming := model.Database{
		Blog: []model.BlogPost{
			{ID: "b3", Title: "Third"},
			{ID: "b1", Title: "First, edited"},
		},
	}

	got := mergeDatabase(base, incoming)

	want := model.Database{
		Blog: []model.BlogPost{
			{ID: "b3", Title: "Third"},
			{ID: "b2", Title: "Second"},
			{ID: "b1", Title: "First, edited"},
		},
		Portfolio: []model.PortfolioItem{},
		Products:  []model.Product{{ID: "x1", Name: "Starter", Features: []string{}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merged dataset mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "First", base.Blog[1].Title, "base must not be modified")
}

func TestRepairDatabase(t *testing.T) {
	now := time.Date(2026, time.January, 2, 9, 0, 0, 0, time.UTC)
	db := model.Database{
		Blog: []model.BlogPost{
			{ID: "b2", Title: "Hello", Date: "1/1/2026"},
			{ID: "b1", Title: "Hello", Slug: "artikel-hello", Date: ""},
		},
		Portfolio: []model.PortfolioItem{
			{ID: "p1", Title: "Shop", Slug: ""},
		},
		Products: []model.Product{
			{ID: "x1", Name: "Starter"},
			{ID: "x2", Name: "Pro", Features: []string{"SEO"}},
		},
	}

	fixed := repairDatabase(&db, now)

	assert.Equal(t, 4, fixed)
	assert.Equal(t, "artikel-hello-1", db.Blog[0].Slug)
	assert.Equal(t, "2/1/2026", db.Blog[1].Date)
	assert.Equal(t, "portfolio-shop", db.Portfolio[0].Slug)
	assert.Equal(t, []string{}, db.Products[0].Features)

	assert.Zero(t, repairDatabase(&db, now), "Second pass must be a no-op")
}
