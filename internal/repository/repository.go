// Package repository persists the site dataset. Reads prefer the record
// database, fall back to the local snapshot and finally to the seed dataset.
// Writes go to the record database and are always mirrored to the snapshot.
package repository

import (
	"context"

	"github.com/mututech/site/internal/model"
)

// RecordStore is a database holding the three collections as separate tables.
// Lists are ordered newest first.
type RecordStore interface {
	ListBlog(ctx context.Context) ([]model.BlogPost, error)
	ListPortfolio(ctx context.Context) ([]model.PortfolioItem, error)
	ListProducts(ctx context.Context) ([]model.Product, error)

	UpsertBlog(ctx context.Context, post model.BlogPost) error
	UpsertPortfolio(ctx context.Context, item model.PortfolioItem) error
	UpsertProduct(ctx context.Context, product model.Product) error

	Delete(ctx context.Context, c model.Collection, id string) error
}

// SnapshotStore keeps the whole dataset as one document.
type SnapshotStore interface {
	Load() (model.Database, error)
	Save(db model.Database) error
}

// ImageStore uploads image bytes and returns a public URL.
type ImageStore interface {
	UploadImage(ctx context.Context, data []byte, name string) (string, error)
}
