package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mututech/site/internal/db"
	"github.com/mututech/site/internal/model"
	"github.com/mututech/site/internal/util/compression"
)

type DBRecordStore struct { // implements RecordStore
	db         db.DB
	compressor compression.Compressor

	now func() time.Time
}

func NewDBRecordStore(database db.DB, compressor compression.Compressor) *DBRecordStore {
	if compressor == nil {
		compressor = compression.ZstdCompressor{}
	}
	return &DBRecordStore{
		db:         database,
		compressor: compressor,
		now:        time.Now,
	}
}

func (r *DBRecordStore) ListBlog(ctx context.Context) ([]model.BlogPost, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, slug, content, image, date FROM blog ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: error querying blog: %w", ErrRemote, err)
	}
	defer rows.Close()

	posts := make([]model.BlogPost, 0)
	for rows.Next() {
		var post model.BlogPost
		var compressed []byte

		if err := rows.Scan(&post.ID, &post.Title, &post.Slug, &compressed, &post.Image, &post.Date); err != nil {
			return nil, fmt.Errorf("%w: error scanning blog post: %w", ErrRemote, err)
		}

		if len(compressed) > 0 {
			content, err := r.compressor.Decompress(compressed)
			if err != nil {
				return nil, fmt.Errorf("%w: error decompressing content of %s: %w", ErrRemote, post.ID, err)
			}
			post.Content = string(content)
		}

		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error reading blog: %w", ErrRemote, err)
	}

	return posts, nil
}

func (r *DBRecordStore) ListPortfolio(ctx context.Context) ([]model.PortfolioItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, slug, description, category, image FROM portfolio ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: error querying portfolio: %w", ErrRemote, err)
	}
	defer rows.Close()

	items := make([]model.PortfolioItem, 0)
	for rows.Next() {
		var item model.PortfolioItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Slug, &item.Description, &item.Category, &item.Image); err != nil {
			return nil, fmt.Errorf("%w: error scanning portfolio item: %w", ErrRemote, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error reading portfolio: %w", ErrRemote, err)
	}

	return items, nil
}

func (r *DBRecordStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, price, features FROM products ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: error querying products: %w", ErrRemote, err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		var product model.Product
		var features string

		if err := rows.Scan(&product.ID, &product.Name, &product.Price, &features); err != nil {
			return nil, fmt.Errorf("%w: error scanning product: %w", ErrRemote, err)
		}
		if err := json.Unmarshal([]byte(features), &product.Features); err != nil {
			return nil, fmt.Errorf("%w: error decoding features of %s: %w", ErrRemote, product.ID, err)
		}
		if product.Features == nil {
			product.Features = []string{}
		}

		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error reading products: %w", ErrRemote, err)
	}

	return products, nil
}

// created_at is only set on insert, so an upsert keeps the record's position.

func (r *DBRecordStore) UpsertBlog(ctx context.Context, post model.BlogPost) error {
	var compressed []byte
	if post.Content != "" {
		var err error
		compressed, err = r.compressor.Compress([]byte(post.Content))
		if err != nil {
			return fmt.Errorf("error compressing content: %w", err)
		}
	}

	res, err := r.db.Exec(ctx,
		`INSERT INTO blog (id, title, slug, content, image, date, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, slug = excluded.slug, content = excluded.content,
		image = excluded.image, date = excluded.date`,
		post.ID, post.Title, post.Slug, compressed, post.Image, post.Date, r.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("%w: error saving blog post %s: %w", ErrRemote, post.ID, err)
	}

	repoLogger.Debug().Interface("result", res).Str("id", post.ID).Msg("Blog post saved")
	return nil
}

func (r *DBRecordStore) UpsertPortfolio(ctx context.Context, item model.PortfolioItem) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO portfolio (id, title, slug, description, category, image, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, slug = excluded.slug, description = excluded.description,
		category = excluded.category, image = excluded.image`,
		item.ID, item.Title, item.Slug, item.Description, string(item.Category), item.Image, r.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("%w: error saving portfolio item %s: %w", ErrRemote, item.ID, err)
	}

	repoLogger.Debug().Str("id", item.ID).Msg("Portfolio item saved")
	return nil
}

func (r *DBRecordStore) UpsertProduct(ctx context.Context, product model.Product) error {
	features := product.Features
	if features == nil {
		features = []string{}
	}
	encoded, err := json.Marshal(features)
	if err != nil {
		return fmt.Errorf("error encoding features: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO products (id, name, price, features, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, price = excluded.price, features = excluded.features`,
		product.ID, product.Name, product.Price, string(encoded), r.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("%w: error saving product %s: %w", ErrRemote, product.ID, err)
	}

	repoLogger.Debug().Str("id", product.ID).Msg("Product saved")
	return nil
}

// Delete removes a record by id. Deleting an id that does not exist is not an error.
func (r *DBRecordStore) Delete(ctx context.Context, c model.Collection, id string) error {
	table, ok := tables[c]
	if !ok {
		return fmt.Errorf("%w: unknown collection %q", ErrRemote, c)
	}

	res, err := r.db.Exec(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: error deleting %s %s: %w", ErrRemote, c, id, err)
	}

	if n, err := res.RowsAffected(); err == nil {
		repoLogger.Debug().Str("collection", string(c)).Str("id", id).Int64("rows", n).Msg("Record deleted")
	}
	return nil
}

// Table names are fixed so they can be spliced into statements.
var tables = map[model.Collection]string{
	model.CollectionBlog:      "blog",
	model.CollectionPortfolio: "portfolio",
	model.CollectionProducts:  "products",
}
