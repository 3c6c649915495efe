package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mututech/site/internal/model"
)

// Operation names passed to MemoryRecordStore.Fail.
const (
	OpList   = "list"
	OpUpsert = "upsert"
	OpDelete = "delete"
)

type memoryRecord[T any] struct {
	id    string
	seq   int
	value T
}

// MemoryRecordStore keeps records in process and backs the memory driver.
// Fail, when set, is consulted before every operation and its error is
// returned wrapped in ErrRemote.
type MemoryRecordStore struct { // implements RecordStore
	mu  sync.Mutex
	seq int

	blog      []memoryRecord[model.BlogPost]
	portfolio []memoryRecord[model.PortfolioItem]
	products  []memoryRecord[model.Product]

	Fail func(op string, c model.Collection, id string) error
}

func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{}
}

func (m *MemoryRecordStore) check(op string, c model.Collection, id string) error {
	if m.Fail == nil {
		return nil
	}
	if err := m.Fail(op, c, id); err != nil {
		return fmt.Errorf("%w: %s %s %s: %w", ErrRemote, op, c, id, err)
	}
	return nil
}

func (m *MemoryRecordStore) ListBlog(_ context.Context) ([]model.BlogPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(OpList, model.CollectionBlog, ""); err != nil {
		return nil, err
	}
	return newestFirst(m.blog), nil
}

func (m *MemoryRecordStore) ListPortfolio(_ context.Context) ([]model.PortfolioItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(OpList, model.CollectionPortfolio, ""); err != nil {
		return nil, err
	}
	return newestFirst(m.portfolio), nil
}

func (m *MemoryRecordStore) ListProducts(_ context.Context) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(OpList, model.CollectionProducts, ""); err != nil {
		return nil, err
	}
	products := newestFirst(m.products)
	for i := range products {
		products[i].Features = slices.Clone(products[i].Features)
	}
	return products, nil
}

func (m *MemoryRecordStore) UpsertBlog(_ context.Context, post model.BlogPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(OpUpsert, model.CollectionBlog, post.ID); err != nil {
		return err
	}
	m.blog = upsert(m.blog, post.ID, post, &m.seq)
	return nil
}

func (m *MemoryRecordStore) UpsertPortfolio(_ context.Context, item model.PortfolioItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(OpUpsert, model.CollectionPortfolio, item.ID); err != nil {
		return err
	}
	m.portfolio = upsert(m.portfolio, item.ID, item, &m.seq)
	return nil
}

func (m *MemoryRecordStore) UpsertProduct(_ context.Context, product model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(OpUpsert, model.CollectionProducts, product.ID); err != nil {
		return err
	}
	product.Features = slices.Clone(product.Features)
	m.products = upsert(m.products, product.ID, product, &m.seq)
	return nil
}

func (m *MemoryRecordStore) Delete(_ context.Context, c model.Collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(OpDelete, c, id); err != nil {
		return err
	}
	switch c {
	case model.CollectionBlog:
		m.blog = remove(m.blog, id)
	case model.CollectionPortfolio:
		m.portfolio = remove(m.portfolio, id)
	case model.CollectionProducts:
		m.products = remove(m.products, id)
	default:
		return fmt.Errorf("%w: unknown collection %q", ErrRemote, c)
	}
	return nil
}

func upsert[T any](records []memoryRecord[T], id string, value T, seq *int) []memoryRecord[T] {
	for i := range records {
		if records[i].id == id {
			records[i].value = value
			return records
		}
	}
	*seq++
	return append(records, memoryRecord[T]{id: id, seq: *seq, value: value})
}

func remove[T any](records []memoryRecord[T], id string) []memoryRecord[T] {
	return slices.DeleteFunc(records, func(r memoryRecord[T]) bool { return r.id == id })
}

func newestFirst[T any](records []memoryRecord[T]) []T {
	sorted := slices.Clone(records)
	slices.SortFunc(sorted, func(a, b memoryRecord[T]) int { return b.seq - a.seq })

	out := make([]T, len(sorted))
	for i, r := range sorted {
		out[i] = r.value
	}
	return out
}
