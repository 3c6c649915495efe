package content

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/mututech/site/internal/config"
	"github.com/mututech/site/internal/model"
	"github.com/mututech/site/internal/repository"
)

type DeleteInput struct {
	Type model.Collection
	ID   string
}

// Delete removes a record from the record database, then persists the dataset
// without it. A failed remote delete is logged and does not stop the save.
func (s *Service) Delete(ctx context.Context, in DeleteInput) Result {
	notFound := map[model.Collection]string{
		model.CollectionBlog:      config.MsgBlogNotFound,
		model.CollectionPortfolio: config.MsgPortfolioNotFound,
		model.CollectionProducts:  config.MsgProductNotFound,
	}
	msg, known := notFound[in.Type]
	if !known {
		return failed(config.MsgInvalidType, fmt.Errorf("%w: type %q", ErrValidation, in.Type))
	}

	db := s.store.GetDatabase(ctx)

	var removed bool
	switch in.Type {
	case model.CollectionBlog:
		db.Blog, removed = without(db.Blog, func(p model.BlogPost) bool { return p.ID == in.ID })
	case model.CollectionPortfolio:
		db.Portfolio, removed = without(db.Portfolio, func(p model.PortfolioItem) bool { return p.ID == in.ID })
	case model.CollectionProducts:
		db.Products, removed = without(db.Products, func(p model.Product) bool { return p.ID == in.ID })
	}
	if !removed {
		return failed(msg, fmt.Errorf("%w: %s %s", ErrNotFound, in.Type, in.ID))
	}

	if err := s.store.Delete(ctx, in.Type, in.ID); err != nil {
		ev := contentLogger.Warn()
		if !errors.Is(err, repository.ErrRemoteUnavailable) {
			ev = contentLogger.Error()
		}
		ev.Err(err).Str("collection", string(in.Type)).Str("id", in.ID).Msg("Remote delete failed")
	}

	contentLogger.Info().Str("collection", string(in.Type)).Str("id", in.ID).Msg("Deleted record")
	return s.save(ctx, db, config.MsgDeleted, config.MsgDeleteFailed)
}

func without[T any](records []T, match func(T) bool) ([]T, bool) {
	n := len(records)
	records = slices.DeleteFunc(records, match)
	return records, len(records) != n
}
