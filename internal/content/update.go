package content

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/mututech/site/internal/config"
	"github.com/mututech/site/internal/model"
	"github.com/mututech/site/internal/slug"
)

// UpdateInput selects a record by Type and ID. Fields left empty keep their
// stored value; only the fields belonging to Type are looked at.
type UpdateInput struct {
	Type model.Collection
	ID   string

	Title string
	Slug  string
	Image *ImageFile

	// blog
	Content string

	// portfolio
	Description string
	Category    model.Category

	// products
	Name     string
	Price    string
	Features string
}

func (s *Service) Update(ctx context.Context, in UpdateInput) Result {
	switch in.Type {
	case model.CollectionBlog:
		return s.updateBlog(ctx, in)
	case model.CollectionPortfolio:
		return s.updatePortfolio(ctx, in)
	case model.CollectionProducts:
		return s.updateProduct(ctx, in)
	}
	return failed(config.MsgInvalidType, fmt.Errorf("%w: type %q", ErrValidation, in.Type))
}

func (s *Service) updateBlog(ctx context.Context, in UpdateInput) Result {
	db := s.store.GetDatabase(ctx)

	i := slices.IndexFunc(db.Blog, func(p model.BlogPost) bool { return p.ID == in.ID })
	if i < 0 {
		return failed(config.MsgBlogNotFound, fmt.Errorf("%w: blog %s", ErrNotFound, in.ID))
	}
	post := &db.Blog[i]

	title := strings.TrimSpace(in.Title)
	if title != "" {
		post.Title = title
	}

	taken := slug.BlogTaken(db.Blog, post.ID)
	if provided := strings.TrimSpace(in.Slug); provided != "" {
		post.Slug = slug.Unique(slug.Slugify(provided), taken)
	} else if title != "" {
		post.Slug = slug.Unique(slug.SEO(title, model.CollectionBlog), taken)
	}

	if in.Content != "" {
		post.Content = in.Content
	}
	if in.Image.attached() {
		post.Image = s.imageURL(ctx, in.Image)
	}

	contentLogger.Info().Str("id", post.ID).Str("slug", post.Slug).Msg("Updating blog post")
	return s.save(ctx, db, config.MsgUpdated, config.MsgUpdateFailed)
}

func (s *Service) updatePortfolio(ctx context.Context, in UpdateInput) Result {
	if in.Category != "" && !in.Category.Valid() {
		return failed(config.MsgInvalidCategory, fmt.Errorf("%w: category %q", ErrValidation, in.Category))
	}

	db := s.store.GetDatabase(ctx)

	i := slices.IndexFunc(db.Portfolio, func(p model.PortfolioItem) bool { return p.ID == in.ID })
	if i < 0 {
		return failed(config.MsgPortfolioNotFound, fmt.Errorf("%w: portfolio %s", ErrNotFound, in.ID))
	}
	item := &db.Portfolio[i]

	if title := strings.TrimSpace(in.Title); title != "" {
		item.Title = title
		item.Slug = slug.Unique(slug.SEO(title, model.CollectionPortfolio), slug.PortfolioTaken(db.Portfolio, item.ID))
	}
	if in.Description != "" {
		item.Description = in.Description
	}
	if in.Category != "" {
		item.Category = in.Category
	}
	if in.Image.attached() {
		item.Image = s.imageURL(ctx, in.Image)
	}

	contentLogger.Info().Str("id", item.ID).Str("slug", item.Slug).Msg("Updating portfolio item")
	return s.save(ctx, db, config.MsgUpdated, config.MsgUpdateFailed)
}

func (s *Service) updateProduct(ctx context.Context, in UpdateInput) Result {
	db := s.store.GetDatabase(ctx)

	i := slices.IndexFunc(db.Products, func(p model.Product) bool { return p.ID == in.ID })
	if i < 0 {
		return failed(config.MsgProductNotFound, fmt.Errorf("%w: product %s", ErrNotFound, in.ID))
	}
	product := &db.Products[i]

	if name := strings.TrimSpace(in.Name); name != "" {
		product.Name = name
	}
	if price := strings.TrimSpace(in.Price); price != "" {
		product.Price = price
	}
	if strings.TrimSpace(in.Features) != "" {
		product.Features = model.ParseFeatures(in.Features)
	}

	contentLogger.Info().Str("id", product.ID).Msg("Updating product")
	return s.save(ctx, db, config.MsgUpdated, config.MsgUpdateFailed)
}
