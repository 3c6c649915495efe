package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/mututech/site/internal/config"
	"github.com/mututech/site/internal/model"
	"github.com/mututech/site/internal/slug"
)

type BlogInput struct {
	Title   string
	Slug    string
	Content string
	Image   *ImageFile
}

type PortfolioInput struct {
	Title       string
	Description string
	Category    model.Category
	Image       *ImageFile
}

type ProductInput struct {
	Name  string
	Price string
	// Comma-separated as typed in the form.
	Features string
}

// AddBlog prepends a new post. The slug comes from in.Slug when given,
// otherwise from the title, and is made unique within the blog.
func (s *Service) AddBlog(ctx context.Context, in BlogInput) Result {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return failed(config.MsgTitleRequired, fmt.Errorf("%w: blog title is empty", ErrValidation))
	}

	db := s.store.GetDatabase(ctx)

	candidate := slug.SEO(title, model.CollectionBlog)
	if provided := strings.TrimSpace(in.Slug); provided != "" {
		candidate = slug.Slugify(provided)
	}

	image := ""
	if in.Image.attached() {
		image = s.imageURL(ctx, in.Image)
	}

	now := s.now()
	post := model.BlogPost{
		ID:      model.NewID(model.IDPrefixBlog, now),
		Title:   title,
		Slug:    slug.Unique(candidate, slug.BlogTaken(db.Blog, "")),
		Content: in.Content,
		Image:   image,
		Date:    model.DisplayDate(now),
	}
	db.Blog = append([]model.BlogPost{post}, db.Blog...)

	contentLogger.Info().Str("id", post.ID).Str("slug", post.Slug).Msg("Adding blog post")
	return s.save(ctx, db, config.MsgSaved, config.MsgSaveFailed)
}

func (s *Service) AddPortfolio(ctx context.Context, in PortfolioInput) Result {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return failed(config.MsgTitleRequired, fmt.Errorf("%w: portfolio title is empty", ErrValidation))
	}
	if !in.Category.Valid() {
		return failed(config.MsgInvalidCategory, fmt.Errorf("%w: category %q", ErrValidation, in.Category))
	}

	db := s.store.GetDatabase(ctx)

	image := ""
	if in.Image.attached() {
		image = s.imageURL(ctx, in.Image)
	}

	item := model.PortfolioItem{
		ID:          model.NewID(model.IDPrefixPortfolio, s.now()),
		Title:       title,
		Slug:        slug.Unique(slug.SEO(title, model.CollectionPortfolio), slug.PortfolioTaken(db.Portfolio, "")),
		Description: in.Description,
		Category:    in.Category,
		Image:       image,
	}
	db.Portfolio = append([]model.PortfolioItem{item}, db.Portfolio...)

	contentLogger.Info().Str("id", item.ID).Str("slug", item.Slug).Msg("Adding portfolio item")
	return s.save(ctx, db, config.MsgSaved, config.MsgSaveFailed)
}

func (s *Service) AddProduct(ctx context.Context, in ProductInput) Result {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return failed(config.MsgNameRequired, fmt.Errorf("%w: product name is empty", ErrValidation))
	}

	db := s.store.GetDatabase(ctx)

	product := model.Product{
		ID:       model.NewID(model.IDPrefixProduct, s.now()),
		Name:     name,
		Price:    strings.TrimSpace(in.Price),
		Features: model.ParseFeatures(in.Features),
	}
	db.Products = append([]model.Product{product}, db.Products...)

	contentLogger.Info().Str("id", product.ID).Msg("Adding product")
	return s.save(ctx, db, config.MsgSaved, config.MsgSaveFailed)
}
