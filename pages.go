package main

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/mututech/site/internal/config"
	"github.com/mututech/site/internal/model"
	"github.com/mututech/site/internal/render"
	"github.com/mututech/site/internal/theme"
)

const homeListSize = 3

func (s *site) pageData(r *http.Request, title string) *model.PageData {
	currTheme := theme.GetThemeFromRequest(r)
	pd := model.NewPageData(r, currTheme, theme.GetThemeIcon(currTheme))
	pd.Title = title
	_, pd.IsAdmin = adminFromRequest(r)
	return pd
}

func (s *site) renderPage(w http.ResponseWriter, r *http.Request, page string, status int, data any) {
	tmpl, ok := s.pages[page]
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, config.TemplateLayout, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("page", page).Msg("Failed to render template")
	}
}

func (s *site) notFound(w http.ResponseWriter, r *http.Request) {
	http.NotFound(w, r)
}

func latest[T any](records []T, n int) []T {
	return records[:min(n, len(records))]
}

func (s *site) serveIndex(w http.ResponseWriter, r *http.Request) {
	db := s.store.GetDatabase(r.Context())

	s.renderPage(w, r, config.TemplateIndex, http.StatusOK, struct {
		*model.PageData
		Products  []model.Product
		Portfolio []model.PortfolioItem
		Blog      []model.BlogPost
	}{
		PageData:  s.pageData(r, ""),
		Products:  db.Products,
		Portfolio: latest(db.Portfolio, homeListSize),
		Blog:      latest(db.Blog, homeListSize),
	})
}

func (s *site) serveBlog(w http.ResponseWriter, r *http.Request) {
	db := s.store.GetDatabase(r.Context())

	s.renderPage(w, r, config.TemplateBlog, http.StatusOK, struct {
		*model.PageData
		Posts []model.BlogPost
	}{
		PageData: s.pageData(r, "Blog"),
		Posts:    db.Blog,
	})
}

func (s *site) servePost(w http.ResponseWriter, r *http.Request) {
	db := s.store.GetDatabase(r.Context())

	post, ok := db.BlogBySlug(r.PathValue("slug"))
	if !ok {
		s.notFound(w, r)
		return
	}

	syntaxTheme := theme.GetSyntaxThemeFromRequest(r)

	s.renderPage(w, r, config.TemplatePost, http.StatusOK, struct {
		*model.PageData
		Post        *model.BlogPost
		Content     template.HTML
		SyntaxTheme string
	}{
		PageData:    s.pageData(r, post.Title),
		Post:        post,
		Content:     template.HTML(render.RenderMarkdownCached(post.Content, syntaxTheme)),
		SyntaxTheme: syntaxTheme,
	})
}

func (s *site) servePortfolio(w http.ResponseWriter, r *http.Request) {
	db := s.store.GetDatabase(r.Context())

	s.renderPage(w, r, config.TemplatePortfolio, http.StatusOK, struct {
		*model.PageData
		Items      []model.PortfolioItem
		Categories []model.Category
	}{
		PageData:   s.pageData(r, "Portofolio"),
		Items:      db.Portfolio,
		Categories: model.Categories,
	})
}

func (s *site) serveItem(w http.ResponseWriter, r *http.Request) {
	db := s.store.GetDatabase(r.Context())

	item, ok := db.PortfolioBySlug(r.PathValue("slug"))
	if !ok {
		s.notFound(w, r)
		return
	}

	s.renderPage(w, r, config.TemplateItem, http.StatusOK, struct {
		*model.PageData
		Item *model.PortfolioItem
	}{
		PageData: s.pageData(r, item.Title),
		Item:     item,
	})
}

func (s *site) serveProducts(w http.ResponseWriter, r *http.Request) {
	db := s.store.GetDatabase(r.Context())

	s.renderPage(w, r, config.TemplateProducts, http.StatusOK, struct {
		*model.PageData
		Products []model.Product
	}{
		PageData: s.pageData(r, "Produk"),
		Products: db.Products,
	})
}
