package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mututech/site/internal/auth"
	"github.com/mututech/site/internal/config"
	"github.com/mututech/site/internal/content"
	"github.com/mututech/site/internal/model"
	"github.com/mututech/site/internal/repository"
)

func adminFromRequest(r *http.Request) (string, bool) {
	return auth.AdminFromContext(r.Context())
}

func (s *site) serveAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	s.renderPage(w, r, config.TemplateAdmin, http.StatusOK, struct {
		*model.PageData
		DB         model.Database
		Categories []model.Category
		Status     repository.Status
		Message    string
		Error      string
	}{
		PageData:   s.pageData(r, "Admin"),
		DB:         s.store.GetDatabase(ctx),
		Categories: model.Categories,
		Status:     s.store.Status(ctx),
		Message:    q.Get("message"),
		Error:      q.Get("error"),
	})
}

func (s *site) serveAdminStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(config.HCType, config.CTypeJSON)
	if err := json.NewEncoder(w).Encode(s.store.Status(r.Context())); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode status")
	}
}

type actionResponse struct {
	Message       string `json:"message,omitempty"`
	Error         string `json:"error,omitempty"`
	RemoteSynced  bool   `json:"remote_synced"`
	LocalSaved    bool   `json:"local_saved"`
	RemoteFailure int    `json:"remote_failures"`
}

func actionStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, content.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, content.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), config.CTypeJSON)
}

// adminAction parses the form, runs the action and either answers with JSON
// or redirects back to the dashboard with the result message.
func (s *site) adminAction(action func(r *http.Request) (content.Result, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := zerolog.Ctx(r.Context())

		if err := r.ParseMultipartForm(config.MaxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer func() {
			if r.MultipartForm != nil {
				r.MultipartForm.RemoveAll()
			}
		}()

		res, err := action(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if !res.OK() {
			l.Warn().Err(res.Err).Str("path", r.URL.Path).Msg("Admin action failed")
		}

		if wantsJSON(r) {
			w.Header().Set(config.HCType, config.CTypeJSON)
			w.WriteHeader(actionStatus(res.Err))
			json.NewEncoder(w).Encode(actionResponse{
				Message:       res.Message,
				Error:         res.Error,
				RemoteSynced:  res.Sync.RemoteSynced,
				LocalSaved:    res.Sync.LocalSaved,
				RemoteFailure: len(res.Sync.RemoteFailures),
			})
			return
		}

		q := url.Values{}
		if res.OK() {
			q.Set("message", res.Message)
		} else {
			q.Set("error", res.Error)
		}
		http.Redirect(w, r, config.AdminUrlPath+"?"+q.Encode(), http.StatusSeeOther)
	})
}

// formImage reads the optional "file" field.
func formImage(r *http.Request) (*content.ImageFile, error) {
	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading upload: %w", err)
	}
	defer file.Close()

	var src io.Reader = file
	if limit := int64(config.AppConfig.Images.MaxSizeBytes); limit > 0 {
		src = io.LimitReader(file, limit+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("error reading upload: %w", err)
	}
	// Oversized files go through so the uploader rejects them and the record
	// gets a placeholder image.
	return &content.ImageFile{Name: header.Filename, Data: data}, nil
}

func (s *site) addBlog(r *http.Request) (content.Result, error) {
	image, err := formImage(r)
	if err != nil {
		return content.Result{}, err
	}
	return s.actions.AddBlog(r.Context(), content.BlogInput{
		Title:   r.FormValue("title"),
		Slug:    r.FormValue("slug"),
		Content: r.FormValue("content"),
		Image:   image,
	}), nil
}

func (s *site) addPortfolio(r *http.Request) (content.Result, error) {
	image, err := formImage(r)
	if err != nil {
		return content.Result{}, err
	}
	return s.actions.AddPortfolio(r.Context(), content.PortfolioInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    model.Category(r.FormValue("category")),
		Image:       image,
	}), nil
}

func (s *site) addProduct(r *http.Request) (content.Result, error) {
	return s.actions.AddProduct(r.Context(), content.ProductInput{
		Name:     r.FormValue("name"),
		Price:    r.FormValue("price"),
		Features: r.FormValue("features"),
	}), nil
}

func (s *site) update(r *http.Request) (content.Result, error) {
	image, err := formImage(r)
	if err != nil {
		return content.Result{}, err
	}
	c, _ := model.ParseCollection(r.FormValue("type"))
	return s.actions.Update(r.Context(), content.UpdateInput{
		Type:        c,
		ID:          r.FormValue("id"),
		Title:       r.FormValue("title"),
		Slug:        r.FormValue("slug"),
		Image:       image,
		Content:     r.FormValue("content"),
		Description: r.FormValue("description"),
		Category:    model.Category(r.FormValue("category")),
		Name:        r.FormValue("name"),
		Price:       r.FormValue("price"),
		Features:    r.FormValue("features"),
	}), nil
}

func (s *site) delete(r *http.Request) (content.Result, error) {
	c, _ := model.ParseCollection(r.FormValue("type"))
	return s.actions.Delete(r.Context(), content.DeleteInput{
		Type: c,
		ID:   r.FormValue("id"),
	}), nil
}
