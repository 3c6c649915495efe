package model

import (
	"net/http"
	"strings"

	"github.com/mututech/site/internal/config"
)

type PageData struct {
	SiteName        string
	SiteDescription string
	WhatsApp        string

	PageURL string
	Title   string

	Theme     string
	ThemeIcon string

	// Set for requests carrying a valid admin session.
	IsAdmin bool
}

func NewPageData(r *http.Request, theme, themeIcon string) *PageData {
	return &PageData{
		SiteName:        config.AppConfig.Site.Name,
		SiteDescription: config.AppConfig.Site.Description,
		WhatsApp:        config.AppConfig.Site.WhatsApp,
		PageURL:         r.URL.Path,
		Theme:           theme,
		ThemeIcon:       themeIcon,
	}
}

// PageTitle joins the page title with the site name.
func (pd *PageData) PageTitle() string {
	if pd.Title == "" {
		return pd.SiteName
	}
	return pd.Title + " | " + pd.SiteName
}

func (pd *PageData) IsAdminPage() bool {
	return strings.HasPrefix(pd.PageURL, config.AdminUrlPath)
}
