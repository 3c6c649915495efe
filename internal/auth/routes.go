package auth

import (
	"html/template"
	"io/fs"
	"net/http"

	"github.com/mututech/site/internal/config"
)

// RegisterAdminAuthRoutes registers the login and logout routes.
func RegisterAdminAuthRoutes(mux *http.ServeMux, provider AuthProvider, fsys fs.FS) error {
	tmpl, err := template.ParseFS(
		fsys,
		config.TemplatesLocalDir+"/"+config.TemplateLayout,
		config.TemplatesLocalDir+"/"+config.TemplateLogin,
	)
	if err != nil {
		return err
	}

	mux.HandleFunc("GET "+config.AdminLoginUrlPath, LoginPageHandler(tmpl))
	mux.HandleFunc("POST "+config.AdminLoginUrlPath, LoginHandler(provider, tmpl))
	mux.HandleFunc("POST "+config.AdminLogoutUrlPath, LogoutHandler(provider))
	return nil
}
