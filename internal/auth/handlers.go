package auth

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/mututech/site/internal/config"
	"github.com/mututech/site/internal/model"
	"github.com/mututech/site/internal/theme"
)

type loginPage struct {
	*model.PageData
	Error string
}

func renderLogin(w http.ResponseWriter, r *http.Request, tmpl *template.Template, status int, errMsg string) {
	currTheme := theme.GetThemeFromRequest(r)
	pd := model.NewPageData(r, currTheme, theme.GetThemeIcon(currTheme))
	pd.Title = "Login"

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, config.TemplateLayout, loginPage{PageData: pd, Error: errMsg}); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to render login template")
	}
}

// LoginPageHandler serves the login form, or sends logged-in admins to the dashboard.
func LoginPageHandler(tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := AdminFromContext(r.Context()); ok {
			http.Redirect(w, r, config.AdminUrlPath, http.StatusSeeOther)
			return
		}
		renderLogin(w, r, tmpl, http.StatusOK, "")
	}
}

func LoginHandler(provider AuthProvider, tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		err := provider.Login(w, r.PostFormValue("username"), r.PostFormValue("password"))
		if err != nil {
			renderLogin(w, r, tmpl, http.StatusUnauthorized, config.MsgLoginFailed)
			return
		}

		http.Redirect(w, r, config.AdminUrlPath, http.StatusSeeOther)
	}
}

func LogoutHandler(provider AuthProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider.Logout(w, r)
		http.Redirect(w, r, config.AdminLoginUrlPath, http.StatusSeeOther)
	}
}
