package main

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/mututech/site/internal/auth"
	"github.com/mututech/site/internal/cache"
	"github.com/mututech/site/internal/config"
	"github.com/mututech/site/internal/content"
	"github.com/mututech/site/internal/db"
	"github.com/mututech/site/internal/logger"
	"github.com/mututech/site/internal/model"
	"github.com/mututech/site/internal/render"
	"github.com/mututech/site/internal/repository"
	"github.com/mututech/site/internal/routes"
	"github.com/mututech/site/internal/theme"
	"github.com/mututech/site/internal/util"
)

//go:embed static/* templates/*
var assets embed.FS

func main() {
	envErr := godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	bootLogger := logger.New("info", true)
	if envErr != nil {
		bootLogger.Debug().Err(envErr).Msg("No .env file loaded")
	}
	config.SetLogger(bootLogger.With().Str("component", "config").Logger())
	if err := config.LoadConfig(configPath); err != nil {
		bootLogger.Fatal().Err(err).Str("path", configPath).Msg("Error loading config")
	}
	cfg := config.AppConfig

	l := logger.New(cfg.Logging.Level, cfg.Logging.Pretty)
	setLoggers(l)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := repository.Open(ctx, cfg, model.DefaultSeed())
	if err != nil {
		l.Fatal().Err(err).Msg("Error opening storage")
	}
	defer backend.Close()

	s, err := newSite(
		backend.Store,
		content.NewService(backend.Store, backend.Images),
		auth.NewSessionAuthProvider(cfg.Admin, cfg.Server.SecureCookies),
	)
	if err != nil {
		l.Fatal().Err(err).Msg("Error loading templates")
	}

	handler, err := s.handler(l)
	if err != nil {
		l.Fatal().Err(err).Msg("Error registering routes")
	}

	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	l.Info().Str("addr", srv.Addr).Bool("remote", backend.Store.RemoteAvailable()).Msg("Listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Fatal().Err(err).Msg("Server error")
	}
}

func setLoggers(l zerolog.Logger) {
	config.SetLogger(l.With().Str("component", "config").Logger())
	db.SetLogger(l.With().Str("component", "db").Logger())
	repository.SetLogger(l.With().Str("component", "repository").Logger())
	content.SetLogger(l.With().Str("component", "content").Logger())
	auth.SetLogger(l.With().Str("component", "auth").Logger())
	render.SetLogger(l.With().Str("component", "render").Logger())
}

type site struct {
	store   *repository.Store
	actions *content.Service
	auth    auth.AuthProvider

	pages  map[string]*template.Template
	static fs.FS
}

var templateFuncs = template.FuncMap{
	"excerpt": render.Excerpt,
	"join":    strings.Join,
}

func newSite(store *repository.Store, actions *content.Service, provider auth.AuthProvider) (*site, error) {
	static, err := fs.Sub(assets, config.StaticLocalDir)
	if err != nil {
		return nil, err
	}

	s := &site{
		store:   store,
		actions: actions,
		auth:    provider,
		pages:   map[string]*template.Template{},
		static:  static,
	}

	for _, page := range []string{
		config.TemplateIndex,
		config.TemplateBlog,
		config.TemplatePost,
		config.TemplatePortfolio,
		config.TemplateItem,
		config.TemplateProducts,
		config.TemplateAdmin,
	} {
		tmpl, err := template.New(config.TemplateLayout).Funcs(templateFuncs).ParseFS(
			assets,
			config.TemplatesLocalDir+"/"+config.TemplateLayout,
			config.TemplatesLocalDir+"/"+page,
		)
		if err != nil {
			return nil, err
		}
		s.pages[page] = tmpl
	}

	// ETags for static files
	err = fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(static, path)
		if err != nil {
			return err
		}
		cache.SetStaticHash(config.StaticUrlPath+path, util.ContentHash(data))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *site) handler(l zerolog.Logger) (http.Handler, error) {
	mux := http.NewServeMux()

	mux.HandleFunc(routes.RobotsPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HCType, config.CTypeText)
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "User-agent: *\nDisallow: "+config.AdminUrlPath+"\n")
	})
	mux.Handle(routes.Static, http.StripPrefix(config.StaticUrlPath, http.FileServer(http.FS(s.static))))

	mux.HandleFunc(routes.Index, s.serveIndex)
	mux.HandleFunc(routes.Blog, s.serveBlog)
	mux.HandleFunc(routes.BlogPost, s.servePost)
	mux.HandleFunc(routes.Portfolio, s.servePortfolio)
	mux.HandleFunc(routes.PortfolioItem, s.serveItem)
	mux.HandleFunc(routes.Products, s.serveProducts)

	mux.HandleFunc(routes.ThemeToggle, serveThemeToggle)
	mux.HandleFunc(routes.ThemeOppositeIcon, serveThemeOppositeIcon)
	mux.HandleFunc(routes.SyntaxThemeGet, serveSyntaxTheme)

	mux.Handle(routes.Admin, auth.RequireAdmin(http.HandlerFunc(s.serveAdmin)))
	mux.Handle(routes.AdminStatus, auth.RequireAdmin(http.HandlerFunc(s.serveAdminStatus)))
	mux.Handle(routes.AdminBlog, auth.RequireAdmin(s.adminAction(s.addBlog)))
	mux.Handle(routes.AdminFolio, auth.RequireAdmin(s.adminAction(s.addPortfolio)))
	mux.Handle(routes.AdminProduct, auth.RequireAdmin(s.adminAction(s.addProduct)))
	mux.Handle(routes.AdminUpdate, auth.RequireAdmin(s.adminAction(s.update)))
	mux.Handle(routes.AdminDelete, auth.RequireAdmin(s.adminAction(s.delete)))

	if err := auth.RegisterAdminAuthRoutes(mux, s.auth, assets); err != nil {
		return nil, err
	}

	var h http.Handler = mux
	h = s.auth.WithSessionAuthorization()(h)
	h = secureHeaders(h)
	h = cacheIt(h)
	h = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Request")
	})(h)
	h = hlog.RemoteAddrHandler("ip")(h)
	h = hlog.RequestIDHandler("req_id", "Request-Id")(h)
	h = hlog.NewHandler(l)(h)
	return h, nil
}

func cacheIt(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HCacheControl, "no-cache")
		w.Header().Set("Vary", "Cookie")

		if hash, ok := cache.GetStaticHash(r.URL.Path); ok {
			w.Header().Set(config.HCacheControl, "public, max-age=3600")
			w.Header().Set(config.HETag, hash)
		}

		h.ServeHTTP(w, r)
	})
}

func secureHeaders(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		h.ServeHTTP(w, r)
	})
}

func serveThemeToggle(w http.ResponseWriter, r *http.Request) {
	newTheme := theme.Toggle(theme.GetThemeFromRequest(r))

	http.SetCookie(w, &http.Cookie{
		Name:     config.CookieTheme,
		Value:    newTheme,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   365 * 24 * 3600,
	})

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.Header().Set("X-Theme", newTheme)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, theme.GetThemeIcon(newTheme))
}

func serveThemeOppositeIcon(w http.ResponseWriter, r *http.Request) {
	currTheme := r.URL.Query().Get("theme")
	if currTheme == "" {
		http.Error(w, "theme required", http.StatusBadRequest)
		return
	}

	w.Header().Set(config.HCType, config.CTypeHTML)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, theme.GetThemeIcon(currTheme))
}

func serveSyntaxTheme(w http.ResponseWriter, r *http.Request) {
	themeStyle := []byte(theme.GenerateSyntaxCSS(r.PathValue("theme")))

	w.Header().Set(config.HCType, config.CTypeCSS)
	w.Header().Set(config.HETag, util.ContentHash(themeStyle))
	w.WriteHeader(http.StatusOK)
	w.Write(themeStyle)
}
