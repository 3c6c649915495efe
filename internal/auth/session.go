package auth

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mututech/site/internal/cache"
	"github.com/mututech/site/internal/config"
)

type session struct {
	username string
	expires  time.Time
}

// SessionAuthProvider implements AuthProvider with a single configured admin
// account and random session tokens kept in memory. Sessions do not survive a
// restart.
type SessionAuthProvider struct {
	username string
	password string

	ttl    time.Duration
	secure bool

	sessions *cache.Cache[string, session]
	now      func() time.Time
}

func NewSessionAuthProvider(cfg config.AdminConfig, secureCookies bool) *SessionAuthProvider {
	ttl := time.Duration(cfg.SessionHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &SessionAuthProvider{
		username: cfg.User,
		password: cfg.Password,
		ttl:      ttl,
		secure:   secureCookies,
		sessions: cache.NewCache[string, session](),
		now:      time.Now,
	}
}

func (p *SessionAuthProvider) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(p.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(p.password)) == 1
	return userOK && passOK
}

// Login checks the credentials and sets the session cookie.
func (p *SessionAuthProvider) Login(w http.ResponseWriter, username, password string) error {
	if !p.checkCredentials(username, password) {
		authLogger.Warn().Str("username", username).Msg("Failed admin login")
		return ErrInvalidCredentials
	}

	now := p.now()
	if n := p.sessions.DeleteFunc(func(_ string, s session) bool { return !now.Before(s.expires) }); n > 0 {
		authLogger.Debug().Int("count", n).Msg("Dropped expired sessions")
	}

	token := uuid.NewString()
	p.sessions.Set(token, session{username: username, expires: now.Add(p.ttl)})

	http.SetCookie(w, &http.Cookie{
		Name:     config.CookieAdminSession,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   p.secure,
		MaxAge:   int(p.ttl.Seconds()),
	})

	authLogger.Info().Str("username", username).Msg("Admin logged in")
	return nil
}

func (p *SessionAuthProvider) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(config.CookieAdminSession); err == nil {
		p.sessions.Delete(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     config.CookieAdminSession,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   p.secure,
		MaxAge:   -1,
	})
}

func (p *SessionAuthProvider) GetUserFromSession(r *http.Request) (string, error) {
	cookie, err := r.Cookie(config.CookieAdminSession)
	if err != nil || cookie.Value == "" {
		return "", ErrNoSession
	}

	s, ok := p.sessions.Get(cookie.Value)
	if !ok {
		return "", ErrNoSession
	}
	if !p.now().Before(s.expires) {
		p.sessions.Delete(cookie.Value)
		return "", ErrNoSession
	}
	return s.username, nil
}

func (p *SessionAuthProvider) WithSessionAuthorization() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if username, err := p.GetUserFromSession(r); err == nil {
				zerolog.Ctx(r.Context()).Debug().Str("admin", username).Msg("Admin session")
				r = r.WithContext(ContextWithAdmin(r.Context(), username))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin sends requests without an admin session to the login page.
// Non-GET requests get 401 instead of a redirect.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := AdminFromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, config.HTTPErrUnauthorized, http.StatusUnauthorized)
			return
		}
		http.Redirect(w, r, config.AdminLoginUrlPath, http.StatusSeeOther)
	})
}
