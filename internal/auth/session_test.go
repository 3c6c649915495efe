package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mututech/site/internal/config"
)

func newTestProvider() (*SessionAuthProvider, *time.Time) {
	now := time.Date(2025, time.December, 28, 10, 0, 0, 0, time.UTC)
	p := NewSessionAuthProvider(config.AdminConfig{User: "admin", Password: "s3cret", SessionHours: 2}, true)
	p.now = func() time.Time { return now }
	return p, &now
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == config.CookieAdminSession {
			return c
		}
	}
	t.Fatal("Expected a session cookie")
	return nil
}

func requestWith(cookie *http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	return r
}

func TestLogin(t *testing.T) {
	t.Run("Valid credentials set a session cookie", func(t *testing.T) {
		p, _ := newTestProvider()
		rec := httptest.NewRecorder()

		require.NoError(t, p.Login(rec, "admin", "s3cret"))

		c := sessionCookie(t, rec)
		assert.NotEmpty(t, c.Value)
		assert.True(t, c.HttpOnly)
		assert.True(t, c.Secure)
		assert.Equal(t, 2*3600, c.MaxAge)

		user, err := p.GetUserFromSession(requestWith(c))
		require.NoError(t, err)
		assert.Equal(t, "admin", user)
	})

	t.Run("Wrong credentials are rejected", func(t *testing.T) {
		p, _ := newTestProvider()
		for _, creds := range [][2]string{{"admin", "nope"}, {"root", "s3cret"}, {"", ""}} {
			rec := httptest.NewRecorder()
			assert.ErrorIs(t, p.Login(rec, creds[0], creds[1]), ErrInvalidCredentials)
			assert.Empty(t, rec.Result().Cookies())
		}
	})

	t.Run("Each login gets its own token", func(t *testing.T) {
		p, _ := newTestProvider()
		rec1, rec2 := httptest.NewRecorder(), httptest.NewRecorder()
		require.NoError(t, p.Login(rec1, "admin", "s3cret"))
		require.NoError(t, p.Login(rec2, "admin", "s3cret"))
		assert.NotEqual(t, sessionCookie(t, rec1).Value, sessionCookie(t, rec2).Value)
	})
}

func TestGetUserFromSession(t *testing.T) {
	t.Run("Missing or unknown cookie", func(t *testing.T) {
		p, _ := newTestProvider()

		_, err := p.GetUserFromSession(requestWith(nil))
		assert.ErrorIs(t, err, ErrNoSession)

		_, err = p.GetUserFromSession(requestWith(&http.Cookie{Name: config.CookieAdminSession, Value: "forged"}))
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("Expired session", func(t *testing.T) {
		p, now := newTestProvider()
		rec := httptest.NewRecorder()
		require.NoError(t, p.Login(rec, "admin", "s3cret"))
		c := sessionCookie(t, rec)

		*now = now.Add(2 * time.Hour)
		_, err := p.GetUserFromSession(requestWith(c))
		assert.ErrorIs(t, err, ErrNoSession)
		assert.Equal(t, 0, p.sessions.Len())
	})

	t.Run("Expired sessions are swept on login", func(t *testing.T) {
		p, now := newTestProvider()
		require.NoError(t, p.Login(httptest.NewRecorder(), "admin", "s3cret"))

		*now = now.Add(3 * time.Hour)
		require.NoError(t, p.Login(httptest.NewRecorder(), "admin", "s3cret"))
		assert.Equal(t, 1, p.sessions.Len())
	})
}

func TestLogout(t *testing.T) {
	p, _ := newTestProvider()
	rec := httptest.NewRecorder()
	require.NoError(t, p.Login(rec, "admin", "s3cret"))
	c := sessionCookie(t, rec)

	out := httptest.NewRecorder()
	p.Logout(out, requestWith(c))

	cleared := sessionCookie(t, out)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)

	_, err := p.GetUserFromSession(requestWith(c))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMiddleware(t *testing.T) {
	p, _ := newTestProvider()
	rec := httptest.NewRecorder()
	require.NoError(t, p.Login(rec, "admin", "s3cret"))
	c := sessionCookie(t, rec)

	protected := p.WithSessionAuthorization()(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := AdminFromContext(r.Context())
		w.Write([]byte(user))
	})))

	testCases := []struct {
		name     string
		method   string
		cookie   *http.Cookie
		status   int
		location string
		body     string
	}{
		{"GET with session", http.MethodGet, c, http.StatusOK, "", "admin"},
		{"GET without session", http.MethodGet, nil, http.StatusSeeOther, config.AdminLoginUrlPath, ""},
		{"POST without session", http.MethodPost, nil, http.StatusUnauthorized, "", ""},
		{"POST with session", http.MethodPost, c, http.StatusOK, "", "admin"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(tc.method, "/admin", nil)
			if tc.cookie != nil {
				r.AddCookie(tc.cookie)
			}
			w := httptest.NewRecorder()
			protected.ServeHTTP(w, r)

			assert.Equal(t, tc.status, w.Code)
			if tc.location != "" {
				assert.Equal(t, tc.location, w.Header().Get(config.HLocation))
			}
			if tc.body != "" {
				assert.Equal(t, tc.body, w.Body.String())
			}
		})
	}
}

func TestContextAdmin(t *testing.T) {
	ctx := ContextWithAdmin(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "")
	_, ok := AdminFromContext(ctx)
	assert.False(t, ok, "Empty username must not count as a session")
}
