package theme

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mututech/site/internal/cache"
	"github.com/mututech/site/internal/config"
)

func requestWithCookies(cookies ...*http.Cookie) *http.Request {
	r := httptest.NewRequest("GET", "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestGetThemeFromRequest(t *testing.T) {
	testCases := []struct {
		name   string
		cookie *http.Cookie
		want   string
	}{
		{"No cookie", nil, config.AppConfig.Theme.Default},
		{"Light", &http.Cookie{Name: config.CookieTheme, Value: config.LightTheme}, config.LightTheme},
		{"Dark", &http.Cookie{Name: config.CookieTheme, Value: config.DarkTheme}, config.DarkTheme},
		{"Unknown value", &http.Cookie{Name: config.CookieTheme, Value: "neon"}, config.AppConfig.Theme.Default},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := requestWithCookies()
			if tc.cookie != nil {
				r = requestWithCookies(tc.cookie)
			}
			if got := GetThemeFromRequest(r); got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestToggle(t *testing.T) {
	if got := Toggle(config.DarkTheme); got != config.LightTheme {
		t.Errorf("Expected light after dark, got %q", got)
	}
	if got := Toggle(config.LightTheme); got != config.DarkTheme {
		t.Errorf("Expected dark after light, got %q", got)
	}
}

func TestGetSyntaxThemeFromRequest(t *testing.T) {
	r := requestWithCookies(&http.Cookie{Name: config.CookieTheme, Value: config.LightTheme})
	if got := GetSyntaxThemeFromRequest(r); got != config.AppConfig.Theme.SyntaxHighlighting.DefaultLight {
		t.Errorf("Expected light default, got %q", got)
	}

	r = requestWithCookies(
		&http.Cookie{Name: config.CookieTheme, Value: config.LightTheme},
		&http.Cookie{Name: config.CookieSyntaxTheme, Value: "monokai"},
	)
	if got := GetSyntaxThemeFromRequest(r); got != "monokai" {
		t.Errorf("Expected cookie value, got %q", got)
	}

	r = requestWithCookies(&http.Cookie{Name: config.CookieSyntaxTheme, Value: "x-not-a-style"})
	if got := GetSyntaxThemeFromRequest(r); got != ResolveSyntaxTheme(config.AppConfig.Theme.SyntaxHighlighting.DefaultDark) {
		t.Errorf("Expected unknown cookie to fall back to the default, got %q", got)
	}
}

func TestResolveSyntaxTheme(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"Registered", "monokai", "monokai"},
		{"Case insensitive", "MonoKai", "monokai"},
		{"Unknown", "nonexistent-theme-12345", "gruvbox"},
		{"Empty", "", "gruvbox"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveSyntaxTheme(tc.input); got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestGenerateSyntaxCSS(t *testing.T) {
	for _, name := range []string{"monokai", "github", "nonexistent-theme-12345"} {
		t.Run(name, func(t *testing.T) {
			css := GenerateSyntaxCSS(name)
			if !strings.Contains(string(css), ".chroma") {
				t.Errorf("Expected CSS to contain '.chroma'")
			}
			cached, ok := cache.GetSyntaxCSS(ResolveSyntaxTheme(name))
			if !ok || cached != css {
				t.Error("Expected CSS to be cached under the resolved name")
			}
		})
	}
}

func TestGenerateSyntaxCSSUnknownNames(t *testing.T) {
	names := []string{"x-1", "x-2", "x-3"}
	for _, name := range names {
		GenerateSyntaxCSS(name)
	}
	for _, name := range names {
		if _, ok := cache.GetSyntaxCSS(name); ok {
			t.Errorf("Expected no cache entry for unknown theme %q", name)
		}
	}
}

func TestGetThemeIcon(t *testing.T) {
	if GetThemeIcon(config.LightTheme) != config.DarkThemeIcon {
		t.Error("Expected dark icon on light theme")
	}
	if GetThemeIcon(config.DarkTheme) != config.LightThemeIcon {
		t.Error("Expected light icon on dark theme")
	}
}
