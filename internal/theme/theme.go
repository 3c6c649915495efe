// Package theme picks the light or dark site theme and serves chroma CSS for
// code blocks in blog posts.
package theme

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/mututech/site/internal/cache"
	"github.com/mututech/site/internal/config"
)

func valid(theme string) bool {
	return theme == config.LightTheme || theme == config.DarkTheme
}

// GetThemeFromRequest reads the theme cookie. Unknown values fall back to
// the configured default.
func GetThemeFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(config.CookieTheme); err == nil && valid(cookie.Value) {
		return cookie.Value
	}
	return config.AppConfig.Theme.Default
}

func Toggle(theme string) string {
	if theme == config.DarkTheme {
		return config.LightTheme
	}
	return config.DarkTheme
}

func GetDefaultSyntaxTheme(theme string) string {
	if theme == config.LightTheme {
		return config.AppConfig.Theme.SyntaxHighlighting.DefaultLight
	}
	return config.AppConfig.Theme.SyntaxHighlighting.DefaultDark
}

// ResolveSyntaxTheme maps name to a registered chroma style name. Unknown
// names resolve to the dark default, or to chroma's fallback style when that
// is unknown too.
func ResolveSyntaxTheme(name string) string {
	if style, ok := styles.Registry[strings.ToLower(name)]; ok {
		return style.Name
	}
	if style, ok := styles.Registry[strings.ToLower(GetDefaultSyntaxTheme(config.DarkTheme))]; ok {
		return style.Name
	}
	return styles.Fallback.Name
}

func GetSyntaxThemeFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(config.CookieSyntaxTheme); err == nil && cookie.Value != "" {
		return ResolveSyntaxTheme(cookie.Value)
	}
	return ResolveSyntaxTheme(GetDefaultSyntaxTheme(GetThemeFromRequest(r)))
}

func GetFormatter() *html.Formatter {
	return html.New(
		html.WithClasses(true),
		html.TabWidth(4),
		html.WithLineNumbers(true),
		html.WrapLongLines(true),
	)
}

// GenerateSyntaxCSS returns the CSS for theme, cached under the resolved
// style name.
func GenerateSyntaxCSS(theme string) template.CSS {
	theme = ResolveSyntaxTheme(theme)
	if css, ok := cache.GetSyntaxCSS(theme); ok {
		return css
	}

	var buf strings.Builder
	style := styles.Registry[strings.ToLower(theme)]
	if style == nil {
		style = styles.Fallback
	}

	bg := style.Get(chroma.Background)
	if !bg.Colour.IsSet() {
		// Styles without a text colour get a dark one on light backgrounds.
		luminance := (0.299*float64(bg.Background.Red()) +
			0.587*float64(bg.Background.Green()) +
			0.114*float64(bg.Background.Blue())) / 255
		if luminance > 0.5 {
			buf.WriteString(".chroma { color: #181818; }\n")
		}
	}

	GetFormatter().WriteCSS(&buf, style)
	css := template.CSS(buf.String())
	cache.SetSyntaxCSS(theme, css)
	return css
}

// GetThemeIcon returns the icon of the theme a toggle would switch to.
func GetThemeIcon(theme string) string {
	if theme == config.LightTheme {
		return config.DarkThemeIcon
	}
	return config.LightThemeIcon
}
