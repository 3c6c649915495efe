package cache

import "html/template"

// Process-wide caches shared by the HTTP layer.
var (
	staticCache   = NewCache[string, string]()
	syntaxCache   = NewCache[string, template.CSS]()
	renderedCache = NewCache[string, []byte]()
)

func GetStaticHash(path string) (string, bool) {
	return staticCache.Get(path)
}

func SetStaticHash(path, hash string) {
	staticCache.Set(path, hash)
}

func GetSyntaxCSS(theme string) (template.CSS, bool) {
	return syntaxCache.Get(theme)
}

func SetSyntaxCSS(theme string, css template.CSS) {
	syntaxCache.Set(theme, css)
}

// Rendered blog content is keyed by content hash and syntax theme.

func GetRendered(contentHash, syntaxTheme string) ([]byte, bool) {
	return renderedCache.Get(contentHash + ":" + syntaxTheme)
}

func SetRendered(contentHash, syntaxTheme string, html []byte) {
	renderedCache.Set(contentHash+":"+syntaxTheme, html)
}

func ClearRendered() {
	renderedCache.Clear()
}
