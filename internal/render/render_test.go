package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mututech/site/internal/cache"
	"github.com/mututech/site/internal/theme"
	"github.com/mututech/site/internal/util"
)

func TestRenderMarkdown(t *testing.T) {
	testCases := []struct {
		name     string
		markdown string
		contains []string
		excludes []string
	}{
		{
			name:     "Heading and paragraph",
			markdown: "# Judul\n\nIsi artikel",
			contains: []string{"<h1", "Judul</h1>", "<p>Isi artikel</p>"},
		},
		{
			name:     "Plain text keeps line breaks",
			markdown: "baris satu\nbaris dua",
			contains: []string{"baris satu<br", "baris dua"},
		},
		{
			name:     "Fenced code is highlighted",
			markdown: "```go\nfunc main() {}\n```",
			contains: []string{`<div class="highlight">`, "chroma"},
		},
		{
			name:     "Raw html is dropped",
			markdown: "<script>alert(1)</script>\n\nteks",
			excludes: []string{"<script>"},
			contains: []string{"teks"},
		},
		{
			name:     "Links open in a new tab",
			markdown: "[WA](https://wa.me/6281234567890)",
			contains: []string{`target="_blank"`},
		},
		{
			name:     "Script links are not rendered",
			markdown: "[klik](javascript:alert(1))",
			excludes: []string{`href="javascript`},
			contains: []string{"klik"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			html := string(RenderMarkdown([]byte(tc.markdown), "github"))
			for _, s := range tc.contains {
				assert.Contains(t, html, s)
			}
			for _, s := range tc.excludes {
				assert.NotContains(t, html, s)
			}
		})
	}
}

func TestRenderMarkdownCached(t *testing.T) {
	cache.ClearRendered()
	content := "**tebal**"

	first := RenderMarkdownCached(content, "github")
	cached, ok := cache.GetRendered(util.ContentHashString(content), "github")
	assert.True(t, ok)
	assert.Equal(t, first, cached)

	_, ok = cache.GetRendered(util.ContentHashString(content), "monokai")
	assert.False(t, ok, "other themes are cached separately")

	assert.Equal(t, first, RenderMarkdownCached(content, "github"))

	t.Run("Unknown themes share the default entry", func(t *testing.T) {
		cache.ClearRendered()
		hash := util.ContentHashString(content)

		for _, name := range []string{"no-such-theme-1", "no-such-theme-2"} {
			RenderMarkdownCached(content, name)
			_, ok := cache.GetRendered(hash, name)
			assert.False(t, ok, "unknown theme %q must not get its own entry", name)
		}
		_, ok := cache.GetRendered(hash, theme.ResolveSyntaxTheme("no-such-theme-1"))
		assert.True(t, ok)
	})
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "Judul Isi singkat", Excerpt("# Judul\n\nIsi   singkat", 100))

	long := strings.Repeat("kata ", 50)
	got := Excerpt(long, 20)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, len([]rune(got)), 21)

	assert.Equal(t, "", Excerpt("", 10))
}
