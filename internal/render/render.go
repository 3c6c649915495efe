// Package render turns blog content written as markdown into HTML, with
// chroma highlighting for fenced code.
package render

import (
	"fmt"
	"html"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	md_html "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/rs/zerolog"

	"github.com/mututech/site/internal/cache"
	"github.com/mututech/site/internal/theme"
	"github.com/mututech/site/internal/util"
)

var renderLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	renderLogger = l
}

func HighlightCode(code, language, highlightTheme string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return html.EscapeString(code)
	}

	var buf strings.Builder
	if err := theme.GetFormatter().Format(&buf, styles.Get(highlightTheme), iterator); err != nil {
		return html.EscapeString(code)
	}
	return buf.String()
}

// RenderMarkdown renders md. Raw HTML in the source is dropped and links
// with unsafe schemes are rendered as plain text.
func RenderMarkdown(md []byte, highlightTheme string) []byte {
	opts := md_html.RendererOptions{
		Flags: md_html.CommonFlags | md_html.HrefTargetBlank | md_html.SkipHTML | md_html.Safelink,
		RenderNodeHook: func(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
			if code, ok := node.(*ast.CodeBlock); ok && entering {
				fmt.Fprintf(w, "<div class=\"highlight\">%s</div>", HighlightCode(string(code.Literal), string(code.Info), highlightTheme))
				return ast.GoToNext, true
			}
			return ast.GoToNext, false
		},
	}

	doc := parser.NewWithExtensions(
		parser.Tables | parser.FencedCode | parser.Autolink | parser.Strikethrough | parser.SpaceHeadings |
			parser.HeadingIDs | parser.BackslashLineBreak | parser.AutoHeadingIDs | parser.HardLineBreak,
	).Parse(markdown.NormalizeNewlines(md))

	return markdown.Render(doc, md_html.NewRenderer(opts))
}

// RenderMarkdownCached renders content once per content and syntax theme.
func RenderMarkdownCached(content, highlightTheme string) []byte {
	highlightTheme = theme.ResolveSyntaxTheme(highlightTheme)
	hash := util.ContentHashString(content)
	if cached, ok := cache.GetRendered(hash, highlightTheme); ok {
		renderLogger.Debug().Str("hash", hash).Str("theme", highlightTheme).Msg("Cache hit for rendered markdown")
		return cached
	}

	rendered := RenderMarkdown([]byte(content), highlightTheme)
	cache.SetRendered(hash, highlightTheme, rendered)
	return rendered
}

// Excerpt returns the first max runes of content with markdown markers and
// line breaks flattened, ending in an ellipsis when cut.
func Excerpt(content string, max int) string {
	text := strings.Join(strings.Fields(strings.NewReplacer("#", "", "*", "", "`", "", ">", "").Replace(content)), " ")
	if utf8.RuneCountInString(text) <= max {
		return text
	}

	runes := []rune(text)
	cut := strings.TrimRight(string(runes[:max]), " ")
	return cut + "…"
}
