// Package slug turns free text into URL-safe identifiers that are unique
// within a collection.
package slug

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/mututech/site/internal/model"
)

// Fallback is returned when nothing usable survives slugification.
const Fallback = "item"

var accents = strings.NewReplacer(
	"ä", "a", "à", "a", "á", "a", "â", "a", "ã", "a", "å", "a", "ā", "a",
	"ë", "e", "è", "e", "é", "e", "ê", "e", "ē", "e",
	"ï", "i", "ì", "i", "í", "i", "î", "i", "ī", "i",
	"ö", "o", "ò", "o", "ó", "o", "ô", "o", "õ", "o", "ō", "o",
	"ü", "u", "ù", "u", "ú", "u", "û", "u", "ū", "u",
	"ñ", "n",
	"ç", "c",
)

var (
	reInvalid = regexp.MustCompile(`[^a-z0-9\s-]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
	reHyphens = regexp.MustCompile(`-+`)
)

// Slugify lowercases s, folds the common accented Latin letters to ASCII and
// joins the remaining words with single hyphens.
func Slugify(s string) string {
	// NFC so that a decomposed "e" + U+0301 matches the table as "é".
	s = norm.NFC.String(s)
	s = strings.TrimSpace(strings.ToLower(s))
	s = accents.Replace(s)
	s = reInvalid.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, "-")
	s = reHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return Fallback
	}
	return s
}

// SEO prefixes the slugified title with a per-collection keyword.
func SEO(title string, c model.Collection) string {
	base := Slugify(title)
	switch c {
	case model.CollectionBlog:
		return "artikel-" + base
	case model.CollectionPortfolio:
		return "portfolio-" + base
	case model.CollectionProducts:
		return "paket-" + base
	default:
		return base
	}
}

// Unique returns candidate, or candidate-1, candidate-2, ... whichever is the
// first value taken reports as free.
func Unique(candidate string, taken func(string) bool) string {
	s := candidate
	for n := 1; taken(s); n++ {
		s = candidate + "-" + strconv.Itoa(n)
	}
	return s
}

// BlogTaken reports slugs used by posts other than exceptID.
func BlogTaken(posts []model.BlogPost, exceptID string) func(string) bool {
	return func(s string) bool {
		for _, p := range posts {
			if p.ID != exceptID && p.Slug == s {
				return true
			}
		}
		return false
	}
}

// PortfolioTaken reports slugs used by items other than exceptID.
func PortfolioTaken(items []model.PortfolioItem, exceptID string) func(string) bool {
	return func(s string) bool {
		for _, it := range items {
			if it.ID != exceptID && it.Slug != "" && it.Slug == s {
				return true
			}
		}
		return false
	}
}
