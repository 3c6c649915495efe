package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ID prefixes per collection.
const (
	IDPrefixBlog      = "blog"
	IDPrefixPortfolio = "portfolio"
	IDPrefixProduct   = "product"
)

// NewID returns "<prefix>-<unix millis>-<6 random chars>". Uniqueness is
// probabilistic, which is plenty at admin write rates.
func NewID(prefix string, now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	id := strconv.FormatInt(now.UnixMilli(), 10) + "-" + random
	if prefix == "" {
		return id
	}
	return prefix + "-" + id
}

// DisplayDate formats a date the way the site shows it (Indonesian d/m/yyyy).
func DisplayDate(t time.Time) string {
	return t.Format("2/1/2006")
}
