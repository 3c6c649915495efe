package model

import (
	"net/http/httptest"
	"reflect"
	"regexp"
	"testing"
	"time"
)

func TestParseCollection(t *testing.T) {
	testCases := []struct {
		input string
		want  Collection
		ok    bool
	}{
		{"blog", CollectionBlog, true},
		{" portfolio ", CollectionPortfolio, true},
		{"products", CollectionProducts, true},
		{"product", "", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := ParseCollection(tc.input)
			if ok != tc.ok {
				t.Fatalf("Expected ok=%v, got %v", tc.ok, ok)
			}
			if ok && got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("Expected %q to be valid", c)
		}
	}
	for _, c := range []Category{"", "UMKM", "web development"} {
		if c.Valid() {
			t.Errorf("Expected %q to be invalid", c)
		}
	}
}

func TestParseFeatures(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want []string
	}{
		{"Simple", "SEO, Hosting,SSL", []string{"SEO", "Hosting", "SSL"}},
		{"Drops empties", " , SEO,, ,Hosting, ", []string{"SEO", "Hosting"}},
		{"Empty input", "", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseFeatures(tc.raw)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestNewID(t *testing.T) {
	now := time.UnixMilli(1735344000000)

	id := NewID(IDPrefixBlog, now)
	if !regexp.MustCompile(`^blog-1735344000000-[0-9a-f]{6}$`).MatchString(id) {
		t.Errorf("Unexpected id format: %s", id)
	}

	bare := NewID("", now)
	if !regexp.MustCompile(`^1735344000000-[0-9a-f]{6}$`).MatchString(bare) {
		t.Errorf("Unexpected id format without prefix: %s", bare)
	}

	if NewID(IDPrefixBlog, now) == id {
		t.Error("Expected two ids minted in the same millisecond to differ")
	}
}

func TestDisplayDate(t *testing.T) {
	d := time.Date(2025, time.January, 5, 10, 0, 0, 0, time.UTC)
	if got := DisplayDate(d); got != "5/1/2025" {
		t.Errorf("Expected '5/1/2025', got %q", got)
	}
	d = time.Date(2025, time.December, 28, 10, 0, 0, 0, time.UTC)
	if got := DisplayDate(d); got != "28/12/2025" {
		t.Errorf("Expected '28/12/2025', got %q", got)
	}
}

func TestDefaultSeed(t *testing.T) {
	seed := DefaultSeed()

	if len(seed.Blog) != 2 {
		t.Errorf("Expected 2 blog posts, got %d", len(seed.Blog))
	}
	if len(seed.Portfolio) != 3 {
		t.Errorf("Expected 3 portfolio items, got %d", len(seed.Portfolio))
	}
	if len(seed.Products) != 3 {
		t.Errorf("Expected 3 products, got %d", len(seed.Products))
	}
	for _, item := range seed.Portfolio {
		if !item.Category.Valid() {
			t.Errorf("Seed item %s has invalid category %q", item.ID, item.Category)
		}
	}
}

func TestDatabaseClone(t *testing.T) {
	t.Run("Copies are independent", func(t *testing.T) {
		seed := DefaultSeed()
		clone := seed.Clone()

		clone.Blog[0].Title = "changed"
		clone.Products[0].Features[0] = "changed"
		clone.Portfolio = append(clone.Portfolio, PortfolioItem{ID: "new"})

		if seed.Blog[0].Title == "changed" {
			t.Error("Blog mutation leaked into the original")
		}
		if seed.Products[0].Features[0] == "changed" {
			t.Error("Feature mutation leaked into the original")
		}
		if len(seed.Portfolio) != 3 {
			t.Error("Append leaked into the original")
		}
	})

	t.Run("Empty database clones to empty slices", func(t *testing.T) {
		clone := Database{}.Clone()
		if clone.Blog == nil || clone.Portfolio == nil || clone.Products == nil {
			t.Error("Expected non-nil slices after Clone")
		}
	})
}

func TestDatabaseLookups(t *testing.T) {
	db := DefaultSeed()

	if n := db.Len(CollectionPortfolio); n != 3 {
		t.Errorf("Expected Len(portfolio)=3, got %d", n)
	}
	if n := db.Len(Collection("nope")); n != 0 {
		t.Errorf("Expected Len of unknown collection to be 0, got %d", n)
	}

	post, ok := db.BlogBySlug("digital-transformation-strategies-2025")
	if !ok || post.ID != "blog-2" {
		t.Errorf("Expected blog-2, got %+v (ok=%v)", post, ok)
	}
	if _, ok := db.BlogBySlug("missing"); ok {
		t.Error("Expected missing slug lookup to fail")
	}

	item, ok := db.PortfolioBySlug("mobile-banking-application")
	if !ok || item.ID != "portfolio-3" {
		t.Errorf("Expected portfolio-3, got %+v (ok=%v)", item, ok)
	}
}

func TestPageData(t *testing.T) {
	r := httptest.NewRequest("GET", "/admin/login", nil)
	pd := NewPageData(r, "dark-theme", "")

	if pd.PageTitle() != pd.SiteName {
		t.Errorf("Expected bare site name as title, got %q", pd.PageTitle())
	}
	pd.Title = "Blog"
	if pd.PageTitle() != "Blog | "+pd.SiteName {
		t.Errorf("Unexpected title %q", pd.PageTitle())
	}
	if !pd.IsAdminPage() {
		t.Error("Expected /admin/login to be an admin page")
	}
}
