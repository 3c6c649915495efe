// Package model defines the records shown on the site and the dataset that holds them.
package model

import (
	"slices"
	"strings"
)

// Collection names one of the three independent record lists. The values
// double as table names in the record database and as the `type` form field
// sent by the admin panel.
type Collection string

const (
	CollectionBlog      Collection = "blog"
	CollectionPortfolio Collection = "portfolio"
	CollectionProducts  Collection = "products"
)

var Collections = []Collection{CollectionBlog, CollectionPortfolio, CollectionProducts}

func ParseCollection(s string) (Collection, bool) {
	c := Collection(strings.TrimSpace(s))
	return c, slices.Contains(Collections, c)
}

type BlogPost struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Content string `json:"content"`
	Image   string `json:"image"`
	// Display date (d/m/yyyy), not sortable.
	Date string `json:"date"`
}

type Category string

const (
	CategoryWebDevelopment    Category = "Web Development"
	CategorySoftwareSolutions Category = "Software Solutions"
	CategoryITConsulting      Category = "IT Consulting"
	CategoryMobileDevelopment Category = "Mobile Development"
	CategoryCloudSolutions    Category = "Cloud Solutions"
)

var Categories = []Category{
	CategoryWebDevelopment,
	CategorySoftwareSolutions,
	CategoryITConsulting,
	CategoryMobileDevelopment,
	CategoryCloudSolutions,
}

func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

type PortfolioItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Image       string   `json:"image"`
}

type Product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Free text such as "Rp 10 Juta".
	Price    string   `json:"price"`
	Features []string `json:"features"`
}

// ParseFeatures splits the comma-separated feature list typed in the admin
// form, trimming entries and dropping empty ones.
func ParseFeatures(raw string) []string {
	features := []string{}
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}
	return features
}

// Database is the full dataset. It is also the shape of the snapshot file.
type Database struct {
	Blog      []BlogPost      `json:"blog"`
	Portfolio []PortfolioItem `json:"portfolio"`
	Products  []Product       `json:"products"`
}

// Clone returns a deep copy so callers can mutate it freely.
func (db Database) Clone() Database {
	out := Database{
		Blog:      slices.Clone(db.Blog),
		Portfolio: slices.Clone(db.Portfolio),
		Products:  make([]Product, len(db.Products)),
	}
	for i, p := range db.Products {
		p.Features = slices.Clone(p.Features)
		out.Products[i] = p
	}
	if out.Blog == nil {
		out.Blog = []BlogPost{}
	}
	if out.Portfolio == nil {
		out.Portfolio = []PortfolioItem{}
	}
	return out
}

// Len returns the number of records in a collection.
func (db Database) Len(c Collection) int {
	switch c {
	case CollectionBlog:
		return len(db.Blog)
	case CollectionPortfolio:
		return len(db.Portfolio)
	case CollectionProducts:
		return len(db.Products)
	}
	return 0
}

func (db Database) BlogBySlug(slug string) (*BlogPost, bool) {
	i := slices.IndexFunc(db.Blog, func(p BlogPost) bool { return p.Slug == slug })
	if i < 0 {
		return nil, false
	}
	return &db.Blog[i], true
}

func (db Database) PortfolioBySlug(slug string) (*PortfolioItem, bool) {
	i := slices.IndexFunc(db.Portfolio, func(p PortfolioItem) bool { return p.Slug == slug })
	if i < 0 {
		return nil, false
	}
	return &db.Portfolio[i], true
}
