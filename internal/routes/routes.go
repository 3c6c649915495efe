// Package routes defines HTTP route patterns for the application.
package routes

import "github.com/mututech/site/internal/config"

// Public pages
const (
	RobotsPath    = "GET /robots.txt"
	Index         = "GET /{$}"
	Blog          = "GET " + config.BlogUrlPath + "{$}"
	BlogPost      = "GET " + config.BlogUrlPath + "{slug}"
	Portfolio     = "GET " + config.PortfolioUrlPath + "{$}"
	PortfolioItem = "GET " + config.PortfolioUrlPath + "{slug}"
	Products      = "GET " + config.ProductsUrlPath
	Static        = "GET " + config.StaticUrlPath
)

// Theme
const (
	ThemeToggle       = "POST /theme/toggle"
	ThemeOppositeIcon = "GET /theme/opposite-icon"
	SyntaxThemeGet    = "GET /syntax-theme/{theme}"
)

// Admin. Login and logout are registered by the auth package.
const (
	Admin        = "GET " + config.AdminUrlPath
	AdminStatus  = "GET " + config.AdminUrlPath + "/status"
	AdminBlog    = "POST " + config.AdminUrlPath + "/blog"
	AdminFolio   = "POST " + config.AdminUrlPath + "/portfolio"
	AdminProduct = "POST " + config.AdminUrlPath + "/products"
	AdminUpdate  = "POST " + config.AdminUrlPath + "/update"
	AdminDelete  = "POST " + config.AdminUrlPath + "/delete"
)
