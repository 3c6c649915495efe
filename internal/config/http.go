package config

const (
	HCType        = "Content-Type"
	HETag         = "ETag"
	HCacheControl = "Cache-Control"
	HLocation     = "Location"

	CTypeCSS  = "text/css"
	CTypeHTML = "text/html"
	CTypeJSON = "application/json"
	CTypeText = "text/plain"
)

const (
	HTTPErrUnauthorized = "Unauthorized"
)

const (
	CookieTheme        = "theme"
	CookieSyntaxTheme  = "syntax-theme"
	CookieAdminSession = "admin_session"
)

// MaxFormMemory bounds the in-memory part of multipart admin forms.
const MaxFormMemory = 32 << 20
