package views

import "github.com/eringen/folio/theme"

// SiteConfig holds the site-wide settings templates need.
type SiteConfig struct {
	Name        string // SITE_NAME
	URL         string // SITE_URL
	Description string // SITE_DESCRIPTION
	Author      string // SITE_AUTHOR
}

// PageMeta carries per-page OpenGraph and SEO metadata into the page head.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string // og:image, absolute
}

// Page is the per-request frame every full page renders inside.
type Page struct {
	Site   SiteConfig
	Meta   PageMeta
	Theme  theme.Theme
	Themes []theme.Theme
	CSRF   string
	JSONLD string // JSON-LD from WebsiteJsonLD or BlogPostingJsonLD
}
