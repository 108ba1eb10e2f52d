package folio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string // Site name (default "Folio")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD and the footer

	Addr       string // Listen address (default ":3000")
	ContentDir string // Markdown posts and cover images (default "content")
	StaticDir  string // User-owned static assets served under /public (default "public")

	SessionSecret string // Cookie signing secret; a random key is used when empty
	CookieSecure  bool   // Set true for HTTPS

	DefaultTheme string // Theme for visitors without a preference (default "amber")
	LogLevel     string // zap level name (default "info")

	ProbeLimit  int           // Missing-post lookups allowed per IP per window (default 30)
	ProbeWindow time.Duration // Window for ProbeLimit (default 1min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Folio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.ProbeLimit == 0 {
		c.ProbeLimit = 30
	}
	if c.ProbeWindow == 0 {
		c.ProbeWindow = time.Minute
	}
}

// LoadConfig reads a SiteConfig from the environment after loading the given
// dotenv files (".env" when none are named). Missing dotenv files are ignored.
func LoadConfig(files ...string) (SiteConfig, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return SiteConfig{}, fmt.Errorf("folio: load env: %w", err)
	}

	cfg := SiteConfig{
		Name:          os.Getenv("SITE_NAME"),
		URL:           os.Getenv("SITE_URL"),
		Description:   os.Getenv("SITE_DESCRIPTION"),
		Author:        os.Getenv("SITE_AUTHOR"),
		Addr:          os.Getenv("ADDR"),
		ContentDir:    os.Getenv("CONTENT_DIR"),
		StaticDir:     os.Getenv("STATIC_DIR"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		DefaultTheme:  os.Getenv("DEFAULT_THEME"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return SiteConfig{}, fmt.Errorf("folio: COOKIE_SECURE: %w", err)
		}
		cfg.CookieSecure = b
	}
	if v := os.Getenv("PROBE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return SiteConfig{}, fmt.Errorf("folio: PROBE_LIMIT must be a positive integer, got %q", v)
		}
		cfg.ProbeLimit = n
	}
	cfg.setDefaults()
	return cfg, nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithViews replaces the built-in page components.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}

// WithLogger sets the logger used for requests, errors and the post store.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}
