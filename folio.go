// Package folio serves a portfolio and blog from a directory of markdown
// posts. It is built with Echo and templ: home page, blog listing with
// category filters, post pages, cover thumbnails, RSS, sitemap and a
// per-visitor colour theme.
//
// Pages are rendered through the ViewFuncs struct, so sites can swap in
// their own components while folio keeps the handler logic and middleware.
package folio

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/folio/posts"
)

// App is the central folio application. It wires together the post store,
// handlers, middleware, and page components.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Posts  *posts.Store
	Views  ViewFuncs
	Logger *zap.Logger

	probes       *ProbeLimiter
	customRoutes []func(*App)
	sessionKey   []byte
}

// New creates an App with its middleware and routes registered. Call Start
// to listen and Close when done.
func New(cfg SiteConfig, opts ...Option) (*App, error) {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  DefaultViews(),
		Logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if cfg.SessionSecret != "" {
		a.sessionKey = []byte(cfg.SessionSecret)
	} else {
		a.sessionKey = securecookie.GenerateRandomKey(32)
		if a.sessionKey == nil {
			return nil, fmt.Errorf("folio: generate session key")
		}
		a.Logger.Warn("SESSION_SECRET not set, theme cookies will not survive a restart")
	}

	a.Posts = posts.NewStore(cfg.ContentDir, posts.WithLogger(a.Logger.Named("posts")))
	a.probes = NewProbeLimiter(cfg.ProbeLimit, cfg.ProbeWindow)

	a.Echo.HideBanner = true
	a.Echo.HidePort = true
	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a, nil
}

// Start listens on Config.Addr until Shutdown is called.
func (a *App) Start() error {
	a.Logger.Info("listening",
		zap.String("addr", a.Config.Addr),
		zap.String("content", a.Posts.Dir()),
		zap.String("url", a.Config.URL))
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/public/site.css", a.handleSiteCSS)
	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/blog/:slug/cover", a.handleCover)
	e.POST("/theme/", a.handleTheme)
}

func (a *App) handleSiteCSS(c echo.Context) error {
	user := filepath.Join(a.Config.StaticDir, "site.css")
	if _, err := os.Stat(user); err == nil {
		return c.File(user)
	}
	return echo.StaticFileHandler("embedded/site.css", EmbeddedAssets)(c)
}

// Close releases background resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.probes != nil {
		a.probes.Close()
	}
	_ = a.Logger.Sync()
	return nil
}
