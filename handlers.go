package folio

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/folio/posts"
	"github.com/eringen/folio/theme"
	"github.com/eringen/folio/views"
)

const (
	recentPosts  = 3
	relatedPosts = 3
)

// page builds the frame every full page renders inside.
func (a *App) page(c echo.Context, meta views.PageMeta) views.Page {
	if meta.Title == "" {
		meta.Title = a.Config.Name
	}
	if meta.Description == "" {
		meta.Description = a.Config.Description
	}
	if meta.URL == "" {
		meta.URL = BuildURL(a.Config.URL)
	}
	if meta.OGType == "" {
		meta.OGType = "website"
	}
	return views.Page{
		Site:   a.siteView(),
		Meta:   meta,
		Theme:  a.currentTheme(c),
		Themes: theme.All(),
		CSRF:   CsrfToken(c),
	}
}

func (a *App) siteView() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}

// listPosts returns the posts that have a detail page. Posts without a
// title are listed by the store but cannot be opened, so pages skip them.
func (a *App) listPosts() ([]posts.Post, error) {
	list, err := a.Posts.ListAllPosts()
	if err != nil {
		return nil, err
	}
	out := list[:0]
	for _, p := range list {
		if strings.TrimSpace(p.Title) != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

func (a *App) handleHome(c echo.Context) error {
	list, err := a.listPosts()
	if err != nil {
		return err
	}
	if len(list) > recentPosts {
		list = list[:recentPosts]
	}
	p := a.page(c, views.PageMeta{})
	p.JSONLD = views.WebsiteJsonLD(p.Site)
	return Render(c, a.Views.Home(p, list))
}

func (a *App) handleBlog(c echo.Context) error {
	list, err := a.listPosts()
	if err != nil {
		return err
	}
	categories := append([]string{posts.LatestCategory}, posts.Categories(list)...)
	active := posts.LatestCategory
	if q := strings.TrimSpace(c.QueryParam("category")); q != "" {
		active = q
		for _, cat := range categories {
			if strings.EqualFold(cat, q) {
				active = cat
				break
			}
		}
	}
	section := views.BlogSectionData{
		Posts:      posts.FilterByCategory(list, active),
		Categories: categories,
		Active:     active,
	}
	if isHTMX(c) && c.QueryParam("partial") == "blog" {
		return Render(c, a.Views.BlogSection(section))
	}

	title := "Blog | " + a.Config.Name
	if active != posts.LatestCategory {
		title = active + " | " + title
	}
	return Render(c, a.Views.Blog(a.page(c, views.PageMeta{
		Title: title,
		URL:   BuildURL(a.Config.URL, "blog"),
	}), section))
}

func (a *App) handlePost(c echo.Context) error {
	ip := c.RealIP()
	if !a.probes.Check(ip) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
	}

	raw := c.Param("slug")
	if s, err := url.PathUnescape(raw); err == nil {
		raw = s
	}
	post, ok, err := a.Posts.GetPostBySlug(raw)
	if errors.Is(err, posts.ErrInvalidSlug) {
		ok, err = false, nil
	}
	if err != nil {
		return err
	}
	if !ok {
		a.probes.Record(ip)
		return echo.ErrNotFound
	}
	if raw != post.Slug {
		return c.Redirect(http.StatusMovedPermanently, post.Link)
	}

	all, err := a.listPosts()
	if err != nil {
		return err
	}

	p := a.page(c, views.PageMeta{
		Title:       post.Title + " | " + a.Config.Name,
		Description: views.Summary(post),
		URL:         BuildURL(a.Config.URL, "blog", post.Slug),
		OGType:      "article",
	})
	if cover := views.CoverURL(post); cover != "" {
		p.Meta.Image = absoluteURL(a.Config.URL, cover)
	}
	p.JSONLD = views.BlogPostingJsonLD(p.Site, post)
	return Render(c, a.Views.Post(p, post, views.RelatedPosts(post, all, relatedPosts)))
}

func (a *App) handleSitemap(c echo.Context) error {
	list, err := a.listPosts()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, list)
}

func (a *App) handleFeed(c echo.Context) error {
	list, err := a.listPosts()
	if err != nil {
		return err
	}
	return a.renderRSS(c, list)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.Config.StaticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s\n",
		strings.TrimSuffix(BuildURL(a.Config.URL), "/")+"/sitemap.xml")
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		p := a.page(c, views.PageMeta{Title: "Not found | " + a.Config.Name})
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(p, c.Request().URL.Path))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error",
			zap.Error(err),
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI))
		p := a.page(c, views.PageMeta{Title: "Error | " + a.Config.Name})
		_ = RenderStatus(c, code, a.Views.ServerError(p))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
