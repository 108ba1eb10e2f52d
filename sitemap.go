package folio

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/posts"
)

const (
	sitemapChangeFreq = "daily"
	sitemapPriority   = "0.7"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

func (a *App) renderSitemap(c echo.Context, list []posts.Post) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base), ChangeFreq: sitemapChangeFreq, Priority: sitemapPriority},
		{Loc: BuildURL(base, "blog"), ChangeFreq: sitemapChangeFreq, Priority: sitemapPriority},
	}
	for _, p := range list {
		u := sitemapURL{
			Loc:        BuildURL(base, "blog", p.Slug),
			ChangeFreq: sitemapChangeFreq,
			Priority:   sitemapPriority,
		}
		if !p.Published.IsZero() {
			u.LastMod = p.Published.Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
