package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/eringen/folio/markdown"
	"github.com/eringen/folio/posts"
)

const summaryLength = 180

// BuildURL joins path segments onto a base URL, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// RelatedPosts returns up to n other posts sharing current's category.
func RelatedPosts(current posts.Post, list []posts.Post, n int) []posts.Post {
	if strings.TrimSpace(current.Category) == "" {
		return nil
	}
	var related []posts.Post
	for _, p := range list {
		if p.Slug == current.Slug || !strings.EqualFold(p.Category, current.Category) {
			continue
		}
		related = append(related, p)
		if len(related) == n {
			break
		}
	}
	return related
}

// Summary returns the post description, or an excerpt of the body when the
// description is empty.
func Summary(p posts.Post) string {
	if d := strings.TrimSpace(p.Description); d != "" {
		return d
	}
	return markdown.Excerpt(p.Content, summaryLength)
}

// CoverURL returns the URL of the post's cover image. Images stored next to
// the posts are served through the cover endpoint, URLs are used as is and
// anything else yields no cover.
func CoverURL(p posts.Post) string {
	if p.ExternalImage() {
		return p.Image
	}
	if _, ok := posts.AssetPath(p); ok {
		return p.Link + "cover"
	}
	return ""
}

// DisplayDate formats the post date for humans, falling back to the raw value.
func DisplayDate(p posts.Post) string {
	if p.Published.IsZero() {
		return p.Date
	}
	return p.Published.Format("January 2, 2006")
}

func isoDate(p posts.Post) string {
	if p.Published.IsZero() {
		return ""
	}
	return p.Published.Format(time.RFC3339)
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      BuildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	return marshalJS(data)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(cfg SiteConfig, post posts.Post) string {
	postURL := BuildURL(cfg.URL, "blog", post.Slug)
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    post.Title,
		"description": Summary(post),
		"url":         postURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if !post.Published.IsZero() {
		data["datePublished"] = post.Published.Format("2006-01-02")
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	if post.Category != "" {
		data["articleSection"] = post.Category
	}
	if cover := CoverURL(post); cover != "" {
		data["image"] = absoluteURL(cfg.URL, cover)
	}
	return marshalJS(data)
}

// absoluteURL resolves ref against the site URL.
func absoluteURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// marshalJS encodes v for a script element. json.Marshal escapes <, > and &,
// so the result cannot close the element early.
func marshalJS(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
