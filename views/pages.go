// Package views renders the site's pages as templ components. Handlers
// render them through folio.Render like any other component, and sites can
// replace them with their own via folio.WithViews.
package views

import (
	"bytes"
	"context"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/folio/markdown"
	"github.com/eringen/folio/posts"
)

// BlogSectionData is the part of the blog page that is swapped in place when
// a category is picked.
type BlogSectionData struct {
	Posts      []posts.Post
	Categories []string
	Active     string
}

// Home renders the landing page with the most recent posts.
func Home(p Page, recent []posts.Post) templ.Component {
	return layout(p, func(ctx context.Context, buf *bytes.Buffer) error {
		buf.WriteString("<section class=\"hero\">\n<p class=\"prompt\">$ whoami</p>\n<h1>")
		text(buf, p.Site.Name)
		buf.WriteString("</h1>\n")
		if p.Site.Description != "" {
			buf.WriteString("<p class=\"lead\">")
			text(buf, p.Site.Description)
			buf.WriteString("</p>\n")
		}
		buf.WriteString("</section>\n<section class=\"recent\">\n<h2>Recent posts</h2>\n")
		writePostList(buf, recent)
		buf.WriteString("<p><a href=\"/blog/\">All posts &rarr;</a></p>\n</section>\n")
		return nil
	})
}

// Blog renders the full blog index.
func Blog(p Page, section BlogSectionData) templ.Component {
	return layout(p, func(ctx context.Context, buf *bytes.Buffer) error {
		buf.WriteString("<h1>Blog</h1>\n<div id=\"blog-section\">\n")
		writeBlogSection(buf, section)
		buf.WriteString("</div>\n")
		return nil
	})
}

// BlogSection renders only the category bar and post list.
func BlogSection(section BlogSectionData) templ.Component {
	return component(func(ctx context.Context, buf *bytes.Buffer) error {
		writeBlogSection(buf, section)
		return nil
	})
}

func writeBlogSection(buf *bytes.Buffer, section BlogSectionData) {
	buf.WriteString("<ul class=\"categories\">\n")
	for _, cat := range section.Categories {
		page, partial := "/blog/", "/blog/?partial=blog"
		if cat != posts.LatestCategory {
			q := url.QueryEscape(cat)
			page += "?category=" + q
			partial += "&category=" + q
		}
		buf.WriteString("<li><a")
		href(buf, page)
		attr(buf, "hx-get", partial)
		buf.WriteString(` hx-target="#blog-section"`)
		attr(buf, "hx-push-url", page)
		if cat == section.Active {
			buf.WriteString(` class="active" aria-current="page"`)
		}
		buf.WriteString(">")
		text(buf, cat)
		buf.WriteString("</a></li>\n")
	}
	buf.WriteString("</ul>\n")
	writePostList(buf, section.Posts)
}

// Post renders a single post.
func Post(p Page, post posts.Post, related []posts.Post) templ.Component {
	canonical := BuildURL(p.Site.URL, "blog", post.Slug)
	return layout(p, func(ctx context.Context, buf *bytes.Buffer) error {
		buf.WriteString("<article class=\"post\">\n<p class=\"crumbs\"><a href=\"/blog/\">blog</a> / ")
		text(buf, post.Slug)
		buf.WriteString("</p>\n<h1>")
		text(buf, post.Title)
		buf.WriteString("</h1>\n<p class=\"muted\">")
		if d := DisplayDate(post); d != "" {
			buf.WriteString("<time")
			attr(buf, "datetime", isoDate(post))
			buf.WriteString(">")
			text(buf, d)
			buf.WriteString("</time> &middot; ")
		}
		buf.WriteString(strconv.Itoa(markdown.ReadingTime(post.Content)) + " min read")
		if post.Category != "" {
			buf.WriteString(" &middot; <a")
			href(buf, "/blog/?category="+url.QueryEscape(post.Category))
			buf.WriteString(">")
			text(buf, post.Category)
			buf.WriteString("</a>")
		}
		buf.WriteString("</p>\n")
		if cover := CoverURL(post); cover != "" {
			buf.WriteString("<img class=\"cover\"")
			attr(buf, "src", string(templ.URL(cover)))
			buf.WriteString(" alt=\"\">\n")
		}

		buf.WriteString("<div class=\"content\">\n")
		if err := markdown.Markdown(post.Content).Render(ctx, buf); err != nil {
			return err
		}
		buf.WriteString("\n</div>\n<p class=\"share\">share:\n<a")
		href(buf, "https://www.linkedin.com/sharing/share-offsite/?url="+url.QueryEscape(canonical))
		buf.WriteString(" target=\"_blank\" rel=\"noopener noreferrer\">linkedin</a>\n<a")
		href(buf, "https://twitter.com/intent/tweet?url="+url.QueryEscape(canonical)+"&text="+url.QueryEscape(post.Title))
		buf.WriteString(" target=\"_blank\" rel=\"noopener noreferrer\">x</a>\n</p>\n</article>\n")

		if len(related) > 0 {
			buf.WriteString("<section class=\"related\">\n<h2>More in ")
			text(buf, post.Category)
			buf.WriteString("</h2>\n")
			writePostList(buf, related)
			buf.WriteString("</section>\n")
		}
		return nil
	})
}

// NotFound renders the 404 page.
func NotFound(p Page, path string) templ.Component {
	return layout(p, func(ctx context.Context, buf *bytes.Buffer) error {
		buf.WriteString("<section class=\"error\">\n<p class=\"prompt\">$ cat ")
		text(buf, path)
		buf.WriteString("</p>\n<h1>404</h1>\n<p>No such file or directory.</p>\n<p><a href=\"/\">cd ~</a></p>\n</section>\n")
		return nil
	})
}

// ServerError renders the 500 page.
func ServerError(p Page) templ.Component {
	return layout(p, func(ctx context.Context, buf *bytes.Buffer) error {
		buf.WriteString("<section class=\"error\">\n<h1>500</h1>\n<p>Something went wrong on our end. Try again in a moment.</p>\n<p><a href=\"/\">cd ~</a></p>\n</section>\n")
		return nil
	})
}
