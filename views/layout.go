package views

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/folio/posts"
)

// renderFunc writes a fragment of a page into buf.
type renderFunc func(ctx context.Context, buf *bytes.Buffer) error

// component buffers the whole fragment so a failed render never leaves half
// a page on the wire.
func component(fn renderFunc) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := fn(ctx, &buf); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func text(buf *bytes.Buffer, s string) {
	buf.WriteString(templ.EscapeString(s))
}

func attr(buf *bytes.Buffer, name, value string) {
	buf.WriteString(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func href(buf *bytes.Buffer, u string) {
	attr(buf, "href", string(templ.URL(u)))
}

// layout wraps body in the document frame: head, header with the theme
// picker, and footer.
func layout(p Page, body renderFunc) templ.Component {
	return component(func(ctx context.Context, buf *bytes.Buffer) error {
		writeHead(buf, p)
		if err := body(ctx, buf); err != nil {
			return err
		}
		writeFoot(buf, p)
		return nil
	})
}

func writeHead(buf *bytes.Buffer, p Page) {
	buf.WriteString("<!doctype html>\n<html lang=\"en\">\n<head>\n")
	buf.WriteString("<meta charset=\"utf-8\">\n")
	buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	buf.WriteString("<title>")
	text(buf, p.Meta.Title)
	buf.WriteString("</title>\n")
	meta(buf, "name", "description", p.Meta.Description)
	buf.WriteString("<link rel=\"canonical\"")
	href(buf, p.Meta.URL)
	buf.WriteString(">\n")
	meta(buf, "property", "og:title", p.Meta.Title)
	meta(buf, "property", "og:description", p.Meta.Description)
	meta(buf, "property", "og:url", p.Meta.URL)
	meta(buf, "property", "og:type", p.Meta.OGType)
	meta(buf, "property", "og:site_name", p.Site.Name)
	if p.Meta.Image != "" {
		meta(buf, "property", "og:image", p.Meta.Image)
		meta(buf, "name", "twitter:card", "summary_large_image")
	} else {
		meta(buf, "name", "twitter:card", "summary")
	}
	buf.WriteString("<link rel=\"alternate\" type=\"application/rss+xml\"")
	attr(buf, "title", p.Site.Name)
	buf.WriteString(" href=\"/feed.xml\">\n")
	buf.WriteString("<link rel=\"stylesheet\" href=\"/public/site.css\">\n")
	// Palette values come from the fixed theme table.
	buf.WriteString("<style>:root { " + p.Theme.CSSVariables() + " }</style>\n")
	buf.WriteString("<script src=\"/public/htmx.min.js\" defer></script>\n")
	if p.JSONLD != "" {
		buf.WriteString("<script type=\"application/ld+json\">" + p.JSONLD + "</script>\n")
	}
	buf.WriteString("</head>\n<body")
	attr(buf, "class", "theme-"+p.Theme.Name)
	buf.WriteString(">\n<header class=\"site-header\">\n<a class=\"brand\" href=\"/\">")
	text(buf, p.Site.Name)
	buf.WriteString("<span class=\"cursor\">_</span></a>\n")
	buf.WriteString("<nav>\n<a href=\"/\">~/home</a>\n<a href=\"/blog/\">~/blog</a>\n<a href=\"/feed.xml\">~/rss</a>\n</nav>\n")
	buf.WriteString("<form class=\"theme-picker\" method=\"post\" action=\"/theme/\" hx-post=\"/theme/\" hx-trigger=\"change\" hx-swap=\"none\">\n")
	buf.WriteString("<input type=\"hidden\" name=\"_csrf\"")
	attr(buf, "value", p.CSRF)
	buf.WriteString(">\n<label>theme\n<select name=\"theme\">\n")
	for _, t := range p.Themes {
		buf.WriteString("<option")
		attr(buf, "value", t.Name)
		if t.Name == p.Theme.Name {
			buf.WriteString(" selected")
		}
		buf.WriteString(">")
		text(buf, t.Label)
		buf.WriteString("</option>\n")
	}
	buf.WriteString("</select>\n</label>\n<noscript><button type=\"submit\">set</button></noscript>\n</form>\n</header>\n<main>\n")
}

func meta(buf *bytes.Buffer, key, name, content string) {
	buf.WriteString("<meta")
	attr(buf, key, name)
	attr(buf, "content", content)
	buf.WriteString(">\n")
}

func writeFoot(buf *bytes.Buffer, p Page) {
	owner := p.Site.Author
	if owner == "" {
		owner = p.Site.Name
	}
	buf.WriteString("</main>\n<footer class=\"site-footer\">\n<p>&copy; ")
	buf.WriteString(strconv.Itoa(time.Now().Year()) + " ")
	text(buf, owner)
	buf.WriteString("</p>\n</footer>\n</body>\n</html>\n")
}

func writePostList(buf *bytes.Buffer, list []posts.Post) {
	if len(list) == 0 {
		buf.WriteString("<p class=\"muted\">No posts yet.</p>\n")
		return
	}
	buf.WriteString("<ul class=\"post-list\">\n")
	for _, p := range list {
		buf.WriteString("<li>\n<div class=\"post-row\">\n<a")
		href(buf, p.Link)
		buf.WriteString("><h3>")
		text(buf, p.Title)
		buf.WriteString("</h3></a>\n<time")
		attr(buf, "datetime", isoDate(p))
		buf.WriteString(">")
		text(buf, DisplayDate(p))
		buf.WriteString("</time>\n</div>\n<p class=\"muted\">")
		text(buf, Summary(p))
		buf.WriteString("</p>\n")
		if p.Category != "" {
			buf.WriteString("<span class=\"pill\">")
			text(buf, p.Category)
			buf.WriteString("</span>\n")
		}
		buf.WriteString("</li>\n")
	}
	buf.WriteString("</ul>\n")
}
