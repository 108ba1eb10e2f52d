// Package markdown renders post bodies to sanitized HTML.
package markdown

import (
	"bytes"
	"context"
	"html"
	"html/template"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldhtml "github.com/yuin/goldmark/renderer/html"
)

const wordsPerMinute = 200

var (
	md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		// Raw HTML is allowed through goldmark and cleaned by the policy below.
		goldmark.WithRendererOptions(
			goldhtml.WithUnsafe(),
		),
	)

	policy = newPolicy()
	strip  = bluemonday.StrictPolicy()

	reSpace = regexp.MustCompile(`\s+`)
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").Matching(regexp.MustCompile(`^[\w:-]+$`)).OnElements("h1", "h2", "h3", "h4", "h5", "h6", "li", "sup")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w+#-]+$`)).OnElements("code")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^footnote(s|-ref|-backref)?$`)).OnElements("a", "div", "sup")
	p.AllowAttrs("role").Matching(regexp.MustCompile(`^doc-(noteref|backlink|endnotes)$`)).OnElements("a", "div")
	p.AllowAttrs("type", "checked", "disabled").OnElements("input")
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// RenderHTML converts markdown source to sanitized HTML.
func RenderHTML(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}

// Markdown returns a templ.Component that renders src as HTML.
func Markdown(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out, err := RenderHTML(src)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, string(out))
		return err
	})
}

// PlainText renders src and strips every tag, leaving collapsed text.
func PlainText(src string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return ""
	}
	// Block elements end up glued together once tags go; pad them first.
	padded := strings.NewReplacer("</p>", "</p> ", "</li>", "</li> ", "</h1>", "</h1> ",
		"</h2>", "</h2> ", "</h3>", "</h3> ", "<br>", " ", "<br/>", " ").Replace(buf.String())
	text := html.UnescapeString(strip.Sanitize(padded))
	return strings.TrimSpace(reSpace.ReplaceAllString(text, " "))
}

// Excerpt returns at most max runes of plain text from src, cut at a word
// boundary and suffixed with an ellipsis when shortened.
func Excerpt(src string, max int) string {
	text := PlainText(src)
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:max])
	if runes[max] != ' ' {
		if i := strings.LastIndexByte(cut, ' '); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// ReadingTime estimates minutes needed to read src, never less than one.
func ReadingTime(src string) int {
	words := len(strings.Fields(PlainText(src)))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
