package views

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/posts"
	"github.com/eringen/folio/theme"
)

func testPage() Page {
	return Page{
		Site:   SiteConfig{Name: "Folio", URL: "https://example.com", Description: "Notes", Author: "Sam"},
		Meta:   PageMeta{Title: "Folio", URL: "https://example.com/", OGType: "website"},
		Theme:  theme.Default(),
		Themes: theme.All(),
		CSRF:   "tok",
	}
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func samplePost() posts.Post {
	return posts.Post{
		Slug:      "hello",
		Title:     "Hello <World>",
		Date:      "2025-06-19",
		Published: time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC),
		Category:  "Go",
		Image:     "hello.png",
		Content:   "# Intro\n\nSome **bold** text.",
		Link:      "/blog/hello/",
	}
}

func TestHomeRendersThemeAndPosts(t *testing.T) {
	out := render(t, Home(testPage(), []posts.Post{samplePost()}))
	assert.Contains(t, out, "--color-primary: #fe9a00;")
	assert.Contains(t, out, `<option value="amber" selected>Amber</option>`)
	assert.Contains(t, out, `name="_csrf" value="tok"`)
	assert.Contains(t, out, "Hello &lt;World&gt;")
	assert.Contains(t, out, `href="/blog/hello/"`)
	assert.Contains(t, out, "June 19, 2025")
}

func TestHomeWithoutPosts(t *testing.T) {
	out := render(t, Home(testPage(), nil))
	assert.Contains(t, out, "No posts yet.")
}

func TestPostRendersMarkdownAndCover(t *testing.T) {
	out := render(t, Post(testPage(), samplePost(), nil))
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, `src="/blog/hello/cover"`)
	assert.Contains(t, out, "1 min read")
	assert.NotContains(t, out, "More in")
}

func TestPostRelated(t *testing.T) {
	other := samplePost()
	other.Slug, other.Title, other.Link = "other", "Other", "/blog/other/"
	out := render(t, Post(testPage(), samplePost(), []posts.Post{other}))
	assert.Contains(t, out, "More in Go")
	assert.Contains(t, out, `href="/blog/other/"`)
}

func TestBlogSectionMarksActiveCategory(t *testing.T) {
	out := render(t, BlogSection(BlogSectionData{
		Categories: []string{posts.LatestCategory, "Go"},
		Active:     "Go",
	}))
	assert.Contains(t, out, `href="/blog/?category=Go"`)
	assert.Contains(t, out, `class="active"`)
	assert.Contains(t, out, "No posts yet.")
}

func TestBlogSectionEscapesCategoryLinks(t *testing.T) {
	out := render(t, BlogSection(BlogSectionData{
		Categories: []string{posts.LatestCategory, "Go & Web"},
		Active:     posts.LatestCategory,
	}))
	assert.Contains(t, out, `href="/blog/?category=Go+%26+Web"`)
	assert.Contains(t, out, `hx-get="/blog/?partial=blog&amp;category=Go+%26+Web"`)
	assert.Contains(t, out, ">Go &amp; Web</a>")
}

func TestPageEscapesMetadata(t *testing.T) {
	p := testPage()
	p.Meta.Title = `Say "hi" <now>`
	post := samplePost()
	post.Title = "</script><script>alert(1)</script>"
	p.JSONLD = BlogPostingJsonLD(p.Site, post)

	out := render(t, Post(p, post, nil))
	assert.Contains(t, out, "<title>Say &#34;hi&#34; &lt;now&gt;</title>")
	assert.Contains(t, out, `<meta property="og:title" content="Say &#34;hi&#34; &lt;now&gt;">`)
	assert.NotContains(t, out, "<script>alert(1)")
	assert.Contains(t, out, `\u003c/script\u003e`)
}

func TestPostDropsUnsafeCoverURL(t *testing.T) {
	post := samplePost()
	post.Image = "javascript://example.com/%0aalert(1)"
	out := render(t, Post(testPage(), post, nil))
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, `src="about:invalid#TemplFailedSanitizationURL"`)
}

func TestNotFoundAndServerError(t *testing.T) {
	assert.Contains(t, render(t, NotFound(testPage(), "/blog/nope/")), "404")
	assert.Contains(t, render(t, ServerError(testPage())), "500")
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "https://example.com/blog/hello/", BuildURL("https://example.com", "blog", "hello"))
	assert.Equal(t, "https://example.com/blog/hello/", BuildURL("https://example.com/", "blog", "hello/"))
	assert.Equal(t, "https://example.com", BuildURL("https://example.com"))
}

func TestCoverURL(t *testing.T) {
	p := samplePost()
	assert.Equal(t, "/blog/hello/cover", CoverURL(p))
	p.Image = "https://cdn.example.com/a.png"
	assert.Equal(t, "https://cdn.example.com/a.png", CoverURL(p))
	p.Image = "/public/a.png"
	assert.Equal(t, "/public/a.png", CoverURL(p))
	p.Image = "../outside.png"
	assert.Empty(t, CoverURL(p))
	p.Image = ""
	assert.Empty(t, CoverURL(p))
}

func TestSummaryFallsBackToExcerpt(t *testing.T) {
	p := samplePost()
	assert.Equal(t, "Intro Some bold text.", Summary(p))
	p.Description = "Short."
	assert.Equal(t, "Short.", Summary(p))
}

func TestRelatedPosts(t *testing.T) {
	a := posts.Post{Slug: "a", Category: "Go"}
	b := posts.Post{Slug: "b", Category: "go"}
	c := posts.Post{Slug: "c", Category: "Rust"}
	d := posts.Post{Slug: "d", Category: "Go"}
	assert.Equal(t, []posts.Post{b}, RelatedPosts(a, []posts.Post{a, b, c, d}, 1))
	assert.Len(t, RelatedPosts(a, []posts.Post{a, b, c, d}, 5), 2)
	assert.Nil(t, RelatedPosts(posts.Post{Slug: "x"}, []posts.Post{a}, 3))
}

func TestBlogPostingJsonLD(t *testing.T) {
	js := BlogPostingJsonLD(testPage().Site, samplePost())
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(js), &got))
	assert.Equal(t, "BlogPosting", got["@type"])
	assert.Equal(t, "https://example.com/blog/hello/", got["url"])
	assert.Equal(t, "2025-06-19", got["datePublished"])
	assert.Equal(t, "https://example.com/blog/hello/cover", got["image"])
}
