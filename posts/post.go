// Package posts loads blog posts from a flat directory of markdown files with
// YAML frontmatter. Every call re-reads the directory; nothing is cached.
package posts

import (
	"sort"
	"strings"
	"time"
)

// Post is a single published article. Posts are values; the store never
// hands out shared state.
type Post struct {
	Slug        string
	Title       string
	Date        string    // normalized frontmatter date, e.g. "2025-06-19"
	Published   time.Time // Date parsed; zero when missing or unparseable
	Description string
	Category    string
	Image       string // trimmed cover path; "" when absent
	Content     string // markdown body without frontmatter
	Link        string
	Extra       map[string]string
}

// HasImage reports whether the post declares a cover image.
func (p Post) HasImage() bool {
	return p.Image != ""
}

// ExternalImage reports whether the cover is a URL or site path to be used as
// is rather than a file in the content directory.
func (p Post) ExternalImage() bool {
	return p.Image != "" && remoteImage(p.Image)
}

// Attr returns an extra frontmatter attribute.
func (p Post) Attr(key string) (string, bool) {
	v, ok := p.Extra[key]
	return v, ok
}

// LatestCategory is the pseudo category that selects every post.
const LatestCategory = "Latest"

// Categories returns the sorted, deduplicated non-empty categories of posts.
// Categories that differ only in case collapse to the first spelling seen.
func Categories(posts []Post) []string {
	seen := make(map[string]struct{})
	var result []string
	for _, p := range posts {
		c := strings.TrimSpace(p.Category)
		if c == "" {
			continue
		}
		key := strings.ToLower(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return strings.ToLower(result[i]) < strings.ToLower(result[j])
	})
	return result
}

// FilterByCategory returns the posts whose category matches, ignoring case.
// An empty category or LatestCategory returns posts unchanged.
func FilterByCategory(posts []Post, category string) []Post {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, LatestCategory) {
		return posts
	}
	var filtered []Post
	for _, p := range posts {
		if strings.EqualFold(strings.TrimSpace(p.Category), category) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// sortNewestFirst orders posts by publication time descending. Posts without
// a usable date carry the zero time and end up last; slug breaks ties.
func sortNewestFirst(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i].Published, posts[j].Published
		if !a.Equal(b) {
			return a.After(b)
		}
		return posts[i].Slug < posts[j].Slug
	})
}
