package folio

import (
	"github.com/a-h/templ"

	"github.com/eringen/folio/posts"
	"github.com/eringen/folio/views"
)

// ViewFuncs holds the templ components the handlers render. Sites can
// replace any of them with WithViews; DefaultViews returns the built-in set.
type ViewFuncs struct {
	Home        func(p views.Page, recent []posts.Post) templ.Component
	Blog        func(p views.Page, section views.BlogSectionData) templ.Component
	BlogSection func(section views.BlogSectionData) templ.Component
	Post        func(p views.Page, post posts.Post, related []posts.Post) templ.Component
	NotFound    func(p views.Page, path string) templ.Component
	ServerError func(p views.Page) templ.Component
}

// DefaultViews returns the components shipped in package views.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		Blog:        views.Blog,
		BlogSection: views.BlogSection,
		Post:        views.Post,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}
