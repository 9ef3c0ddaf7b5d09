package pubsite

import (
	"github.com/a-h/templ"

	"github.com/eringen/pubsite/catalog"
	"github.com/eringen/pubsite/theme"
	"github.com/eringen/pubsite/views"
)

// ViewFuncs holds the templ components the handlers and the static build
// render. DefaultViews supplies the built-in set; WithViews overrides
// individual entries.
type ViewFuncs struct {
	Home        func(d views.HomeData) templ.Component
	BlogSection func(posts []catalog.Post, l views.Links) templ.Component
	Article     func(d views.ArticleData) templ.Component
	Related     func(posts []catalog.Post, l views.Links) templ.Component
	ThemeToggle func(th theme.Theme, csrfToken, action string) templ.Component
	NotFound    func(site views.SiteConfig, l views.Links) templ.Component
	ServerError func(site views.SiteConfig, l views.Links) templ.Component
}

// DefaultViews returns the components from the views package.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		BlogSection: views.PostList,
		Article:     views.Article,
		Related:     views.RelatedList,
		ThemeToggle: views.ThemeToggle,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

func (v ViewFuncs) merge(o ViewFuncs) ViewFuncs {
	if o.Home != nil {
		v.Home = o.Home
	}
	if o.BlogSection != nil {
		v.BlogSection = o.BlogSection
	}
	if o.Article != nil {
		v.Article = o.Article
	}
	if o.Related != nil {
		v.Related = o.Related
	}
	if o.ThemeToggle != nil {
		v.ThemeToggle = o.ThemeToggle
	}
	if o.NotFound != nil {
		v.NotFound = o.NotFound
	}
	if o.ServerError != nil {
		v.ServerError = o.ServerError
	}
	return v
}
