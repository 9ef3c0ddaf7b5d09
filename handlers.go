package pubsite

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pubsite/catalog"
	"github.com/eringen/pubsite/theme"
	"github.com/eringen/pubsite/views"
)

const toggleURL = "/theme/toggle/"

func (a *App) links() views.Links {
	return views.Links{ToggleURL: toggleURL}
}

func (a *App) handleHome(c echo.Context) error {
	cat, err := a.Cache.Catalog()
	if err != nil {
		return err
	}
	tag := c.QueryParam("tag")
	d, err := a.homeData(cat, tag, a.links())
	if err != nil {
		return err
	}
	if isHTMX(c) && c.QueryParam("partial") == "blog" {
		return Render(c, a.Views.BlogSection(d.Posts, d.Links))
	}
	d.Theme = visitorTheme(c)
	d.CSRFToken = CsrfToken(c)
	return Render(c, a.Views.Home(d))
}

func (a *App) handlePost(c echo.Context) error {
	id := strings.TrimSuffix(c.Param("id"), ".html")
	cat, err := a.Cache.Catalog()
	if err != nil {
		return err
	}
	post, err := cat.ByID(id)
	if err != nil {
		return err
	}
	body, err := a.loadPostBody(post.ID)
	if err != nil {
		return err
	}
	if body.HTMLPath != "" {
		return c.File(body.HTMLPath)
	}
	related, err := cat.Related(post.ID, a.Config.RelatedLimit)
	if err != nil {
		return err
	}
	d := a.articleData(post, body, related, a.links())
	d.Theme = visitorTheme(c)
	d.CSRFToken = CsrfToken(c)
	return Render(c, a.Views.Article(d))
}

func (a *App) handleRelated(c echo.Context) error {
	limit, err := queryInt(c, "limit", a.Config.RelatedLimit)
	if err != nil {
		return err
	}
	cat, err := a.Cache.Catalog()
	if err != nil {
		return err
	}
	related, err := cat.Related(c.Param("id"), limit)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Related(related, a.links()))
}

// handleThemeToggle flips the visitor's theme. htmx requests get the new
// toggle button and a theme-changed event; plain form posts are sent back
// to the page they came from.
func (a *App) handleThemeToggle(c echo.Context) error {
	th, err := theme.NewState(sessionStorage{c}).Toggle()
	if err != nil {
		return err
	}
	if isHTMX(c) {
		trigger, err := json.Marshal(map[string]map[string]string{
			"theme-changed": {"value": th.String()},
		})
		if err != nil {
			return err
		}
		c.Response().Header().Set("HX-Trigger", string(trigger))
		return Render(c, a.Views.ThemeToggle(th, CsrfToken(c), toggleURL))
	}
	return c.Redirect(http.StatusSeeOther, localReferer(c))
}

// localReferer returns the path of a same-host Referer, or "/".
func localReferer(c echo.Context) string {
	ref := c.Request().Referer()
	if ref == "" {
		return "/"
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request().Host) {
		return "/"
	}
	if !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return u.RequestURI()
}

func (a *App) handleSitemap(c echo.Context) error {
	cat, err := a.Cache.Catalog()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, cat.All())
}

func (a *App) handleFeed(c echo.Context) error {
	cat, err := a.Cache.Catalog()
	if err != nil {
		return err
	}
	return a.renderRSS(c, cat.All())
}

func (a *App) handleRobots(c echo.Context) error {
	if p := a.Config.StaticDir + "/robots.txt"; fileExists(p) {
		return c.File(p)
	}
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, Robots(a.Config))
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.Config.StaticDir + "/favicon.svg")
}

// httpErrorHandler maps catalog errors to status codes. Pages get the
// not-found and error templates; /api/ gets JSON.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		err = echo.NewHTTPError(http.StatusNotFound, err.Error()).SetInternal(err)
	case errors.Is(err, catalog.ErrInvalidArgument):
		err = echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}

	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}
	api := strings.HasPrefix(c.Request().URL.Path, "/api/")

	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		if !api {
			_ = RenderStatus(c, code, a.Views.ServerError(a.Config.viewConfig(), a.links()))
			return
		}
		_ = c.JSON(code, map[string]string{"message": http.StatusText(code)})
		return
	}
	if code == http.StatusNotFound && !api {
		_ = RenderStatus(c, code, a.Views.NotFound(a.Config.viewConfig(), a.links()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
