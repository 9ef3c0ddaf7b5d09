package pubsite

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pubsite/catalog"
)

// handleAPIPosts lists posts newest first. ?tag= filters by exact tag and
// ?recent=N keeps the first N.
func (a *App) handleAPIPosts(c echo.Context) error {
	cat, err := a.Cache.Catalog()
	if err != nil {
		return err
	}
	tag := c.QueryParam("tag")
	posts := cat.All()
	if tag != "" {
		posts = cat.ByTag(tag)
	}
	if c.QueryParam("recent") != "" {
		n, err := queryInt(c, "recent", 0)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("recent %d: %w", n, catalog.ErrInvalidArgument)
		}
		if n < len(posts) {
			posts = posts[:n]
		}
	}
	return c.JSON(http.StatusOK, nonNil(posts))
}

func (a *App) handleAPIPost(c echo.Context) error {
	cat, err := a.Cache.Catalog()
	if err != nil {
		return err
	}
	post, err := cat.ByID(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleAPIRelated(c echo.Context) error {
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
	return c.JSON(http.StatusOK, nonNil(related))
}

func (a *App) handleAPITags(c echo.Context) error {
	cat, err := a.Cache.Catalog()
	if err != nil {
		return err
	}
	tags := cat.UniqueTags()
	if tags == nil {
		tags = []string{}
	}
	return c.JSON(http.StatusOK, tags)
}
