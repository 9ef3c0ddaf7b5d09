// Package pubsite serves and builds a small blog whose post list lives in a
// posts.yaml file. Post pages come from hand-written HTML or Markdown files
// under the posts directory. Visitors can switch between a dark and a light
// theme.
//
// The HTML is produced by templ components from the views package; callers
// can swap any of them through ViewFuncs.
package pubsite

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/eringen/pubsite/markdown"
)

// App wires together the catalog cache, handlers, middleware, and views.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Cache  *CatalogCache
	Views  ViewFuncs

	md           *markdown.Renderer
	limiter      *RateLimiter
	customRoutes []func(*App)
	watch        bool
}

// New creates an App with the given configuration. Routes and middleware
// are registered immediately, so a.Echo can be used as an http.Handler
// before Start.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)

	a := &App{
		Config: cfg,
		Echo:   e,
		Views:  DefaultViews(),
		md:     markdown.New(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.Config.SessionSecret == "" {
		a.Config.SessionSecret = randomSecret()
		e.Logger.Warn("pubsite: session_secret is not set; theme preferences reset on restart")
	}

	a.Cache = NewCatalogCache(a.Config.PostsFile, a.Config.CacheTTL, e.Logger)
	a.limiter = NewRateLimiter(a.Config.ToggleLimit, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a
}

// Start loads the catalog and serves until ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	if _, err := a.Cache.Catalog(); err != nil {
		return fmt.Errorf("pubsite: load posts: %w", err)
	}
	if a.watch {
		go func() {
			if err := a.Cache.Watch(ctx); err != nil {
				a.Echo.Logger.Errorf("pubsite: watch: %v", err)
			}
		}()
	}

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.limiter.Sweep()
			}
		}
	}()

	errc := make(chan error, 1)
	go func() {
		errc <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.Echo.Shutdown(shutdownCtx)
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/theme.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/posts/:id", a.handlePost)
	e.GET("/posts/:id/", a.handlePost)
	e.GET("/posts/:id/related/", a.handleRelated)
	e.POST(toggleURL, a.handleThemeToggle, a.limiter.Middleware)

	api := e.Group("/api")
	api.GET("/posts", a.handleAPIPosts)
	api.GET("/posts/:id", a.handleAPIPost)
	api.GET("/posts/:id/related", a.handleAPIRelated)
	api.GET("/tags", a.handleAPITags)
}

// Close shuts the server down immediately.
func (a *App) Close() error {
	return a.Echo.Close()
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("pubsite: read random: " + err.Error())
	}
	return hex.EncodeToString(b)
}
