package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"dashboard/config"
	"dashboard/events"
	"dashboard/handler"
	"dashboard/store"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/acme/autocert"
)

//go:embed templates assets
var content embed.FS

type TemplateRegistry struct {
	templates map[string]*template.Template
}

func (t *TemplateRegistry) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.templates[name]
	if !ok {
		err := errors.New("template not found: " + name)
		return err
	}

	return tmpl.ExecuteTemplate(w, "base.html", data)
}

func newTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: map[string]*template.Template{
			"dashboard.html": template.Must(template.ParseFS(content, "templates/dashboard.html", "templates/base.html")),
		},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Running database schema migrations...")
	st, err := store.Open(cfg.DBDriver, cfg.DBURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening component store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	var pub events.Publisher = events.NoopPublisher{}
	if cfg.NATSURL != "" {
		nats, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error connecting to NATS: %v\n", err)
			os.Exit(1)
		}
		pub = nats
	}
	defer pub.Close()

	e := newServer(cfg, st, pub)

	go func() {
		var err error
		if cfg.Address != "" {
			err = e.Start(cfg.Address)
		} else {
			// Cache certificates to avoid issues with rate limits (https://letsencrypt.org/docs/rate-limits)
			e.AutoTLSManager.Cache = autocert.DirCache(cfg.CertCacheDir)
			if cfg.WhitelistHost != "" {
				e.AutoTLSManager.HostPolicy = autocert.HostWhitelist(cfg.WhitelistHost)
			}
			e.Pre(middleware.HTTPSRedirect())
			err = e.StartAutoTLS(":443")
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	e.Logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}

func newServer(cfg *config.Config, st store.ComponentStore, pub events.Publisher) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(cfg.LogLevel)
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("1M"))

	h := handler.Handler{
		Store:       st,
		Events:      pub,
		Environment: cfg.Environment,
	}

	// Frontend
	e.GET("/", h.GetDashboard)
	e.GET("/health", h.Health)
	e.StaticFS("/static", echo.MustSubFS(content, "assets"))
	e.Renderer = newTemplateRegistry()

	// Backend
	api := e.Group("/api")
	api.GET("/components", h.ListComponents)
	api.POST("/components", h.UpsertComponent)

	e.HTTPErrorHandler = customHTTPErrorHandler
	return e
}

// customHTTPErrorHandler answers API callers with {message} and everyone
// else with a static error page.
func customHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	message := err.Error()
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		message = fmt.Sprint(he.Message)
	}
	if code != http.StatusNotFound {
		c.Logger().Error(err)
	}

	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		if err := c.JSON(code, map[string]string{"message": message}); err != nil {
			c.Logger().Error(err)
		}
		return
	}

	errorPage := fmt.Sprintf("assets/%d.html", code)
	page, err := fs.ReadFile(content, errorPage)
	if err != nil {
		page = []byte(http.StatusText(code))
	}
	if err := c.HTMLBlob(code, page); err != nil {
		c.Logger().Error(err)
	}
}
