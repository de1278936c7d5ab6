// Package api serves the standards rules and data over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/openstudio-standards/osstd/internal/api/handlers"
	"github.com/openstudio-standards/osstd/internal/api/middleware"
	"github.com/openstudio-standards/osstd/standards"
)

const shutdownTimeout = 10 * time.Second

// Config configures the server.
type Config struct {
	Addr string
	// Data replaces the embedded standards tables when set.
	Data *standards.Data
	// CacheTTL is how long an unused Standard stays cached.
	CacheTTL time.Duration
	// AllowedOrigins lists the CORS origins; empty allows any origin.
	AllowedOrigins []string
	Release        bool
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.NoRoute(middleware.NotFound())

	h := handlers.NewStandardsHandler(handlers.NewStandardCache(cfg.Data, cfg.CacheTTL))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/templates", h.ListTemplates)
		api.GET("/tables", h.ListTables)
		api.GET("/tables/:table", h.LookupTable)

		api.POST("/efficiency/:kind", h.ComponentEfficiency)

		api.GET("/baseline/system-type", h.SystemType)
		api.POST("/baseline/systems", h.BaselineSystems)

		api.GET("/prototypes", h.ListPrototypes)
		api.GET("/prototypes/:building_type", h.GetPrototype)
	}
	return router
}

// NewServer wraps the router in CORS handling.
func NewServer(cfg Config) *http.Server {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           c.Handler(NewRouter(cfg)),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// ListenAndServe runs the server until ctx is cancelled, then shuts it
// down gracefully.
func ListenAndServe(ctx context.Context, cfg Config) error {
	srv := NewServer(cfg)
	errc := make(chan error, 1)
	go func() {
		logrus.Infof("Starting API server on %s", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logrus.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
