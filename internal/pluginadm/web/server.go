// Package web serves the plugin page over HTTP. Every request builds a fresh
// page.Page, runs it to completion and renders the resulting view, so the
// server keeps no state between requests.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	genericoptions "github.com/kiosk404/pluginadm/internal/pkg/options"
	"github.com/kiosk404/pluginadm/pkg/logger"
)

// Config defines the configuration of the web page server.
type Config struct {
	ServerOptions *genericoptions.ServerOptions
	Deps          DepsProvider
	// RequestTimeout bounds the work done for a single request.
	RequestTimeout time.Duration
}

type completedConfig struct {
	*Config
}

// Complete fills in any fields not set that are required to have valid data.
func (c *Config) Complete() completedConfig {
	if c.ServerOptions == nil {
		c.ServerOptions = genericoptions.NewServerOptions()
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = time.Minute
	}
	return completedConfig{c}
}

// New creates the server. Nothing listens until Run is called.
func (c completedConfig) New() (*Server, error) {
	if c.Deps == nil {
		return nil, errors.New("web: no page dependencies")
	}

	gin.SetMode(c.ServerOptions.Mode)
	engine := gin.New()

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	engine.SetHTMLTemplate(tmpl)

	initRouter(engine, &routerDeps{
		pages:     &PageHandler{deps: c.Deps, timeout: c.RequestTimeout},
		profiling: c.ServerOptions.Profiling,
	})

	return &Server{
		engine: engine,
		srv: &http.Server{
			Addr:              c.ServerOptions.BindAddress,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Server is the web page server.
type Server struct {
	engine *gin.Engine
	srv    *http.Server
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address until Close is called.
func (s *Server) Run() error {
	logger.Info("[Web] serving plugin pages on http://%s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("[Web] server on %s stopped", s.srv.Addr)
	return nil
}

// Close stops accepting connections and waits for in-flight requests until
// ctx is done.
func (s *Server) Close(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
