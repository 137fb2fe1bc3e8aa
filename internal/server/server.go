// Package server exposes structuring and translation over a JSON HTTP API
// for the presentation layer.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ZaguanLabs/medlai"
)

// Config holds the server's HTTP settings.
type Config struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    string        // e.g. "1M"; empty disables the limit
	SessionIdle  time.Duration // how long an idle client session is remembered
}

// Server wires the structuring engine and the resolver to HTTP routes.
type Server struct {
	echo       *echo.Echo
	http       *http.Server
	structurer medlai.Structurer
	resolver   *medlai.Resolver
	hospital   medlai.HospitalBranding
	sessions   *sessionStore
	logger     zerolog.Logger
}

// New builds the server and registers its routes.
func New(structurer medlai.Structurer, resolver *medlai.Resolver, hospital medlai.HospitalBranding, cfg Config, logger zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	s := &Server{
		echo:       e,
		structurer: structurer,
		resolver:   resolver,
		hospital:   hospital,
		sessions:   newSessionStore(cfg.SessionIdle),
		logger:     logger,
		http: &http.Server{
			Handler:      e,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}

	e.Use(RequestID())
	e.Use(Logger(logger))
	e.Use(Recovery(logger))
	if cfg.BodyLimit != "" {
		e.Use(echomw.BodyLimit(cfg.BodyLimit))
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/healthz", s.handleHealth)

	v1 := s.echo.Group("/v1")
	v1.POST("/structure", s.handleStructure)
	v1.POST("/translate", s.handleTranslate)
	v1.POST("/process", s.handleProcess)
	v1.POST("/diff", s.handleDiff)
	v1.DELETE("/cache", s.handleClearCache)
	v1.GET("/languages", s.handleLanguages)
	v1.GET("/stats", s.handleStats)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.http.Addr = addr
	s.logger.Info().Str("addr", addr).Msg("http server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
