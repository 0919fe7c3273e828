package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nao1215/mailsafe/internal/config"
	"github.com/nao1215/mailsafe/internal/model"
)

// LivenessMessage is the body returned by GET /.
const LivenessMessage = "mailsafe is running"

// Analyzer runs one analysis. *analyzer.Analyzer satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, payload *model.Payload, opts model.Options) (*model.AnalysisResult, error)
}

// Server is the HTTP front end of mailsafe.
type Server struct {
	echo     *echo.Echo
	analyzer Analyzer
	logger   *slog.Logger
}

// New creates a Server with its middleware stack and routes registered.
func New(cfg *config.Config, a Analyzer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()

	s := &Server{
		echo:     e,
		analyzer: a,
		logger:   logger,
	}
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:     true,
		LogURI:        true,
		LogStatus:     true,
		LogLatency:    true,
		LogRequestID:  true,
		LogError:      true,
		HandleError:   true,
		LogValuesFunc: s.logRequest,
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: s.logPanic,
	}))
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept},
	}))
	if cfg.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.BodyLimit))
	}

	e.GET("/", s.handleRoot)
	e.POST("/api/analyze", s.handleAnalyze)

	return s
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr and serves until Shutdown is called.
// After a graceful shutdown it returns http.ErrServerClosed.
func (s *Server) Start(addr string) error {
	s.logger.Info("server listening", "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")
	return s.echo.Shutdown(ctx)
}

func (s *Server) logRequest(c echo.Context, v middleware.RequestLoggerValues) error {
	level := slog.LevelInfo
	switch {
	case v.Status >= http.StatusInternalServerError:
		level = slog.LevelError
	case v.Status >= http.StatusBadRequest:
		level = slog.LevelWarn
	}

	attrs := []slog.Attr{
		slog.String("method", v.Method),
		slog.String("uri", v.URI),
		slog.Int("status", v.Status),
		slog.Duration("latency", v.Latency),
		slog.String("request_id", v.RequestID),
	}
	if v.Error != nil {
		attrs = append(attrs, slog.Any("error", v.Error))
	}
	s.logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
	return nil
}

func (s *Server) logPanic(c echo.Context, err error, stack []byte) error {
	s.logger.Error("handler panicked",
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		"error", err,
		"stack", string(stack),
	)
	return err
}
