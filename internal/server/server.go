// Package server exposes analysis reports over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"stock-analyzer/internal/config"
	"stock-analyzer/internal/interfaces"
	"stock-analyzer/internal/logger"
	"stock-analyzer/internal/metrics"
)

// Server wires the analyzer behind an Echo router.
type Server struct {
	echo     *echo.Echo
	analyzer interfaces.Analyzer
	cfg      *config.Config
}

// New builds the HTTP server and registers its routes.
func New(cfg *config.Config, analyzer interfaces.Analyzer) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{echo: e, analyzer: analyzer, cfg: cfg}

	e.GET("/healthz", s.health)
	e.GET("/api/v1/analysis/:symbol", s.analysis)

	return s
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	logger.Info(context.Background(), "HTTP server starting", "address", s.cfg.Server.Addr)
	return s.echo.Start(s.cfg.Server.Addr)
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (s *Server) analysis(c echo.Context) error {
	symbol := c.Param("symbol")

	report, err := s.analyzer.Analyze(c.Request().Context(), symbol)
	if err != nil {
		return s.analysisError(c, symbol, err)
	}

	// Every fetched headline was classified; the response carries only the
	// configured top slice.
	if len(report.Headlines) > s.cfg.TopNews {
		report.Headlines = report.Headlines[:s.cfg.TopNews]
	}
	return c.JSON(http.StatusOK, report)
}

func (s *Server) analysisError(c echo.Context, symbol string, err error) error {
	switch {
	case errors.Is(err, metrics.ErrInvalidSnapshot):
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": fmt.Sprintf("unknown ticker symbol '%s'", symbol),
		})
	case errors.Is(err, metrics.ErrMissingHistory):
		return c.JSON(http.StatusBadGateway, echo.Map{
			"error": fmt.Sprintf("no price history available for '%s'", symbol),
		})
	default:
		logger.ErrorWithErr(c.Request().Context(), "Analysis request failed", err, "symbol", symbol)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "analysis failed"})
	}
}
