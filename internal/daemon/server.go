// Package daemon exposes a running sync loop over a local HTTP port so the
// status, history and stop commands can talk to it.
package daemon

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"filesync/internal/repository"
	"filesync/internal/syncer"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	echo   *echo.Echo
	loop   *syncer.Loop
	repo   *repository.ActionRepository
	log    *zap.Logger
	port   int
	stopCh chan struct{}
}

func NewServer(loop *syncer.Loop, log *zap.Logger, port int) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:   e,
		loop:   loop,
		repo:   repository.NewActionRepository(),
		log:    log,
		port:   port,
		stopCh: make(chan struct{}, 1),
	}
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/status", s.handleStatus)
	s.echo.GET("/history", s.handleHistory)
	s.echo.POST("/stop", s.handleStop)
}

func (s *Server) Start() {
	go func() {
		addr := ":" + strconv.Itoa(s.port)
		s.log.Debug("daemon listening", zap.String("addr", addr))

		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Debug("daemon server error", zap.Error(err))
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// StopCh fires when a stop request has been accepted over HTTP.
func (s *Server) StopCh() <-chan struct{} {
	return s.stopCh
}

func (s *Server) handleStatus(c echo.Context) error {
	stats, err := s.repo.GetStats()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"run":   s.loop.Snapshot(),
		"total": stats,
	})
}

func (s *Server) handleHistory(c echo.Context) error {
	if runID := c.QueryParam("run"); runID != "" {
		actions, err := s.repo.GetByRun(runID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}

		return c.JSON(http.StatusOK, actions)
	}

	n := 20
	if nStr := c.QueryParam("n"); nStr != "" {
		if parsed, err := strconv.Atoi(nStr); err == nil && parsed > 0 {
			n = parsed
		}
	}

	actions, err := s.repo.GetRecent(n)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, actions)
}

func (s *Server) handleStop(c echo.Context) error {
	select {
	case s.stopCh <- struct{}{}:
	default:
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "stopping"})
}
