// Package httpapi exposes a domain.TaskManager over a JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/tasktracker/internal/domain"
)

const shutdownTimeout = 5 * time.Second

// Server is the HTTP front end of the tracker.
type Server struct {
	items  domain.TaskManager
	logger domain.Logger
	router *gin.Engine
}

// NewServer creates a server over items. items must be safe for concurrent
// use; the application passes a tracker.Synchronized.
func NewServer(items domain.TaskManager, logger domain.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	s := &Server{
		items:  items,
		logger: logger,
		router: router,
	}

	tasks := router.Group("/tasks")
	{
		tasks.GET("", s.handleListTasks)
		tasks.POST("", s.handleSaveTask)
		tasks.GET("/:id", s.handleGetTask)
		tasks.DELETE("/:id", s.handleDeleteTask)
	}

	subtasks := router.Group("/subtasks")
	{
		subtasks.GET("", s.handleListSubtasks)
		subtasks.POST("", s.handleSaveSubtask)
		subtasks.GET("/:id", s.handleGetSubtask)
		subtasks.DELETE("/:id", s.handleDeleteSubtask)
	}

	epics := router.Group("/epics")
	{
		epics.GET("", s.handleListEpics)
		epics.POST("", s.handleSaveEpic)
		epics.GET("/:id", s.handleGetEpic)
		epics.GET("/:id/subtasks", s.handleEpicSubtasks)
		epics.DELETE("/:id", s.handleDeleteEpic)
	}

	router.GET("/history", s.handleHistory)
	router.GET("/prioritized", s.handlePrioritized)

	return s
}

// Handler returns the server's http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info(0, "http", "listening on "+addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info(0, "http", "server stopped")
	return nil
}

// requestLogger logs one line per request through the domain logger.
func requestLogger(logger domain.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		msg := fmt.Sprintf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Microsecond))
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error(0, "http", msg)
		case status >= http.StatusBadRequest:
			logger.Warn(0, "http", msg)
		default:
			logger.Debug(0, "http", msg)
		}
	}
}
