// Package web exposes the trellis services as a JSON HTTP API.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/hay-kot/trellis/internal/trellis"
)

// Server is the trellis HTTP API server.
type Server struct {
	app    *trellis.App
	log    zerolog.Logger
	router *gin.Engine
	now    func() time.Time
}

// NewServer creates a server over the given app.
func NewServer(app *trellis.App, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		app:    app,
		log:    log.With().Str("component", "web").Logger(),
		router: router,
		now:    time.Now,
	}

	api := router.Group("/api")
	{
		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleCreateTask)
		api.GET("/tasks/:id", s.handleGetTask)
		api.PUT("/tasks/:id", s.handleUpdateTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.POST("/tasks/:id/complete", s.handleCompleteTask)
		api.POST("/tasks/:id/reactivate", s.handleReactivateTask)

		api.GET("/projects", s.handleListProjects)
		api.POST("/projects", s.handleCreateProject)
		api.GET("/projects/:id", s.handleGetProject)
		api.PUT("/projects/:id", s.handleUpdateProject)
		api.DELETE("/projects/:id", s.handleDeleteProject)
		api.POST("/projects/:id/complete", s.handleCompleteProject)
		api.POST("/projects/:id/reactivate", s.handleReactivateProject)
		api.POST("/projects/:id/task-urls", s.handleAddTaskURL)
		api.GET("/projects/:id/tasks", s.handleListProjectTasks)

		api.GET("/settings", s.handleGetSettings)
		api.PUT("/settings", s.handleUpdateSettings)

		api.GET("/stats", s.handleStats)
		api.GET("/stats/daily", s.handleDailyStats)
	}

	return s
}

// Handler returns the underlying http.Handler, used by tests and by Run.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves the API until the context is canceled.
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

	s.log.Info().Str("addr", addr).Msg("http api listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
