// Package api exposes the task-management operations as a plain
// request/response JSON API.
package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/amitkumarsingh01/ACS-Cyber/internal/repository"
	"github.com/amitkumarsingh01/ACS-Cyber/internal/service"
)

// Server wires the HTTP layer to the services.
type Server struct {
	echo      *echo.Echo
	addr      string
	jwtSecret []byte

	users   *repository.UserRepository
	userSvc *service.UserService
	taskSvc *service.TaskService
}

func New(addr, jwtSecret string, users *repository.UserRepository, userSvc *service.UserService, taskSvc *service.TaskService) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	s := &Server{
		echo:      e,
		addr:      addr,
		jwtSecret: []byte(jwtSecret),
		users:     users,
		userSvc:   userSvc,
		taskSvc:   taskSvc,
	}
	s.routes()

	return s
}

func (s *Server) routes() {
	// Public routes
	s.echo.POST("/api/signup", s.handleSignup)
	s.echo.POST("/api/login", s.handleLogin)
	s.echo.POST("/api/password/forgot", s.handleForgotPassword)
	s.echo.POST("/api/password/reset", s.handleResetPassword)

	// Authenticated routes
	protected := s.echo.Group("/api", s.requireAuth)
	protected.GET("/tasks", s.handleListTasks)
	protected.POST("/tasks", s.handleCreateTask)
	protected.PUT("/tasks/:id", s.handleUpdateTask)
	protected.PATCH("/tasks/:id/status", s.handleSetStatus)
	protected.DELETE("/tasks/:id", s.handleDeleteTask)
	protected.GET("/tasks/stats", s.handleStats)
	protected.GET("/categories", s.handleCategories)
	protected.GET("/calendar", s.handleCalendar)
	protected.POST("/password/change", s.handleChangePassword)
	protected.POST("/telegram", s.handleLinkTelegram)
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	return s.echo.Start(s.addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
