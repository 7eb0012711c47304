package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/amitkumarsingh01/ACS-Cyber/internal/calendar"
	"github.com/amitkumarsingh01/ACS-Cyber/internal/repository"
	"github.com/amitkumarsingh01/ACS-Cyber/internal/service"
)

func taskInput(req TaskRequest) service.TaskInput {
	return service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Category:    req.Category,
		Priority:    req.Priority,
	}
}

func parseTaskID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", c.Param("id"))
	}
	return uint(id), nil
}

func parseStatusFilter(raw string) (repository.StatusFilter, error) {
	switch raw {
	case "", "all":
		return repository.StatusAll, nil
	case "completed":
		return repository.StatusCompleted, nil
	case "uncompleted":
		return repository.StatusUncompleted, nil
	default:
		return repository.StatusAll, fmt.Errorf("invalid status filter %q", raw)
	}
}

func (s *Server) handleCreateTask(c echo.Context) error {
	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	task, err := s.taskSvc.Create(c.Request().Context(), currentUser(c), taskInput(req))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

func (s *Server) handleListTasks(c echo.Context) error {
	status, err := parseStatusFilter(c.QueryParam("status"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	tasks, err := s.taskSvc.List(c.Request().Context(), currentUser(c), status, c.QueryParam("category"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	task, err := s.taskSvc.Update(c.Request().Context(), currentUser(c), id, taskInput(req))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleSetStatus(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	task, err := s.taskSvc.SetStatus(c.Request().Context(), currentUser(c), id, req.Completed)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	id, err := parseTaskID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := s.taskSvc.Delete(c.Request().Context(), currentUser(c), id); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "task deleted"})
}

func (s *Server) handleStats(c echo.Context) error {
	stats, err := s.taskSvc.Stats(c.Request().Context(), currentUser(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) handleCategories(c echo.Context) error {
	categories, err := s.taskSvc.Categories(c.Request().Context(), currentUser(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (s *Server) handleCalendar(c echo.Context) error {
	now := time.Now()
	year, month := now.Year(), now.Month()

	if raw := c.QueryParam("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 2000 || y > 2100 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("invalid year %q", raw)})
		}
		year = y
	}
	if raw := c.QueryParam("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("invalid month %q", raw)})
		}
		month = time.Month(m)
	}

	tasks, err := s.taskSvc.MonthTasks(c.Request().Context(), currentUser(c), year, month)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, calendar.MonthGrid(year, month, tasks, now))
}
