package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/amitkumarsingh01/ACS-Cyber/internal/repository"
	"github.com/amitkumarsingh01/ACS-Cyber/internal/service"
)

// respondError maps the service error taxonomy onto HTTP statuses.
func (s *Server) respondError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrDeleteForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicateUser):
		status = http.StatusConflict
	case errors.Is(err, repository.ErrQuotaExceeded):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		log.Printf("[warn] %s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(status, echo.Map{"error": "internal error"})
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}

func (s *Server) handleSignup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	user, err := s.userSvc.SignUp(c.Request().Context(), req.Username, req.Email, req.Password, req.Tier)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, newUserResponse(user))
}

func (s *Server) handleLogin(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	user, err := s.userSvc.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return s.respondError(c, err)
	}

	token, err := s.issueToken(user, time.Now())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": newUserResponse(user)})
}

func (s *Server) handleForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	// The token travels by mail only; the response never carries it.
	if _, err := s.userSvc.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "recovery email sent"})
}

func (s *Server) handleResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := s.userSvc.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}

func (s *Server) handleChangePassword(c echo.Context) error {
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	user := currentUser(c)
	if err := s.userSvc.ChangePassword(c.Request().Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}

func (s *Server) handleLinkTelegram(c echo.Context) error {
	var req TelegramRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	user := currentUser(c)
	if err := s.userSvc.SetTelegramChat(c.Request().Context(), user.ID, req.ChatID); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "telegram chat linked"})
}
