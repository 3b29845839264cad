package handler

import (
	"errors"
	"net/http"

	"friender/pkg/dto"
	"friender/pkg/helper"
	"friender/pkg/logger"
	"friender/services/auth/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService *service.AuthService
	validate    *validator.Validate
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService, validate: helper.NewValidator()}
}

func (h *AuthHandler) invalidForm(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"error":  "invalid_form",
		"fields": helper.ValidationErrors(err),
	})
}

// 회원가입
func (h *AuthHandler) SignupHandler(c echo.Context) error {
	var req dto.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid_body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return h.invalidForm(c, err)
	}

	token, err := h.authService.Signup(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "email_taken"})
		}
		logger.Logger.Error().Err(err).Msg("❌ Signup failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal_error"})
	}

	return c.JSON(http.StatusCreated, dto.TokenResponse{Token: token})
}

// 로그인
func (h *AuthHandler) LoginHandler(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid_body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return h.invalidForm(c, err)
	}

	token, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_credentials"})
		}
		logger.Logger.Error().Err(err).Msg("❌ Login failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal_error"})
	}

	return c.JSON(http.StatusCreated, dto.TokenResponse{Token: token})
}

func (h *AuthHandler) HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
