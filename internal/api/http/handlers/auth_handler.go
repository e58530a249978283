package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// RequestValidator validates request DTOs into field-level errors.
type RequestValidator interface {
	Struct(req any) error
}

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	auth     *service.AuthService
	validate RequestValidator
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, validate RequestValidator) *AuthHandler {
	return &AuthHandler{auth: authService, validate: validate}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      user.Public(),
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      user.Public(),
	})
}
