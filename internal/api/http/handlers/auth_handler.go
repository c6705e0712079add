package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-community/internal/api/dto"
	"github.com/spec-kit/campus-community/internal/auth"
	"github.com/spec-kit/campus-community/internal/service"
	apperrors "github.com/spec-kit/campus-community/pkg/util"
)

// AuthHandler manages registration and login endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Register POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Username) == "" ||
		strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.SchoolEmail) == "" ||
		req.Password == "" {
		return apperrors.NewValidationError("name, username, email, schoolEmail and password are required", nil)
	}
	if len(req.Password) < 6 {
		return apperrors.NewValidationError("password must be at least 6 characters long", nil)
	}

	user, token, exp, err := h.service.Register(c.Context(), service.RegisterInput{
		Name:           strings.TrimSpace(req.Name),
		Username:       strings.TrimSpace(req.Username),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		SchoolEmail:    strings.ToLower(strings.TrimSpace(req.SchoolEmail)),
		PersonalEmail:  req.PersonalEmail,
		Password:       req.Password,
		Phone:          req.Phone,
		DateOfBirth:    req.DateOfBirth,
		UniversityName: req.UniversityName,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage(
		"registration successful. Your account is pending verification by an administrator",
		dto.AuthResponse{User: dto.FullUserView(user), Token: token, ExpiresAt: exp},
	))
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password are required", nil)
	}

	user, token, exp, err := h.service.Login(c.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("login successful",
		dto.AuthResponse{User: dto.FullUserView(user), Token: token, ExpiresAt: exp}))
}

// SuperadminLogin POST /auth/superadmin/login.
func (h *AuthHandler) SuperadminLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password are required", nil)
	}

	user, token, exp, err := h.service.SuperadminLogin(c.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("login successful",
		dto.AuthResponse{User: dto.FullUserView(user), Token: token, ExpiresAt: exp}))
}

// Me GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("please authenticate first")
	}
	return c.JSON(dto.OK(dto.FullUserView(user)))
}

// ChangePassword PUT /auth/update-password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("please authenticate first")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("currentPassword and newPassword are required", nil)
	}

	if err := h.service.ChangePassword(c.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("password updated successfully", nil))
}
