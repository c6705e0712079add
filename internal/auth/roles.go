package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-community/internal/domain"
	apperrors "github.com/spec-kit/campus-community/pkg/util"
)

// RequireSuperadmin ensures the caller holds the superadmin role.
func RequireSuperadmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := UserFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("please authenticate first")
		}
		if user.Role != domain.RoleSuperadmin {
			return apperrors.NewForbidden("superadmin access required")
		}
		return c.Next()
	}
}

// RequireVerified gates feature access behind administrator verification.
func RequireVerified() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := UserFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("please authenticate first")
		}
		if !user.IsVerified {
			return apperrors.NewForbidden("your account is pending verification. Please wait for administrator approval to access this feature")
		}
		return c.Next()
	}
}
