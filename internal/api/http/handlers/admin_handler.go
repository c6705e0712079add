package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-community/internal/api/dto"
	"github.com/spec-kit/campus-community/internal/domain"
	"github.com/spec-kit/campus-community/internal/service"
	apperrors "github.com/spec-kit/campus-community/pkg/util"
)

// AdminHandler manages the superadmin workflow endpoints. Every route behind
// this handler is guarded by RequireSuperadmin.
type AdminHandler struct {
	service *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{service: adminService}
}

// VerifyUser PUT /admin/users/:id/verify.
func (h *AdminHandler) VerifyUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.service.VerifyUser(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("user verified successfully", dto.FullUserView(user)))
}

// ApproveContact PUT /admin/users/:id/approve-contact.
func (h *AdminHandler) ApproveContact(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	user, covered, err := h.service.ApproveContact(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OKMessage(
		fmt.Sprintf("contact approved successfully. %d listing(s) updated", covered),
		dto.FullUserView(user)))
}

// ApproveListingContact PUT /admin/listings/:id/approve-contact.
func (h *AdminHandler) ApproveListingContact(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	listing, err := h.service.ApproveListingContact(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("listing contact approved successfully", dto.ListingSummary(listing)))
}

// UpdateUserStatus PUT /admin/users/:id/status.
func (h *AdminHandler) UpdateUserStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.service.UpdateUserStatus(c.Context(), id, domain.UserStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("user status updated successfully", dto.FullUserView(user)))
}

// ListUsers GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.FullUserViews(users)))
}

// GetUser GET /admin/users/:id.
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.service.GetUser(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.FullUserView(user)))
}

// PendingVerifications GET /admin/pending-verifications.
func (h *AdminHandler) PendingVerifications(c *fiber.Ctx) error {
	users, err := h.service.PendingVerifications(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.FullUserViews(users)))
}

// PendingContactApprovals GET /admin/pending-contact-approvals.
func (h *AdminHandler) PendingContactApprovals(c *fiber.Ctx) error {
	users, err := h.service.PendingContactApprovals(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.FullUserViews(users)))
}

// DashboardStats GET /admin/dashboard/stats.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(fiber.Map{
		"users": fiber.Map{
			"total":                  stats.Users.Total,
			"verified":               stats.Users.Verified,
			"pendingVerification":    stats.Users.PendingVerification,
			"pendingContactApproval": stats.Users.PendingContactApproval,
		},
		"listings": fiber.Map{
			"total":     stats.Listings.Total,
			"available": stats.Listings.Available,
			"pending":   stats.Listings.Pending,
			"sold":      stats.Listings.Sold,
		},
		"interests": fiber.Map{
			"total":   stats.Interests.Total,
			"pending": stats.Interests.Pending,
		},
		"lostFound": fiber.Map{
			"total":  stats.LostFound.Total,
			"active": stats.LostFound.Active,
		},
	}))
}
