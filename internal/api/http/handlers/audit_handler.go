package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-community/internal/api/dto"
	"github.com/spec-kit/campus-community/internal/repository"
	"github.com/spec-kit/campus-community/internal/service"
)

// AuditHandler exposes the audit trail to superadmins.
type AuditHandler struct {
	service *service.AuditService
}

// NewAuditHandler constructs handler.
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{service: auditService}
}

// List GET /admin/audit-logs.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	page, limit, offset := pageParams(c, 50)
	filter := repository.AuditFilter{Limit: limit, Offset: offset}

	if userStr := c.Query("userId"); userStr != "" {
		if userID, err := strconv.ParseInt(userStr, 10, 64); err == nil {
			filter.UserID = &userID
		}
	}
	if action := c.Query("action"); action != "" {
		filter.Action = &action
	}
	if resource := c.Query("resource"); resource != "" {
		filter.Resource = &resource
	}
	if method := c.Query("method"); method != "" {
		filter.Method = &method
	}
	if statusStr := c.Query("statusCode"); statusStr != "" {
		if status, err := strconv.Atoi(statusStr); err == nil {
			filter.StatusCode = &status
		}
	}
	filter.From = parseTime(c.Query("from"))
	filter.To = parseTime(c.Query("to"))

	entries, total, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.Page(dto.AuditLogViews(entries), dto.NewPagination(page, limit, total)))
}

// Get GET /admin/audit-logs/:id.
func (h *AuditHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	entry, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.AuditLogView(entry)))
}

// Stats GET /admin/audit-logs/stats.
func (h *AuditHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context(), parseTime(c.Query("from")), parseTime(c.Query("to")))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.AuditStatsView(stats)))
}
