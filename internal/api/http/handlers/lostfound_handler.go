package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-community/internal/api/dto"
	"github.com/spec-kit/campus-community/internal/auth"
	"github.com/spec-kit/campus-community/internal/domain"
	"github.com/spec-kit/campus-community/internal/repository"
	"github.com/spec-kit/campus-community/internal/service"
	apperrors "github.com/spec-kit/campus-community/pkg/util"
)

// LostFoundHandler manages lost-and-found endpoints.
type LostFoundHandler struct {
	service *service.LostFoundService
}

// NewLostFoundHandler constructs handler.
func NewLostFoundHandler(lostFoundService *service.LostFoundService) *LostFoundHandler {
	return &LostFoundHandler{service: lostFoundService}
}

// Create POST /lost-found.
func (h *LostFoundHandler) Create(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("please authenticate first")
	}
	var req dto.CreateLostFoundRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	post, err := h.service.Create(c.Context(), user, service.LostFoundCreateInput{
		Kind:        domain.LostFoundKind(req.Type),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Images:      req.Images,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage("post created successfully", dto.LostFoundSummary(post)))
}

// List GET /lost-found.
func (h *LostFoundHandler) List(c *fiber.Ctx) error {
	page, limit, offset := pageParams(c, 20)
	filter := repository.LostFoundFilter{Limit: limit, Offset: offset}
	if typeStr := c.Query("type"); typeStr != "" {
		kind := domain.LostFoundKind(typeStr)
		filter.Kind = &kind
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.LostFoundStatus(statusStr)
		filter.Status = &status
	}

	views, total, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.LostFoundResponse, 0, len(views))
	for i := range views {
		items = append(items, dto.LostFoundView(&views[i]))
	}
	return c.JSON(dto.Page(items, dto.NewPagination(page, limit, total)))
}

// Get GET /lost-found/:id.
func (h *LostFoundHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	view, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.LostFoundView(view)))
}

// UpdateStatus PUT /lost-found/:id/status.
func (h *LostFoundHandler) UpdateStatus(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("please authenticate first")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateLostFoundStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	post, err := h.service.UpdateStatus(c.Context(), user, id, domain.LostFoundStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("post status updated successfully", dto.LostFoundSummary(post)))
}
