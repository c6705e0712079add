package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-community/internal/api/dto"
	"github.com/spec-kit/campus-community/internal/auth"
	"github.com/spec-kit/campus-community/internal/domain"
	"github.com/spec-kit/campus-community/internal/repository"
	"github.com/spec-kit/campus-community/internal/service"
	apperrors "github.com/spec-kit/campus-community/pkg/util"
)

// MarketplaceHandler manages listing and interest endpoints.
type MarketplaceHandler struct {
	service *service.MarketplaceService
}

// NewMarketplaceHandler constructs handler.
func NewMarketplaceHandler(marketplaceService *service.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{service: marketplaceService}
}

// CreateListing POST /listings.
func (h *MarketplaceHandler) CreateListing(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("please authenticate first")
	}
	var req dto.CreateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	listing, err := h.service.CreateListing(c.Context(), user, service.ListingCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Location:    req.Location,
		Images:      req.Images,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage("listing created successfully", dto.ListingSummary(listing)))
}

// ListListings GET /listings.
func (h *MarketplaceHandler) ListListings(c *fiber.Ctx) error {
	page, limit, offset := pageParams(c, 20)
	filter := parseListingQuery(c)
	filter.Limit = limit
	filter.Offset = offset

	views, total, err := h.service.ListListings(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.ListingResponse, 0, len(views))
	for i := range views {
		items = append(items, dto.ListingView(&views[i]))
	}
	return c.JSON(dto.Page(items, dto.NewPagination(page, limit, total)))
}

// GetListing GET /listings/:id.
func (h *MarketplaceHandler) GetListing(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	view, err := h.service.GetListing(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.ListingView(view)))
}

// MyListings GET /listings/my-listings.
func (h *MarketplaceHandler) MyListings(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("please authenticate first")
	}
	views, err := h.service.MyListings(c.Context(), user.ID)
	if err != nil {
		return err
	}
	items := make([]dto.ListingResponse, 0, len(views))
	for i := range views {
		items = append(items, dto.ListingView(&views[i]))
	}
	return c.JSON(dto.OK(items))
}

// UpdateListing PUT /listings/:id.
func (h *MarketplaceHandler) UpdateListing(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("please authenticate first")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.ListingUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Location:    req.Location,
		Images:      req.Images,
	}
	if req.Status != nil {
		status := domain.ListingStatus(*req.Status)
		input.Status = &status
	}

	listing, err := h.service.UpdateListing(c.Context(), user, id, input)
	if err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("listing updated successfully", dto.ListingSummary(listing)))
}

// DeleteListing DELETE /listings/:id.
func (h *MarketplaceHandler) DeleteListing(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("please authenticate first")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.service.DeleteListing(c.Context(), user, id); err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("listing deleted successfully", nil))
}

// ShowInterest POST /listings/:id/interest.
func (h *MarketplaceHandler) ShowInterest(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("please authenticate first")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.ShowInterestRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	interest, err := h.service.ShowInterest(c.Context(), user, id, req.Message)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage(
		"interest recorded. The seller has been notified", dto.InterestView(interest)))
}

func parseListingQuery(c *fiber.Ctx) repository.ListingFilter {
	filter := repository.ListingFilter{}
	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}
	if location := c.Query("location"); location != "" {
		filter.Location = &location
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.ListingStatus(strings.TrimSpace(statusStr))
		filter.Status = &status
	}
	if minStr := c.Query("minPrice"); minStr != "" {
		if min, err := strconv.ParseFloat(minStr, 64); err == nil {
			filter.MinPrice = &min
		}
	}
	if maxStr := c.Query("maxPrice"); maxStr != "" {
		if max, err := strconv.ParseFloat(maxStr, 64); err == nil {
			filter.MaxPrice = &max
		}
	}
	return filter
}
