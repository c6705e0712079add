package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-community/internal/api/dto"
	"github.com/spec-kit/campus-community/internal/auth"
	"github.com/spec-kit/campus-community/internal/repository"
	"github.com/spec-kit/campus-community/internal/service"
	apperrors "github.com/spec-kit/campus-community/pkg/util"
)

// NotificationsHandler manages the caller's in-app notifications.
type NotificationsHandler struct {
	service *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{service: notificationService}
}

// List GET /notifications. The unread total rides along in the envelope.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("please authenticate first")
	}

	page, limit, offset := pageParams(c, 20)
	filter := repository.NotificationFilter{Limit: limit, Offset: offset}
	if readStr := c.Query("isRead"); readStr != "" {
		if isRead, err := strconv.ParseBool(readStr); err == nil {
			filter.IsRead = &isRead
		}
	}

	rows, total, unread, err := h.service.List(c.Context(), user.ID, filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.Envelope{
		Success:     true,
		Data:        dto.NotificationViews(rows),
		Pagination:  dto.NewPagination(page, limit, total),
		UnreadCount: &unread,
	})
}

// UnreadCount GET /notifications/unread-count.
func (h *NotificationsHandler) UnreadCount(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("please authenticate first")
	}
	unread, err := h.service.UnreadCount(c.Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.Envelope{Success: true, UnreadCount: &unread})
}

// MarkRead PUT /notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("please authenticate first")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	n, err := h.service.MarkRead(c.Context(), id, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NotificationView(n)))
}

// MarkAllRead PUT /notifications/read-all.
func (h *NotificationsHandler) MarkAllRead(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("please authenticate first")
	}
	if err := h.service.MarkAllRead(c.Context(), user.ID); err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("all notifications marked as read", nil))
}

// Delete DELETE /notifications/:id.
func (h *NotificationsHandler) Delete(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("please authenticate first")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), id, user.ID); err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("notification deleted", nil))
}
