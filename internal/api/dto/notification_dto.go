package dto

import (
	"time"

	"github.com/spec-kit/campus-community/internal/domain"
)

// NotificationResponse is the in-app notification view. RelatedID/RelatedType
// flatten the typed entity reference back to the stored pair.
type NotificationResponse struct {
	ID          int64          `json:"id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	RelatedID   *int64         `json:"relatedId,omitempty"`
	RelatedType *string        `json:"relatedType,omitempty"`
	IsRead      bool           `json:"isRead"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// NotificationView serializes one notification.
func NotificationView(n *domain.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		Metadata:  n.Metadata,
		CreatedAt: n.CreatedAt,
	}
	if n.Ref != nil {
		id := n.Ref.ID
		kind := string(n.Ref.Kind)
		resp.RelatedID = &id
		resp.RelatedType = &kind
	}
	return resp
}

// NotificationViews maps a slice.
func NotificationViews(rows []domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, NotificationView(&rows[i]))
	}
	return out
}
