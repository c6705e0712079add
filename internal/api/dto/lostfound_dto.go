package dto

import (
	"time"

	"github.com/spec-kit/campus-community/internal/domain"
	"github.com/spec-kit/campus-community/internal/service"
)

// CreateLostFoundRequest payload.
type CreateLostFoundRequest struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Images      []string `json:"images"`
}

// UpdateLostFoundStatusRequest payload.
type UpdateLostFoundStatusRequest struct {
	Status string `json:"status"`
}

// LostFoundResponse is the posting view.
type LostFoundResponse struct {
	ID          int64         `json:"id"`
	Type        string        `json:"type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Location    string        `json:"location"`
	Images      []string      `json:"images"`
	Status      string        `json:"status"`
	Poster      *UserResponse `json:"poster,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// LostFoundView serializes a posting with its poster.
func LostFoundView(view *service.LostFoundView) LostFoundResponse {
	resp := LostFoundSummary(&view.Post)
	if view.Poster != nil {
		poster := PublicUserView(view.Poster)
		resp.Poster = &poster
	}
	return resp
}

// LostFoundSummary serializes a bare posting.
func LostFoundSummary(post *domain.LostFound) LostFoundResponse {
	return LostFoundResponse{
		ID:          post.ID,
		Type:        string(post.Kind),
		Title:       post.Title,
		Description: post.Description,
		Location:    post.Location,
		Images:      post.Images,
		Status:      string(post.Status),
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}
