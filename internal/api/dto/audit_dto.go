package dto

import (
	"time"

	"github.com/spec-kit/campus-community/internal/domain"
	"github.com/spec-kit/campus-community/internal/repository"
)

// AuditLogResponse is the audit-entry view for superadmins.
type AuditLogResponse struct {
	ID             int64          `json:"id"`
	UserID         *int64         `json:"userId,omitempty"`
	Action         string         `json:"action"`
	Resource       *string        `json:"resource,omitempty"`
	ResourceID     *int64         `json:"resourceId,omitempty"`
	Method         string         `json:"method"`
	Endpoint       string         `json:"endpoint"`
	IPAddress      *string        `json:"ipAddress,omitempty"`
	UserAgent      *string        `json:"userAgent,omitempty"`
	RequestBody    map[string]any `json:"requestBody,omitempty"`
	ResponseStatus int            `json:"responseStatus"`
	ErrorMessage   *string        `json:"errorMessage,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// AuditStatsResponse aggregates audit counters.
type AuditStatsResponse struct {
	Total       int64            `json:"total"`
	Errors      int64            `json:"errors"`
	UniqueUsers int64            `json:"uniqueUsers"`
	ByAction    []AuditCountItem `json:"byAction"`
	ByResource  []AuditCountItem `json:"byResource"`
	ByMethod    []AuditCountItem `json:"byMethod"`
}

// AuditCountItem is one grouped bucket.
type AuditCountItem struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// AuditLogView serializes one audit entry.
func AuditLogView(entry *domain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:             entry.ID,
		UserID:         entry.UserID,
		Action:         entry.Action,
		Resource:       entry.Resource,
		ResourceID:     entry.ResourceID,
		Method:         entry.Method,
		Endpoint:       entry.Endpoint,
		IPAddress:      entry.IPAddress,
		UserAgent:      entry.UserAgent,
		RequestBody:    entry.RequestBody,
		ResponseStatus: entry.ResponseStatus,
		ErrorMessage:   entry.ErrorMessage,
		Metadata:       entry.Metadata,
		CreatedAt:      entry.CreatedAt,
	}
}

// AuditLogViews maps a slice.
func AuditLogViews(entries []domain.AuditLog) []AuditLogResponse {
	out := make([]AuditLogResponse, 0, len(entries))
	for i := range entries {
		out = append(out, AuditLogView(&entries[i]))
	}
	return out
}

// AuditStatsView serializes grouped statistics.
func AuditStatsView(stats *repository.AuditStats) AuditStatsResponse {
	return AuditStatsResponse{
		Total:       stats.Total,
		Errors:      stats.Errors,
		UniqueUsers: stats.UniqueUsers,
		ByAction:    auditCountItems(stats.ByAction),
		ByResource:  auditCountItems(stats.ByResource),
		ByMethod:    auditCountItems(stats.ByMethod),
	}
}

func auditCountItems(buckets []repository.AuditCount) []AuditCountItem {
	out := make([]AuditCountItem, 0, len(buckets))
	for _, bucket := range buckets {
		out = append(out, AuditCountItem{Key: bucket.Key, Count: bucket.Count})
	}
	return out
}
