package domain

import "time"

// AuditLog is one append-only record of a state-changing API call. UserID is
// nil for anonymous or system actions. IPAddress holds a normalized IPv4
// address or nil when the caller address could not be reduced to IPv4.
type AuditLog struct {
	ID             int64
	UserID         *int64
	Action         string
	Resource       *string
	ResourceID     *int64
	Method         string
	Endpoint       string
	IPAddress      *string
	UserAgent      *string
	RequestBody    map[string]any
	ResponseStatus int
	ErrorMessage   *string
	Metadata       map[string]any
	CreatedAt      time.Time
}
