package domain

import "time"

// LostFoundKind distinguishes lost-item reports from found-item reports.
type LostFoundKind string

const (
	LostFoundKindLost  LostFoundKind = "lost"
	LostFoundKindFound LostFoundKind = "found"
)

// LostFoundStatus enumerates posting lifecycle states.
type LostFoundStatus string

const (
	LostFoundStatusActive   LostFoundStatus = "active"
	LostFoundStatusResolved LostFoundStatus = "resolved"
)

// LostFound is a lost-and-found posting created by a verified user.
type LostFound struct {
	ID          int64
	UserID      int64
	Kind        LostFoundKind
	Title       string
	Description string
	Location    string
	Images      []string
	Status      LostFoundStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
