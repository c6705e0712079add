package domain

import "time"

// ListingStatus enumerates lifecycle states for marketplace listings.
type ListingStatus string

const (
	ListingStatusAvailable ListingStatus = "available"
	ListingStatusPending   ListingStatus = "pending"
	ListingStatusSold      ListingStatus = "sold"
)

// Listing is a marketplace item owned by exactly one user. ContactApproved is
// stored per listing: a user-level contact approval cascades to the listings
// that exist at that moment, not to listings created afterwards.
type Listing struct {
	ID              int64
	UserID          int64
	Title           string
	Description     string
	Price           float64
	Category        string
	Location        string
	Images          []string
	Status          ListingStatus
	ContactApproved bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
