package domain

import "time"

// InterestStatus enumerates buyer-interest lifecycle states.
type InterestStatus string

const (
	InterestStatusPending   InterestStatus = "pending"
	InterestStatusContacted InterestStatus = "contacted"
	InterestStatusCompleted InterestStatus = "completed"
)

// Interest links a buyer to a listing. SellerID captures the listing owner at
// creation time. Unique per (listing, buyer) pair.
type Interest struct {
	ID        int64
	ListingID int64
	BuyerID   int64
	SellerID  int64
	Message   *string
	Status    InterestStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
