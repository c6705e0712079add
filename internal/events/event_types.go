package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserVerified    EventType = "user_verified"
	EventContactApproved EventType = "contact_approved"
	EventListingInterest EventType = "listing_interest"
	EventPasswordChanged EventType = "password_changed"
	EventLostFoundPosted EventType = "lost_found_posted"
)

// Event represents a domain event emitted by services. Side effects hang off
// events so their failures never reach the request path.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   int64       `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserVerifiedPayload payload.
type UserVerifiedPayload struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// ContactApprovedPayload payload.
type ContactApprovedPayload struct {
	UserID          int64  `json:"user_id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ListingsCovered int64  `json:"listings_covered"`
}

// ListingInterestPayload payload.
type ListingInterestPayload struct {
	ListingID           int64   `json:"listing_id"`
	ListingTitle        string  `json:"listing_title"`
	ListingPrice        float64 `json:"listing_price"`
	SellerID            int64   `json:"seller_id"`
	SellerName          string  `json:"seller_name"`
	SellerPersonalEmail *string `json:"seller_personal_email,omitempty"`
	SellerContactShown  bool    `json:"seller_contact_shown"`
	BuyerID             int64   `json:"buyer_id"`
	BuyerName           string  `json:"buyer_name"`
}

// PasswordChangedPayload payload.
type PasswordChangedPayload struct {
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ChangedAt time.Time `json:"changed_at"`
}

// LostFoundPostedPayload payload.
type LostFoundPostedPayload struct {
	PostID     int64  `json:"post_id"`
	PosterID   int64  `json:"poster_id"`
	PosterName string `json:"poster_name"`
	Kind       string `json:"kind"`
	Title      string `json:"title"`
}
