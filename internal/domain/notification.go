package domain

import "time"

// NotificationType is the closed set of in-app notification kinds.
type NotificationType string

const (
	NotificationListingInterest      NotificationType = "listing_interest"
	NotificationListingSold          NotificationType = "listing_sold"
	NotificationLostFound            NotificationType = "lost_found"
	NotificationNewsUrgent           NotificationType = "news_urgent"
	NotificationVerificationApproved NotificationType = "verification_approved"
	NotificationContactApproved      NotificationType = "contact_approved"
	NotificationCommentReply         NotificationType = "comment_reply"
	NotificationSystem               NotificationType = "system"
)

// RefKind names the entity kinds a notification may point at. Keeping the set
// closed makes invalid related-entity combinations unrepresentable while the
// stored/serialized shape stays the relatedId/relatedType pair.
type RefKind string

const (
	RefListing   RefKind = "Listing"
	RefLostFound RefKind = "LostFound"
	RefNews      RefKind = "News"
	RefComment   RefKind = "NewsComment"
)

// EntityRef is a typed reference to the entity that triggered a notification.
type EntityRef struct {
	Kind RefKind
	ID   int64
}

// ListingRef builds a reference to a marketplace listing.
func ListingRef(id int64) *EntityRef { return &EntityRef{Kind: RefListing, ID: id} }

// LostFoundRef builds a reference to a lost-and-found posting.
func LostFoundRef(id int64) *EntityRef { return &EntityRef{Kind: RefLostFound, ID: id} }

// Notification targets exactly one user. Mutated only to flip IsRead; deleted
// only by its owning user.
type Notification struct {
	ID        int64
	UserID    int64
	Type      NotificationType
	Title     string
	Message   string
	Ref       *EntityRef
	IsRead    bool
	Metadata  map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}
