package dto

import (
	"time"

	"github.com/spec-kit/campus-community/internal/domain"
	"github.com/spec-kit/campus-community/internal/service"
)

// CreateListingRequest payload.
type CreateListingRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Images      []string `json:"images"`
}

// UpdateListingRequest payload; absent fields stay unchanged.
type UpdateListingRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Location    *string  `json:"location"`
	Images      []string `json:"images"`
	Status      *string  `json:"status"`
}

// ShowInterestRequest payload.
type ShowInterestRequest struct {
	Message *string `json:"message"`
}

// ListingResponse is the listing view. The seller block carries contact fields
// only when visibility rules allow; on top of the user-level rule, a
// per-listing contactApproved=true also exposes the seller's contact.
type ListingResponse struct {
	ID              int64              `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Price           float64            `json:"price"`
	Category        string             `json:"category"`
	Location        string             `json:"location"`
	Images          []string           `json:"images"`
	Status          string             `json:"status"`
	ContactApproved bool               `json:"contactApproved"`
	Seller          *UserResponse      `json:"seller,omitempty"`
	Interests       []InterestResponse `json:"interests,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// InterestResponse is the buyer-interest view.
type InterestResponse struct {
	ID        int64     `json:"id"`
	ListingID int64     `json:"listingId"`
	BuyerID   int64     `json:"buyerId"`
	SellerID  int64     `json:"sellerId"`
	Message   *string   `json:"message,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListingView serializes a listing with its seller.
func ListingView(view *service.ListingView) ListingResponse {
	resp := ListingResponse{
		ID:              view.Listing.ID,
		Title:           view.Listing.Title,
		Description:     view.Listing.Description,
		Price:           view.Listing.Price,
		Category:        view.Listing.Category,
		Location:        view.Listing.Location,
		Images:          view.Listing.Images,
		Status:          string(view.Listing.Status),
		ContactApproved: view.Listing.ContactApproved,
		CreatedAt:       view.Listing.CreatedAt,
		UpdatedAt:       view.Listing.UpdatedAt,
	}
	if view.Seller != nil {
		seller := PublicUserView(view.Seller)
		if view.Listing.ContactApproved && view.Seller.IsVerified {
			seller.Email = view.Seller.Email
			seller.Phone = view.Seller.Phone
			seller.PersonalEmail = view.Seller.PersonalEmail
		}
		resp.Seller = &seller
	}
	for i := range view.Interests {
		resp.Interests = append(resp.Interests, InterestView(&view.Interests[i]))
	}
	return resp
}

// ListingSummary serializes a bare listing without seller or interests.
func ListingSummary(listing *domain.Listing) ListingResponse {
	return ListingResponse{
		ID:              listing.ID,
		Title:           listing.Title,
		Description:     listing.Description,
		Price:           listing.Price,
		Category:        listing.Category,
		Location:        listing.Location,
		Images:          listing.Images,
		Status:          string(listing.Status),
		ContactApproved: listing.ContactApproved,
		CreatedAt:       listing.CreatedAt,
		UpdatedAt:       listing.UpdatedAt,
	}
}

// InterestView serializes an interest row.
func InterestView(interest *domain.Interest) InterestResponse {
	return InterestResponse{
		ID:        interest.ID,
		ListingID: interest.ListingID,
		BuyerID:   interest.BuyerID,
		SellerID:  interest.SellerID,
		Message:   interest.Message,
		Status:    string(interest.Status),
		CreatedAt: interest.CreatedAt,
	}
}
