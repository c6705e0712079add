package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/campus-community/internal/domain"
	"github.com/spec-kit/campus-community/internal/events"
	"github.com/spec-kit/campus-community/internal/repository"
	apperrors "github.com/spec-kit/campus-community/pkg/util"
)

// ListingCreateInput describes listing creation payload. Images are uploaded
// filenames; file contents are handled outside this service.
type ListingCreateInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
	Location    string
	Images      []string
}

// ListingUpdateInput carries optional listing updates.
type ListingUpdateInput struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	Location    *string
	Images      []string
	Status      *domain.ListingStatus
}

// ListingView pairs a listing with its seller for serialization.
type ListingView struct {
	Listing   domain.Listing
	Seller    *domain.User
	Interests []domain.Interest
}

// MarketplaceService coordinates listings and buyer interest.
type MarketplaceService struct {
	listings   repository.ListingRepository
	interests  repository.InterestRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// MarketplaceDependencies bundles repositories for the marketplace service.
type MarketplaceDependencies struct {
	ListingRepo  repository.ListingRepository
	InterestRepo repository.InterestRepository
	UserRepo     repository.UserRepository
	Dispatcher   events.Dispatcher
}

// NewMarketplaceService constructs the service.
func NewMarketplaceService(deps MarketplaceDependencies, logger *zap.Logger) *MarketplaceService {
	return &MarketplaceService{
		listings:   deps.ListingRepo,
		interests:  deps.InterestRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreateListing creates a listing for a verified user. ContactApproved starts
// false even when the seller's contact is already approved; the user-level
// cascade only covers listings existing at approval time.
func (s *MarketplaceService) CreateListing(ctx context.Context, actor *domain.User, input ListingCreateInput) (*domain.Listing, error) {
	if !actor.IsVerified {
		return nil, apperrors.NewForbidden("your account must be verified to create listings. Please wait for administrator approval")
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("title and description are required", nil)
	}
	if input.Price < 0 {
		return nil, apperrors.NewValidationError("price cannot be negative", nil)
	}

	listing := &domain.Listing{
		UserID:      actor.ID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Category:    input.Category,
		Location:    input.Location,
		Images:      input.Images,
		Status:      domain.ListingStatusAvailable,
	}
	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// GetListing returns a listing with its seller and interests.
func (s *MarketplaceService) GetListing(ctx context.Context, listingID int64) (*ListingView, error) {
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("listing")
		}
		return nil, err
	}
	seller, err := s.users.GetByID(ctx, listing.UserID)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	interests, err := s.interests.ListByListing(ctx, listing.ID)
	if err != nil {
		return nil, err
	}
	return &ListingView{Listing: *listing, Seller: seller, Interests: interests}, nil
}

// ListListings returns a filtered page of listings with their sellers.
func (s *MarketplaceService) ListListings(ctx context.Context, filter repository.ListingFilter) ([]ListingView, int64, error) {
	listings, total, err := s.listings.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	views := make([]ListingView, 0, len(listings))
	for _, listing := range listings {
		seller, err := s.users.GetByID(ctx, listing.UserID)
		if err != nil && err != pgx.ErrNoRows {
			return nil, 0, err
		}
		views = append(views, ListingView{Listing: listing, Seller: seller})
	}
	return views, total, nil
}

// MyListings returns the actor's own listings with interests.
func (s *MarketplaceService) MyListings(ctx context.Context, actorID int64) ([]ListingView, error) {
	listings, err := s.listings.ListByUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	views := make([]ListingView, 0, len(listings))
	for _, listing := range listings {
		interests, err := s.interests.ListByListing(ctx, listing.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, ListingView{Listing: listing, Interests: interests})
	}
	return views, nil
}

// UpdateListing applies partial updates; only the owner or a superadmin may
// update.
func (s *MarketplaceService) UpdateListing(ctx context.Context, actor *domain.User, listingID int64, input ListingUpdateInput) (*domain.Listing, error) {
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("listing")
		}
		return nil, err
	}
	if listing.UserID != actor.ID && actor.Role != domain.RoleSuperadmin {
		return nil, apperrors.NewForbidden("not authorized to update this listing")
	}

	if input.Title != nil {
		listing.Title = *input.Title
	}
	if input.Description != nil {
		listing.Description = *input.Description
	}
	if input.Price != nil {
		listing.Price = *input.Price
	}
	if input.Category != nil {
		listing.Category = *input.Category
	}
	if input.Location != nil {
		listing.Location = *input.Location
	}
	if len(input.Images) > 0 {
		listing.Images = input.Images
	}
	if input.Status != nil {
		switch *input.Status {
		case domain.ListingStatusAvailable, domain.ListingStatusPending, domain.ListingStatusSold:
			listing.Status = *input.Status
		default:
			return nil, apperrors.NewValidationError("invalid listing status", nil)
		}
	}

	if err := s.listings.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// DeleteListing removes a listing; only the owner or a superadmin may delete.
// Returns the image filenames so the caller can purge stored files.
func (s *MarketplaceService) DeleteListing(ctx context.Context, actor *domain.User, listingID int64) ([]string, error) {
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("listing")
		}
		return nil, err
	}
	if listing.UserID != actor.ID && actor.Role != domain.RoleSuperadmin {
		return nil, apperrors.NewForbidden("not authorized to delete this listing")
	}
	if err := s.listings.Delete(ctx, listing.ID); err != nil {
		return nil, err
	}
	return listing.Images, nil
}

// ShowInterest records buyer interest and notifies the seller. The workflow
// never reveals the buyer's contact details to the seller; contact exchange
// goes through the administrator.
func (s *MarketplaceService) ShowInterest(ctx context.Context, actor *domain.User, listingID int64, message *string) (*domain.Interest, error) {
	if !actor.IsVerified {
		return nil, apperrors.NewForbidden("your account must be verified to show interest in listings")
	}

	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("listing")
		}
		return nil, err
	}
	if listing.UserID == actor.ID {
		return nil, apperrors.NewStateGate("you cannot show interest in your own listing")
	}

	if _, err := s.interests.GetByListingAndBuyer(ctx, listing.ID, actor.ID); err == nil {
		return nil, apperrors.NewStateGate("you have already shown interest in this listing")
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	interest := &domain.Interest{
		ListingID: listing.ID,
		BuyerID:   actor.ID,
		SellerID:  listing.UserID,
		Message:   message,
		Status:    domain.InterestStatusPending,
	}
	if err := s.interests.Create(ctx, interest); err != nil {
		return nil, err
	}

	seller, err := s.users.GetByID(ctx, listing.UserID)
	if err != nil {
		s.logger.Warn("seller lookup failed for interest notification",
			zap.Int64("listing_id", listing.ID), zap.Error(err))
		return interest, nil
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventListingInterest,
		ActorID: actor.ID,
		Payload: events.ListingInterestPayload{
			ListingID:           listing.ID,
			ListingTitle:        listing.Title,
			ListingPrice:        listing.Price,
			SellerID:            seller.ID,
			SellerName:          seller.Name,
			SellerPersonalEmail: seller.PersonalEmail,
			SellerContactShown:  seller.ContactVisible(),
			BuyerID:             actor.ID,
			BuyerName:           actor.Name,
		},
	})
	return interest, nil
}
