package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/campus-community/internal/domain"
	"github.com/spec-kit/campus-community/internal/events"
	apperrors "github.com/spec-kit/campus-community/pkg/util"
)

func newMarketplaceFixture() (*MarketplaceService, *memUserRepo, *memListingRepo, *recordingDispatcher) {
	users := newMemUserRepo()
	listings := newMemListingRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewMarketplaceService(MarketplaceDependencies{
		ListingRepo:  listings,
		InterestRepo: newMemInterestRepo(),
		UserRepo:     users,
		Dispatcher:   dispatcher,
	}, zap.NewNop())
	return svc, users, listings, dispatcher
}

func TestCreateListingRequiresVerification(t *testing.T) {
	svc, users, _, _ := newMarketplaceFixture()
	user := seedUser(t, users, nil)

	_, err := svc.CreateListing(context.Background(), user, ListingCreateInput{
		Title: "bike", Description: "road bike", Price: 120,
	})
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 403, domainErr.HTTPStatus)
}

func TestCreateListingStartsUnapproved(t *testing.T) {
	svc, users, _, _ := newMarketplaceFixture()
	user := seedUser(t, users, func(u *domain.User) {
		u.IsVerified = true
		u.CanShowContact = true
	})

	listing, err := svc.CreateListing(context.Background(), user, ListingCreateInput{
		Title: "bike", Description: "road bike", Price: 120,
	})
	require.NoError(t, err)
	// per-listing approval is not inherited from the owner's flag
	assert.False(t, listing.ContactApproved)
	assert.Equal(t, domain.ListingStatusAvailable, listing.Status)
}

func TestShowInterestRequiresVerification(t *testing.T) {
	svc, users, listings, _ := newMarketplaceFixture()
	seller := seedUser(t, users, func(u *domain.User) { u.IsVerified = true })
	buyer := seedUser(t, users, func(u *domain.User) {
		u.Email = "buyer@example.com"
		u.Username = "buyer"
		u.SchoolEmail = "buyer@campus.edu"
	})

	listing := &domain.Listing{UserID: seller.ID, Title: "bike", Status: domain.ListingStatusAvailable}
	require.NoError(t, listings.Create(context.Background(), listing))

	_, err := svc.ShowInterest(context.Background(), buyer, listing.ID, nil)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 403, domainErr.HTTPStatus)
}

func TestShowInterestUnknownListing(t *testing.T) {
	svc, users, _, _ := newMarketplaceFixture()
	buyer := seedUser(t, users, func(u *domain.User) { u.IsVerified = true })

	_, err := svc.ShowInterest(context.Background(), buyer, 999, nil)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestShowInterestOwnListingRejected(t *testing.T) {
	svc, users, listings, dispatcher := newMarketplaceFixture()
	seller := seedUser(t, users, func(u *domain.User) { u.IsVerified = true })

	listing := &domain.Listing{UserID: seller.ID, Title: "bike", Status: domain.ListingStatusAvailable}
	require.NoError(t, listings.Create(context.Background(), listing))

	_, err := svc.ShowInterest(context.Background(), seller, listing.ID, nil)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "you cannot show interest in your own listing", domainErr.Message)
	assert.Empty(t, dispatcher.published())
}

func TestShowInterestDuplicateRejected(t *testing.T) {
	svc, users, listings, dispatcher := newMarketplaceFixture()
	seller := seedUser(t, users, func(u *domain.User) { u.IsVerified = true })
	buyer := seedUser(t, users, func(u *domain.User) {
		u.IsVerified = true
		u.Email = "buyer@example.com"
		u.Username = "buyer"
		u.SchoolEmail = "buyer@campus.edu"
	})

	listing := &domain.Listing{UserID: seller.ID, Title: "bike", Status: domain.ListingStatusAvailable}
	require.NoError(t, listings.Create(context.Background(), listing))

	_, err := svc.ShowInterest(context.Background(), buyer, listing.ID, nil)
	require.NoError(t, err)

	_, err = svc.ShowInterest(context.Background(), buyer, listing.ID, nil)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "you have already shown interest in this listing", domainErr.Message)
	assert.Len(t, dispatcher.published(), 1)
}

func TestShowInterestCapturesSellerAndPublishes(t *testing.T) {
	svc, users, listings, dispatcher := newMarketplaceFixture()
	personal := "seller.personal@example.com"
	seller := seedUser(t, users, func(u *domain.User) {
		u.IsVerified = true
		u.PersonalEmail = &personal
	})
	buyer := seedUser(t, users, func(u *domain.User) {
		u.IsVerified = true
		u.Email = "buyer@example.com"
		u.Username = "buyer"
		u.SchoolEmail = "buyer@campus.edu"
		u.Name = "Buyer One"
	})

	listing := &domain.Listing{UserID: seller.ID, Title: "bike", Price: 120, Status: domain.ListingStatusAvailable}
	require.NoError(t, listings.Create(context.Background(), listing))

	interest, err := svc.ShowInterest(context.Background(), buyer, listing.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, seller.ID, interest.SellerID)
	assert.Equal(t, buyer.ID, interest.BuyerID)
	assert.Equal(t, domain.InterestStatusPending, interest.Status)

	published := dispatcher.published()
	require.Len(t, published, 1)
	require.Equal(t, events.EventListingInterest, published[0].Type)
	payload, ok := published[0].Payload.(events.ListingInterestPayload)
	require.True(t, ok)
	assert.Equal(t, seller.ID, payload.SellerID)
	assert.Equal(t, "Buyer One", payload.BuyerName)
	require.NotNil(t, payload.SellerPersonalEmail)
	assert.Equal(t, personal, *payload.SellerPersonalEmail)
	// verified but not contact-approved: the mail path should fire
	assert.False(t, payload.SellerContactShown)
}

func TestUpdateListingOwnership(t *testing.T) {
	svc, users, listings, _ := newMarketplaceFixture()
	owner := seedUser(t, users, func(u *domain.User) { u.IsVerified = true })
	stranger := seedUser(t, users, func(u *domain.User) {
		u.IsVerified = true
		u.Email = "other@example.com"
		u.Username = "other"
		u.SchoolEmail = "other@campus.edu"
	})

	listing := &domain.Listing{UserID: owner.ID, Title: "bike", Status: domain.ListingStatusAvailable}
	require.NoError(t, listings.Create(context.Background(), listing))

	newTitle := "bike (sold)"
	_, err := svc.UpdateListing(context.Background(), stranger, listing.ID, ListingUpdateInput{Title: &newTitle})
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 403, domainErr.HTTPStatus)

	updated, err := svc.UpdateListing(context.Background(), owner, listing.ID, ListingUpdateInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
}

func TestDeleteListingSuperadminOverride(t *testing.T) {
	svc, users, listings, _ := newMarketplaceFixture()
	owner := seedUser(t, users, func(u *domain.User) { u.IsVerified = true })
	admin := seedUser(t, users, func(u *domain.User) {
		u.Role = domain.RoleSuperadmin
		u.IsVerified = true
		u.Email = "admin@example.com"
		u.Username = "admin"
		u.SchoolEmail = "admin@campus.edu"
	})

	listing := &domain.Listing{UserID: owner.ID, Title: "bike", Images: []string{"a.jpg"}, Status: domain.ListingStatusAvailable}
	require.NoError(t, listings.Create(context.Background(), listing))

	images, err := svc.DeleteListing(context.Background(), admin, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg"}, images)

	_, err = listings.GetByID(context.Background(), listing.ID)
	assert.Error(t, err)
}
