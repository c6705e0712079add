package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/campus-community/internal/domain"
	"github.com/spec-kit/campus-community/internal/events"
	"github.com/spec-kit/campus-community/internal/repository"
	apperrors "github.com/spec-kit/campus-community/pkg/util"
)

// DashboardStats bundles live counts for the superadmin dashboard. Counts are
// queried fresh on every request.
type DashboardStats struct {
	Users     repository.UserStats
	Listings  repository.ListingStats
	Interests repository.InterestStats
	LostFound repository.LostFoundStats
}

// AdminService implements the verification and contact-approval workflow.
// Both transitions are monotonic and superadmin-triggered; nothing in this
// service ever regresses a user from approved back to unverified.
type AdminService struct {
	users      repository.UserRepository
	listings   repository.ListingRepository
	interests  repository.InterestRepository
	lostFound  repository.LostFoundRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AdminDependencies bundles repositories for the admin service.
type AdminDependencies struct {
	UserRepo      repository.UserRepository
	ListingRepo   repository.ListingRepository
	InterestRepo  repository.InterestRepository
	LostFoundRepo repository.LostFoundRepository
	Dispatcher    events.Dispatcher
}

// NewAdminService constructs the service.
func NewAdminService(deps AdminDependencies, logger *zap.Logger) *AdminService {
	return &AdminService{
		users:      deps.UserRepo,
		listings:   deps.ListingRepo,
		interests:  deps.InterestRepo,
		lostFound:  deps.LostFoundRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// VerifyUser marks an account as verified. Not idempotent: a second call is
// rejected rather than silently succeeding, so the approval notification is
// emitted exactly once.
func (s *AdminService) VerifyUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	if user.IsVerified {
		return nil, apperrors.NewStateGate("user is already verified")
	}

	user.IsVerified = true
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventUserVerified,
		ActorID: user.ID,
		Payload: events.UserVerifiedPayload{
			UserID: user.ID,
			Name:   user.Name,
			Email:  user.Email,
		},
	})
	return user, nil
}

// ApproveContact enables contact visibility for a verified user and cascades
// the approval to every listing the user owns at this moment. The flag flip
// and the cascade share one transaction; listings created afterwards keep
// their default and need per-listing approval.
func (s *AdminService) ApproveContact(ctx context.Context, userID int64) (*domain.User, int64, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, 0, apperrors.NewNotFound("user")
		}
		return nil, 0, err
	}
	if !user.IsVerified {
		return nil, 0, apperrors.NewStateGate("user must be verified first")
	}
	if user.CanShowContact {
		return nil, 0, apperrors.NewStateGate("contact is already approved")
	}

	covered, err := s.users.ApproveContact(ctx, user.ID)
	if err != nil {
		return nil, 0, err
	}
	user.CanShowContact = true

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventContactApproved,
		ActorID: user.ID,
		Payload: events.ContactApprovedPayload{
			UserID:          user.ID,
			Name:            user.Name,
			Email:           user.Email,
			ListingsCovered: covered,
		},
	})
	return user, covered, nil
}

// ApproveListingContact is the per-listing override, independent of the
// owner's user-level flag.
func (s *AdminService) ApproveListingContact(ctx context.Context, listingID int64) (*domain.Listing, error) {
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("listing")
		}
		return nil, err
	}
	if err := s.listings.ApproveContact(ctx, listing.ID); err != nil {
		return nil, err
	}
	listing.ContactApproved = true
	return listing, nil
}

// UpdateUserStatus activates or deactivates an account. The superadmin
// account can never be deactivated through this operation.
func (s *AdminService) UpdateUserStatus(ctx context.Context, userID int64, status domain.UserStatus) (*domain.User, error) {
	if status != domain.UserStatusActive && status != domain.UserStatusInactive {
		return nil, apperrors.NewValidationError(`status must be either "active" or "inactive"`, nil)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	if user.Role == domain.RoleSuperadmin && status == domain.UserStatusInactive {
		return nil, apperrors.NewForbidden("cannot deactivate superadmin account")
	}

	user.Status = status
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns all accounts, newest first.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// GetUser returns a single account.
func (s *AdminService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	return user, nil
}

// PendingVerifications lists unverified accounts, oldest first.
func (s *AdminService) PendingVerifications(ctx context.Context) ([]domain.User, error) {
	return s.users.ListPendingVerification(ctx)
}

// PendingContactApprovals lists verified accounts awaiting contact approval.
func (s *AdminService) PendingContactApprovals(ctx context.Context) ([]domain.User, error) {
	return s.users.ListPendingContactApproval(ctx)
}

// Stats assembles the dashboard counters.
func (s *AdminService) Stats(ctx context.Context) (*DashboardStats, error) {
	users, err := s.users.Stats(ctx)
	if err != nil {
		return nil, err
	}
	listings, err := s.listings.Stats(ctx)
	if err != nil {
		return nil, err
	}
	interests, err := s.interests.Stats(ctx)
	if err != nil {
		return nil, err
	}
	lostFound, err := s.lostFound.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		Users:     *users,
		Listings:  *listings,
		Interests: *interests,
		LostFound: *lostFound,
	}, nil
}
