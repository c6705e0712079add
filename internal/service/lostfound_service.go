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

// LostFoundCreateInput describes a lost-and-found posting payload.
type LostFoundCreateInput struct {
	Kind        domain.LostFoundKind
	Title       string
	Description string
	Location    string
	Images      []string
}

// LostFoundView pairs a posting with its poster for serialization.
type LostFoundView struct {
	Post   domain.LostFound
	Poster *domain.User
}

// LostFoundService manages lost-and-found postings. New postings are
// broadcast to the whole verified community through the event queue.
type LostFoundService struct {
	posts      repository.LostFoundRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewLostFoundService constructs the service.
func NewLostFoundService(posts repository.LostFoundRepository, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *LostFoundService {
	return &LostFoundService{
		posts:      posts,
		users:      users,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Create posts a new lost or found report for a verified user.
func (s *LostFoundService) Create(ctx context.Context, actor *domain.User, input LostFoundCreateInput) (*domain.LostFound, error) {
	if !actor.IsVerified {
		return nil, apperrors.NewForbidden("your account must be verified to post lost and found items")
	}
	if input.Kind != domain.LostFoundKindLost && input.Kind != domain.LostFoundKindFound {
		return nil, apperrors.NewValidationError(`type must be either "lost" or "found"`, nil)
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("title and description are required", nil)
	}

	post := &domain.LostFound{
		UserID:      actor.ID,
		Kind:        input.Kind,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Location:    input.Location,
		Images:      input.Images,
		Status:      domain.LostFoundStatusActive,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventLostFoundPosted,
		ActorID: actor.ID,
		Payload: events.LostFoundPostedPayload{
			PostID:     post.ID,
			PosterID:   actor.ID,
			PosterName: actor.Name,
			Kind:       string(post.Kind),
			Title:      post.Title,
		},
	})
	return post, nil
}

// Get returns a single posting with its poster.
func (s *LostFoundService) Get(ctx context.Context, id int64) (*LostFoundView, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("lost and found post")
		}
		return nil, err
	}
	poster, err := s.users.GetByID(ctx, post.UserID)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	return &LostFoundView{Post: *post, Poster: poster}, nil
}

// List returns a filtered page of postings with their posters.
func (s *LostFoundService) List(ctx context.Context, filter repository.LostFoundFilter) ([]LostFoundView, int64, error) {
	posts, total, err := s.posts.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	views := make([]LostFoundView, 0, len(posts))
	for _, post := range posts {
		poster, err := s.users.GetByID(ctx, post.UserID)
		if err != nil && err != pgx.ErrNoRows {
			return nil, 0, err
		}
		views = append(views, LostFoundView{Post: post, Poster: poster})
	}
	return views, total, nil
}

// UpdateStatus resolves or reactivates a posting; only the poster or a
// superadmin may change it.
func (s *LostFoundService) UpdateStatus(ctx context.Context, actor *domain.User, id int64, status domain.LostFoundStatus) (*domain.LostFound, error) {
	if status != domain.LostFoundStatusActive && status != domain.LostFoundStatusResolved {
		return nil, apperrors.NewValidationError(`status must be either "active" or "resolved"`, nil)
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("lost and found post")
		}
		return nil, err
	}
	if post.UserID != actor.ID && actor.Role != domain.RoleSuperadmin {
		return nil, apperrors.NewForbidden("not authorized to update this post")
	}

	post.Status = status
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}
