package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/campus-community/internal/auth"
	"github.com/spec-kit/campus-community/internal/config"
	"github.com/spec-kit/campus-community/internal/domain"
	"github.com/spec-kit/campus-community/internal/events"
	"github.com/spec-kit/campus-community/internal/repository"
	apperrors "github.com/spec-kit/campus-community/pkg/util"
)

const minPasswordLength = 6

// RegisterInput describes the registration payload.
type RegisterInput struct {
	Name           string
	Username       string
	Email          string
	SchoolEmail    string
	PersonalEmail  *string
	Password       string
	Phone          *string
	DateOfBirth    string
	UniversityName string
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher: dispatcher,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new unverified account. Uniqueness is checked for email,
// username and school email in that order; the first violation wins.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, "", time.Time{}, apperrors.NewDuplicate("user already exists with this email")
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}
	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, "", time.Time{}, apperrors.NewDuplicate("username already taken")
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}
	if _, err := s.users.GetBySchoolEmail(ctx, input.SchoolEmail); err == nil {
		return nil, "", time.Time{}, apperrors.NewDuplicate("school email already registered")
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:           input.Name,
		Username:       input.Username,
		Email:          input.Email,
		SchoolEmail:    input.SchoolEmail,
		PersonalEmail:  input.PersonalEmail,
		UniversityName: input.UniversityName,
		PasswordHash:   hash,
		Phone:          input.Phone,
		DateOfBirth:    input.DateOfBirth,
		Role:           domain.RoleUser,
		Status:         domain.UserStatusActive,
		IsVerified:     false,
		CanShowContact: false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login authenticates an account. Unknown email and wrong password produce
// the same error so callers cannot tell which check failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if user.Status != domain.UserStatusActive {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("account is inactive. Please contact administrator")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// SuperadminLogin authenticates only superadmin accounts. A correct password
// on a non-superadmin account is rejected with the same generic error.
func (s *AuthService) SuperadminLogin(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetSuperadminByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid superadmin credentials")
		}
		return nil, "", time.Time{}, err
	}
	if user.Status != domain.UserStatusActive {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("superadmin account is inactive")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid superadmin credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// ChangePassword verifies the current password before updating to a new hash.
// A confirmation email is dispatched fire-and-forget via the event queue.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperrors.NewValidationError("new password must be at least 6 characters long", nil)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user")
		}
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("current password is incorrect")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventPasswordChanged,
		ActorID: user.ID,
		Payload: events.PasswordChangedPayload{
			UserID:    user.ID,
			Name:      user.Name,
			Email:     user.Email,
			ChangedAt: time.Now(),
		},
	})
	return nil
}

// EnsureSuperadmin creates the bootstrap superadmin account if no superadmin
// row exists yet. Idempotent on restart.
func (s *AuthService) EnsureSuperadmin(ctx context.Context, cfg config.SuperadminConfig) error {
	exists, err := s.users.HasSuperadmin(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Password, s.bcryptCost)
	if err != nil {
		return err
	}
	superadmin := &domain.User{
		Name:           cfg.Name,
		Username:       cfg.Username,
		Email:          cfg.Email,
		SchoolEmail:    cfg.Email,
		UniversityName: cfg.University,
		PasswordHash:   hash,
		DateOfBirth:    "1990-01-01",
		Role:           domain.RoleSuperadmin,
		Status:         domain.UserStatusActive,
		IsVerified:     true,
		CanShowContact: true,
	}
	if err := s.users.Create(ctx, superadmin); err != nil {
		return err
	}
	s.logger.Info("superadmin account created", zap.String("email", superadmin.Email))
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
