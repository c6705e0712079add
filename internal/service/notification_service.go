package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/campus-community/internal/domain"
	"github.com/spec-kit/campus-community/internal/repository"
	apperrors "github.com/spec-kit/campus-community/pkg/util"
)

const unreadCacheTTL = time.Minute

// NotificationService persists and queries in-app notifications. Creation is
// best-effort: persistence failures are logged by callers (the notification
// worker), never surfaced into a business operation.
type NotificationService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	cache         *redis.Client
	logger        *zap.Logger
}

// NewNotificationService creates the service. cache may be nil.
func NewNotificationService(notifications repository.NotificationRepository, users repository.UserRepository, cache *redis.Client, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		cache:         cache,
		logger:        logger,
	}
}

// Notify creates a single notification row.
func (s *NotificationService) Notify(ctx context.Context, userID int64, typ domain.NotificationType, title, message string, ref *domain.EntityRef, metadata map[string]any) error {
	n := &domain.Notification{
		UserID:   userID,
		Type:     typ,
		Title:    title,
		Message:  message,
		Ref:      ref,
		Metadata: metadata,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return err
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

// NotifyMany fans out one notification row per recipient. Partial failure for
// one recipient does not prevent delivery to the rest.
func (s *NotificationService) NotifyMany(ctx context.Context, userIDs []int64, typ domain.NotificationType, title, message string, ref *domain.EntityRef, metadata map[string]any) error {
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]domain.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, domain.Notification{
			UserID:   id,
			Type:     typ,
			Title:    title,
			Message:  message,
			Ref:      ref,
			Metadata: metadata,
		})
	}
	err := s.notifications.CreateMany(ctx, rows)
	for _, id := range userIDs {
		s.invalidateUnread(ctx, id)
	}
	return err
}

// NotifyAllEligible broadcasts to every verified active user, excluding the
// actor who triggered the event.
func (s *NotificationService) NotifyAllEligible(ctx context.Context, excludeUserID int64, typ domain.NotificationType, title, message string, ref *domain.EntityRef, metadata map[string]any) error {
	ids, err := s.users.ListVerifiedActiveIDs(ctx)
	if err != nil {
		return err
	}
	recipients := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == excludeUserID {
			continue
		}
		recipients = append(recipients, id)
	}
	return s.NotifyMany(ctx, recipients, typ, title, message, ref, metadata)
}

// List returns a page of the user's notifications plus the unread count.
func (s *NotificationService) List(ctx context.Context, userID int64, filter repository.NotificationFilter) ([]domain.Notification, int64, int64, error) {
	rows, total, err := s.notifications.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, 0, err
	}
	unread, err := s.UnreadCount(ctx, userID)
	if err != nil {
		return nil, 0, 0, err
	}
	return rows, total, unread, nil
}

// MarkRead flips a single notification; a notification that does not exist or
// belongs to another user reads as not found.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) (*domain.Notification, error) {
	n, err := s.notifications.MarkRead(ctx, id, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("notification")
		}
		return nil, err
	}
	s.invalidateUnread(ctx, userID)
	return n, nil
}

// MarkAllRead flips every unread notification for the user. Idempotent.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	if err := s.notifications.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

// Delete removes one of the user's own notifications.
func (s *NotificationService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.notifications.Delete(ctx, id, userID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("notification")
		}
		return err
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

// UnreadCount returns the unread total, served from the redis cache when warm.
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	key := unreadKey(userID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Int64(); err == nil {
			return cached, nil
		}
	}

	count, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, count, unreadCacheTTL).Err(); err != nil {
			s.logger.Debug("unread cache set failed", zap.Error(err))
		}
	}
	return count, nil
}

func (s *NotificationService) invalidateUnread(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, unreadKey(userID)).Err(); err != nil {
		s.logger.Debug("unread cache invalidation failed", zap.Error(err))
	}
}

func unreadKey(userID int64) string {
	return fmt.Sprintf("notifications:unread:%d", userID)
}
