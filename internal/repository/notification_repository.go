package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campus-community/internal/domain"
)

// NotificationFilter narrows a user's notification listing.
type NotificationFilter struct {
	IsRead *bool
	Limit  int
	Offset int
}

// NotificationRepository encapsulates notification persistence. The typed
// EntityRef is stored as the related_id/related_type column pair.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	CreateMany(ctx context.Context, ns []domain.Notification) error
	ListByUser(ctx context.Context, userID int64, filter NotificationFilter) ([]domain.Notification, int64, error)
	MarkRead(ctx context.Context, id, userID int64) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) error
	Delete(ctx context.Context, id, userID int64) error
	CountUnread(ctx context.Context, userID int64) (int64, error)
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository instantiates repository.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

const notificationColumns = `id, user_id, type, title, message, related_id, related_type, is_read, metadata, created_at, updated_at`

func refColumns(ref *domain.EntityRef) (*int64, *string) {
	if ref == nil {
		return nil, nil
	}
	kind := string(ref.Kind)
	id := ref.ID
	return &id, &kind
}

func refFromColumns(id *int64, kind *string) *domain.EntityRef {
	if id == nil || kind == nil {
		return nil
	}
	return &domain.EntityRef{Kind: domain.RefKind(*kind), ID: *id}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	relatedID, relatedType := refColumns(n.Ref)
	const query = `
        INSERT INTO notifications (user_id, type, title, message, related_id, related_type, is_read, metadata)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		n.UserID,
		n.Type,
		n.Title,
		n.Message,
		relatedID,
		relatedType,
		n.IsRead,
		n.Metadata,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

// CreateMany persists fan-out rows one by one; a failure for one recipient is
// reported but does not abort delivery to the rest.
func (r *notificationRepository) CreateMany(ctx context.Context, ns []domain.Notification) error {
	var firstErr error
	for i := range ns {
		if err := r.Create(ctx, &ns[i]); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("notification for user %d: %w", ns[i].UserID, err)
		}
	}
	return firstErr
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64, filter NotificationFilter) ([]domain.Notification, int64, error) {
	clauses := []string{"user_id=$1"}
	args := []any{userID}

	if filter.IsRead != nil {
		args = append(args, *filter.IsRead)
		clauses = append(clauses, fmt.Sprintf("is_read=$%d", len(args)))
	}

	where := strings.Join(clauses, " AND ")

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM notifications WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		notificationColumns, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *n)
	}
	return result, total, rows.Err()
}

// MarkRead flips is_read for a notification owned by userID. Ownership is part
// of the predicate: a foreign notification reads as not found.
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID int64) (*domain.Notification, error) {
	const query = `
        UPDATE notifications SET is_read=true, updated_at=NOW()
        WHERE id=$1 AND user_id=$2
        RETURNING ` + notificationColumns
	row := r.pool.QueryRow(ctx, query, id, userID)
	return scanNotificationRow(row)
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notifications SET is_read=true, updated_at=NOW() WHERE user_id=$1 AND is_read=false`, userID)
	return err
}

func (r *notificationRepository) Delete(ctx context.Context, id, userID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id=$1 AND is_read=false`, userID).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNotification(row rowScanner) (*domain.Notification, error) {
	var (
		n           domain.Notification
		relatedID   *int64
		relatedType *string
	)
	if err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Type,
		&n.Title,
		&n.Message,
		&relatedID,
		&relatedType,
		&n.IsRead,
		&n.Metadata,
		&n.CreatedAt,
		&n.UpdatedAt,
	); err != nil {
		return nil, err
	}
	n.Ref = refFromColumns(relatedID, relatedType)
	return &n, nil
}

func scanNotificationRow(row pgx.Row) (*domain.Notification, error) {
	return scanNotification(row)
}
