package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campus-community/internal/domain"
)

// AuditFilter captures audit-log search parameters.
type AuditFilter struct {
	UserID     *int64
	Action     *string
	Resource   *string
	Method     *string
	StatusCode *int
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// AuditCount is one bucket of the grouped audit statistics.
type AuditCount struct {
	Key   string
	Count int64
}

// AuditStats aggregates audit-log statistics over an optional time range.
type AuditStats struct {
	Total       int64
	Errors      int64
	UniqueUsers int64
	ByAction    []AuditCount
	ByResource  []AuditCount
	ByMethod    []AuditCount
}

// AuditRepository appends and queries the immutable audit trail. There are no
// update or delete operations by design.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	GetByID(ctx context.Context, id int64) (*domain.AuditLog, error)
	ListWithFilter(ctx context.Context, filter AuditFilter) ([]domain.AuditLog, int64, error)
	Stats(ctx context.Context, from, to *time.Time) (*AuditStats, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository instantiates repository.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

const auditColumns = `id, user_id, action, resource, resource_id, method, endpoint,
       ip_address, user_agent, request_body, response_status, error_message, metadata, created_at`

func (r *auditRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	const query = `
        INSERT INTO audit_logs (user_id, action, resource, resource_id, method, endpoint,
                                ip_address, user_agent, request_body, response_status, error_message, metadata)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.UserID,
		entry.Action,
		entry.Resource,
		entry.ResourceID,
		entry.Method,
		entry.Endpoint,
		entry.IPAddress,
		entry.UserAgent,
		entry.RequestBody,
		entry.ResponseStatus,
		entry.ErrorMessage,
		entry.Metadata,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *auditRepository) GetByID(ctx context.Context, id int64) (*domain.AuditLog, error) {
	var entry domain.AuditLog
	if err := r.pool.QueryRow(ctx, `SELECT `+auditColumns+` FROM audit_logs WHERE id=$1`, id).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Action,
		&entry.Resource,
		&entry.ResourceID,
		&entry.Method,
		&entry.Endpoint,
		&entry.IPAddress,
		&entry.UserAgent,
		&entry.RequestBody,
		&entry.ResponseStatus,
		&entry.ErrorMessage,
		&entry.Metadata,
		&entry.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *auditRepository) ListWithFilter(ctx context.Context, filter AuditFilter) ([]domain.AuditLog, int64, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.Action != nil && strings.TrimSpace(*filter.Action) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.Action))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(action) LIKE $%d", len(args)))
	}
	if filter.Resource != nil {
		args = append(args, *filter.Resource)
		clauses = append(clauses, fmt.Sprintf("resource=$%d", len(args)))
	}
	if filter.Method != nil {
		args = append(args, strings.ToUpper(*filter.Method))
		clauses = append(clauses, fmt.Sprintf("method=$%d", len(args)))
	}
	if filter.StatusCode != nil {
		args = append(args, *filter.StatusCode)
		clauses = append(clauses, fmt.Sprintf("response_status=$%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	where := strings.Join(clauses, " AND ")

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM audit_logs WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		auditColumns, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.AuditLog
	for rows.Next() {
		var entry domain.AuditLog
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Action,
			&entry.Resource,
			&entry.ResourceID,
			&entry.Method,
			&entry.Endpoint,
			&entry.IPAddress,
			&entry.UserAgent,
			&entry.RequestBody,
			&entry.ResponseStatus,
			&entry.ErrorMessage,
			&entry.Metadata,
			&entry.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, entry)
	}
	return result, total, rows.Err()
}

func (r *auditRepository) Stats(ctx context.Context, from, to *time.Time) (*AuditStats, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if from != nil {
		args = append(args, *from)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	where := strings.Join(clauses, " AND ")

	stats := &AuditStats{}
	summary := fmt.Sprintf(`
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE error_message IS NOT NULL),
               COUNT(DISTINCT user_id) FILTER (WHERE user_id IS NOT NULL)
        FROM audit_logs WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, summary, args...).Scan(&stats.Total, &stats.Errors, &stats.UniqueUsers); err != nil {
		return nil, err
	}

	var err error
	if stats.ByAction, err = r.groupCounts(ctx, "action", where, args, 10); err != nil {
		return nil, err
	}
	if stats.ByResource, err = r.groupCounts(ctx, "resource", where, args, 10); err != nil {
		return nil, err
	}
	if stats.ByMethod, err = r.groupCounts(ctx, "method", where, args, 0); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *auditRepository) groupCounts(ctx context.Context, column, where string, args []any, limit int) ([]AuditCount, error) {
	query := fmt.Sprintf(`
        SELECT COALESCE(%s, ''), COUNT(id) FROM audit_logs
        WHERE %s GROUP BY %s ORDER BY COUNT(id) DESC`, column, where, column)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []AuditCount
	for rows.Next() {
		var bucket AuditCount
		if err := rows.Scan(&bucket.Key, &bucket.Count); err != nil {
			return nil, err
		}
		result = append(result, bucket)
	}
	return result, rows.Err()
}
