package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campus-community/internal/domain"
)

// LostFoundFilter captures lost-and-found search parameters.
type LostFoundFilter struct {
	UserID *int64
	Kind   *domain.LostFoundKind
	Status *domain.LostFoundStatus
	Limit  int
	Offset int
}

// LostFoundStats aggregates posting counts for the admin dashboard.
type LostFoundStats struct {
	Total  int64
	Active int64
}

// LostFoundRepository encapsulates lost-and-found persistence.
type LostFoundRepository interface {
	Create(ctx context.Context, post *domain.LostFound) error
	Update(ctx context.Context, post *domain.LostFound) error
	GetByID(ctx context.Context, id int64) (*domain.LostFound, error)
	ListWithFilter(ctx context.Context, filter LostFoundFilter) ([]domain.LostFound, int64, error)
	Stats(ctx context.Context) (*LostFoundStats, error)
}

type lostFoundRepository struct {
	pool *pgxpool.Pool
}

// NewLostFoundRepository instantiates repository.
func NewLostFoundRepository(pool *pgxpool.Pool) LostFoundRepository {
	return &lostFoundRepository{pool: pool}
}

const lostFoundColumns = `id, user_id, kind, title, description, location, images, status, created_at, updated_at`

func (r *lostFoundRepository) Create(ctx context.Context, post *domain.LostFound) error {
	const query = `
        INSERT INTO lost_found (user_id, kind, title, description, location, images, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		post.UserID,
		post.Kind,
		post.Title,
		post.Description,
		post.Location,
		post.Images,
		post.Status,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
}

func (r *lostFoundRepository) Update(ctx context.Context, post *domain.LostFound) error {
	const query = `
        UPDATE lost_found SET kind=$1, title=$2, description=$3, location=$4, images=$5, status=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		post.Kind,
		post.Title,
		post.Description,
		post.Location,
		post.Images,
		post.Status,
		post.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *lostFoundRepository) GetByID(ctx context.Context, id int64) (*domain.LostFound, error) {
	var post domain.LostFound
	if err := r.pool.QueryRow(ctx, `SELECT `+lostFoundColumns+` FROM lost_found WHERE id=$1`, id).Scan(
		&post.ID,
		&post.UserID,
		&post.Kind,
		&post.Title,
		&post.Description,
		&post.Location,
		&post.Images,
		&post.Status,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *lostFoundRepository) ListWithFilter(ctx context.Context, filter LostFoundFilter) ([]domain.LostFound, int64, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.Kind != nil {
		args = append(args, *filter.Kind)
		clauses = append(clauses, fmt.Sprintf("kind=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	where := strings.Join(clauses, " AND ")

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM lost_found WHERE `+where, args...).Scan(&total); err != nil {
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

	query := fmt.Sprintf(`SELECT %s FROM lost_found WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		lostFoundColumns, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.LostFound
	for rows.Next() {
		var post domain.LostFound
		if err := rows.Scan(
			&post.ID,
			&post.UserID,
			&post.Kind,
			&post.Title,
			&post.Description,
			&post.Location,
			&post.Images,
			&post.Status,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, post)
	}
	return result, total, rows.Err()
}

func (r *lostFoundRepository) Stats(ctx context.Context) (*LostFoundStats, error) {
	const query = `SELECT COUNT(*), COUNT(*) FILTER (WHERE status='active') FROM lost_found`
	var stats LostFoundStats
	if err := r.pool.QueryRow(ctx, query).Scan(&stats.Total, &stats.Active); err != nil {
		return nil, err
	}
	return &stats, nil
}
