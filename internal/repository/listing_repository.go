package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campus-community/internal/domain"
)

// ListingFilter captures marketplace search parameters.
type ListingFilter struct {
	UserID     *int64
	Category   *string
	MinPrice   *float64
	MaxPrice   *float64
	Location   *string
	SearchTerm *string
	Status     *domain.ListingStatus
	Limit      int
	Offset     int
}

// ListingStats aggregates listing counts for the admin dashboard.
type ListingStats struct {
	Total     int64
	Available int64
	Pending   int64
	Sold      int64
}

// ListingRepository encapsulates listing persistence.
type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	Update(ctx context.Context, listing *domain.Listing) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	ListWithFilter(ctx context.Context, filter ListingFilter) ([]domain.Listing, int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Listing, error)
	ApproveContact(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*ListingStats, error)
}

type listingRepository struct {
	pool *pgxpool.Pool
}

// NewListingRepository instantiates repository.
func NewListingRepository(pool *pgxpool.Pool) ListingRepository {
	return &listingRepository{pool: pool}
}

const listingColumns = `id, user_id, title, description, price, category, location,
       images, status, contact_approved, created_at, updated_at`

func (r *listingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	const query = `
        INSERT INTO listings (user_id, title, description, price, category, location, images, status, contact_approved)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		listing.UserID,
		listing.Title,
		listing.Description,
		listing.Price,
		listing.Category,
		listing.Location,
		listing.Images,
		listing.Status,
		listing.ContactApproved,
	).Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)
}

func (r *listingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	const query = `
        UPDATE listings SET title=$1, description=$2, price=$3, category=$4, location=$5,
            images=$6, status=$7, contact_approved=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		listing.Title,
		listing.Description,
		listing.Price,
		listing.Category,
		listing.Location,
		listing.Images,
		listing.Status,
		listing.ContactApproved,
		listing.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *listingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *listingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	var listing domain.Listing
	if err := r.pool.QueryRow(ctx, `SELECT `+listingColumns+` FROM listings WHERE id=$1`, id).Scan(
		&listing.ID,
		&listing.UserID,
		&listing.Title,
		&listing.Description,
		&listing.Price,
		&listing.Category,
		&listing.Location,
		&listing.Images,
		&listing.Status,
		&listing.ContactApproved,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) ListWithFilter(ctx context.Context, filter ListingFilter) ([]domain.Listing, int64, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		clauses = append(clauses, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		clauses = append(clauses, fmt.Sprintf("price <= $%d", len(args)))
	}
	if filter.Location != nil && strings.TrimSpace(*filter.Location) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.Location))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(location) LIKE $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(description) LIKE %s)", placeholder, placeholder))
	}

	where := strings.Join(clauses, " AND ")

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM listings WHERE `+where, args...).Scan(&total); err != nil {
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

	query := fmt.Sprintf(`SELECT %s FROM listings WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		listingColumns, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	listings, err := scanListings(rows)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *listingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Listing, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanListings(rows)
}

func (r *listingRepository) ApproveContact(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE listings SET contact_approved=true, updated_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *listingRepository) Stats(ctx context.Context) (*ListingStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status='available'),
               COUNT(*) FILTER (WHERE status='pending'),
               COUNT(*) FILTER (WHERE status='sold')
        FROM listings`

	var stats ListingStats
	if err := r.pool.QueryRow(ctx, query).Scan(
		&stats.Total,
		&stats.Available,
		&stats.Pending,
		&stats.Sold,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

func scanListings(rows pgx.Rows) ([]domain.Listing, error) {
	var result []domain.Listing
	for rows.Next() {
		var listing domain.Listing
		if err := rows.Scan(
			&listing.ID,
			&listing.UserID,
			&listing.Title,
			&listing.Description,
			&listing.Price,
			&listing.Category,
			&listing.Location,
			&listing.Images,
			&listing.Status,
			&listing.ContactApproved,
			&listing.CreatedAt,
			&listing.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, listing)
	}
	return result, rows.Err()
}
