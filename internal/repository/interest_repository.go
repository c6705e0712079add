package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campus-community/internal/domain"
)

// InterestStats aggregates interest counts for the admin dashboard.
type InterestStats struct {
	Total   int64
	Pending int64
}

// InterestRepository encapsulates buyer-interest persistence.
type InterestRepository interface {
	Create(ctx context.Context, interest *domain.Interest) error
	GetByListingAndBuyer(ctx context.Context, listingID, buyerID int64) (*domain.Interest, error)
	ListByListing(ctx context.Context, listingID int64) ([]domain.Interest, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]domain.Interest, error)
	Stats(ctx context.Context) (*InterestStats, error)
}

type interestRepository struct {
	pool *pgxpool.Pool
}

// NewInterestRepository instantiates repository.
func NewInterestRepository(pool *pgxpool.Pool) InterestRepository {
	return &interestRepository{pool: pool}
}

const interestColumns = `id, listing_id, buyer_id, seller_id, message, status, created_at, updated_at`

func (r *interestRepository) Create(ctx context.Context, interest *domain.Interest) error {
	const query = `
        INSERT INTO interests (listing_id, buyer_id, seller_id, message, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		interest.ListingID,
		interest.BuyerID,
		interest.SellerID,
		interest.Message,
		interest.Status,
	).Scan(&interest.ID, &interest.CreatedAt, &interest.UpdatedAt)
}

func (r *interestRepository) GetByListingAndBuyer(ctx context.Context, listingID, buyerID int64) (*domain.Interest, error) {
	const query = `SELECT ` + interestColumns + ` FROM interests WHERE listing_id=$1 AND buyer_id=$2`
	var interest domain.Interest
	if err := r.pool.QueryRow(ctx, query, listingID, buyerID).Scan(
		&interest.ID,
		&interest.ListingID,
		&interest.BuyerID,
		&interest.SellerID,
		&interest.Message,
		&interest.Status,
		&interest.CreatedAt,
		&interest.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &interest, nil
}

func (r *interestRepository) ListByListing(ctx context.Context, listingID int64) ([]domain.Interest, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+interestColumns+` FROM interests WHERE listing_id=$1 ORDER BY created_at DESC`, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInterests(rows)
}

func (r *interestRepository) ListBySeller(ctx context.Context, sellerID int64) ([]domain.Interest, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+interestColumns+` FROM interests WHERE seller_id=$1 ORDER BY created_at DESC`, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInterests(rows)
}

func (r *interestRepository) Stats(ctx context.Context) (*InterestStats, error) {
	const query = `
        SELECT COUNT(*), COUNT(*) FILTER (WHERE status='pending') FROM interests`

	var stats InterestStats
	if err := r.pool.QueryRow(ctx, query).Scan(&stats.Total, &stats.Pending); err != nil {
		return nil, err
	}
	return &stats, nil
}

func scanInterests(rows pgx.Rows) ([]domain.Interest, error) {
	var result []domain.Interest
	for rows.Next() {
		var interest domain.Interest
		if err := rows.Scan(
			&interest.ID,
			&interest.ListingID,
			&interest.BuyerID,
			&interest.SellerID,
			&interest.Message,
			&interest.Status,
			&interest.CreatedAt,
			&interest.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, interest)
	}
	return result, rows.Err()
}
