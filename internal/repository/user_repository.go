package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/campus-community/internal/domain"
)

// UserStats aggregates account counts for the admin dashboard.
type UserStats struct {
	Total                  int64
	Verified               int64
	PendingVerification    int64
	PendingContactApproval int64
}

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetBySchoolEmail(ctx context.Context, schoolEmail string) (*domain.User, error)
	GetSuperadminByEmail(ctx context.Context, email string) (*domain.User, error)
	HasSuperadmin(ctx context.Context) (bool, error)
	List(ctx context.Context) ([]domain.User, error)
	ListPendingVerification(ctx context.Context) ([]domain.User, error)
	ListPendingContactApproval(ctx context.Context) ([]domain.User, error)
	ListVerifiedActiveIDs(ctx context.Context) ([]int64, error)
	ApproveContact(ctx context.Context, userID int64) (int64, error)
	Stats(ctx context.Context) (*UserStats, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, name, username, email, school_email, personal_email, university_name,
       password_hash, phone, date_of_birth, profile_picture, role, status,
       is_verified, can_show_contact, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, username, email, school_email, personal_email, university_name,
                           password_hash, phone, date_of_birth, profile_picture, role, status,
                           is_verified, can_show_contact)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Name,
		user.Username,
		user.Email,
		user.SchoolEmail,
		user.PersonalEmail,
		user.UniversityName,
		user.PasswordHash,
		user.Phone,
		user.DateOfBirth,
		user.ProfilePicture,
		user.Role,
		user.Status,
		user.IsVerified,
		user.CanShowContact,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET name=$1, username=$2, email=$3, school_email=$4, personal_email=$5,
            university_name=$6, password_hash=$7, phone=$8, date_of_birth=$9, profile_picture=$10,
            role=$11, status=$12, is_verified=$13, can_show_contact=$14, updated_at=NOW()
        WHERE id=$15`

	cmd, err := r.pool.Exec(ctx, query,
		user.Name,
		user.Username,
		user.Email,
		user.SchoolEmail,
		user.PersonalEmail,
		user.UniversityName,
		user.PasswordHash,
		user.Phone,
		user.DateOfBirth,
		user.ProfilePicture,
		user.Role,
		user.Status,
		user.IsVerified,
		user.CanShowContact,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username)
}

func (r *userRepository) GetBySchoolEmail(ctx context.Context, schoolEmail string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE school_email=$1`, schoolEmail)
}

func (r *userRepository) GetSuperadminByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1 AND role='superadmin'`, email)
}

func (r *userRepository) HasSuperadmin(ctx context.Context) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE role='superadmin')`
	var exists bool
	if err := r.pool.QueryRow(ctx, query).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.fetchMany(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
}

func (r *userRepository) ListPendingVerification(ctx context.Context) ([]domain.User, error) {
	return r.fetchMany(ctx, `SELECT `+userColumns+` FROM users WHERE is_verified=false ORDER BY created_at ASC`)
}

func (r *userRepository) ListPendingContactApproval(ctx context.Context) ([]domain.User, error) {
	return r.fetchMany(ctx, `SELECT `+userColumns+` FROM users
        WHERE is_verified=true AND can_show_contact=false ORDER BY created_at ASC`)
}

func (r *userRepository) ListVerifiedActiveIDs(ctx context.Context) ([]int64, error) {
	const query = `SELECT id FROM users WHERE is_verified=true AND status='active'`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ApproveContact flips can_show_contact and cascades contact approval to the
// user's existing listings inside a single transaction, so a reader never
// observes the flag set while pre-existing listings are still unapproved.
// Returns the number of listings covered by the cascade.
func (r *userRepository) ApproveContact(ctx context.Context, userID int64) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx, `UPDATE users SET can_show_contact=true, updated_at=NOW() WHERE id=$1`, userID)
	if err != nil {
		return 0, err
	}
	if cmd.RowsAffected() == 0 {
		return 0, pgx.ErrNoRows
	}

	cascade, err := tx.Exec(ctx, `UPDATE listings SET contact_approved=true, updated_at=NOW() WHERE user_id=$1`, userID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return cascade.RowsAffected(), nil
}

func (r *userRepository) Stats(ctx context.Context) (*UserStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE is_verified),
               COUNT(*) FILTER (WHERE NOT is_verified),
               COUNT(*) FILTER (WHERE is_verified AND NOT can_show_contact)
        FROM users`

	var stats UserStats
	if err := r.pool.QueryRow(ctx, query).Scan(
		&stats.Total,
		&stats.Verified,
		&stats.PendingVerification,
		&stats.PendingContactApproval,
	); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.Email,
		&user.SchoolEmail,
		&user.PersonalEmail,
		&user.UniversityName,
		&user.PasswordHash,
		&user.Phone,
		&user.DateOfBirth,
		&user.ProfilePicture,
		&user.Role,
		&user.Status,
		&user.IsVerified,
		&user.CanShowContact,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Username,
			&user.Email,
			&user.SchoolEmail,
			&user.PersonalEmail,
			&user.UniversityName,
			&user.PasswordHash,
			&user.Phone,
			&user.DateOfBirth,
			&user.ProfilePicture,
			&user.Role,
			&user.Status,
			&user.IsVerified,
			&user.CanShowContact,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}
