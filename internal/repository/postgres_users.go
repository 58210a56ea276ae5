package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"grafeio-data/internal/domain"
)

// PostgresUsersRepository UsersRepository backed by Postgres.
type PostgresUsersRepository struct {
	db *sql.DB
}

func NewPostgresUsersRepository(db *sql.DB) *PostgresUsersRepository {
	return &PostgresUsersRepository{db: db}
}

var _ UsersRepository = (*PostgresUsersRepository)(nil)

const userColumns = `
	user_id::text,
	email,
	COALESCE(full_name, '') AS full_name,
	role,
	is_active,
	last_login_at,
	COALESCE(last_login_ip, '') AS last_login_ip,
	created_at,
	updated_at`

func scanUser(row rowScanner) (*domain.UserProfile, error) {
	var u domain.UserProfile
	var lastLogin sql.NullTime
	err := row.Scan(
		&u.UserID,
		&u.Email,
		&u.FullName,
		&u.Role,
		&u.IsActive,
		&lastLogin,
		&u.LastLoginIP,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return &u, nil
}

// GetUser fetches a single profile by id.
func (r *PostgresUsersRepository) GetUser(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	query := fmt.Sprintf(`SELECT %s FROM user_profiles WHERE user_id = $1`, userColumns)

	u, err := scanUser(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// ListUsers all profiles, newest first. The office staff is small; no
// pagination here.
func (r *PostgresUsersRepository) ListUsers(ctx context.Context) ([]*domain.UserProfile, error) {
	query := fmt.Sprintf(`SELECT %s FROM user_profiles ORDER BY created_at DESC`, userColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*domain.UserProfile{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// UpdateUser sets role and active flag.
func (r *PostgresUsersRepository) UpdateUser(ctx context.Context, userID string, role string, isActive bool) error {
	if userID == "" {
		return fmt.Errorf("user_id is required")
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE user_profiles SET role = $2, is_active = $3, updated_at = NOW() WHERE user_id = $1`,
		userID, role, isActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user not found: user_id '%s'", userID)
	}

	return nil
}

// RecordLogin stamps the last seen time and source address.
func (r *PostgresUsersRepository) RecordLogin(ctx context.Context, userID, ip string, at time.Time) error {
	if userID == "" {
		return fmt.Errorf("user_id is required")
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE user_profiles SET last_login_at = $2, last_login_ip = NULLIF($3, ''), updated_at = NOW() WHERE user_id = $1`,
		userID, at, ip,
	)
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	return nil
}
