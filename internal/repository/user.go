package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ayaka/snugglespace/internal/domain"
)

const userColumns = `id, provider, provider_id, email, display_name, avatar_url, partner_id, created_at, updated_at`

// UserRepository handles user data access operations.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID retrieves a user by their ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user by id %s: %w", id, err)
	}
	return &user, nil
}

// Upsert creates a new user or updates an existing one based on provider +
// provider_id. The profile row is created lazily on first sign-in; subsequent
// sign-ins refresh the provider-sourced fields but never touch partner_id.
func (r *UserRepository) Upsert(ctx context.Context, user domain.User) (*domain.User, error) {
	var result domain.User
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO users (id, provider, provider_id, email, display_name, avatar_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (provider, provider_id)
		 DO UPDATE SET email = EXCLUDED.email,
		               display_name = EXCLUDED.display_name,
		               avatar_url = EXCLUDED.avatar_url,
		               updated_at = NOW()
		 RETURNING `+userColumns,
		uuid.NewString(), user.Provider, user.ProviderID, user.Email, user.DisplayName, user.AvatarURL,
	).StructScan(&result)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return &result, nil
}

// UpdateProfile sets the user's self-owned fields (display name and avatar).
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, displayName string, avatarURL *string) (*domain.User, error) {
	var result domain.User
	err := r.db.QueryRowxContext(ctx,
		`UPDATE users
		 SET display_name = $2, avatar_url = $3, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, displayName, avatarURL,
	).StructScan(&result)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update profile for user %s: %w", id, err)
	}
	return &result, nil
}

// FindPartnerSummary retrieves the partner-facing profile subset for a user.
func (r *UserRepository) FindPartnerSummary(ctx context.Context, id string) (*domain.PartnerSummary, error) {
	var partner domain.PartnerSummary
	err := r.db.GetContext(ctx, &partner,
		`SELECT id, email, display_name, avatar_url FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find partner summary %s: %w", id, err)
	}
	return &partner, nil
}
