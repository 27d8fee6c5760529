package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/schoolie/schoolie-backend/internal/app/models"
	"github.com/schoolie/schoolie-backend/internal/pkg/apperrors"
	"github.com/schoolie/schoolie-backend/internal/pkg/dberrors"
)

// ProfileRepository handles database operations for user profiles
type ProfileRepository struct {
	db DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// CreateProfile creates a profile row for a user. Each user has at most one profile.
func (r *ProfileRepository) CreateProfile(ctx context.Context, profile *models.UserProfile) (string, error) {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}

	var id string
	err := r.db.QueryRow(ctx, `
		INSERT INTO user_profiles (id, user_id, full_name, nick_name, birth_date, bio, avatar_url, phone_number, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		profile.ID, profile.UserID, profile.FullName, profile.NickName, profile.BirthDate,
		profile.Bio, profile.AvatarURL, profile.PhoneNumber, profile.Address).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "user_profiles_user_id_key") {
			return "", apperrors.ErrProfileAlreadyExists
		}
		return "", fmt.Errorf("error creating profile: %w", err)
	}

	return id, nil
}

// GetProfileByUserID retrieves a profile by the owning user's ID
func (r *ProfileRepository) GetProfileByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile := &models.UserProfile{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, full_name, nick_name, birth_date, bio, avatar_url, phone_number, address, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1`,
		userID).Scan(
		&profile.ID, &profile.UserID, &profile.FullName, &profile.NickName, &profile.BirthDate,
		&profile.Bio, &profile.AvatarURL, &profile.PhoneNumber, &profile.Address,
		&profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}

	return profile, nil
}

// GetProfileByID retrieves a profile by its own ID
func (r *ProfileRepository) GetProfileByID(ctx context.Context, id string) (*models.UserProfile, error) {
	profile := &models.UserProfile{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, full_name, nick_name, birth_date, bio, avatar_url, phone_number, address, created_at, updated_at
		FROM user_profiles
		WHERE id = $1`,
		id).Scan(
		&profile.ID, &profile.UserID, &profile.FullName, &profile.NickName, &profile.BirthDate,
		&profile.Bio, &profile.AvatarURL, &profile.PhoneNumber, &profile.Address,
		&profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}

	return profile, nil
}

// UpdateProfile updates a profile's mutable fields
func (r *ProfileRepository) UpdateProfile(ctx context.Context, profile *models.UserProfile) error {
	result, err := r.db.Exec(ctx, `
		UPDATE user_profiles
		SET full_name = $1, nick_name = $2, birth_date = $3, bio = $4,
		    avatar_url = $5, phone_number = $6, address = $7, updated_at = now()
		WHERE id = $8`,
		profile.FullName, profile.NickName, profile.BirthDate, profile.Bio,
		profile.AvatarURL, profile.PhoneNumber, profile.Address, profile.ID)

	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}

	return nil
}
