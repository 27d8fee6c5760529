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

// UserRepository handles database operations for users
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser creates a new user row. The unique constraints on email and
// username surface as the matching conflict sentinel.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (string, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	var id string
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (id, email, username, password, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		user.ID, user.Email, user.Username, user.Password, user.IsActive).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return "", apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return "", apperrors.ErrUsernameAlreadyExists
		}
		if dberrors.IsUniqueViolation(err) {
			return "", apperrors.ErrConflict
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, email, username, password, is_active, created_at, updated_at
		FROM users
		WHERE id = $1`,
		id).Scan(
		&user.ID, &user.Email, &user.Username, &user.Password,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetUserByEmailOrUsername retrieves a user by email or username, the login identifier
func (r *UserRepository) GetUserByEmailOrUsername(ctx context.Context, identifier string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, email, username, password, is_active, created_at, updated_at
		FROM users
		WHERE email = $1 OR username = $1`,
		identifier).Scan(
		&user.ID, &user.Email, &user.Username, &user.Password,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetAllUsers retrieves users with offset/limit pagination
func (r *UserRepository) GetAllUsers(ctx context.Context, offset, limit int) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, email, username, password, is_active, created_at, updated_at
		FROM users
		ORDER BY created_at
		OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(
			&user.ID, &user.Email, &user.Username, &user.Password,
			&user.IsActive, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// UpdateUser updates a user's mutable fields
func (r *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users
		SET email = $1, username = $2, is_active = $3, updated_at = now()
		WHERE id = $4`,
		user.Email, user.Username, user.IsActive, user.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return apperrors.ErrUsernameAlreadyExists
		}
		return fmt.Errorf("error updating user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users SET password = $1, updated_at = now() WHERE id = $2`,
		passwordHash, userID)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// DeleteUser removes a user row; memberships, roles and profile cascade
func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// GetAvailableStudents retrieves users holding the STUDENT role that are not
// a member of any academy yet
func (r *UserRepository) GetAvailableStudents(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.email, u.username, u.password, u.is_active, u.created_at, u.updated_at
		FROM users u
		WHERE EXISTS (SELECT 1 FROM user_roles r WHERE r.user_id = u.id AND r.role = $1)
		  AND NOT EXISTS (SELECT 1 FROM academy_members m WHERE m.user_id = u.id)
		ORDER BY u.created_at`,
		models.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("error listing available students: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(
			&user.ID, &user.Email, &user.Username, &user.Password,
			&user.IsActive, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}
