package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/schoolie/schoolie-backend/internal/app/models"
	"github.com/schoolie/schoolie-backend/internal/pkg/apperrors"
	"github.com/schoolie/schoolie-backend/internal/pkg/dberrors"
)

// RoleRepository handles database operations for role assignments
type RoleRepository struct {
	db DB
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// AssignRole creates a role assignment for a user. The (user_id, role) pair
// is unique, so assigning the same role twice surfaces as a conflict.
func (r *RoleRepository) AssignRole(ctx context.Context, userID string, role models.Role) (string, error) {
	query := squirrel.Insert("user_roles").
		Columns("id", "user_id", "role").
		Values(uuid.New().String(), userID, role).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return "", fmt.Errorf("error building SQL: %w", err)
	}

	var id string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "user_roles_user_id_role_key") {
			return "", apperrors.ErrRoleAlreadyAssigned
		}
		return "", fmt.Errorf("error assigning role: %w", err)
	}

	return id, nil
}

// RemoveRole deletes a role assignment
func (r *RoleRepository) RemoveRole(ctx context.Context, userID string, role models.Role) error {
	query := squirrel.Delete("user_roles").
		Where("user_id = ? AND role = ?", userID, role).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error removing role: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrRoleNotFound
	}

	return nil
}

// GetUserRoles retrieves all roles held by a user
func (r *RoleRepository) GetUserRoles(ctx context.Context, userID string) ([]models.Role, error) {
	query := squirrel.Select("role").
		From("user_roles").
		Where("user_id = ?", userID).
		OrderBy("created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		roles = append(roles, role)
	}

	return roles, rows.Err()
}

// HasRole checks whether a user holds a given role
func (r *RoleRepository) HasRole(ctx context.Context, userID string, role models.Role) (bool, error) {
	query := squirrel.Select("1").
		From("user_roles").
		Where("user_id = ? AND role = ?", userID, role).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return true, nil
}
