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

// InvitationRepository handles database operations for academy invitations
type InvitationRepository struct {
	db DB
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

const invitationColumns = `id, academy_id, user_id, status, created_at, updated_at`

func scanInvitation(row pgx.Row) (*models.AcademyInvitation, error) {
	invitation := &models.AcademyInvitation{}
	err := row.Scan(
		&invitation.ID, &invitation.AcademyID, &invitation.UserID,
		&invitation.Status, &invitation.CreatedAt, &invitation.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return invitation, nil
}

// CreateInvitation inserts a PENDING invitation row for the (academy, user)
// pair. The composite unique constraint rejects a second invitation while one
// exists for the pair.
func (r *InvitationRepository) CreateInvitation(ctx context.Context, invitation *models.AcademyInvitation) (string, error) {
	if invitation.ID == "" {
		invitation.ID = uuid.New().String()
	}

	query := squirrel.Insert("academy_invitations").
		Columns("id", "academy_id", "user_id", "status").
		Values(invitation.ID, invitation.AcademyID, invitation.UserID, invitation.Status).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return "", fmt.Errorf("error building SQL: %w", err)
	}

	var id string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "academy_invitations_academy_id_user_id_key") {
			return "", apperrors.ErrInvitationPending
		}
		return "", fmt.Errorf("error creating invitation: %w", err)
	}

	return id, nil
}

// GetInvitation retrieves the invitation row for the (academy, user) pair
func (r *InvitationRepository) GetInvitation(ctx context.Context, academyID, userID string) (*models.AcademyInvitation, error) {
	query := squirrel.Select(invitationColumns).
		From("academy_invitations").
		Where("academy_id = ? AND user_id = ?", academyID, userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	invitation, err := scanInvitation(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("error retrieving invitation: %w", err)
	}

	return invitation, nil
}

// GetPendingInvitationByID retrieves a PENDING invitation addressed to the
// given user. Resolved invitations are invisible here, so accepting or
// rejecting twice reports not found.
func (r *InvitationRepository) GetPendingInvitationByID(ctx context.Context, invitationID, userID string) (*models.AcademyInvitation, error) {
	query := squirrel.Select(invitationColumns).
		From("academy_invitations").
		Where("id = ? AND user_id = ? AND status = ?", invitationID, userID, models.InvitationPending).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	invitation, err := scanInvitation(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("error retrieving invitation: %w", err)
	}

	return invitation, nil
}

// GetPendingInvitationsByUserID retrieves all PENDING invitations for a user
func (r *InvitationRepository) GetPendingInvitationsByUserID(ctx context.Context, userID string) ([]*models.AcademyInvitation, error) {
	query := squirrel.Select(invitationColumns).
		From("academy_invitations").
		Where("user_id = ? AND status = ?", userID, models.InvitationPending).
		OrderBy("created_at DESC").
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

	var invitations []*models.AcademyInvitation
	for rows.Next() {
		invitation, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		invitations = append(invitations, invitation)
	}

	return invitations, rows.Err()
}

// UpdateInvitationStatus transitions an invitation from one status to
// another. The current status guards the update, so resolving an invitation
// that has already moved on reports not found instead of silently rewriting
// history. Re-inviting reuses the row via the REJECTED/ACCEPTED -> PENDING
// transition.
func (r *InvitationRepository) UpdateInvitationStatus(ctx context.Context, invitationID string, from, to models.InvitationStatus) error {
	result, err := r.db.Exec(ctx, `
		UPDATE academy_invitations
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3`,
		to, invitationID, from)

	if err != nil {
		return fmt.Errorf("error updating invitation: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrInvitationNotFound
	}

	return nil
}
