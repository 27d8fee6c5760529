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

// MemberRepository handles database operations for academy memberships
type MemberRepository struct {
	db DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// AddMember inserts a membership row for the (academy, user) pair. Two
// concurrent adds race on the composite unique constraint; the loser gets
// ErrMemberAlreadyExists instead of duplicating the row.
func (r *MemberRepository) AddMember(ctx context.Context, member *models.AcademyMember) (string, error) {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}

	query := squirrel.Insert("academy_members").
		Columns("id", "academy_id", "user_id", "member_status", "member_level", "member_income").
		Values(member.ID, member.AcademyID, member.UserID, member.MemberStatus, member.MemberLevel, member.MemberIncome).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return "", fmt.Errorf("error building SQL: %w", err)
	}

	var id string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "academy_members_academy_id_user_id_key") {
			return "", apperrors.ErrMemberAlreadyExists
		}
		return "", fmt.Errorf("error adding member: %w", err)
	}

	return id, nil
}

// RemoveMember deletes the membership row for the (academy, user) pair
func (r *MemberRepository) RemoveMember(ctx context.Context, academyID, userID string) error {
	query := squirrel.Delete("academy_members").
		Where("academy_id = ? AND user_id = ?", academyID, userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error removing member: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrMemberNotFound
	}

	return nil
}

const memberColumns = `id, academy_id, user_id, member_status, member_level, member_income, joined_at`

func scanMember(row pgx.Row) (*models.AcademyMember, error) {
	member := &models.AcademyMember{}
	err := row.Scan(
		&member.ID, &member.AcademyID, &member.UserID,
		&member.MemberStatus, &member.MemberLevel, &member.MemberIncome, &member.JoinedAt)
	if err != nil {
		return nil, err
	}
	return member, nil
}

// GetMember retrieves the membership row for the (academy, user) pair
func (r *MemberRepository) GetMember(ctx context.Context, academyID, userID string) (*models.AcademyMember, error) {
	query := squirrel.Select(memberColumns).
		From("academy_members").
		Where("academy_id = ? AND user_id = ?", academyID, userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	member, err := scanMember(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, fmt.Errorf("error retrieving member: %w", err)
	}

	return member, nil
}

// GetMembersByAcademyID retrieves all membership rows for an academy
func (r *MemberRepository) GetMembersByAcademyID(ctx context.Context, academyID string) ([]*models.AcademyMember, error) {
	query := squirrel.Select(memberColumns).
		From("academy_members").
		Where("academy_id = ?", academyID).
		OrderBy("joined_at").
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

	var members []*models.AcademyMember
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

// IsMember checks whether a user has a membership row in an academy
func (r *MemberRepository) IsMember(ctx context.Context, academyID, userID string) (bool, error) {
	query := squirrel.Select("1").
		From("academy_members").
		Where("academy_id = ? AND user_id = ?", academyID, userID).
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

// UpdateMemberStatus replaces the member's status
func (r *MemberRepository) UpdateMemberStatus(ctx context.Context, academyID, userID string, status models.MemberStatus) error {
	return r.updateMemberField(ctx, academyID, userID, "member_status", status)
}

// UpdateMemberLevel replaces the member's level
func (r *MemberRepository) UpdateMemberLevel(ctx context.Context, academyID, userID string, level float64) error {
	return r.updateMemberField(ctx, academyID, userID, "member_level", level)
}

func (r *MemberRepository) updateMemberField(ctx context.Context, academyID, userID, column string, value interface{}) error {
	query := squirrel.Update("academy_members").
		Set(column, value).
		Where("academy_id = ? AND user_id = ?", academyID, userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating member: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrMemberNotFound
	}

	return nil
}

// AddMemberIncome adds a delta to the member's income. Income updates are
// additive, not replacements.
func (r *MemberRepository) AddMemberIncome(ctx context.Context, academyID, userID string, delta float64) error {
	result, err := r.db.Exec(ctx, `
		UPDATE academy_members
		SET member_income = member_income + $1
		WHERE academy_id = $2 AND user_id = $3`,
		delta, academyID, userID)

	if err != nil {
		return fmt.Errorf("error updating member income: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrMemberNotFound
	}

	return nil
}
