package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/schoolie/schoolie-backend/internal/app/models"
	"github.com/schoolie/schoolie-backend/internal/pkg/apperrors"
)

// AcademyRepository handles database operations for academies
type AcademyRepository struct {
	db DB
}

// NewAcademyRepository creates a new AcademyRepository
func NewAcademyRepository(db DB) *AcademyRepository {
	return &AcademyRepository{db: db}
}

const academyColumns = `id, owner_id, name, bio, logo_url, student_count, teacher_count, is_active, created_at, updated_at`

func scanAcademy(row pgx.Row) (*models.Academy, error) {
	academy := &models.Academy{}
	err := row.Scan(
		&academy.ID, &academy.OwnerID, &academy.Name, &academy.Bio, &academy.LogoURL,
		&academy.StudentCount, &academy.TeacherCount, &academy.IsActive,
		&academy.CreatedAt, &academy.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return academy, nil
}

// CreateAcademy creates a new academy row. Counters start at zero and are
// recomputed once the owner membership row exists in the same transaction.
func (r *AcademyRepository) CreateAcademy(ctx context.Context, academy *models.Academy) (string, error) {
	if academy.ID == "" {
		academy.ID = uuid.New().String()
	}

	var id string
	err := r.db.QueryRow(ctx, `
		INSERT INTO academies (id, owner_id, name, bio, logo_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		academy.ID, academy.OwnerID, academy.Name, academy.Bio, academy.LogoURL, academy.IsActive).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("error creating academy: %w", err)
	}

	return id, nil
}

// GetAcademyByID retrieves an academy by ID
func (r *AcademyRepository) GetAcademyByID(ctx context.Context, id string) (*models.Academy, error) {
	academy, err := scanAcademy(r.db.QueryRow(ctx,
		`SELECT `+academyColumns+` FROM academies WHERE id = $1`, id))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAcademyNotFound
		}
		return nil, fmt.Errorf("error retrieving academy: %w", err)
	}

	return academy, nil
}

// GetAllAcademies retrieves every academy, for administrators
func (r *AcademyRepository) GetAllAcademies(ctx context.Context) ([]*models.Academy, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+academyColumns+` FROM academies ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("error listing academies: %w", err)
	}
	defer rows.Close()

	return collectAcademies(rows)
}

// GetAcademiesForUser retrieves academies the user owns or is a member of
func (r *AcademyRepository) GetAcademiesForUser(ctx context.Context, userID string) ([]*models.Academy, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+academyColumns+`
		FROM academies a
		WHERE a.owner_id = $1
		   OR EXISTS (SELECT 1 FROM academy_members m WHERE m.academy_id = a.id AND m.user_id = $1)
		ORDER BY a.created_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("error listing academies: %w", err)
	}
	defer rows.Close()

	return collectAcademies(rows)
}

func collectAcademies(rows pgx.Rows) ([]*models.Academy, error) {
	var academies []*models.Academy
	for rows.Next() {
		academy, err := scanAcademy(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		academies = append(academies, academy)
	}
	return academies, rows.Err()
}

// UpdateAcademy updates an academy's descriptive fields
func (r *AcademyRepository) UpdateAcademy(ctx context.Context, academy *models.Academy) error {
	result, err := r.db.Exec(ctx, `
		UPDATE academies
		SET name = $1, bio = $2, logo_url = $3, is_active = $4, updated_at = now()
		WHERE id = $5`,
		academy.Name, academy.Bio, academy.LogoURL, academy.IsActive, academy.ID)

	if err != nil {
		return fmt.Errorf("error updating academy: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrAcademyNotFound
	}

	return nil
}

// DeleteAcademy removes an academy; memberships and invitations cascade
func (r *AcademyRepository) DeleteAcademy(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM academies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting academy: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrAcademyNotFound
	}

	return nil
}

// RecomputeStats re-derives student_count and teacher_count from the
// membership and role rows. Counters are never incremented independently of
// the underlying row set; every count-changing transition calls this inside
// the same transaction.
func (r *AcademyRepository) RecomputeStats(ctx context.Context, academyID string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE academies a SET
			teacher_count = (
				SELECT COUNT(*) FROM academy_members m
				WHERE m.academy_id = a.id
				  AND EXISTS (SELECT 1 FROM user_roles r WHERE r.user_id = m.user_id AND r.role = 'TEACHER')
			),
			student_count = (
				SELECT COUNT(*) FROM academy_members m
				WHERE m.academy_id = a.id
				  AND NOT EXISTS (SELECT 1 FROM user_roles r WHERE r.user_id = m.user_id AND r.role = 'TEACHER')
			),
			updated_at = now()
		WHERE a.id = $1`,
		academyID)

	if err != nil {
		return fmt.Errorf("error recomputing academy stats: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrAcademyNotFound
	}

	return nil
}
