package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/schoolie/schoolie-backend/internal/app/models"
	"github.com/schoolie/schoolie-backend/internal/app/repositories"
	"github.com/schoolie/schoolie-backend/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func academyRows(pool pgxmock.PgxPoolIface, academy *models.Academy) *pgxmock.Rows {
	return pool.NewRows([]string{
		"id", "owner_id", "name", "bio", "logo_url",
		"student_count", "teacher_count", "is_active", "created_at", "updated_at",
	}).AddRow(
		academy.ID, academy.OwnerID, academy.Name, academy.Bio, academy.LogoURL,
		academy.StudentCount, academy.TeacherCount, academy.IsActive, academy.CreatedAt, academy.UpdatedAt,
	)
}

func TestAcademyRepository_CreateAcademy(t *testing.T) {
	t.Run("Should create academy with zero counters", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewAcademyRepository(mockPool)

		academy := &models.Academy{
			ID:       "a-1",
			OwnerID:  "u-1",
			Name:     "Good Academy",
			IsActive: true,
		}
		mockPool.ExpectQuery("INSERT INTO academies").
			WithArgs(academy.ID, academy.OwnerID, academy.Name, academy.Bio, academy.LogoURL, academy.IsActive).
			WillReturnRows(mockPool.NewRows([]string{"id"}).AddRow("a-1"))

		id, err := repo.CreateAcademy(context.Background(), academy)
		assert.NoError(t, err)
		assert.Equal(t, "a-1", id)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestAcademyRepository_GetAcademyByID(t *testing.T) {
	t.Run("Should get academy successfully", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewAcademyRepository(mockPool)

		now := time.Now()
		academy := &models.Academy{
			ID: "a-1", OwnerID: "u-1", Name: "Good Academy",
			StudentCount: 3, TeacherCount: 1, IsActive: true,
			CreatedAt: now, UpdatedAt: now,
		}
		mockPool.ExpectQuery("SELECT (.+) FROM academies WHERE id = \\$1").
			WithArgs("a-1").
			WillReturnRows(academyRows(mockPool, academy))

		got, err := repo.GetAcademyByID(context.Background(), "a-1")
		assert.NoError(t, err)
		assert.Equal(t, "Good Academy", got.Name)
		assert.Equal(t, 3, got.StudentCount)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return not found for a missing academy", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewAcademyRepository(mockPool)

		mockPool.ExpectQuery("SELECT (.+) FROM academies WHERE id = \\$1").
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		got, err := repo.GetAcademyByID(context.Background(), "missing")
		assert.Nil(t, got)
		assert.True(t, errors.Is(err, apperrors.ErrAcademyNotFound))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestAcademyRepository_RecomputeStats(t *testing.T) {
	t.Run("Should recompute counters from membership rows", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewAcademyRepository(mockPool)

		mockPool.ExpectExec("UPDATE academies a SET").
			WithArgs("a-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err = repo.RecomputeStats(context.Background(), "a-1")
		assert.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return not found for a missing academy", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewAcademyRepository(mockPool)

		mockPool.ExpectExec("UPDATE academies a SET").
			WithArgs("missing").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err = repo.RecomputeStats(context.Background(), "missing")
		assert.ErrorIs(t, err, apperrors.ErrAcademyNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestAcademyRepository_GetAcademiesForUser(t *testing.T) {
	t.Run("Should list owned and member academies", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewAcademyRepository(mockPool)

		now := time.Now()
		rows := mockPool.NewRows([]string{
			"id", "owner_id", "name", "bio", "logo_url",
			"student_count", "teacher_count", "is_active", "created_at", "updated_at",
		}).
			AddRow("a-1", "u-1", "Owned", nil, nil, 0, 0, true, now, now).
			AddRow("a-2", "u-2", "Joined", nil, nil, 5, 1, true, now, now)

		mockPool.ExpectQuery("SELECT (.+) FROM academies a").
			WithArgs("u-1").
			WillReturnRows(rows)

		academies, err := repo.GetAcademiesForUser(context.Background(), "u-1")
		assert.NoError(t, err)
		require.Len(t, academies, 2)
		assert.Equal(t, "Owned", academies[0].Name)
		assert.Equal(t, "Joined", academies[1].Name)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
