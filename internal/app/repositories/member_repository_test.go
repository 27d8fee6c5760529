package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/schoolie/schoolie-backend/internal/app/models"
	"github.com/schoolie/schoolie-backend/internal/app/repositories"
	"github.com/schoolie/schoolie-backend/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberRepository_AddMember(t *testing.T) {
	t.Run("Should add member successfully", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewMemberRepository(mockPool)

		member := &models.AcademyMember{
			ID:           "m-1",
			AcademyID:    "a-1",
			UserID:       "u-1",
			MemberStatus: models.MemberStatusActive,
			MemberLevel:  1.0,
		}
		mockPool.ExpectQuery("INSERT INTO academy_members").
			WithArgs(member.ID, member.AcademyID, member.UserID, member.MemberStatus, member.MemberLevel, member.MemberIncome).
			WillReturnRows(mockPool.NewRows([]string{"id"}).AddRow("m-1"))

		id, err := repo.AddMember(context.Background(), member)
		assert.NoError(t, err)
		assert.Equal(t, "m-1", id)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return conflict when membership already exists", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewMemberRepository(mockPool)

		member := &models.AcademyMember{
			ID:           "m-1",
			AcademyID:    "a-1",
			UserID:       "u-1",
			MemberStatus: models.MemberStatusActive,
			MemberLevel:  1.0,
		}
		mockPool.ExpectQuery("INSERT INTO academy_members").
			WithArgs(member.ID, member.AcademyID, member.UserID, member.MemberStatus, member.MemberLevel, member.MemberIncome).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "academy_members_academy_id_user_id_key"})

		_, err = repo.AddMember(context.Background(), member)
		assert.ErrorIs(t, err, apperrors.ErrMemberAlreadyExists)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestMemberRepository_RemoveMember(t *testing.T) {
	t.Run("Should remove member successfully", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewMemberRepository(mockPool)

		mockPool.ExpectExec("DELETE FROM academy_members").
			WithArgs("a-1", "u-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		err = repo.RemoveMember(context.Background(), "a-1", "u-1")
		assert.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return not found when membership is absent", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewMemberRepository(mockPool)

		mockPool.ExpectExec("DELETE FROM academy_members").
			WithArgs("a-1", "u-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err = repo.RemoveMember(context.Background(), "a-1", "u-1")
		assert.ErrorIs(t, err, apperrors.ErrMemberNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestMemberRepository_GetMember(t *testing.T) {
	t.Run("Should get member successfully", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewMemberRepository(mockPool)

		now := time.Now()
		rows := mockPool.NewRows([]string{"id", "academy_id", "user_id", "member_status", "member_level", "member_income", "joined_at"}).
			AddRow("m-1", "a-1", "u-1", models.MemberStatusActive, 1.0, 42.5, now)
		mockPool.ExpectQuery("SELECT (.+) FROM academy_members WHERE academy_id = \\$1 AND user_id = \\$2").
			WithArgs("a-1", "u-1").
			WillReturnRows(rows)

		member, err := repo.GetMember(context.Background(), "a-1", "u-1")
		assert.NoError(t, err)
		assert.Equal(t, models.MemberStatusActive, member.MemberStatus)
		assert.Equal(t, 42.5, member.MemberIncome)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return not found when no row exists", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewMemberRepository(mockPool)

		mockPool.ExpectQuery("SELECT (.+) FROM academy_members WHERE academy_id = \\$1 AND user_id = \\$2").
			WithArgs("a-1", "u-1").
			WillReturnError(pgx.ErrNoRows)

		member, err := repo.GetMember(context.Background(), "a-1", "u-1")
		assert.Nil(t, member)
		assert.True(t, errors.Is(err, apperrors.ErrMemberNotFound))
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestMemberRepository_AddMemberIncome(t *testing.T) {
	t.Run("Should add income delta to existing member", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewMemberRepository(mockPool)

		mockPool.ExpectExec("UPDATE academy_members").
			WithArgs(10.5, "a-1", "u-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err = repo.AddMemberIncome(context.Background(), "a-1", "u-1", 10.5)
		assert.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return not found for a missing member", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewMemberRepository(mockPool)

		mockPool.ExpectExec("UPDATE academy_members").
			WithArgs(10.5, "a-1", "u-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err = repo.AddMemberIncome(context.Background(), "a-1", "u-1", 10.5)
		assert.ErrorIs(t, err, apperrors.ErrMemberNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestMemberRepository_IsMember(t *testing.T) {
	t.Run("Should report membership when a row exists", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewMemberRepository(mockPool)

		mockPool.ExpectQuery("SELECT 1 FROM academy_members").
			WithArgs("a-1", "u-1").
			WillReturnRows(mockPool.NewRows([]string{"?column?"}).AddRow(1))

		isMember, err := repo.IsMember(context.Background(), "a-1", "u-1")
		assert.NoError(t, err)
		assert.True(t, isMember)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should report no membership when no row exists", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewMemberRepository(mockPool)

		mockPool.ExpectQuery("SELECT 1 FROM academy_members").
			WithArgs("a-1", "u-1").
			WillReturnError(pgx.ErrNoRows)

		isMember, err := repo.IsMember(context.Background(), "a-1", "u-1")
		assert.NoError(t, err)
		assert.False(t, isMember)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
