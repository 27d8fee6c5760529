package repositories_test

import (
	"context"
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

func TestInvitationRepository_CreateInvitation(t *testing.T) {
	t.Run("Should create pending invitation", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewInvitationRepository(mockPool)

		invitation := &models.AcademyInvitation{
			ID:        "i-1",
			AcademyID: "a-1",
			UserID:    "u-1",
			Status:    models.InvitationPending,
		}
		mockPool.ExpectQuery("INSERT INTO academy_invitations").
			WithArgs(invitation.ID, invitation.AcademyID, invitation.UserID, invitation.Status).
			WillReturnRows(mockPool.NewRows([]string{"id"}).AddRow("i-1"))

		id, err := repo.CreateInvitation(context.Background(), invitation)
		assert.NoError(t, err)
		assert.Equal(t, "i-1", id)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return conflict when an invitation already exists for the pair", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewInvitationRepository(mockPool)

		invitation := &models.AcademyInvitation{
			ID:        "i-1",
			AcademyID: "a-1",
			UserID:    "u-1",
			Status:    models.InvitationPending,
		}
		mockPool.ExpectQuery("INSERT INTO academy_invitations").
			WithArgs(invitation.ID, invitation.AcademyID, invitation.UserID, invitation.Status).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "academy_invitations_academy_id_user_id_key"})

		_, err = repo.CreateInvitation(context.Background(), invitation)
		assert.ErrorIs(t, err, apperrors.ErrInvitationPending)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestInvitationRepository_GetPendingInvitationByID(t *testing.T) {
	t.Run("Should get pending invitation addressed to the user", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewInvitationRepository(mockPool)

		now := time.Now()
		rows := mockPool.NewRows([]string{"id", "academy_id", "user_id", "status", "created_at", "updated_at"}).
			AddRow("i-1", "a-1", "u-1", models.InvitationPending, now, now)
		mockPool.ExpectQuery("SELECT (.+) FROM academy_invitations WHERE id = \\$1 AND user_id = \\$2 AND status = \\$3").
			WithArgs("i-1", "u-1", models.InvitationPending).
			WillReturnRows(rows)

		invitation, err := repo.GetPendingInvitationByID(context.Background(), "i-1", "u-1")
		assert.NoError(t, err)
		assert.Equal(t, models.InvitationPending, invitation.Status)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return not found for a resolved or foreign invitation", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewInvitationRepository(mockPool)

		mockPool.ExpectQuery("SELECT (.+) FROM academy_invitations WHERE id = \\$1 AND user_id = \\$2 AND status = \\$3").
			WithArgs("i-1", "someone-else", models.InvitationPending).
			WillReturnError(pgx.ErrNoRows)

		invitation, err := repo.GetPendingInvitationByID(context.Background(), "i-1", "someone-else")
		assert.Nil(t, invitation)
		assert.ErrorIs(t, err, apperrors.ErrInvitationNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestInvitationRepository_UpdateInvitationStatus(t *testing.T) {
	t.Run("Should transition invitation when current status matches", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewInvitationRepository(mockPool)

		mockPool.ExpectExec("UPDATE academy_invitations").
			WithArgs(models.InvitationAccepted, "i-1", models.InvitationPending).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err = repo.UpdateInvitationStatus(context.Background(), "i-1", models.InvitationPending, models.InvitationAccepted)
		assert.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return not found when the guard status does not match", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewInvitationRepository(mockPool)

		mockPool.ExpectExec("UPDATE academy_invitations").
			WithArgs(models.InvitationAccepted, "i-1", models.InvitationPending).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err = repo.UpdateInvitationStatus(context.Background(), "i-1", models.InvitationPending, models.InvitationAccepted)
		assert.ErrorIs(t, err, apperrors.ErrInvitationNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
