package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/schoolie/schoolie-backend/internal/app/auth"
	"github.com/schoolie/schoolie-backend/internal/app/models"
	"github.com/schoolie/schoolie-backend/internal/app/models/dto"
	"github.com/schoolie/schoolie-backend/internal/app/repositories"
	"github.com/schoolie/schoolie-backend/internal/app/services"
	"github.com/schoolie/schoolie-backend/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStudentService(t *testing.T) (services.StudentService, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)

	repos := repositories.NewRepositories(mockPool)
	authzService := auth.NewAuthorizationService(
		repos.RoleRepository, repos.AcademyRepository, repos.MemberRepository)
	svc := services.NewStudentService(repos, authzService, zerolog.Nop())
	return svc, mockPool
}

func expectUserByID(pool pgxmock.PgxPoolIface, userID string) {
	now := time.Now()
	pool.ExpectQuery("SELECT id, email, username, password, is_active, created_at, updated_at FROM users WHERE id = \\$1").
		WithArgs(userID).
		WillReturnRows(pool.NewRows([]string{
			"id", "email", "username", "password", "is_active", "created_at", "updated_at",
		}).AddRow(userID, userID+"@example.com", userID, "hash", true, now, now))
}

func TestStudentService_GetAvailableStudents(t *testing.T) {
	t.Run("Should list unenrolled students for an academy owner", func(t *testing.T) {
		svc, mockPool := newStudentService(t)
		defer mockPool.Close()

		expectUserRoles(mockPool, "owner-1", models.RoleAcademyOwner)

		now := time.Now()
		mockPool.ExpectQuery("SELECT u.id, u.email, u.username, u.password, u.is_active, u.created_at, u.updated_at FROM users u").
			WithArgs(models.RoleStudent).
			WillReturnRows(mockPool.NewRows([]string{
				"id", "email", "username", "password", "is_active", "created_at", "updated_at",
			}).AddRow("u-2", "kid@example.com", "kid", "hash", true, now, now))

		students, err := svc.GetAvailableStudents(context.Background(), "owner-1")
		assert.NoError(t, err)
		assert.Len(t, students, 1)
		assert.Equal(t, "u-2", students[0].ID)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should refuse listing for actors without the owner role", func(t *testing.T) {
		svc, mockPool := newStudentService(t)
		defer mockPool.Close()

		expectUserRoles(mockPool, "student-1", models.RoleStudent)

		students, err := svc.GetAvailableStudents(context.Background(), "student-1")
		assert.Nil(t, students)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestStudentService_InviteStudent(t *testing.T) {
	t.Run("Should refuse to invite a user without the student role", func(t *testing.T) {
		svc, mockPool := newStudentService(t)
		defer mockPool.Close()

		mockPool.ExpectQuery("SELECT (.+) FROM academies WHERE id = \\$1").
			WithArgs("a-1").
			WillReturnRows(academyRow(mockPool, &models.Academy{
				ID: "a-1", OwnerID: "owner-1", Name: "Piano Academy", IsActive: true,
			}))
		expectUserRoles(mockPool, "owner-1", models.RoleAcademyOwner)
		expectUserByID(mockPool, "u-2")

		mockPool.ExpectQuery("SELECT 1 FROM user_roles WHERE user_id = \\$1 AND role = \\$2").
			WithArgs("u-2", models.RoleStudent).
			WillReturnError(pgx.ErrNoRows)

		invitation, err := svc.InviteStudent(context.Background(), "owner-1", "a-1", "u-2")
		assert.Nil(t, invitation)
		assert.ErrorIs(t, err, apperrors.ErrInviteeNotStudent)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should create a pending invitation for an unenrolled student", func(t *testing.T) {
		svc, mockPool := newStudentService(t)
		defer mockPool.Close()

		mockPool.ExpectQuery("SELECT (.+) FROM academies WHERE id = \\$1").
			WithArgs("a-1").
			WillReturnRows(academyRow(mockPool, &models.Academy{
				ID: "a-1", OwnerID: "owner-1", Name: "Piano Academy", IsActive: true,
			}))
		expectUserRoles(mockPool, "owner-1", models.RoleAcademyOwner)
		expectUserByID(mockPool, "u-2")

		mockPool.ExpectQuery("SELECT 1 FROM user_roles WHERE user_id = \\$1 AND role = \\$2").
			WithArgs("u-2", models.RoleStudent).
			WillReturnRows(mockPool.NewRows([]string{"?column?"}).AddRow(1))
		mockPool.ExpectQuery("SELECT 1 FROM academy_members WHERE academy_id = \\$1 AND user_id = \\$2").
			WithArgs("a-1", "u-2").
			WillReturnError(pgx.ErrNoRows)
		mockPool.ExpectQuery("SELECT (.+) FROM academy_invitations WHERE academy_id = \\$1 AND user_id = \\$2").
			WithArgs("a-1", "u-2").
			WillReturnError(pgx.ErrNoRows)
		mockPool.ExpectQuery("INSERT INTO academy_invitations").
			WithArgs(pgxmock.AnyArg(), "a-1", "u-2", models.InvitationPending).
			WillReturnRows(mockPool.NewRows([]string{"id"}).AddRow("i-1"))

		invitation, err := svc.InviteStudent(context.Background(), "owner-1", "a-1", "u-2")
		assert.NoError(t, err)
		assert.Equal(t, models.InvitationPending, invitation.Status)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should reuse a rejected invitation by moving it back to pending", func(t *testing.T) {
		svc, mockPool := newStudentService(t)
		defer mockPool.Close()

		mockPool.ExpectQuery("SELECT (.+) FROM academies WHERE id = \\$1").
			WithArgs("a-1").
			WillReturnRows(academyRow(mockPool, &models.Academy{
				ID: "a-1", OwnerID: "owner-1", Name: "Piano Academy", IsActive: true,
			}))
		expectUserRoles(mockPool, "owner-1", models.RoleAcademyOwner)
		expectUserByID(mockPool, "u-2")

		mockPool.ExpectQuery("SELECT 1 FROM user_roles WHERE user_id = \\$1 AND role = \\$2").
			WithArgs("u-2", models.RoleStudent).
			WillReturnRows(mockPool.NewRows([]string{"?column?"}).AddRow(1))
		mockPool.ExpectQuery("SELECT 1 FROM academy_members WHERE academy_id = \\$1 AND user_id = \\$2").
			WithArgs("a-1", "u-2").
			WillReturnError(pgx.ErrNoRows)

		now := time.Now()
		mockPool.ExpectQuery("SELECT (.+) FROM academy_invitations WHERE academy_id = \\$1 AND user_id = \\$2").
			WithArgs("a-1", "u-2").
			WillReturnRows(mockPool.NewRows([]string{"id", "academy_id", "user_id", "status", "created_at", "updated_at"}).
				AddRow("i-1", "a-1", "u-2", models.InvitationRejected, now, now))
		mockPool.ExpectExec("UPDATE academy_invitations").
			WithArgs(models.InvitationPending, "i-1", models.InvitationRejected).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		invitation, err := svc.InviteStudent(context.Background(), "owner-1", "a-1", "u-2")
		assert.NoError(t, err)
		assert.Equal(t, models.InvitationPending, invitation.Status)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestStudentService_RespondToInvitation(t *testing.T) {
	t.Run("Should accept invitation by enrolling the invitee in one transaction", func(t *testing.T) {
		svc, mockPool := newStudentService(t)
		defer mockPool.Close()

		now := time.Now()
		mockPool.ExpectQuery("SELECT (.+) FROM academy_invitations WHERE id = \\$1 AND user_id = \\$2 AND status = \\$3").
			WithArgs("i-1", "u-2", models.InvitationPending).
			WillReturnRows(mockPool.NewRows([]string{"id", "academy_id", "user_id", "status", "created_at", "updated_at"}).
				AddRow("i-1", "a-1", "u-2", models.InvitationPending, now, now))

		mockPool.ExpectBegin()
		mockPool.ExpectExec("UPDATE academy_invitations").
			WithArgs(models.InvitationAccepted, "i-1", models.InvitationPending).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mockPool.ExpectQuery("INSERT INTO academy_members").
			WithArgs(pgxmock.AnyArg(), "a-1", "u-2", models.MemberStatusActive, 3.0, 0.0).
			WillReturnRows(mockPool.NewRows([]string{"id"}).AddRow("m-1"))
		mockPool.ExpectExec("UPDATE academies a SET").
			WithArgs("a-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mockPool.ExpectCommit()

		invitation, err := svc.RespondToInvitation(context.Background(), "u-2", "i-1", &dto.RespondInvitationRequest{
			Status: models.InvitationAccepted,
		})
		assert.NoError(t, err)
		assert.Equal(t, models.InvitationAccepted, invitation.Status)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should reject invitation without touching memberships", func(t *testing.T) {
		svc, mockPool := newStudentService(t)
		defer mockPool.Close()

		now := time.Now()
		mockPool.ExpectQuery("SELECT (.+) FROM academy_invitations WHERE id = \\$1 AND user_id = \\$2 AND status = \\$3").
			WithArgs("i-1", "u-2", models.InvitationPending).
			WillReturnRows(mockPool.NewRows([]string{"id", "academy_id", "user_id", "status", "created_at", "updated_at"}).
				AddRow("i-1", "a-1", "u-2", models.InvitationPending, now, now))
		mockPool.ExpectExec("UPDATE academy_invitations").
			WithArgs(models.InvitationRejected, "i-1", models.InvitationPending).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		invitation, err := svc.RespondToInvitation(context.Background(), "u-2", "i-1", &dto.RespondInvitationRequest{
			Status: models.InvitationRejected,
		})
		assert.NoError(t, err)
		assert.Equal(t, models.InvitationRejected, invitation.Status)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should report not found for a resolved or foreign invitation", func(t *testing.T) {
		svc, mockPool := newStudentService(t)
		defer mockPool.Close()

		mockPool.ExpectQuery("SELECT (.+) FROM academy_invitations WHERE id = \\$1 AND user_id = \\$2 AND status = \\$3").
			WithArgs("i-1", "u-2", models.InvitationPending).
			WillReturnError(pgx.ErrNoRows)

		invitation, err := svc.RespondToInvitation(context.Background(), "u-2", "i-1", &dto.RespondInvitationRequest{
			Status: models.InvitationAccepted,
		})
		assert.Nil(t, invitation)
		assert.ErrorIs(t, err, apperrors.ErrInvitationNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
