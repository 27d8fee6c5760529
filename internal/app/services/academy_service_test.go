package services_test

import (
	"context"
	"testing"
	"time"

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

func newAcademyService(t *testing.T) (services.AcademyService, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)

	repos := repositories.NewRepositories(mockPool)
	authzService := auth.NewAuthorizationService(
		repos.RoleRepository, repos.AcademyRepository, repos.MemberRepository)
	svc := services.NewAcademyService(repos, authzService, zerolog.Nop())
	return svc, mockPool
}

func expectUserRoles(pool pgxmock.PgxPoolIface, userID string, roles ...models.Role) {
	rows := pool.NewRows([]string{"role"})
	for _, role := range roles {
		rows.AddRow(role)
	}
	pool.ExpectQuery("SELECT role FROM user_roles WHERE user_id = \\$1").
		WithArgs(userID).
		WillReturnRows(rows)
}

func academyRow(pool pgxmock.PgxPoolIface, academy *models.Academy) *pgxmock.Rows {
	now := time.Now()
	return pool.NewRows([]string{
		"id", "owner_id", "name", "bio", "logo_url",
		"student_count", "teacher_count", "is_active", "created_at", "updated_at",
	}).AddRow(
		academy.ID, academy.OwnerID, academy.Name, academy.Bio, academy.LogoURL,
		academy.StudentCount, academy.TeacherCount, academy.IsActive, now, now,
	)
}

func TestAcademyService_CreateAcademy(t *testing.T) {
	t.Run("Should create academy with owner enrolled and counters recomputed", func(t *testing.T) {
		svc, mockPool := newAcademyService(t)
		defer mockPool.Close()

		expectUserRoles(mockPool, "owner-1", models.RoleAcademyOwner)

		mockPool.ExpectBegin()
		mockPool.ExpectQuery("INSERT INTO academies").
			WithArgs(pgxmock.AnyArg(), "owner-1", "Piano Academy", (*string)(nil), (*string)(nil), true).
			WillReturnRows(mockPool.NewRows([]string{"id"}).AddRow("a-1"))
		mockPool.ExpectQuery("INSERT INTO academy_members").
			WithArgs(pgxmock.AnyArg(), "a-1", "owner-1", models.MemberStatusActive, 3.0, 0.0).
			WillReturnRows(mockPool.NewRows([]string{"id"}).AddRow("m-1"))
		mockPool.ExpectExec("UPDATE academies a SET").
			WithArgs("a-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mockPool.ExpectCommit()

		mockPool.ExpectQuery("SELECT (.+) FROM academies WHERE id = \\$1").
			WithArgs("a-1").
			WillReturnRows(academyRow(mockPool, &models.Academy{
				ID:           "a-1",
				OwnerID:      "owner-1",
				Name:         "Piano Academy",
				StudentCount: 1,
				IsActive:     true,
			}))

		resp, err := svc.CreateAcademy(context.Background(), "owner-1", &dto.CreateAcademyRequest{
			Name: "Piano Academy",
		})
		assert.NoError(t, err)
		assert.Equal(t, "a-1", resp.ID)
		assert.Equal(t, 1, resp.StudentCount)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should refuse creation without the owner role", func(t *testing.T) {
		svc, mockPool := newAcademyService(t)
		defer mockPool.Close()

		expectUserRoles(mockPool, "guest-1", models.RoleGuest)

		resp, err := svc.CreateAcademy(context.Background(), "guest-1", &dto.CreateAcademyRequest{
			Name: "Piano Academy",
		})
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestAcademyService_AddMember(t *testing.T) {
	t.Run("Should add member and recompute counters in one transaction", func(t *testing.T) {
		svc, mockPool := newAcademyService(t)
		defer mockPool.Close()

		mockPool.ExpectQuery("SELECT (.+) FROM academies WHERE id = \\$1").
			WithArgs("a-1").
			WillReturnRows(academyRow(mockPool, &models.Academy{
				ID: "a-1", OwnerID: "owner-1", Name: "Piano Academy", IsActive: true,
			}))
		expectUserRoles(mockPool, "owner-1", models.RoleAcademyOwner)

		now := time.Now()
		mockPool.ExpectQuery("SELECT id, email, username, password, is_active, created_at, updated_at FROM users WHERE id = \\$1").
			WithArgs("u-2").
			WillReturnRows(mockPool.NewRows([]string{
				"id", "email", "username", "password", "is_active", "created_at", "updated_at",
			}).AddRow("u-2", "kid@example.com", "kid", "hash", true, now, now))

		mockPool.ExpectBegin()
		mockPool.ExpectQuery("INSERT INTO academy_members").
			WithArgs(pgxmock.AnyArg(), "a-1", "u-2", models.MemberStatusActive, 3.0, 0.0).
			WillReturnRows(mockPool.NewRows([]string{"id"}).AddRow("m-2"))
		mockPool.ExpectExec("UPDATE academies a SET").
			WithArgs("a-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mockPool.ExpectCommit()

		member, err := svc.AddMember(context.Background(), "owner-1", "a-1", "u-2")
		assert.NoError(t, err)
		assert.Equal(t, "m-2", member.ID)
		assert.Equal(t, 3.0, member.MemberLevel)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should accept re-adding a user who was removed", func(t *testing.T) {
		svc, mockPool := newAcademyService(t)
		defer mockPool.Close()

		academy := &models.Academy{
			ID: "a-1", OwnerID: "owner-1", Name: "Piano Academy", IsActive: true,
		}

		mockPool.ExpectQuery("SELECT (.+) FROM academies WHERE id = \\$1").
			WithArgs("a-1").
			WillReturnRows(academyRow(mockPool, academy))
		expectUserRoles(mockPool, "owner-1", models.RoleAcademyOwner)

		mockPool.ExpectBegin()
		mockPool.ExpectExec("DELETE FROM academy_members WHERE academy_id = \\$1 AND user_id = \\$2").
			WithArgs("a-1", "u-2").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mockPool.ExpectExec("UPDATE academies a SET").
			WithArgs("a-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mockPool.ExpectCommit()

		err := svc.RemoveMember(context.Background(), "owner-1", "a-1", "u-2")
		require.NoError(t, err)

		mockPool.ExpectQuery("SELECT (.+) FROM academies WHERE id = \\$1").
			WithArgs("a-1").
			WillReturnRows(academyRow(mockPool, academy))
		expectUserRoles(mockPool, "owner-1", models.RoleAcademyOwner)

		now := time.Now()
		mockPool.ExpectQuery("SELECT id, email, username, password, is_active, created_at, updated_at FROM users WHERE id = \\$1").
			WithArgs("u-2").
			WillReturnRows(mockPool.NewRows([]string{
				"id", "email", "username", "password", "is_active", "created_at", "updated_at",
			}).AddRow("u-2", "kid@example.com", "kid", "hash", true, now, now))

		mockPool.ExpectBegin()
		mockPool.ExpectQuery("INSERT INTO academy_members").
			WithArgs(pgxmock.AnyArg(), "a-1", "u-2", models.MemberStatusActive, 3.0, 0.0).
			WillReturnRows(mockPool.NewRows([]string{"id"}).AddRow("m-3"))
		mockPool.ExpectExec("UPDATE academies a SET").
			WithArgs("a-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mockPool.ExpectCommit()

		member, err := svc.AddMember(context.Background(), "owner-1", "a-1", "u-2")
		assert.NoError(t, err)
		assert.Equal(t, "m-3", member.ID)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should refuse when the actor neither owns the academy nor is admin", func(t *testing.T) {
		svc, mockPool := newAcademyService(t)
		defer mockPool.Close()

		mockPool.ExpectQuery("SELECT (.+) FROM academies WHERE id = \\$1").
			WithArgs("a-1").
			WillReturnRows(academyRow(mockPool, &models.Academy{
				ID: "a-1", OwnerID: "owner-1", Name: "Piano Academy", IsActive: true,
			}))
		expectUserRoles(mockPool, "stranger", models.RoleStudent)

		member, err := svc.AddMember(context.Background(), "stranger", "a-1", "u-2")
		assert.Nil(t, member)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
