package repositories_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/schoolie/schoolie-backend/internal/app/models"
	"github.com/schoolie/schoolie-backend/internal/app/repositories"
	"github.com/schoolie/schoolie-backend/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateUser(t *testing.T) {
	newUser := func() *models.User {
		return &models.User{
			ID:       "u-1",
			Email:    "user@example.com",
			Username: "user",
			Password: "hash",
			IsActive: true,
		}
	}

	t.Run("Should create user", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewUserRepository(mockPool)

		user := newUser()
		mockPool.ExpectQuery("INSERT INTO users").
			WithArgs(user.ID, user.Email, user.Username, user.Password, user.IsActive).
			WillReturnRows(mockPool.NewRows([]string{"id"}).AddRow("u-1"))

		id, err := repo.CreateUser(context.Background(), user)
		assert.NoError(t, err)
		assert.Equal(t, "u-1", id)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should map a duplicate email to the email conflict", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewUserRepository(mockPool)

		user := newUser()
		mockPool.ExpectQuery("INSERT INTO users").
			WithArgs(user.ID, user.Email, user.Username, user.Password, user.IsActive).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		_, err = repo.CreateUser(context.Background(), user)
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should map any other unique violation to a generic conflict", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewUserRepository(mockPool)

		user := newUser()
		mockPool.ExpectQuery("INSERT INTO users").
			WithArgs(user.ID, user.Email, user.Username, user.Password, user.IsActive).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"})

		_, err = repo.CreateUser(context.Background(), user)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	t.Run("Should update the stored password hash", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewUserRepository(mockPool)

		mockPool.ExpectExec("UPDATE users SET password").
			WithArgs("new-hash", "u-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err = repo.UpdatePassword(context.Background(), "u-1", "new-hash")
		assert.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Should return not found for a missing user", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := repositories.NewUserRepository(mockPool)

		mockPool.ExpectExec("UPDATE users SET password").
			WithArgs("new-hash", "missing").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err = repo.UpdatePassword(context.Background(), "missing", "new-hash")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
