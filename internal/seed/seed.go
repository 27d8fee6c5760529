package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/schoolie/schoolie-backend/internal/app/models"
	"github.com/schoolie/schoolie-backend/internal/app/repositories"
	"github.com/schoolie/schoolie-backend/internal/config"
	"github.com/schoolie/schoolie-backend/internal/pkg/apperrors"
	"github.com/schoolie/schoolie-backend/internal/pkg/auth"
)

// RootAdminID is the fixed id of the seeded platform administrator
const RootAdminID = "00000000-0000-0000-0000-000000000000"

// CreateRootAdmin creates the platform administrator account on first start.
// The seed is idempotent: an existing account keeps its current password and
// only gains any missing role assignments.
func CreateRootAdmin(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	repos := repositories.NewRepositories(dbPool)

	existing, err := repos.UserRepository.GetUserByEmailOrUsername(ctx, cfg.Seed.RootAdminEmail)
	switch {
	case err == nil:
		return ensureAdminRoles(ctx, repos, existing.ID, lgr)
	case !errors.Is(err, apperrors.ErrUserNotFound):
		return err
	}

	hash, err := auth.HashPassword(cfg.Seed.RootAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:       RootAdminID,
		Email:    cfg.Seed.RootAdminEmail,
		Username: cfg.Seed.RootAdminUsername,
		Password: hash,
		IsActive: true,
	}

	err = repos.WithinTransaction(ctx, func(ctx context.Context, tx *repositories.Repositories) error {
		userID, err := tx.UserRepository.CreateUser(ctx, admin)
		if err != nil {
			return err
		}

		profile := &models.UserProfile{UserID: userID}
		if _, err := tx.ProfileRepository.CreateProfile(ctx, profile); err != nil {
			return err
		}

		for _, role := range []models.Role{models.RoleAdmin, models.RoleAcademyOwner} {
			if _, err := tx.RoleRepository.AssignRole(ctx, userID, role); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	lgr.Info().Str("userId", admin.ID).Str("email", admin.Email).Msg("Root admin created")
	return nil
}

func ensureAdminRoles(ctx context.Context, repos *repositories.Repositories, userID string, lgr zerolog.Logger) error {
	var finalErr error
	for _, role := range []models.Role{models.RoleAdmin, models.RoleAcademyOwner} {
		if _, err := repos.RoleRepository.AssignRole(ctx, userID, role); err != nil &&
			!errors.Is(err, apperrors.ErrRoleAlreadyAssigned) {
			lgr.Error().Err(err).Str("role", string(role)).Msg("Error ensuring root admin role")
			finalErr = errors.Join(finalErr, err)
		}
	}
	return finalErr
}
