package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/schoolie/schoolie-backend/internal/app/auth"
	"github.com/schoolie/schoolie-backend/internal/app/models"
	"github.com/schoolie/schoolie-backend/internal/app/models/dto"
	"github.com/schoolie/schoolie-backend/internal/app/repositories"
	"github.com/schoolie/schoolie-backend/internal/pkg/apperrors"
)

// RoleService defines the interface for role administration operations
type RoleService interface {
	AssignRole(ctx context.Context, actorID string, req *dto.AssignRoleRequest) (*dto.UserRolesResponse, error)
	GetUserRoles(ctx context.Context, actorID, userID string) (*dto.UserRolesResponse, error)
	ReplaceRole(ctx context.Context, actorID, userID string, req *dto.ReplaceRoleRequest) (*dto.UserRolesResponse, error)
}

// roleServiceImpl implements RoleService
type roleServiceImpl struct {
	repos        *repositories.Repositories
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewRoleService creates a new RoleService
func NewRoleService(
	repos *repositories.Repositories,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) RoleService {
	return &roleServiceImpl{
		repos:        repos,
		authzService: authzService,
		logger:       logger,
	}
}

// AssignRole grants a role to a user. Admin only. Assigning a role the user
// already holds is a conflict.
func (s *roleServiceImpl) AssignRole(ctx context.Context, actorID string, req *dto.AssignRoleRequest) (*dto.UserRolesResponse, error) {
	if err := s.authzService.AuthorizeGlobalAction(ctx, actorID, auth.ActionAssignRoles); err != nil {
		return nil, err
	}

	if !req.Role.IsValid() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("unknown role %q", req.Role))
	}

	if _, err := s.repos.UserRepository.GetUserByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	if _, err := s.repos.RoleRepository.AssignRole(ctx, req.UserID, req.Role); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userId", req.UserID).Str("role", string(req.Role)).Str("assignedBy", actorID).Msg("Role assigned")

	return s.rolesOf(ctx, req.UserID)
}

// GetUserRoles returns the role set held by a user. Admin only.
func (s *roleServiceImpl) GetUserRoles(ctx context.Context, actorID, userID string) (*dto.UserRolesResponse, error) {
	if err := s.authzService.AuthorizeGlobalAction(ctx, actorID, auth.ActionAssignRoles); err != nil {
		return nil, err
	}

	if _, err := s.repos.UserRepository.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	return s.rolesOf(ctx, userID)
}

// ReplaceRole removes one role assignment and creates another atomically.
// Removing a role the user does not hold is not-found; the new role must not
// already be held.
func (s *roleServiceImpl) ReplaceRole(ctx context.Context, actorID, userID string, req *dto.ReplaceRoleRequest) (*dto.UserRolesResponse, error) {
	if err := s.authzService.AuthorizeGlobalAction(ctx, actorID, auth.ActionAssignRoles); err != nil {
		return nil, err
	}

	if !req.OldRole.IsValid() || !req.NewRole.IsValid() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "unknown role")
	}
	if req.OldRole == req.NewRole {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "old and new role must differ")
	}

	if _, err := s.repos.UserRepository.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	err := s.repos.WithinTransaction(ctx, func(ctx context.Context, tx *repositories.Repositories) error {
		if err := tx.RoleRepository.RemoveRole(ctx, userID, req.OldRole); err != nil {
			return err
		}
		_, err := tx.RoleRepository.AssignRole(ctx, userID, req.NewRole)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("userId", userID).
		Str("oldRole", string(req.OldRole)).
		Str("newRole", string(req.NewRole)).
		Str("replacedBy", actorID).
		Msg("Role replaced")

	return s.rolesOf(ctx, userID)
}

func (s *roleServiceImpl) rolesOf(ctx context.Context, userID string) (*dto.UserRolesResponse, error) {
	roles, err := s.repos.RoleRepository.GetUserRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []models.Role{}
	}
	return &dto.UserRolesResponse{UserID: userID, Roles: roles}, nil
}
