package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/schoolie/schoolie-backend/internal/app/auth"
	"github.com/schoolie/schoolie-backend/internal/app/models"
	"github.com/schoolie/schoolie-backend/internal/app/models/dto"
	"github.com/schoolie/schoolie-backend/internal/app/repositories"
	"github.com/schoolie/schoolie-backend/internal/pkg/apperrors"
	pkgauth "github.com/schoolie/schoolie-backend/internal/pkg/auth"
	"github.com/schoolie/schoolie-backend/internal/pkg/validation"
)

// UserService defines the interface for user administration operations
type UserService interface {
	GetAllUsers(ctx context.Context, actorID string, page, pageSize int) ([]dto.UserResponse, error)
	GetUserByID(ctx context.Context, actorID, userID string) (*dto.UserResponse, error)
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
	CreateUser(ctx context.Context, actorID string, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, actorID, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, actorID, userID string) error
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	repos        *repositories.Repositories
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	repos *repositories.Repositories,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		repos:        repos,
		authzService: authzService,
		logger:       logger,
	}
}

// GetAllUsers lists users with pagination. Admin only.
func (s *userServiceImpl) GetAllUsers(ctx context.Context, actorID string, page, pageSize int) ([]dto.UserResponse, error) {
	if err := s.authzService.AuthorizeGlobalAction(ctx, actorID, auth.ActionManageUsers); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	users, err := s.repos.UserRepository.GetAllUsers(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		roles, err := s.repos.RoleRepository.GetUserRoles(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		user.Roles = roles
		responses = append(responses, dto.NewUserResponse(user))
	}
	return responses, nil
}

// GetUserByID returns one user with roles and profile. Admin only.
func (s *userServiceImpl) GetUserByID(ctx context.Context, actorID, userID string) (*dto.UserResponse, error) {
	if err := s.authzService.AuthorizeGlobalAction(ctx, actorID, auth.ActionManageUsers); err != nil {
		return nil, err
	}
	return s.loadUser(ctx, userID)
}

// GetCurrentUser returns the authenticated user's own record
func (s *userServiceImpl) GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	return s.loadUser(ctx, userID)
}

func (s *userServiceImpl) loadUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repos.UserRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	roles, err := s.repos.RoleRepository.GetUserRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles

	if profile, err := s.repos.ProfileRepository.GetProfileByUserID(ctx, userID); err == nil {
		user.Profile = profile
	} else if !errors.Is(err, apperrors.ErrProfileNotFound) {
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// CreateUser creates a user on behalf of an administrator, optionally with an
// initial role. User and role rows are written in one transaction.
func (s *userServiceImpl) CreateUser(ctx context.Context, actorID string, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := s.authzService.AuthorizeGlobalAction(ctx, actorID, auth.ActionManageUsers); err != nil {
		return nil, err
	}

	if err := validateCredentials(req.Email, req.Username, req.Password); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleGuest
	}
	if !role.IsValid() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("unknown role %q", req.Role))
	}

	hash, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Username: req.Username,
		Password: hash,
		IsActive: true,
	}

	err = s.repos.WithinTransaction(ctx, func(ctx context.Context, tx *repositories.Repositories) error {
		userID, err := tx.UserRepository.CreateUser(ctx, user)
		if err != nil {
			return err
		}
		user.ID = userID

		if _, err := tx.RoleRepository.AssignRole(ctx, userID, role); err != nil {
			return err
		}
		user.Roles = []models.Role{role}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("userId", user.ID).Str("role", string(role)).Str("createdBy", actorID).Msg("User created")

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateUser updates a user's email, username and active flag. Admin only.
func (s *userServiceImpl) UpdateUser(ctx context.Context, actorID, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := s.authzService.AuthorizeGlobalAction(ctx, actorID, auth.ActionManageUsers); err != nil {
		return nil, err
	}

	user, err := s.repos.UserRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Email = req.Email
	user.Username = req.Username
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repos.UserRepository.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.loadUser(ctx, userID)
}

// ChangePassword replaces the authenticated user's own password after
// verifying the current one. A wrong current password maps to invalid
// credentials, the same as a failed login.
func (s *userServiceImpl) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.repos.UserRepository.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !pkgauth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "current password is incorrect")
	}

	if !validation.IsValidPassword(req.NewPassword) {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("password must be at least %d characters long", validation.PasswordMinLength))
	}

	hash, err := pkgauth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repos.UserRepository.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.logger.Info().Str("userId", userID).Msg("Password changed")
	return nil
}

// DeleteUser removes a user and, via cascading constraints, their profile,
// roles, memberships and invitations. Admin only.
func (s *userServiceImpl) DeleteUser(ctx context.Context, actorID, userID string) error {
	if err := s.authzService.AuthorizeGlobalAction(ctx, actorID, auth.ActionManageUsers); err != nil {
		return err
	}

	if err := s.repos.UserRepository.DeleteUser(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Str("userId", userID).Str("deletedBy", actorID).Msg("User deleted")
	return nil
}
