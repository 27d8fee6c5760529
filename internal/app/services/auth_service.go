package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/schoolie/schoolie-backend/internal/app/models"
	"github.com/schoolie/schoolie-backend/internal/app/models/dto"
	"github.com/schoolie/schoolie-backend/internal/app/repositories"
	"github.com/schoolie/schoolie-backend/internal/pkg/apperrors"
	"github.com/schoolie/schoolie-backend/internal/pkg/auth"
	"github.com/schoolie/schoolie-backend/internal/pkg/validation"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	repos      *repositories.Repositories
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		repos:      repos,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a new user account with the GUEST role and an empty
// profile. User, profile and role rows are written in one transaction.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := validateCredentials(req.Email, req.Username, req.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
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

		profile := &models.UserProfile{
			UserID:   userID,
			FullName: req.FullName,
			NickName: req.NickName,
		}
		profileID, err := tx.ProfileRepository.CreateProfile(ctx, profile)
		if err != nil {
			return err
		}
		profile.ID = profileID
		user.Profile = profile

		if _, err := tx.RoleRepository.AssignRole(ctx, userID, models.RoleGuest); err != nil {
			return err
		}
		user.Roles = []models.Role{models.RoleGuest}

		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("email", req.Email).Msg("Registration failed")
		return nil, err
	}

	s.logger.Info().Str("userId", user.ID).Str("username", user.Username).Msg("User registered")

	return s.buildAuthResponse(user)
}

// Login authenticates a user by email or username and issues an access token
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.repos.UserRepository.GetUserByEmailOrUsername(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Same error as a wrong password so the response does not
			// reveal whether the account exists
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Warn().Str("userId", user.ID).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	roles, err := s.repos.RoleRepository.GetUserRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles

	if profile, err := s.repos.ProfileRepository.GetProfileByUserID(ctx, user.ID); err == nil {
		user.Profile = profile
	} else if !errors.Is(err, apperrors.ErrProfileNotFound) {
		return nil, err
	}

	s.logger.Info().Str("userId", user.ID).Msg("User logged in")

	return s.buildAuthResponse(user)
}

func (s *authServiceImpl) buildAuthResponse(user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: dto.NewUserResponse(user),
	}, nil
}

// validateCredentials applies the registration format rules shared by
// self-registration and administrative user creation
func validateCredentials(email, username, password string) error {
	if !validation.IsValidEmail(email) {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid email format")
	}
	if !validation.IsValidUsername(username) {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "username must be 3-30 characters of lowercase letters, digits, dots or underscores")
	}
	if !validation.IsValidPassword(password) {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, fmt.Sprintf("password must be at least %d characters", validation.PasswordMinLength))
	}
	return nil
}
