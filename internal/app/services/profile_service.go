package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/schoolie/schoolie-backend/internal/app/auth"
	"github.com/schoolie/schoolie-backend/internal/app/models"
	"github.com/schoolie/schoolie-backend/internal/app/models/dto"
	"github.com/schoolie/schoolie-backend/internal/app/repositories"
	"github.com/schoolie/schoolie-backend/internal/pkg/apperrors"
)

// ProfileService defines the interface for user profile operations
type ProfileService interface {
	GetProfileByUserID(ctx context.Context, actorID, userID string) (*dto.ProfileResponse, error)
	CreateProfile(ctx context.Context, actorID string, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, actorID, profileID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

// profileServiceImpl implements ProfileService
type profileServiceImpl struct {
	repos        *repositories.Repositories
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	repos *repositories.Repositories,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) ProfileService {
	return &profileServiceImpl{
		repos:        repos,
		authzService: authzService,
		logger:       logger,
	}
}

// requireSelfOrAdmin allows the profile's own user and administrators
func (s *profileServiceImpl) requireSelfOrAdmin(ctx context.Context, actorID, ownerID string) error {
	if actorID == ownerID {
		return nil
	}
	isAdmin, err := s.authzService.IsAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apperrors.NewForbiddenError("profiles may only be managed by their owner or an administrator")
	}
	return nil
}

// GetProfileByUserID returns the profile attached to a user
func (s *profileServiceImpl) GetProfileByUserID(ctx context.Context, actorID, userID string) (*dto.ProfileResponse, error) {
	if err := s.requireSelfOrAdmin(ctx, actorID, userID); err != nil {
		return nil, err
	}

	profile, err := s.repos.ProfileRepository.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := dto.NewProfileResponse(profile)
	return &resp, nil
}

// CreateProfile creates a profile for a user that does not have one yet
func (s *profileServiceImpl) CreateProfile(ctx context.Context, actorID string, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error) {
	if err := s.requireSelfOrAdmin(ctx, actorID, req.UserID); err != nil {
		return nil, err
	}

	// The owning user must exist before a profile can reference it
	if _, err := s.repos.UserRepository.GetUserByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	profile := &models.UserProfile{
		UserID:      req.UserID,
		FullName:    req.FullName,
		NickName:    req.NickName,
		BirthDate:   req.BirthDate,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}

	profileID, err := s.repos.ProfileRepository.CreateProfile(ctx, profile)
	if err != nil {
		return nil, err
	}
	profile.ID = profileID

	s.logger.Info().Str("profileId", profileID).Str("userId", req.UserID).Msg("Profile created")

	resp := dto.NewProfileResponse(profile)
	return &resp, nil
}

// UpdateProfile replaces the mutable fields of an existing profile
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, actorID, profileID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.repos.ProfileRepository.GetProfileByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if err := s.requireSelfOrAdmin(ctx, actorID, profile.UserID); err != nil {
		return nil, err
	}

	profile.FullName = req.FullName
	profile.NickName = req.NickName
	profile.BirthDate = req.BirthDate
	profile.Bio = req.Bio
	profile.AvatarURL = req.AvatarURL
	profile.PhoneNumber = req.PhoneNumber
	profile.Address = req.Address

	if err := s.repos.ProfileRepository.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	resp := dto.NewProfileResponse(profile)
	return &resp, nil
}
