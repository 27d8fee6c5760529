package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/schoolie/schoolie-backend/internal/app/auth"
	"github.com/schoolie/schoolie-backend/internal/app/models"
	"github.com/schoolie/schoolie-backend/internal/app/models/dto"
	"github.com/schoolie/schoolie-backend/internal/app/repositories"
)

// Every enrollment path assigns this level; income always starts at zero.
const defaultMemberLevel = 3.0

// AcademyService defines the interface for academy operations
type AcademyService interface {
	CreateAcademy(ctx context.Context, actorID string, req *dto.CreateAcademyRequest) (*dto.AcademyResponse, error)
	GetAllAcademies(ctx context.Context, actorID string) ([]dto.AcademyResponse, error)
	GetAcademyByID(ctx context.Context, actorID, academyID string) (*dto.AcademyResponse, error)
	UpdateAcademy(ctx context.Context, actorID, academyID string, req *dto.UpdateAcademyRequest) (*dto.AcademyResponse, error)
	DeleteAcademy(ctx context.Context, actorID, academyID string) error
	GetMembers(ctx context.Context, actorID, academyID string) ([]dto.MemberResponse, error)
	AddMember(ctx context.Context, actorID, academyID, userID string) (*dto.MemberResponse, error)
	RemoveMember(ctx context.Context, actorID, academyID, userID string) error
	CheckMembership(ctx context.Context, actorID, academyID string) (*dto.MembershipCheckResponse, error)
}

// academyServiceImpl implements AcademyService
type academyServiceImpl struct {
	repos        *repositories.Repositories
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewAcademyService creates a new AcademyService
func NewAcademyService(
	repos *repositories.Repositories,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) AcademyService {
	return &academyServiceImpl{
		repos:        repos,
		authzService: authzService,
		logger:       logger,
	}
}

// CreateAcademy creates an academy owned by the actor. The academy row, the
// owner's membership row and the recomputed counters are written in one
// transaction so a new academy is never visible without its owner enrolled.
func (s *academyServiceImpl) CreateAcademy(ctx context.Context, actorID string, req *dto.CreateAcademyRequest) (*dto.AcademyResponse, error) {
	if err := s.authzService.AuthorizeCreateAcademy(ctx, actorID); err != nil {
		return nil, err
	}

	academy := &models.Academy{
		OwnerID:  actorID,
		Name:     req.Name,
		Bio:      req.Bio,
		LogoURL:  req.LogoURL,
		IsActive: true,
	}

	err := s.repos.WithinTransaction(ctx, func(ctx context.Context, tx *repositories.Repositories) error {
		academyID, err := tx.AcademyRepository.CreateAcademy(ctx, academy)
		if err != nil {
			return err
		}
		academy.ID = academyID

		owner := &models.AcademyMember{
			AcademyID:    academyID,
			UserID:       actorID,
			MemberStatus: models.MemberStatusActive,
			MemberLevel:  defaultMemberLevel,
		}
		if _, err := tx.MemberRepository.AddMember(ctx, owner); err != nil {
			return err
		}

		return tx.AcademyRepository.RecomputeStats(ctx, academyID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("academyId", academy.ID).Str("ownerId", actorID).Msg("Academy created")

	// Reload for the recomputed counters
	return s.reload(ctx, academy.ID)
}

// GetAllAcademies lists academies visible to the actor. Administrators see
// every academy; other users see academies they own or belong to.
func (s *academyServiceImpl) GetAllAcademies(ctx context.Context, actorID string) ([]dto.AcademyResponse, error) {
	isAdmin, err := s.authzService.IsAdmin(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var academies []*models.Academy
	if isAdmin {
		academies, err = s.repos.AcademyRepository.GetAllAcademies(ctx)
	} else {
		academies, err = s.repos.AcademyRepository.GetAcademiesForUser(ctx, actorID)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AcademyResponse, 0, len(academies))
	for _, academy := range academies {
		responses = append(responses, dto.NewAcademyResponse(academy))
	}
	return responses, nil
}

// GetAcademyByID returns one academy. Owner, admin or member.
func (s *academyServiceImpl) GetAcademyByID(ctx context.Context, actorID, academyID string) (*dto.AcademyResponse, error) {
	academy, err := s.authzService.AuthorizeAcademyAction(ctx, actorID, auth.ActionViewAcademy, academyID)
	if err != nil {
		return nil, err
	}

	if owner, err := s.repos.UserRepository.GetUserByID(ctx, academy.OwnerID); err == nil {
		academy.Owner = owner
	}

	resp := dto.NewAcademyResponse(academy)
	return &resp, nil
}

// UpdateAcademy replaces the mutable fields of an academy. Owner or admin.
func (s *academyServiceImpl) UpdateAcademy(ctx context.Context, actorID, academyID string, req *dto.UpdateAcademyRequest) (*dto.AcademyResponse, error) {
	academy, err := s.authzService.AuthorizeAcademyAction(ctx, actorID, auth.ActionUpdateAcademy, academyID)
	if err != nil {
		return nil, err
	}

	academy.Name = req.Name
	academy.Bio = req.Bio
	academy.LogoURL = req.LogoURL

	if err := s.repos.AcademyRepository.UpdateAcademy(ctx, academy); err != nil {
		return nil, err
	}

	resp := dto.NewAcademyResponse(academy)
	return &resp, nil
}

// DeleteAcademy removes an academy and, via cascading constraints, its
// memberships and invitations. Owner or admin.
func (s *academyServiceImpl) DeleteAcademy(ctx context.Context, actorID, academyID string) error {
	if _, err := s.authzService.AuthorizeAcademyAction(ctx, actorID, auth.ActionDeleteAcademy, academyID); err != nil {
		return err
	}

	if err := s.repos.AcademyRepository.DeleteAcademy(ctx, academyID); err != nil {
		return err
	}

	s.logger.Info().Str("academyId", academyID).Str("deletedBy", actorID).Msg("Academy deleted")
	return nil
}

// GetMembers lists the members of an academy. Owner, admin or member.
func (s *academyServiceImpl) GetMembers(ctx context.Context, actorID, academyID string) ([]dto.MemberResponse, error) {
	if _, err := s.authzService.AuthorizeAcademyAction(ctx, actorID, auth.ActionViewMembers, academyID); err != nil {
		return nil, err
	}

	members, err := s.repos.MemberRepository.GetMembersByAcademyID(ctx, academyID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.MemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, dto.NewMemberResponse(member))
	}
	return responses, nil
}

// AddMember enrolls an existing user into the academy. Owner or admin.
// The membership row and the recomputed counters are written in one
// transaction; an existing membership is a conflict.
func (s *academyServiceImpl) AddMember(ctx context.Context, actorID, academyID, userID string) (*dto.MemberResponse, error) {
	if _, err := s.authzService.AuthorizeAcademyAction(ctx, actorID, auth.ActionManageMembers, academyID); err != nil {
		return nil, err
	}

	if _, err := s.repos.UserRepository.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	member := &models.AcademyMember{
		AcademyID:    academyID,
		UserID:       userID,
		MemberStatus: models.MemberStatusActive,
		MemberLevel:  defaultMemberLevel,
	}

	err := s.repos.WithinTransaction(ctx, func(ctx context.Context, tx *repositories.Repositories) error {
		memberID, err := tx.MemberRepository.AddMember(ctx, member)
		if err != nil {
			return err
		}
		member.ID = memberID

		return tx.AcademyRepository.RecomputeStats(ctx, academyID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("academyId", academyID).Str("userId", userID).Str("addedBy", actorID).Msg("Member added")

	resp := dto.NewMemberResponse(member)
	return &resp, nil
}

// RemoveMember removes a user from the academy. Owner or admin. The
// membership row removal and the recomputed counters are one transaction; a
// missing membership is not-found.
func (s *academyServiceImpl) RemoveMember(ctx context.Context, actorID, academyID, userID string) error {
	if _, err := s.authzService.AuthorizeAcademyAction(ctx, actorID, auth.ActionManageMembers, academyID); err != nil {
		return err
	}

	err := s.repos.WithinTransaction(ctx, func(ctx context.Context, tx *repositories.Repositories) error {
		if err := tx.MemberRepository.RemoveMember(ctx, academyID, userID); err != nil {
			return err
		}
		return tx.AcademyRepository.RecomputeStats(ctx, academyID)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("academyId", academyID).Str("userId", userID).Str("removedBy", actorID).Msg("Member removed")
	return nil
}

// CheckMembership reports whether the caller belongs to the academy. Any
// authenticated user may check their own membership.
func (s *academyServiceImpl) CheckMembership(ctx context.Context, actorID, academyID string) (*dto.MembershipCheckResponse, error) {
	if _, err := s.repos.AcademyRepository.GetAcademyByID(ctx, academyID); err != nil {
		return nil, err
	}

	isMember, err := s.repos.MemberRepository.IsMember(ctx, academyID, actorID)
	if err != nil {
		return nil, err
	}

	return &dto.MembershipCheckResponse{IsMember: isMember}, nil
}

func (s *academyServiceImpl) reload(ctx context.Context, academyID string) (*dto.AcademyResponse, error) {
	academy, err := s.repos.AcademyRepository.GetAcademyByID(ctx, academyID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewAcademyResponse(academy)
	return &resp, nil
}
