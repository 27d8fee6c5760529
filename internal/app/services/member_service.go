package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/schoolie/schoolie-backend/internal/app/auth"
	"github.com/schoolie/schoolie-backend/internal/app/models/dto"
	"github.com/schoolie/schoolie-backend/internal/app/repositories"
	"github.com/schoolie/schoolie-backend/internal/pkg/apperrors"
)

// MemberService defines the interface for single-membership operations
type MemberService interface {
	GetMemberDetails(ctx context.Context, actorID, academyID, userID string) (*dto.MemberResponse, error)
	UpdateMemberStatus(ctx context.Context, actorID, academyID, userID string, req *dto.UpdateMemberStatusRequest) (*dto.MemberResponse, error)
	UpdateMemberLevel(ctx context.Context, actorID, academyID, userID string, req *dto.UpdateMemberLevelRequest) (*dto.MemberResponse, error)
	AddMemberIncome(ctx context.Context, actorID, academyID, userID string, req *dto.AddMemberIncomeRequest) (*dto.MemberResponse, error)
}

// memberServiceImpl implements MemberService
type memberServiceImpl struct {
	repos        *repositories.Repositories
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewMemberService creates a new MemberService
func NewMemberService(
	repos *repositories.Repositories,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) MemberService {
	return &memberServiceImpl{
		repos:        repos,
		authzService: authzService,
		logger:       logger,
	}
}

// GetMemberDetails returns one membership record. Owner, admin or member.
func (s *memberServiceImpl) GetMemberDetails(ctx context.Context, actorID, academyID, userID string) (*dto.MemberResponse, error) {
	if _, err := s.authzService.AuthorizeAcademyAction(ctx, actorID, auth.ActionViewMembers, academyID); err != nil {
		return nil, err
	}
	return s.memberOf(ctx, academyID, userID)
}

// UpdateMemberStatus replaces a member's status. Owner or admin.
func (s *memberServiceImpl) UpdateMemberStatus(ctx context.Context, actorID, academyID, userID string, req *dto.UpdateMemberStatusRequest) (*dto.MemberResponse, error) {
	if _, err := s.authzService.AuthorizeAcademyAction(ctx, actorID, auth.ActionManageMembers, academyID); err != nil {
		return nil, err
	}

	if !req.MemberStatus.IsValid() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "unknown member status")
	}

	if err := s.repos.MemberRepository.UpdateMemberStatus(ctx, academyID, userID, req.MemberStatus); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("academyId", academyID).
		Str("userId", userID).
		Str("status", string(req.MemberStatus)).
		Msg("Member status updated")

	return s.memberOf(ctx, academyID, userID)
}

// UpdateMemberLevel replaces a member's level. Owner or admin.
func (s *memberServiceImpl) UpdateMemberLevel(ctx context.Context, actorID, academyID, userID string, req *dto.UpdateMemberLevelRequest) (*dto.MemberResponse, error) {
	if _, err := s.authzService.AuthorizeAcademyAction(ctx, actorID, auth.ActionManageMembers, academyID); err != nil {
		return nil, err
	}

	if req.MemberLevel < 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "member level must not be negative")
	}

	if err := s.repos.MemberRepository.UpdateMemberLevel(ctx, academyID, userID, req.MemberLevel); err != nil {
		return nil, err
	}

	return s.memberOf(ctx, academyID, userID)
}

// AddMemberIncome adds a delta to a member's accumulated income. Owner or
// admin. The new value is old plus delta, never a replacement.
func (s *memberServiceImpl) AddMemberIncome(ctx context.Context, actorID, academyID, userID string, req *dto.AddMemberIncomeRequest) (*dto.MemberResponse, error) {
	if _, err := s.authzService.AuthorizeAcademyAction(ctx, actorID, auth.ActionManageMembers, academyID); err != nil {
		return nil, err
	}

	if err := s.repos.MemberRepository.AddMemberIncome(ctx, academyID, userID, req.IncomeToAdd); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("academyId", academyID).
		Str("userId", userID).
		Float64("incomeAdded", req.IncomeToAdd).
		Msg("Member income updated")

	return s.memberOf(ctx, academyID, userID)
}

func (s *memberServiceImpl) memberOf(ctx context.Context, academyID, userID string) (*dto.MemberResponse, error) {
	member, err := s.repos.MemberRepository.GetMember(ctx, academyID, userID)
	if err != nil {
		return nil, err
	}

	if user, err := s.repos.UserRepository.GetUserByID(ctx, userID); err == nil {
		member.User = user
	}

	resp := dto.NewMemberResponse(member)
	return &resp, nil
}
