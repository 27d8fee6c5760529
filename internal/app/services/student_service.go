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
)

// StudentService defines the interface for student enrollment and
// invitation operations
type StudentService interface {
	GetAvailableStudents(ctx context.Context, actorID string) ([]dto.UserResponse, error)
	CreateStudent(ctx context.Context, actorID, academyID string, req *dto.CreateStudentRequest) (*dto.UserResponse, error)
	InviteStudent(ctx context.Context, actorID, academyID, userID string) (*dto.InvitationResponse, error)
	RespondToInvitation(ctx context.Context, actorID, invitationID string, req *dto.RespondInvitationRequest) (*dto.InvitationResponse, error)
	GetPendingInvitations(ctx context.Context, actorID string) ([]dto.InvitationResponse, error)
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	repos        *repositories.Repositories
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	repos *repositories.Repositories,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) StudentService {
	return &studentServiceImpl{
		repos:        repos,
		authzService: authzService,
		logger:       logger,
	}
}

// GetAvailableStudents lists users holding the STUDENT role that belong to no
// academy. Academy owners and administrators use this to find candidates.
func (s *studentServiceImpl) GetAvailableStudents(ctx context.Context, actorID string) ([]dto.UserResponse, error) {
	if err := s.authzService.AuthorizeGlobalAction(ctx, actorID, auth.ActionListStudents); err != nil {
		return nil, err
	}

	students, err := s.repos.UserRepository.GetAvailableStudents(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, dto.NewUserResponse(student))
	}
	return responses, nil
}

// CreateStudent creates a new user with the STUDENT role and enrolls them
// into the academy in one transaction: user, profile, role, membership and
// recomputed counters all land together or not at all. Owner or admin.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, actorID, academyID string, req *dto.CreateStudentRequest) (*dto.UserResponse, error) {
	if _, err := s.authzService.AuthorizeAcademyAction(ctx, actorID, auth.ActionManageMembers, academyID); err != nil {
		return nil, err
	}

	if err := validateCredentials(req.Email, req.Username, req.Password); err != nil {
		return nil, err
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

		if _, err := tx.RoleRepository.AssignRole(ctx, userID, models.RoleStudent); err != nil {
			return err
		}
		user.Roles = []models.Role{models.RoleStudent}

		member := &models.AcademyMember{
			AcademyID:    academyID,
			UserID:       userID,
			MemberStatus: models.MemberStatusActive,
			MemberLevel:  defaultMemberLevel,
		}
		if _, err := tx.MemberRepository.AddMember(ctx, member); err != nil {
			return err
		}

		return tx.AcademyRepository.RecomputeStats(ctx, academyID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("academyId", academyID).
		Str("userId", user.ID).
		Str("createdBy", actorID).
		Msg("Student created and enrolled")

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// InviteStudent invites a STUDENT-role user into the academy. Owner or
// admin. A pending invitation for the pair is a conflict; a resolved one is
// reused by moving it back to PENDING. Users without the STUDENT role cannot
// be invited, and existing members cannot be invited again.
func (s *studentServiceImpl) InviteStudent(ctx context.Context, actorID, academyID, userID string) (*dto.InvitationResponse, error) {
	if _, err := s.authzService.AuthorizeAcademyAction(ctx, actorID, auth.ActionManageInvitations, academyID); err != nil {
		return nil, err
	}

	if _, err := s.repos.UserRepository.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	isStudent, err := s.repos.RoleRepository.HasRole(ctx, userID, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	if !isStudent {
		return nil, apperrors.ErrInviteeNotStudent
	}

	isMember, err := s.repos.MemberRepository.IsMember(ctx, academyID, userID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, apperrors.ErrMemberAlreadyExists
	}

	invitation, err := s.repos.InvitationRepository.GetInvitation(ctx, academyID, userID)
	switch {
	case errors.Is(err, apperrors.ErrInvitationNotFound):
		invitation = &models.AcademyInvitation{
			AcademyID: academyID,
			UserID:    userID,
			Status:    models.InvitationPending,
		}
		if _, err := s.repos.InvitationRepository.CreateInvitation(ctx, invitation); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	case invitation.Status == models.InvitationPending:
		return nil, apperrors.ErrInvitationPending
	default:
		// Resolved row: re-invite by transitioning it back to PENDING
		if err := s.repos.InvitationRepository.UpdateInvitationStatus(ctx, invitation.ID, invitation.Status, models.InvitationPending); err != nil {
			return nil, err
		}
		invitation.Status = models.InvitationPending
	}

	s.logger.Info().
		Str("academyId", academyID).
		Str("userId", userID).
		Str("invitedBy", actorID).
		Msg("Student invited")

	resp := dto.NewInvitationResponse(invitation)
	return &resp, nil
}

// RespondToInvitation lets the invitee accept or reject their own PENDING
// invitation. Accepting writes the status change, the membership row and the
// recomputed counters in one transaction. Responding to a resolved or foreign
// invitation reports not found.
func (s *studentServiceImpl) RespondToInvitation(ctx context.Context, actorID, invitationID string, req *dto.RespondInvitationRequest) (*dto.InvitationResponse, error) {
	if req.Status != models.InvitationAccepted && req.Status != models.InvitationRejected {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "status must be ACCEPTED or REJECTED")
	}

	invitation, err := s.repos.InvitationRepository.GetPendingInvitationByID(ctx, invitationID, actorID)
	if err != nil {
		return nil, err
	}

	if req.Status == models.InvitationRejected {
		if err := s.repos.InvitationRepository.UpdateInvitationStatus(ctx, invitationID, models.InvitationPending, models.InvitationRejected); err != nil {
			return nil, err
		}
		invitation.Status = models.InvitationRejected

		s.logger.Info().Str("invitationId", invitationID).Str("userId", actorID).Msg("Invitation rejected")

		resp := dto.NewInvitationResponse(invitation)
		return &resp, nil
	}

	err = s.repos.WithinTransaction(ctx, func(ctx context.Context, tx *repositories.Repositories) error {
		if err := tx.InvitationRepository.UpdateInvitationStatus(ctx, invitationID, models.InvitationPending, models.InvitationAccepted); err != nil {
			return err
		}

		member := &models.AcademyMember{
			AcademyID:    invitation.AcademyID,
			UserID:       actorID,
			MemberStatus: models.MemberStatusActive,
			MemberLevel:  defaultMemberLevel,
		}
		if _, err := tx.MemberRepository.AddMember(ctx, member); err != nil {
			return err
		}

		return tx.AcademyRepository.RecomputeStats(ctx, invitation.AcademyID)
	})
	if err != nil {
		return nil, err
	}
	invitation.Status = models.InvitationAccepted

	s.logger.Info().
		Str("invitationId", invitationID).
		Str("academyId", invitation.AcademyID).
		Str("userId", actorID).
		Msg("Invitation accepted")

	resp := dto.NewInvitationResponse(invitation)
	return &resp, nil
}

// GetPendingInvitations returns the caller's PENDING invitations with a
// summary of the inviting academy
func (s *studentServiceImpl) GetPendingInvitations(ctx context.Context, actorID string) ([]dto.InvitationResponse, error) {
	invitations, err := s.repos.InvitationRepository.GetPendingInvitationsByUserID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.InvitationResponse, 0, len(invitations))
	for _, invitation := range invitations {
		if academy, err := s.repos.AcademyRepository.GetAcademyByID(ctx, invitation.AcademyID); err == nil {
			invitation.Academy = academy
		}
		responses = append(responses, dto.NewInvitationResponse(invitation))
	}
	return responses, nil
}
