package auth

import (
	"context"
	"fmt"

	"github.com/schoolie/schoolie-backend/internal/app/models"
	"github.com/schoolie/schoolie-backend/internal/app/repositories"
	"github.com/schoolie/schoolie-backend/internal/pkg/apperrors"
)

// AuthorizationService resolves actors and resources from storage and feeds
// them to the pure policy. Missing resources are reported as not-found before
// the policy is consulted; a policy deny maps to ErrPermissionDenied.
type AuthorizationService struct {
	roleRepo    *repositories.RoleRepository
	academyRepo *repositories.AcademyRepository
	memberRepo  *repositories.MemberRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(
	roleRepo *repositories.RoleRepository,
	academyRepo *repositories.AcademyRepository,
	memberRepo *repositories.MemberRepository,
) *AuthorizationService {
	return &AuthorizationService{
		roleRepo:    roleRepo,
		academyRepo: academyRepo,
		memberRepo:  memberRepo,
	}
}

// ActorFor loads the role set for a user id and returns the policy actor
func (s *AuthorizationService) ActorFor(ctx context.Context, userID string) (Actor, error) {
	roles, err := s.roleRepo.GetUserRoles(ctx, userID)
	if err != nil {
		return Actor{}, fmt.Errorf("error loading actor roles: %w", err)
	}
	return Actor{ID: userID, Roles: roles}, nil
}

// AuthorizeAcademyAction loads the target academy, evaluates the policy for
// the given action and returns the academy on allow. Membership is only
// looked up for actions whose rules depend on it.
func (s *AuthorizationService) AuthorizeAcademyAction(ctx context.Context, actorID string, action Action, academyID string) (*models.Academy, error) {
	academy, err := s.academyRepo.GetAcademyByID(ctx, academyID)
	if err != nil {
		return nil, err
	}

	actor, err := s.ActorFor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	res := Resource{OwnerID: academy.OwnerID}
	if action == ActionViewAcademy || action == ActionViewMembers {
		isMember, err := s.memberRepo.IsMember(ctx, academyID, actorID)
		if err != nil {
			return nil, err
		}
		res.ActorIsMember = isMember
	}

	if decision := Decide(actor, action, res); !decision.Allowed {
		return nil, apperrors.NewForbiddenError(decision.Reason)
	}

	return academy, nil
}

// AuthorizeCreateAcademy checks that the actor may create academies
func (s *AuthorizationService) AuthorizeCreateAcademy(ctx context.Context, actorID string) error {
	actor, err := s.ActorFor(ctx, actorID)
	if err != nil {
		return err
	}

	if decision := Decide(actor, ActionCreateAcademy, Resource{}); !decision.Allowed {
		return apperrors.NewForbiddenError(decision.Reason)
	}

	return nil
}

// AuthorizeGlobalAction evaluates the policy for an action that has no
// target academy, such as user administration, role assignment or listing
// available students
func (s *AuthorizationService) AuthorizeGlobalAction(ctx context.Context, actorID string, action Action) error {
	actor, err := s.ActorFor(ctx, actorID)
	if err != nil {
		return err
	}

	if decision := Decide(actor, action, Resource{}); !decision.Allowed {
		return apperrors.NewForbiddenError(decision.Reason)
	}

	return nil
}

// IsAdmin reports whether the user holds the ADMIN role
func (s *AuthorizationService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return s.roleRepo.HasRole(ctx, userID, models.RoleAdmin)
}
