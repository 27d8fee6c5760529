package auth

import (
	"github.com/schoolie/schoolie-backend/internal/app/models"
)

// Action identifies an operation subject to authorization
type Action string

const (
	ActionCreateAcademy     Action = "academy.create"
	ActionViewAcademy       Action = "academy.view"
	ActionUpdateAcademy     Action = "academy.update"
	ActionDeleteAcademy     Action = "academy.delete"
	ActionViewMembers       Action = "academy.members.view"
	ActionManageMembers     Action = "academy.members.manage"
	ActionManageInvitations Action = "academy.invitations.manage"
	ActionManageUsers       Action = "users.manage"
	ActionAssignRoles       Action = "roles.assign"
	ActionListStudents      Action = "students.list"
)

// Actor is the identity performing a request, with its loaded role set
type Actor struct {
	ID    string
	Roles []models.Role
}

// HasRole reports whether the actor holds the given role
func (a Actor) HasRole(role models.Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Resource describes the target of an academy-scoped action as seen by the
// policy. A missing academy is resolved to a not-found outcome before the
// policy runs, so OwnerID always refers to an existing academy here.
type Resource struct {
	// OwnerID is the owning user of the target academy. Empty for actions
	// that have no target academy, such as academy creation.
	OwnerID string
	// ActorIsMember reports whether the actor holds a membership row in the
	// target academy.
	ActorIsMember bool
}

// Decision is the outcome of a policy evaluation
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow is the positive decision
var Allow = Decision{Allowed: true}

// Deny produces a negative decision with a reason
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Decide is the single authorization rule set, consulted by every mutating
// operation. Rules apply in precedence order:
//
//  1. an ADMIN actor may do anything
//  2. academy-scoped management actions are allowed for the academy's owner
//  3. creating an academy or listing available students requires the
//     ACADEMY_OWNER role
//  4. viewing an academy or its member list is additionally allowed for members
//  5. everything else is denied
//
// Decide is pure: it never touches storage and never errors.
func Decide(actor Actor, action Action, res Resource) Decision {
	if actor.HasRole(models.RoleAdmin) {
		return Allow
	}

	switch action {
	case ActionCreateAcademy:
		if actor.HasRole(models.RoleAcademyOwner) {
			return Allow
		}
		return Deny("user must be an ACADEMY_OWNER to create an academy")

	case ActionListStudents:
		if actor.HasRole(models.RoleAcademyOwner) {
			return Allow
		}
		return Deny("listing available students requires the ACADEMY_OWNER role")

	case ActionUpdateAcademy, ActionDeleteAcademy, ActionManageMembers, ActionManageInvitations:
		if res.OwnerID != "" && actor.ID == res.OwnerID {
			return Allow
		}
		return Deny("only the academy owner or an admin may perform this action")

	case ActionViewAcademy, ActionViewMembers:
		if res.OwnerID != "" && actor.ID == res.OwnerID {
			return Allow
		}
		if res.ActorIsMember {
			return Allow
		}
		return Deny("only academy members may view this resource")

	case ActionManageUsers, ActionAssignRoles:
		return Deny("administrator role required")
	}

	return Deny("not permitted")
}
