package auth

import (
	"testing"

	"github.com/schoolie/schoolie-backend/internal/app/models"
	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	owner := Actor{ID: "owner-1", Roles: []models.Role{models.RoleAcademyOwner}}
	admin := Actor{ID: "admin-1", Roles: []models.Role{models.RoleAdmin}}
	student := Actor{ID: "student-1", Roles: []models.Role{models.RoleStudent}}
	guest := Actor{ID: "guest-1", Roles: []models.Role{models.RoleGuest}}

	ownedBy := func(ownerID string) Resource { return Resource{OwnerID: ownerID} }

	tests := []struct {
		name    string
		actor   Actor
		action  Action
		res     Resource
		allowed bool
	}{
		{"Should allow admin to manage users", admin, ActionManageUsers, Resource{}, true},
		{"Should allow admin to manage any academy", admin, ActionDeleteAcademy, ownedBy("owner-1"), true},
		{"Should allow admin to create academies without the owner role", admin, ActionCreateAcademy, Resource{}, true},

		{"Should allow owner-role user to create an academy", owner, ActionCreateAcademy, Resource{}, true},
		{"Should deny academy creation without the owner role", student, ActionCreateAcademy, Resource{}, false},

		{"Should allow the owner to update their academy", owner, ActionUpdateAcademy, ownedBy("owner-1"), true},
		{"Should deny updating someone else's academy", owner, ActionUpdateAcademy, ownedBy("owner-2"), false},
		{"Should deny a member from managing members", student, ActionManageMembers, Resource{OwnerID: "owner-1", ActorIsMember: true}, false},
		{"Should deny a member from managing invitations", student, ActionManageInvitations, Resource{OwnerID: "owner-1", ActorIsMember: true}, false},

		{"Should allow the owner to view their academy", owner, ActionViewAcademy, ownedBy("owner-1"), true},
		{"Should allow a member to view the academy", student, ActionViewAcademy, Resource{OwnerID: "owner-1", ActorIsMember: true}, true},
		{"Should allow a member to view the member list", student, ActionViewMembers, Resource{OwnerID: "owner-1", ActorIsMember: true}, true},
		{"Should deny a non-member from viewing the academy", student, ActionViewAcademy, ownedBy("owner-1"), false},
		{"Should deny a non-member from viewing the member list", guest, ActionViewMembers, ownedBy("owner-1"), false},

		{"Should allow owner-role user to list available students", owner, ActionListStudents, Resource{}, true},
		{"Should allow admin to list available students", admin, ActionListStudents, Resource{}, true},
		{"Should deny students from listing available students", student, ActionListStudents, Resource{}, false},

		{"Should deny non-admin user administration", owner, ActionManageUsers, Resource{}, false},
		{"Should deny non-admin role assignment", owner, ActionAssignRoles, Resource{}, false},

		{"Should deny unknown actions", student, Action("unknown"), Resource{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Decide(tt.actor, tt.action, tt.res)
			assert.Equal(t, tt.allowed, decision.Allowed)
			if !tt.allowed {
				assert.NotEmpty(t, decision.Reason)
			}
		})
	}
}

func TestActorHasRole(t *testing.T) {
	t.Run("Should report held and missing roles", func(t *testing.T) {
		actor := Actor{ID: "u1", Roles: []models.Role{models.RoleStudent, models.RoleTeacher}}
		assert.True(t, actor.HasRole(models.RoleTeacher))
		assert.False(t, actor.HasRole(models.RoleAdmin))
	})
}
