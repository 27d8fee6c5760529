package dto

import "github.com/schoolie/schoolie-backend/internal/app/models"

// AssignRoleRequest represents a role assignment request
type AssignRoleRequest struct {
	UserID string      `json:"userId" binding:"required,uuid"`
	Role   models.Role `json:"role" binding:"required"`
}

// ReplaceRoleRequest represents a role replacement request: the old role
// assignment is removed and the new one created atomically
type ReplaceRoleRequest struct {
	OldRole models.Role `json:"oldRole" binding:"required"`
	NewRole models.Role `json:"newRole" binding:"required"`
}

// UserRolesResponse represents the role set held by a user
type UserRolesResponse struct {
	UserID string        `json:"userId"`
	Roles  []models.Role `json:"roles"`
}
