package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/schoolie/schoolie-backend/internal/app/models/dto"
	"github.com/schoolie/schoolie-backend/internal/app/services"
	"github.com/schoolie/schoolie-backend/internal/middleware"
)

// RoleController handles role administration operations
type RoleController struct {
	roleService services.RoleService
}

// NewRoleController creates a new RoleController
func NewRoleController(roleService services.RoleService) *RoleController {
	return &RoleController{roleService: roleService}
}

// AssignRole handles role assignment
// @Summary Assign role
// @Description Grants a role to a user. Administrators only.
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AssignRoleRequest true "Assignment details"
// @Success 200 {object} dto.APIResponse{data=dto.UserRolesResponse} "Role assigned successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 409 {object} dto.ErrorResponse "Role already assigned"
// @Router /roles/assign [post]
func (c *RoleController) AssignRole(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.AssignRoleRequest
	if !bindJSON(ctx, &req) {
		return
	}

	roles, err := c.roleService.AssignRole(ctx, actorID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(roles))
}

// GetUserRoles handles retrieving a user's role set
// @Summary Get user roles
// @Description Retrieves the roles held by a user. Administrators only.
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserRolesResponse} "Roles retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /roles/user/{userId} [get]
func (c *RoleController) GetUserRoles(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	roles, err := c.roleService.GetUserRoles(ctx, actorID, ctx.Param("userId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(roles))
}

// ReplaceRole handles atomic role replacement
// @Summary Replace role
// @Description Removes one role assignment and creates another atomically. Administrators only.
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param request body dto.ReplaceRoleRequest true "Replacement details"
// @Success 200 {object} dto.APIResponse{data=dto.UserRolesResponse} "Role replaced successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "User or role assignment not found"
// @Failure 409 {object} dto.ErrorResponse "New role already assigned"
// @Router /roles/user/{userId} [put]
func (c *RoleController) ReplaceRole(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.ReplaceRoleRequest
	if !bindJSON(ctx, &req) {
		return
	}

	roles, err := c.roleService.ReplaceRole(ctx, actorID, ctx.Param("userId"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(roles))
}
