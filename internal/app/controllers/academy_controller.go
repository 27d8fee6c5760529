package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/schoolie/schoolie-backend/internal/app/models/dto"
	"github.com/schoolie/schoolie-backend/internal/app/services"
	"github.com/schoolie/schoolie-backend/internal/middleware"
)

// AcademyController handles academy and membership operations
type AcademyController struct {
	academyService services.AcademyService
	logger         zerolog.Logger
}

// NewAcademyController creates a new AcademyController
func NewAcademyController(academyService services.AcademyService, logger zerolog.Logger) *AcademyController {
	return &AcademyController{
		academyService: academyService,
		logger:         logger,
	}
}

// CreateAcademy handles academy creation
// @Summary Create academy
// @Description Creates an academy owned by the caller. Requires the ACADEMY_OWNER role.
// @Tags academies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAcademyRequest true "Academy details"
// @Success 201 {object} dto.APIResponse{data=dto.AcademyResponse} "Academy created successfully"
// @Failure 403 {object} dto.ErrorResponse "Caller lacks the ACADEMY_OWNER role"
// @Router /academies [post]
func (c *AcademyController) CreateAcademy(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateAcademyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	academy, err := c.academyService.CreateAcademy(ctx, actorID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(academy))
}

// GetAllAcademies handles listing visible academies
// @Summary List academies
// @Description Administrators see every academy; other users see academies they own or belong to
// @Tags academies
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AcademyResponse} "Academies retrieved successfully"
// @Router /academies [get]
func (c *AcademyController) GetAllAcademies(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	academies, err := c.academyService.GetAllAcademies(ctx, actorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(academies))
}

// GetAcademyByID handles retrieving one academy
// @Summary Get academy by ID
// @Description Retrieves one academy. Owner, administrator or member.
// @Tags academies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Academy ID"
// @Success 200 {object} dto.APIResponse{data=dto.AcademyResponse} "Academy retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Academy not found"
// @Router /academies/{id} [get]
func (c *AcademyController) GetAcademyByID(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	academy, err := c.academyService.GetAcademyByID(ctx, actorID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(academy))
}

// UpdateAcademy handles academy updates
// @Summary Update academy
// @Description Replaces the mutable fields of an academy. Owner or administrator.
// @Tags academies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Academy ID"
// @Param request body dto.UpdateAcademyRequest true "Updated academy details"
// @Success 200 {object} dto.APIResponse{data=dto.AcademyResponse} "Academy updated successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Academy not found"
// @Router /academies/{id} [put]
func (c *AcademyController) UpdateAcademy(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateAcademyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	academy, err := c.academyService.UpdateAcademy(ctx, actorID, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(academy))
}

// DeleteAcademy handles academy deletion
// @Summary Delete academy
// @Description Removes an academy and its memberships and invitations. Owner or administrator.
// @Tags academies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Academy ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Academy deleted successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Academy not found"
// @Router /academies/{id} [delete]
func (c *AcademyController) DeleteAcademy(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.academyService.DeleteAcademy(ctx, actorID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Academy deleted successfully"}))
}

// GetMembers handles listing academy members
// @Summary List academy members
// @Description Retrieves the members of an academy. Owner, administrator or member.
// @Tags academies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Academy ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.MemberResponse} "Members retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Academy not found"
// @Router /academies/{id}/members [get]
func (c *AcademyController) GetMembers(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	members, err := c.academyService.GetMembers(ctx, actorID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(members))
}

// AddMember handles enrolling an existing user
// @Summary Add member
// @Description Enrolls an existing user into the academy. Owner or administrator.
// @Tags academies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Academy ID"
// @Param userId path string true "User ID"
// @Success 201 {object} dto.APIResponse{data=dto.MemberResponse} "Member added successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Academy or user not found"
// @Failure 409 {object} dto.ErrorResponse "User is already a member"
// @Router /academies/{id}/members/{userId} [post]
func (c *AcademyController) AddMember(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	member, err := c.academyService.AddMember(ctx, actorID, ctx.Param("id"), ctx.Param("userId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(member))
}

// RemoveMember handles removing a member
// @Summary Remove member
// @Description Removes a user from the academy. Owner or administrator.
// @Tags academies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Academy ID"
// @Param userId path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Member removed successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Academy or membership not found"
// @Router /academies/{id}/members/{userId} [delete]
func (c *AcademyController) RemoveMember(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.academyService.RemoveMember(ctx, actorID, ctx.Param("id"), ctx.Param("userId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Member removed successfully"}))
}

// CheckMembership handles the caller's own membership check
// @Summary Check membership
// @Description Reports whether the caller belongs to the academy
// @Tags academies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Academy ID"
// @Success 200 {object} dto.APIResponse{data=dto.MembershipCheckResponse} "Membership checked successfully"
// @Failure 404 {object} dto.ErrorResponse "Academy not found"
// @Router /academies/{id}/membership [get]
func (c *AcademyController) CheckMembership(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	check, err := c.academyService.CheckMembership(ctx, actorID, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(check))
}
