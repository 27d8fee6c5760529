package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/schoolie/schoolie-backend/internal/app/models/dto"
	"github.com/schoolie/schoolie-backend/internal/app/services"
	"github.com/schoolie/schoolie-backend/internal/middleware"
)

// MemberController handles single-membership operations
type MemberController struct {
	memberService services.MemberService
}

// NewMemberController creates a new MemberController
func NewMemberController(memberService services.MemberService) *MemberController {
	return &MemberController{memberService: memberService}
}

// GetMemberDetails handles retrieving one membership record
// @Summary Get member details
// @Description Retrieves one membership record. Owner, administrator or member.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Academy ID"
// @Param userId path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.MemberResponse} "Member retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Academy or membership not found"
// @Router /academies/{id}/members/{userId} [get]
func (c *MemberController) GetMemberDetails(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	member, err := c.memberService.GetMemberDetails(ctx, actorID, ctx.Param("id"), ctx.Param("userId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(member))
}

// UpdateMemberStatus handles replacing a member's status
// @Summary Update member status
// @Description Replaces a member's status. Owner or administrator.
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Academy ID"
// @Param userId path string true "User ID"
// @Param request body dto.UpdateMemberStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.MemberResponse} "Status updated successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Academy or membership not found"
// @Router /academies/{id}/members/{userId}/status [patch]
func (c *MemberController) UpdateMemberStatus(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateMemberStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	member, err := c.memberService.UpdateMemberStatus(ctx, actorID, ctx.Param("id"), ctx.Param("userId"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(member))
}

// UpdateMemberLevel handles replacing a member's level
// @Summary Update member level
// @Description Replaces a member's level. Owner or administrator.
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Academy ID"
// @Param userId path string true "User ID"
// @Param request body dto.UpdateMemberLevelRequest true "New level"
// @Success 200 {object} dto.APIResponse{data=dto.MemberResponse} "Level updated successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Academy or membership not found"
// @Router /academies/{id}/members/{userId}/level [patch]
func (c *MemberController) UpdateMemberLevel(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateMemberLevelRequest
	if !bindJSON(ctx, &req) {
		return
	}

	member, err := c.memberService.UpdateMemberLevel(ctx, actorID, ctx.Param("id"), ctx.Param("userId"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(member))
}

// AddMemberIncome handles adding to a member's income
// @Summary Add member income
// @Description Adds a delta to a member's accumulated income. Owner or administrator.
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Academy ID"
// @Param userId path string true "User ID"
// @Param request body dto.AddMemberIncomeRequest true "Income delta"
// @Success 200 {object} dto.APIResponse{data=dto.MemberResponse} "Income updated successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Academy or membership not found"
// @Router /academies/{id}/members/{userId}/income [patch]
func (c *MemberController) AddMemberIncome(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.AddMemberIncomeRequest
	if !bindJSON(ctx, &req) {
		return
	}

	member, err := c.memberService.AddMemberIncome(ctx, actorID, ctx.Param("id"), ctx.Param("userId"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(member))
}
