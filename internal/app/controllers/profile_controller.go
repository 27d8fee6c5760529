package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/schoolie/schoolie-backend/internal/app/models/dto"
	"github.com/schoolie/schoolie-backend/internal/app/services"
	"github.com/schoolie/schoolie-backend/internal/middleware"
)

// ProfileController handles user profile operations
type ProfileController struct {
	profileService services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// GetProfileByUserID handles retrieving a user's profile
// @Summary Get profile by user ID
// @Description Retrieves the profile attached to a user. Own profile or administrator.
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /user-profiles/user/{userId} [get]
func (c *ProfileController) GetProfileByUserID(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	profile, err := c.profileService.GetProfileByUserID(ctx, actorID, ctx.Param("userId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// CreateProfile handles profile creation
// @Summary Create profile
// @Description Creates a profile for a user that does not have one yet. Own profile or administrator.
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProfileRequest true "Profile details"
// @Success 201 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile created successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 409 {object} dto.ErrorResponse "User already has a profile"
// @Router /user-profiles [post]
func (c *ProfileController) CreateProfile(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	profile, err := c.profileService.CreateProfile(ctx, actorID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(profile))
}

// UpdateProfile handles profile updates
// @Summary Update profile
// @Description Replaces the mutable fields of a profile. Own profile or administrator.
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID"
// @Param request body dto.UpdateProfileRequest true "Updated profile details"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile updated successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /user-profiles/{id} [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	profile, err := c.profileService.UpdateProfile(ctx, actorID, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}
