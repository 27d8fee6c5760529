package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/schoolie/schoolie-backend/internal/app/models/dto"
	"github.com/schoolie/schoolie-backend/internal/app/services"
	"github.com/schoolie/schoolie-backend/internal/middleware"
)

// StudentController handles student enrollment and invitation operations
type StudentController struct {
	studentService services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// GetAvailableStudents handles listing unenrolled students
// @Summary List available students
// @Description Retrieves users holding the STUDENT role that belong to no academy. Academy owners and administrators.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse} "Students retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Router /students/available [get]
func (c *StudentController) GetAvailableStudents(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	students, err := c.studentService.GetAvailableStudents(ctx, actorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}

// CreateStudent handles creating and enrolling a new student
// @Summary Create student
// @Description Creates a new user with the STUDENT role and enrolls them into the academy in one transaction. Owner or administrator.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Academy ID"
// @Param request body dto.CreateStudentRequest true "Student details"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "Student created successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Academy not found"
// @Failure 409 {object} dto.ErrorResponse "Email or username already exists"
// @Router /academies/{id}/students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateStudentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.CreateStudent(ctx, actorID, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(student))
}

// InviteStudent handles inviting a student
// @Summary Invite student
// @Description Invites a STUDENT-role user into the academy. Owner or administrator. A pending invitation is a conflict; a resolved one is reused.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Academy ID"
// @Param userId path string true "User ID"
// @Success 201 {object} dto.APIResponse{data=dto.InvitationResponse} "Invitation created successfully"
// @Failure 403 {object} dto.ErrorResponse "Permission denied or invitee lacks STUDENT role"
// @Failure 404 {object} dto.ErrorResponse "Academy or user not found"
// @Failure 409 {object} dto.ErrorResponse "Pending invitation or existing membership"
// @Router /academies/{id}/invitations/{userId} [post]
func (c *StudentController) InviteStudent(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	invitation, err := c.studentService.InviteStudent(ctx, actorID, ctx.Param("id"), ctx.Param("userId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(invitation))
}

// RespondToInvitation handles accepting or rejecting an invitation
// @Summary Respond to invitation
// @Description Accepts or rejects the caller's own pending invitation. Accepting enrolls the caller into the academy.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invitation ID"
// @Param request body dto.RespondInvitationRequest true "Response"
// @Success 200 {object} dto.APIResponse{data=dto.InvitationResponse} "Invitation resolved successfully"
// @Failure 404 {object} dto.ErrorResponse "Invitation not found or already processed"
// @Router /invitations/{id}/respond [patch]
func (c *StudentController) RespondToInvitation(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.RespondInvitationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	invitation, err := c.studentService.RespondToInvitation(ctx, actorID, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(invitation))
}

// GetPendingInvitations handles listing the caller's pending invitations
// @Summary List pending invitations
// @Description Retrieves the caller's pending invitations with a summary of each inviting academy
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.InvitationResponse} "Invitations retrieved successfully"
// @Router /invitations [get]
func (c *StudentController) GetPendingInvitations(ctx *gin.Context) {
	actorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	invitations, err := c.studentService.GetPendingInvitations(ctx, actorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(invitations))
}
