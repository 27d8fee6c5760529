package dto

import (
	"time"

	"github.com/schoolie/schoolie-backend/internal/app/models"
)

// CreateAcademyRequest represents an academy creation request
type CreateAcademyRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=100"`
	Bio     *string `json:"bio,omitempty"`
	LogoURL *string `json:"logoUrl,omitempty"`
}

// UpdateAcademyRequest represents an academy update request
type UpdateAcademyRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=100"`
	Bio     *string `json:"bio,omitempty"`
	LogoURL *string `json:"logoUrl,omitempty"`
}

// AcademyResponse represents academy information
type AcademyResponse struct {
	ID           string        `json:"id"`
	OwnerID      string        `json:"ownerId"`
	Owner        *UserResponse `json:"owner,omitempty"`
	Name         string        `json:"name"`
	Bio          *string       `json:"bio,omitempty"`
	LogoURL      *string       `json:"logoUrl,omitempty"`
	StudentCount int           `json:"studentCount"`
	TeacherCount int           `json:"teacherCount"`
	IsActive     bool          `json:"isActive"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// NewAcademyResponse builds an AcademyResponse from an academy model
func NewAcademyResponse(academy *models.Academy) AcademyResponse {
	resp := AcademyResponse{
		ID:           academy.ID,
		OwnerID:      academy.OwnerID,
		Name:         academy.Name,
		Bio:          academy.Bio,
		LogoURL:      academy.LogoURL,
		StudentCount: academy.StudentCount,
		TeacherCount: academy.TeacherCount,
		IsActive:     academy.IsActive,
		CreatedAt:    academy.CreatedAt,
	}
	if academy.Owner != nil {
		owner := NewUserResponse(academy.Owner)
		resp.Owner = &owner
	}
	return resp
}

// MemberResponse represents an academy membership record
type MemberResponse struct {
	ID           string              `json:"id"`
	AcademyID    string              `json:"academyId"`
	UserID       string              `json:"userId"`
	User         *UserResponse       `json:"user,omitempty"`
	MemberStatus models.MemberStatus `json:"memberStatus"`
	MemberLevel  float64             `json:"memberLevel"`
	MemberIncome float64             `json:"memberIncome"`
	JoinedAt     time.Time           `json:"joinedAt"`
}

// NewMemberResponse builds a MemberResponse from a membership model
func NewMemberResponse(member *models.AcademyMember) MemberResponse {
	resp := MemberResponse{
		ID:           member.ID,
		AcademyID:    member.AcademyID,
		UserID:       member.UserID,
		MemberStatus: member.MemberStatus,
		MemberLevel:  member.MemberLevel,
		MemberIncome: member.MemberIncome,
		JoinedAt:     member.JoinedAt,
	}
	if member.User != nil {
		user := NewUserResponse(member.User)
		resp.User = &user
	}
	return resp
}

// MembershipCheckResponse reports whether a user is a member of an academy
type MembershipCheckResponse struct {
	IsMember bool `json:"isMember"`
}

// UpdateMemberStatusRequest replaces a member's status
type UpdateMemberStatusRequest struct {
	MemberStatus models.MemberStatus `json:"memberStatus" binding:"required"`
}

// UpdateMemberLevelRequest replaces a member's level
type UpdateMemberLevelRequest struct {
	MemberLevel float64 `json:"memberLevel" binding:"required"`
}

// AddMemberIncomeRequest adds a delta to a member's income
type AddMemberIncomeRequest struct {
	IncomeToAdd float64 `json:"incomeToAdd" binding:"required"`
}

// CreateStudentRequest creates a new user with the STUDENT role and enrolls
// them into an academy in one step
type CreateStudentRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Username string  `json:"username" binding:"required,min=3,max=30"`
	Password string  `json:"password" binding:"required,min=8"`
	FullName *string `json:"fullName,omitempty"`
	NickName *string `json:"nickName,omitempty"`
}

// RespondInvitationRequest accepts or rejects a pending invitation
type RespondInvitationRequest struct {
	Status models.InvitationStatus `json:"status" binding:"required,oneof=ACCEPTED REJECTED"`
}

// InvitationResponse represents an academy invitation
type InvitationResponse struct {
	ID        string                  `json:"id"`
	AcademyID string                  `json:"academyId"`
	UserID    string                  `json:"userId"`
	Status    models.InvitationStatus `json:"status"`
	Academy   *AcademyResponse        `json:"academy,omitempty"`
	CreatedAt time.Time               `json:"createdAt"`
}

// NewInvitationResponse builds an InvitationResponse from an invitation model
func NewInvitationResponse(invitation *models.AcademyInvitation) InvitationResponse {
	resp := InvitationResponse{
		ID:        invitation.ID,
		AcademyID: invitation.AcademyID,
		UserID:    invitation.UserID,
		Status:    invitation.Status,
		CreatedAt: invitation.CreatedAt,
	}
	if invitation.Academy != nil {
		academy := NewAcademyResponse(invitation.Academy)
		resp.Academy = &academy
	}
	return resp
}
