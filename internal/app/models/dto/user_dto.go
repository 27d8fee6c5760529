package dto

import (
	"time"

	"github.com/schoolie/schoolie-backend/internal/app/models"
)

// UserResponse represents basic user information
type UserResponse struct {
	ID        string           `json:"id"`
	Email     string           `json:"email"`
	Username  string           `json:"username"`
	IsActive  bool             `json:"isActive"`
	Roles     []models.Role    `json:"roles,omitempty"`
	Profile   *ProfileResponse `json:"profile,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NewUserResponse builds a UserResponse from a user model
func NewUserResponse(user *models.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		IsActive:  user.IsActive,
		Roles:     user.Roles,
		CreatedAt: user.CreatedAt,
	}
	if user.Profile != nil {
		p := NewProfileResponse(user.Profile)
		resp.Profile = &p
	}
	return resp
}

// CreateUserRequest represents an administrative user creation request
type CreateUserRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Username string      `json:"username" binding:"required,min=3,max=30"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     models.Role `json:"role,omitempty"`
}

// ChangePasswordRequest represents a self-service password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UpdateUserRequest represents an administrative user update request
type UpdateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=30"`
	IsActive *bool  `json:"isActive,omitempty"`
}

// ProfileResponse represents user profile information
type ProfileResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	FullName    *string    `json:"fullName,omitempty"`
	NickName    *string    `json:"nickName,omitempty"`
	BirthDate   *time.Time `json:"birthDate,omitempty"`
	Bio         *string    `json:"bio,omitempty"`
	AvatarURL   *string    `json:"avatarUrl,omitempty"`
	PhoneNumber *string    `json:"phoneNumber,omitempty"`
	Address     *string    `json:"address,omitempty"`
}

// NewProfileResponse builds a ProfileResponse from a profile model
func NewProfileResponse(profile *models.UserProfile) ProfileResponse {
	return ProfileResponse{
		ID:          profile.ID,
		UserID:      profile.UserID,
		FullName:    profile.FullName,
		NickName:    profile.NickName,
		BirthDate:   profile.BirthDate,
		Bio:         profile.Bio,
		AvatarURL:   profile.AvatarURL,
		PhoneNumber: profile.PhoneNumber,
		Address:     profile.Address,
	}
}

// CreateProfileRequest represents a profile creation request
type CreateProfileRequest struct {
	UserID      string     `json:"userId" binding:"required,uuid"`
	FullName    *string    `json:"fullName,omitempty"`
	NickName    *string    `json:"nickName,omitempty"`
	BirthDate   *time.Time `json:"birthDate,omitempty"`
	Bio         *string    `json:"bio,omitempty"`
	AvatarURL   *string    `json:"avatarUrl,omitempty"`
	PhoneNumber *string    `json:"phoneNumber,omitempty"`
	Address     *string    `json:"address,omitempty"`
}

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	FullName    *string    `json:"fullName,omitempty"`
	NickName    *string    `json:"nickName,omitempty"`
	BirthDate   *time.Time `json:"birthDate,omitempty"`
	Bio         *string    `json:"bio,omitempty"`
	AvatarURL   *string    `json:"avatarUrl,omitempty"`
	PhoneNumber *string    `json:"phoneNumber,omitempty"`
	Address     *string    `json:"address,omitempty"`
}
