package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        string    `json:"id" db:"id" example:"c0a80121-7ac0-4e1c-9b44-6a2f8d3e5f10"` // Unique identifier for the user
	Email     string    `json:"email" db:"email" example:"user@schoolie.app"`              // User's email address, globally unique
	Username  string    `json:"username" db:"username" example:"johnd"`                    // User's username, globally unique
	Password  string    `json:"-" db:"password"`                                           // User's hashed password (excluded from JSON)
	IsActive  bool      `json:"isActive" db:"is_active" example:"true"`                    // Whether the user account is active
	CreatedAt time.Time `json:"createdAt" db:"created_at"`                                 // Timestamp when the user was created
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`                                 // Timestamp when the user was last updated

	// Related entities
	Profile *UserProfile `json:"profile,omitempty"` // Relation, no db tag
	Roles   []Role       `json:"roles,omitempty"`   // Relation, no db tag
}

// HasRole reports whether the loaded role set contains the given role
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// UserProfile defines the profile model based on the 'user_profiles' table
type UserProfile struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"userId" db:"user_id"`
	FullName    *string    `json:"fullName,omitempty" db:"full_name"`
	NickName    *string    `json:"nickName,omitempty" db:"nick_name"`
	BirthDate   *time.Time `json:"birthDate,omitempty" db:"birth_date"`
	Bio         *string    `json:"bio,omitempty" db:"bio"`
	AvatarURL   *string    `json:"avatarUrl,omitempty" db:"avatar_url"`
	PhoneNumber *string    `json:"phoneNumber,omitempty" db:"phone_number"`
	Address     *string    `json:"address,omitempty" db:"address"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// UserRole defines a single role assignment based on the 'user_roles' table.
// A user may hold several roles; the (user_id, role) pair is unique.
type UserRole struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
