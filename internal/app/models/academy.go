package models

import "time"

// Academy represents an organization owned by a single user and containing members
type Academy struct {
	ID           string    `json:"id" db:"id"`
	OwnerID      string    `json:"ownerId" db:"owner_id"`
	Name         string    `json:"name" db:"name"`
	Bio          *string   `json:"bio,omitempty" db:"bio"`
	LogoURL      *string   `json:"logoUrl,omitempty" db:"logo_url"`
	StudentCount int       `json:"studentCount" db:"student_count"` // Derived from membership rows, never authoritative
	TeacherCount int       `json:"teacherCount" db:"teacher_count"` // Derived from membership rows, never authoritative
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Owner   *User            `json:"owner,omitempty"`
	Members []*AcademyMember `json:"members,omitempty"`
}

// AcademyMember represents an active (academy, user) relationship.
// At most one row exists per (academy_id, user_id) pair.
type AcademyMember struct {
	ID           string       `json:"id" db:"id"`
	AcademyID    string       `json:"academyId" db:"academy_id"`
	UserID       string       `json:"userId" db:"user_id"`
	MemberStatus MemberStatus `json:"memberStatus" db:"member_status"`
	MemberLevel  float64      `json:"memberLevel" db:"member_level"`
	MemberIncome float64      `json:"memberIncome" db:"member_income"`
	JoinedAt     time.Time    `json:"joinedAt" db:"joined_at"`

	// Related entities
	User *User `json:"user,omitempty"`
}

// AcademyInvitation represents a pending offer of membership awaiting the
// invitee's response. At most one row exists per (academy_id, user_id) pair;
// a resolved row is reused for a later re-invitation via an explicit
// status-guarded transition back to PENDING.
type AcademyInvitation struct {
	ID        string           `json:"id" db:"id"`
	AcademyID string           `json:"academyId" db:"academy_id"`
	UserID    string           `json:"userId" db:"user_id"`
	Status    InvitationStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time        `json:"updatedAt" db:"updated_at"`

	// Related entities
	Academy *Academy `json:"academy,omitempty"`
}
