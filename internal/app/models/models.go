package models

// Role defines a capability grant held by a user, independent of any academy
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleAcademyOwner Role = "ACADEMY_OWNER"
	RoleTeacher      Role = "TEACHER"
	RoleStudent      Role = "STUDENT"
	RoleGuest        Role = "GUEST"
)

// IsValid reports whether the role is one of the known role values
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAcademyOwner, RoleTeacher, RoleStudent, RoleGuest:
		return true
	}
	return false
}

// MemberStatus defines the status of an academy membership
type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "ACTIVE"
	MemberStatusInactive  MemberStatus = "INACTIVE"
	MemberStatusSuspended MemberStatus = "SUSPENDED"
)

// IsValid reports whether the member status is a known value
func (s MemberStatus) IsValid() bool {
	switch s {
	case MemberStatusActive, MemberStatusInactive, MemberStatusSuspended:
		return true
	}
	return false
}

// InvitationStatus defines the lifecycle state of an academy invitation
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationRejected InvitationStatus = "REJECTED"
)
