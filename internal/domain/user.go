package domain

import "time"

type UserRole string

const (
	UserRoleApplicant UserRole = "APPLICANT"
	UserRoleMember    UserRole = "MEMBER"
	UserRoleBoard     UserRole = "BOARD"
)

type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Role               UserRole  `json:"role"`
	MembershipTier     string    `json:"membership_tier,omitempty"`
	ReapplicationCount int       `json:"reapplication_count"`
	CreatedOn          time.Time `json:"created_on"`
}
