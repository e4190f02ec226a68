package user

import (
	"time"

	"github.com/karyaprima/hrops-backend-go/internal/rules"
)

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, payroll settings
	RoleManager  Role = "manager"  // Approves attendance and overtime
	RoleForeman  Role = "foreman"  // Approves attendance and overtime for their crew
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID              string
	EmployeeID      *string
	Email           string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	EmployeeCode *string
	EmployeeName *string
}

// IsAdmin checks if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsApprover checks if user holds an approver role
func (u *User) IsApprover() bool {
	return ApproverRole(u.Role)
}

// ApproverRole reports whether role may approve attendance requests at all.
func ApproverRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleForeman:
		return true
	default:
		return false
	}
}

// ApprovalCapabilities maps a role onto the rules engine's capability set.
// The current roles grant both capabilities together; the mapping keeps them
// separate so a future split only touches this function.
func ApprovalCapabilities(role Role) rules.ApprovalRole {
	if !ApproverRole(role) {
		return rules.ApprovalRole{}
	}
	return rules.ApprovalRole{
		CanApproveSundayWork:   true,
		CanApproveLongOvertime: true,
	}
}
