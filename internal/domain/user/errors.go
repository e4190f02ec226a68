package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailExists            = errors.New("email already registered")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrApproverRoleRequired   = errors.New("approver role required")
	ErrInvalidRole            = errors.New("invalid role")
)
