package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByEmployeeCode(ctx context.Context, employeeCode string) (User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (User, error)
	GetByOAuth(ctx context.Context, provider string, providerID string) (User, error)
	ListByRoles(ctx context.Context, roles []Role) ([]User, error)
	Update(ctx context.Context, user User) error
}
