package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, employee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, employeeCode string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, employee Employee) error
}
