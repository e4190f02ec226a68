package employee

import "time"

type Employee struct {
	ID           string
	UserID       *string
	EmployeeCode string // "2024-0001"
	FullName     string
	NIK          *string
	Phone        *string
	Position     string
	BaseSalary   int64 // rupiah

	// Fixed monthly allowances, itemized on the pay slip.
	PositionAllowance  int64
	MealAllowance      int64
	TransportAllowance int64

	HireDate  time.Time
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
