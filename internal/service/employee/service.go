package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/karyaprima/hrops-backend-go/internal/domain/employee"
	"github.com/karyaprima/hrops-backend-go/internal/domain/user"
	"github.com/karyaprima/hrops-backend-go/internal/pkg/database"
	"github.com/karyaprima/hrops-backend-go/internal/repository/postgresql"
)

type EmployeeServiceImpl struct {
	db *database.DB
	employee.EmployeeRepository
	user.UserRepository
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:                 db,
		EmployeeRepository: employeeRepo,
		UserRepository:     userRepo,
	}
}

func requireAdmin(ctx context.Context) error {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract claims from context: %w", err)
	}

	roleStr, _ := claims["role"].(string)
	if user.Role(roleStr) != user.RoleAdmin {
		return user.ErrAdminPrivilegeRequired
	}
	return nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hireDate, _ := time.Parse(time.DateOnly, req.HireDate)

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	emp := employee.Employee{
		ID:                 uuid.New().String(),
		EmployeeCode:       req.EmployeeCode,
		FullName:           req.FullName,
		NIK:                req.NIK,
		Phone:              req.Phone,
		Position:           req.Position,
		BaseSalary:         req.BaseSalary,
		PositionAllowance:  req.PositionAllowance,
		MealAllowance:      req.MealAllowance,
		TransportAllowance: req.TransportAllowance,
		HireDate:           hireDate,
		IsActive:           true,
	}

	// The employee row and its login account land together or not at all.
	hash := string(passwordHash)
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err := s.EmployeeRepository.Create(txCtx, emp)
		if err != nil {
			return err
		}
		emp = created

		_, err = s.UserRepository.Create(txCtx, user.User{
			ID:           uuid.New().String(),
			EmployeeID:   &created.ID,
			Email:        req.Email,
			PasswordHash: &hash,
			Role:         user.Role(req.Role),
		})
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(&emp), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(&emp), nil
}

// ListActive implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListActive(ctx context.Context) ([]employee.EmployeeResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	employees, err := s.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]employee.EmployeeResponse, 0, len(employees))
	for i := range employees {
		results = append(results, employee.ToResponse(&employees[i]))
	}
	return results, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp.FullName = req.FullName
	emp.NIK = req.NIK
	emp.Phone = req.Phone
	emp.Position = req.Position
	emp.BaseSalary = req.BaseSalary
	emp.PositionAllowance = req.PositionAllowance
	emp.MealAllowance = req.MealAllowance
	emp.TransportAllowance = req.TransportAllowance
	emp.IsActive = req.IsActive

	if err := s.EmployeeRepository.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(&emp), nil
}

// Deactivate implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !emp.IsActive {
		return employee.ErrEmployeeInactive
	}

	emp.IsActive = false
	return s.EmployeeRepository.Update(ctx, emp)
}
