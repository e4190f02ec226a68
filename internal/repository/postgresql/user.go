package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/karyaprima/hrops-backend-go/internal/domain/user"
	"github.com/karyaprima/hrops-backend-go/internal/pkg/database"
)

const userColumns = `
	u.id, u.employee_id, u.email, u.password_hash, u.role,
	u.oauth_provider, u.oauth_provider_id, u.created_at, u.updated_at`

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

func scanUser(row pgx.Row, u *user.User, withEmployee bool) error {
	dest := []interface{}{
		&u.ID, &u.EmployeeID, &u.Email, &u.PasswordHash, &u.Role,
		&u.OAuthProvider, &u.OAuthProviderID, &u.CreatedAt, &u.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &u.EmployeeCode, &u.EmployeeName)
	}
	return row.Scan(dest...)
}

// Create implements user.UserRepository.
func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			employee_id, email, password_hash, role, oauth_provider, oauth_provider_id
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newUser.EmployeeID,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Role,
		newUser.OAuthProvider,
		newUser.OAuthProviderID,
	).Scan(&newUser.ID, &newUser.CreatedAt, &newUser.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `, e.employee_code, e.full_name
		FROM users u
		LEFT JOIN employees e ON e.id = u.employee_id
		WHERE u.id = $1
	`

	var u user.User
	if err := scanUser(q.QueryRow(ctx, query, id), &u, true); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `, e.employee_code, e.full_name
		FROM users u
		LEFT JOIN employees e ON e.id = u.employee_id
		WHERE LOWER(u.email) = LOWER($1)
	`

	var u user.User
	if err := scanUser(q.QueryRow(ctx, query, email), &u, true); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// GetByEmployeeCode implements user.UserRepository.
func (r *userRepository) GetByEmployeeCode(ctx context.Context, employeeCode string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `, e.employee_code, e.full_name
		FROM users u
		JOIN employees e ON e.id = u.employee_id
		WHERE e.employee_code = $1
	`

	var u user.User
	if err := scanUser(q.QueryRow(ctx, query, employeeCode), &u, true); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by employee code: %w", err)
	}

	return u, nil
}

// GetByEmployeeID implements user.UserRepository.
func (r *userRepository) GetByEmployeeID(ctx context.Context, employeeID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `, e.employee_code, e.full_name
		FROM users u
		JOIN employees e ON e.id = u.employee_id
		WHERE u.employee_id = $1
	`

	var u user.User
	if err := scanUser(q.QueryRow(ctx, query, employeeID), &u, true); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by employee id: %w", err)
	}

	return u, nil
}

// GetByOAuth implements user.UserRepository.
func (r *userRepository) GetByOAuth(ctx context.Context, provider string, providerID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `, e.employee_code, e.full_name
		FROM users u
		LEFT JOIN employees e ON e.id = u.employee_id
		WHERE u.oauth_provider = $1 AND u.oauth_provider_id = $2
	`

	var u user.User
	if err := scanUser(q.QueryRow(ctx, query, provider, providerID), &u, true); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by oauth: %w", err)
	}

	return u, nil
}

// ListByRoles implements user.UserRepository.
func (r *userRepository) ListByRoles(ctx context.Context, roles []user.Role) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `, e.employee_code, e.full_name
		FROM users u
		LEFT JOIN employees e ON e.id = u.employee_id
		WHERE u.role = ANY($1)
		ORDER BY u.email ASC
	`

	roleValues := make([]string, 0, len(roles))
	for _, role := range roles {
		roleValues = append(roleValues, string(role))
	}

	rows, err := q.Query(ctx, query, roleValues)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by roles: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		if err := scanUser(rows, &u, true); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// Update implements user.UserRepository.
func (r *userRepository) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users SET
			employee_id = $2, email = $3, password_hash = $4, role = $5,
			oauth_provider = $6, oauth_provider_id = $7, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		u.ID, u.EmployeeID, u.Email, u.PasswordHash, u.Role,
		u.OAuthProvider, u.OAuthProviderID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}
