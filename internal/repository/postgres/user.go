package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"goride/internal/domain"
	"goride/internal/repository"
)

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create adds a new user. Driver approval columns stay NULL for non-drivers.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, name, email, password_hash, role, is_blocked, is_verified, driver_approved, driver_suspended)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	var approved, suspended sql.NullBool
	if user.DriverApproval != nil {
		approved = sql.NullBool{Bool: user.DriverApproval.IsApproved, Valid: true}
		suspended = sql.NullBool{Bool: user.DriverApproval.IsSuspended, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role),
		user.IsBlocked, user.IsVerified, approved, suspended,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
		return repository.ErrDuplicate
	}
	return err
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, name, email, password_hash, role, is_blocked, is_verified, driver_approved, driver_suspended, created_at
	          FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, name, email, password_hash, role, is_blocked, is_verified, driver_approved, driver_suspended, created_at
	          FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetAll retrieves all users.
func (r *UserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT id, name, email, password_hash, role, is_blocked, is_verified, driver_approved, driver_suspended, created_at
	          FROM users ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Update updates an existing user.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users
	          SET name = $2, email = $3, password_hash = $4, role = $5,
	              is_blocked = $6, is_verified = $7, driver_approved = $8, driver_suspended = $9
	          WHERE id = $1`

	var approved, suspended sql.NullBool
	if user.DriverApproval != nil {
		approved = sql.NullBool{Bool: user.DriverApproval.IsApproved, Valid: true}
		suspended = sql.NullBool{Bool: user.DriverApproval.IsSuspended, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role),
		user.IsBlocked, user.IsVerified, approved, suspended,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *UserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	user, err := scanUserRow(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func scanUserRow(row rowScanner) (*domain.User, error) {
	var user domain.User
	var role string
	var approved, suspended sql.NullBool

	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &role,
		&user.IsBlocked, &user.IsVerified, &approved, &suspended, &user.CreatedAt)
	if err != nil {
		return nil, err
	}

	user.Role = domain.Role(role)
	if approved.Valid || suspended.Valid {
		user.DriverApproval = &domain.DriverApproval{
			IsApproved:  approved.Bool,
			IsSuspended: suspended.Bool,
		}
	}
	return &user, nil
}
