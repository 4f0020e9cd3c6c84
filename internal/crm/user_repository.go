package crm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/coppermill/crm-core/internal/auth"
	"github.com/coppermill/crm-core/internal/infrastructure/database"
)

// NewUser carries the attributes for creating a user account.
// Password is the plaintext credential; it is hashed before storage and
// never persisted as given.
type NewUser struct {
	Username  string
	Password  string
	Email     string
	RoleID    int64
	ManagerID *int64 // nil for users without a manager
}

// UserRepository provides CRUD access to user accounts.
type UserRepository struct {
	exec *database.Executor
}

// NewUserRepository creates a user repository over the executor.
func NewUserRepository(exec *database.Executor) *UserRepository {
	return &UserRepository{exec: exec}
}

// Create inserts a new active user account and returns the generated id.
// The password is bcrypt-hashed with a per-call salt before storage.
func (r *UserRepository) Create(ctx context.Context, nu NewUser) (int64, error) {
	hash, err := auth.HashPassword(nu.Password)
	if err != nil {
		return 0, err
	}

	_, now := nowStamp()
	id, _, err := r.exec.Exec(ctx,
		`INSERT INTO users (username, password_hash, email, role_id, manager_id, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, 1, ?, ?)`,
		nu.Username, hash, nu.Email, nu.RoleID, nullInt64(nu.ManagerID), now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrUserExists
		}
		return 0, fmt.Errorf("creating user: %w", err)
	}

	return id, nil
}

// VerifyPassword checks a candidate password for a username by re-hashing
// and comparing against the stored hash. An unknown username or a mismatch
// both return (false, nil) — neither is an error.
func (r *UserRepository) VerifyPassword(ctx context.Context, username, password string) (bool, error) {
	row, err := r.exec.QueryRow(ctx,
		"SELECT password_hash FROM users WHERE username = ?", username)
	if err != nil {
		return false, err
	}

	var hash string
	if err := row.Scan(&hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("fetching password hash: %w", err)
	}

	return auth.CheckPassword(password, hash), nil
}

// SetActive flips a user's active flag and refreshes the update timestamp.
// Deactivation does not revoke existing sessions; callers that need that
// combine it with the auth session repository.
// Returns ErrUserNotFound if the id does not exist.
func (r *UserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	_, stamp := nowStamp()

	_, affected, err := r.exec.Exec(ctx,
		"UPDATE users SET is_active = ?, updated_at = ? WHERE user_id = ?",
		boolToInt(active), stamp, userID)
	if err != nil {
		return fmt.Errorf("updating user active flag: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// userColumns is the denormalised projection shared by the user lookups.
const userColumns = `u.user_id, u.username, u.password_hash, u.email,
	u.role_id, u.manager_id, u.is_active, u.created_at, u.updated_at, r.role_name`

// GetByID retrieves a user by id, with the role name joined in.
// Returns ErrUserNotFound for an unknown id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.getUser(ctx,
		"SELECT "+userColumns+" FROM users u JOIN roles r ON u.role_id = r.role_id WHERE u.user_id = ?",
		id)
}

// GetByUsername retrieves a user by username, with the role name joined in.
// Returns ErrUserNotFound for an unknown username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.getUser(ctx,
		"SELECT "+userColumns+" FROM users u JOIN roles r ON u.role_id = r.role_id WHERE u.username = ?",
		username)
}

// getUser executes a single-user query and decodes the row.
func (r *UserRepository) getUser(ctx context.Context, query string, args ...any) (*User, error) {
	row, err := r.exec.QueryRow(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	var u User
	var manager sql.NullInt64
	var isActive int
	var createdAt, updatedAt string

	err = row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email,
		&u.RoleID, &manager, &isActive, &createdAt, &updatedAt, &u.RoleName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	if manager.Valid {
		u.ManagerID = &manager.Int64
	}
	u.IsActive = isActive != 0
	u.CreatedAt = parseStamp(createdAt)
	u.UpdatedAt = parseStamp(updatedAt)

	return &u, nil
}
