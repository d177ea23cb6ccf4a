package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"edu_portal/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicateEmail is returned when the email is already taken
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrUserNotFound is returned by writes that match no row
	ErrUserNotFound = errors.New("user not found")
)

const uniqueViolation = "23505"

// DB is the subset of pgxpool.Pool the repositories need
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.StoredUser) error
	FindByEmail(ctx context.Context, email string) (*model.StoredUser, error)
	FindByID(ctx context.Context, id string) (*model.StoredUser, error)
	FindAll(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, role, profile, created_at`

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.StoredUser) error {
	profile, err := encodeProfile(user.Role, user.Profile)
	if err != nil {
		return err
	}
	sql := `INSERT INTO users (id, email, password_hash, role, profile, created_at)
            VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.db.Exec(ctx, sql, user.ID, user.Email, user.PasswordHash, string(user.Role), profile, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by their email; nil when absent
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.StoredUser, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by their ID; nil when absent
func (r *userRepository) FindByID(ctx context.Context, id string) (*model.StoredUser, error) {
	sql := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// FindAll returns every user, oldest first
func (r *userRepository) FindAll(ctx context.Context) ([]model.User, error) {
	sql := `SELECT ` + userColumns + ` FROM users ORDER BY created_at, email`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u.User)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// Update replaces email, role and profile of an existing user
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	profile, err := encodeProfile(user.Role, user.Profile)
	if err != nil {
		return err
	}
	sql := `UPDATE users
            SET email = $1, role = $2, profile = $3, updated_at = NOW()
            WHERE id = $4 RETURNING created_at`
	err = r.db.QueryRow(ctx, sql, user.Email, string(user.Role), profile, user.ID).Scan(&user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Delete removes a user from the database
func (r *userRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*model.StoredUser, error) {
	var (
		u       model.StoredUser
		role    string
		profile []byte
	)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &profile, &u.CreatedAt); err != nil {
		return nil, err
	}
	r, err := model.ParseRole(role)
	if err != nil {
		return nil, err
	}
	u.Role = r
	if u.Profile, err = model.DecodeProfile(r, profile); err != nil {
		return nil, err
	}
	return &u, nil
}

func encodeProfile(role model.Role, p model.Profile) ([]byte, error) {
	if p == nil {
		p = model.EmptyProfile(role)
	}
	if p == nil || p.Role() != role {
		return nil, fmt.Errorf("profile shape does not match role %q", role)
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	return b, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
