package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/renteaselabs/rentease-backend/internal/utils"
)

// Role values stored on users.role and carried in the access token's role
// claim. Authorization decisions compare against these and nothing else;
// profile fields never influence them.
const (
	RoleCustomer = "customer"
	RoleAgent    = "agent"
	RoleAdmin    = "admin"
)

// ValidRole reports whether s is one of the three known roles.
func ValidRole(s string) bool {
	return s == RoleCustomer || s == RoleAgent || s == RoleAdmin
}

// User mirrors the 'users' table. Name and Phone are informational profile
// fields only.
type User struct {
	ID           uint64
	Email        string
	PasswordHash string
	Role         string
	Name         string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create hashes the password and inserts the user, returning the new ID.
// The email is stored exactly as given (minus surrounding whitespace);
// uniqueness is byte-wise per the unique index. A duplicate surfaces as
// ErrEmailExists regardless of any earlier existence check.
func (r *UserRepo) Create(ctx context.Context, email, password, role, name, phone string, cost int) (uint64, error) {
	email = strings.TrimSpace(email)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role, name, phone) VALUES (?,?,?,?,?)",
		email, hash, role, name, phone)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// EmailExists is the fast-path check used at registration for a friendly 409
// before attempting the insert. The unique index remains the invariant.
func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE email=? LIMIT 1", email).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetByEmail fetches a user by email, matched exactly as stored. ErrNotFound
// when absent.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	email = strings.TrimSpace(email)
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,name,phone,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email))
}

// GetByID fetches a user by id. ErrNotFound when absent.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,name,phone,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id))
}

// ListAll returns every user ordered by id. Admin-only at the handler layer;
// password hashes stay out of responses there, not here.
func (r *UserRepo) ListAll(ctx context.Context) ([]User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,email,password_hash,role,name,phone,created_at,updated_at FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name, &u.Phone, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateRole sets a user's role. The change binds only to tokens issued
// afterwards; callers that need immediate effect must also revoke the user's
// outstanding tokens.
func (r *UserRepo) UpdateRole(ctx context.Context, id uint64, role string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET role=?, updated_at=CURRENT_TIMESTAMP WHERE id=?", role, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteWithData removes a user together with everything keyed to the
// account: refresh tokens, property listings, favorites and inquiries. The
// whole cascade runs in one transaction, so a failure partway cannot leave
// orphaned rows behind. ErrNotFound when no such user exists; nothing is
// deleted in that case either.
func (r *UserRepo) DeleteWithData(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{
		"DELETE FROM refresh_tokens WHERE user_id=?",
		"DELETE FROM properties WHERE agent_id=?",
		"DELETE FROM favorites WHERE user_id=?",
		"DELETE FROM inquiries WHERE user_id=?",
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// Count returns the number of registered users.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}

func (r *UserRepo) scanOne(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name, &u.Phone, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

// isDuplicateKey detects MySQL error 1062 (duplicate entry for a unique key).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
