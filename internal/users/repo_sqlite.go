package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLiteRepo implements Repo over the embedded SQLite database.
type SQLiteRepo struct {
	DB *sql.DB
}

// Create stores a new user and returns its assigned id.
func (r *SQLiteRepo) Create(ctx context.Context, user User) (int64, error) {
	const query = `
INSERT INTO users (username, password_hash, role, created_at)
VALUES (?, ?, ?, ?)`

	res, err := r.DB.ExecContext(ctx, query, user.Username, user.PasswordHash, user.Role, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrUsernameTaken
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return res.LastInsertId()
}

// GetByID fetches a user by id.
func (r *SQLiteRepo) GetByID(ctx context.Context, id int64) (User, error) {
	const query = `
SELECT id, username, password_hash, role, created_at FROM users WHERE id = ?`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// GetByUsername fetches a user by username.
func (r *SQLiteRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	const query = `
SELECT id, username, password_hash, role, created_at FROM users WHERE username = ?`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, username))
}

// List returns all users ordered by creation time.
func (r *SQLiteRepo) List(ctx context.Context) ([]User, error) {
	const query = `
SELECT id, username, password_hash, role, created_at FROM users ORDER BY created_at, id`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// DeleteByID removes a user row.
func (r *SQLiteRepo) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByRole returns how many users carry the given role.
func (r *SQLiteRepo) CountByRole(ctx context.Context, role string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = ?`, role).Scan(&count)
	return count, err
}

func (r *SQLiteRepo) scanOne(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") || strings.Contains(s, "unique constraint")
}

var _ Repo = (*SQLiteRepo)(nil)
