package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"walletapp/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

// ErrDuplicate reports an insert that lost to an existing row on a unique
// column. Callers racing on the same username see this instead of a raw
// driver error.
var ErrDuplicate = errors.New("duplicate record")

const (
	insertUserSQL = `INSERT INTO users (id, username, password_hash, first_name, last_name) VALUES (?, ?, ?, ?, ?)`

	insertAccountSQL = `INSERT INTO accounts (id, user_id, balance) VALUES (?, ?, ?)`

	selectUserByUsernameSQL = `SELECT id, username, password_hash, first_name, last_name FROM users WHERE username = ?`

	selectUserByIDSQL = `SELECT id, username, password_hash, first_name, last_name FROM users WHERE id = ?`

	searchUsersSQL = `SELECT id, username, password_hash, first_name, last_name FROM users WHERE LOWER(first_name) LIKE ? ESCAPE '\' OR LOWER(last_name) LIKE ? ESCAPE '\' ORDER BY username ASC`
)

// CreateWithAccount inserts the user and its linked account in one transaction,
// so a failure cannot leave an account-less user behind.
func (r *UserRepository) CreateWithAccount(ctx context.Context, u models.User, a models.Account) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create user tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, insertUserSQL, u.ID, u.Username, u.PasswordHash, u.FirstName, u.LastName); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert user %q: %w", u.Username, ErrDuplicate)
		}
		return fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	if _, err := tx.ExecContext(ctx, insertAccountSQL, a.ID, a.UserID, a.Balance); err != nil {
		return fmt.Errorf("insert account for user %q: %w", u.Username, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create user tx: %w", err)
	}
	return nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := r.scanOne(r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := r.scanOne(r.db.QueryRowContext(ctx, selectUserByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select user id %q: %w", id, err)
	}
	return u, nil
}

// Update applies the non-nil fields of upd to the user row. A fully-empty
// update is a no-op.
func (r *UserRepository) Update(ctx context.Context, id string, upd UserUpdate) error {
	var (
		sets []string
		args []any
	)
	if upd.PasswordHash != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, *upd.PasswordHash)
	}
	if upd.FirstName != nil {
		sets = append(sets, "first_name = ?")
		args = append(args, *upd.FirstName)
	}
	if upd.LastName != nil {
		sets = append(sets, "last_name = ?")
		args = append(args, *upd.LastName)
	}
	if len(sets) == 0 {
		return nil
	}

	q := "UPDATE users SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("update user id %q: %w", id, err)
	}
	return nil
}

// SearchByName returns users whose first or last name contains filter as a
// case-insensitive substring. An empty filter matches everyone.
func (r *UserRepository) SearchByName(ctx context.Context, filter string) ([]models.User, error) {
	pattern := "%" + escapeLike(strings.ToLower(filter)) + "%"

	rows, err := r.db.QueryContext(ctx, searchUsersSQL, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search users %q: %w", filter, err)
	}
	defer rows.Close()

	out := make([]models.User, 0, 16)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}
	return out, nil
}

func (r *UserRepository) scanOne(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// isUniqueViolation matches the driver's constraint failure message; the
// sqlite driver exposes no sentinel error for it.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// escapeLike neutralizes LIKE wildcards in user-supplied filters.
func escapeLike(s string) string {
	repl := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return repl.Replace(s)
}
