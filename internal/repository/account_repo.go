package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"walletapp/internal/models"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

var _ Accounts = (*AccountRepository)(nil)

const selectAccountByUserIDSQL = `SELECT id, user_id, balance FROM accounts WHERE user_id = ?`

// GetByUserID fetches the account linked to a user. Returns (nil, nil) if not found.
func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (*models.Account, error) {
	var a models.Account
	err := r.db.QueryRowContext(ctx, selectAccountByUserIDSQL, userID).Scan(&a.ID, &a.UserID, &a.Balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select account for user %q: %w", userID, err)
	}
	return &a, nil
}
