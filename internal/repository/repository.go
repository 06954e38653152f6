package repository

import (
	"context"
	"database/sql"
	"time"

	"walletapp/internal/models"
)

// UserUpdate carries the optional fields of a partial profile update.
// Nil pointers mean "leave unchanged".
type UserUpdate struct {
	PasswordHash *string
	FirstName    *string
	LastName     *string
}

// Users is the credential store. Lookups return (nil, nil) when no row matches.
type Users interface {
	CreateWithAccount(ctx context.Context, u models.User, a models.Account) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, upd UserUpdate) error
	SearchByName(ctx context.Context, filter string) ([]models.User, error)
}

// Accounts is the balance ledger linked one-to-one to Users.
type Accounts interface {
	GetByUserID(ctx context.Context, userID string) (*models.Account, error)
}

// Audit is the append-only audit trail.
type Audit interface {
	Append(ctx context.Context, e models.AuditEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.AuditEvent, error)
}

type Repository struct {
	Users    Users
	Accounts Accounts
	Audit    Audit
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserRepository(db),
		Accounts: NewAccountRepository(db),
		Audit:    NewAuditRepository(db),
	}
}
