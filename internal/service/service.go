package service

import (
	"context"
	"time"

	"walletapp/internal/logger"
	"walletapp/internal/models"
	"walletapp/internal/repository"
)

// SignUpParams is the validated signup payload.
type SignUpParams struct {
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// ProfileUpdate carries the optional fields of a partial profile update.
// Nil pointers mean "leave unchanged".
type ProfileUpdate struct {
	Password  *string
	FirstName *string
	LastName  *string
}

// AuditFilter narrows audit listings by time range and event type.
type AuditFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "SIGNUP", "SIGNIN", "SIGNIN_FAILED", "PROFILE_UPDATE"
}

type Authorization interface {
	SignUp(ctx context.Context, p SignUpParams) (string, error)
	SignIn(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (string, error)
}

// Users exposes profile mutation and lookup on behalf of an authenticated caller,
// plus the unauthenticated bulk search.
type Users interface {
	UpdateProfile(ctx context.Context, userID string, p ProfileUpdate) error
	Profile(ctx context.Context, userID string) (models.PublicUser, *models.Account, error)
	Search(ctx context.Context, filter string) ([]models.PublicUser, error)
}

// Audit records auth/profile events, lists them with filtering, and fans them
// out to live subscribers. Run is owned by main and stopped via ctx cancellation.
type Audit interface {
	Record(ctx context.Context, typ, description string, meta map[string]any)
	List(ctx context.Context, f AuditFilter) ([]models.AuditEvent, error)
	Subscribe() (<-chan models.AuditEvent, func())
	Run(ctx context.Context)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Users
	Audit
}

// NewService wires the repository layer into concrete services. The token
// config is constructed by the caller (from process configuration), never
// read from ambient globals.
func NewService(repos *repository.Repository, log *logger.Logger, tokens TokenConfig) *Service {
	audit := NewAuditService(repos.Audit, log)
	return &Service{
		Authorization: NewAuthService(repos.Users, audit, tokens),
		Users:         NewUserService(repos.Users, repos.Accounts, audit),
		Audit:         audit,
	}
}
