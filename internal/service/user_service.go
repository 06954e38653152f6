package service

import (
	"context"
	"errors"

	"walletapp/internal/models"
	"walletapp/internal/repository"
)

// ErrUserNotFound is returned when a token references a user that no longer exists.
var ErrUserNotFound = errors.New("user not found")

// UserService handles profile updates and user lookup/search.
type UserService struct {
	users    repository.Users
	accounts repository.Accounts
	audit    Recorder
}

func NewUserService(users repository.Users, accounts repository.Accounts, audit Recorder) *UserService {
	return &UserService{users: users, accounts: accounts, audit: audit}
}

// UpdateProfile applies a partial update to the caller's own record. Passwords
// are re-hashed before storage; other users are unreachable through this path
// since the id always comes from the caller's token.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, p ProfileUpdate) error {
	upd := repository.UserUpdate{
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
	if p.Password != nil {
		hash, err := hashPassword(*p.Password)
		if err != nil {
			return err
		}
		upd.PasswordHash = &hash
	}

	if err := s.users.Update(ctx, userID, upd); err != nil {
		return err
	}

	s.audit.Record(ctx, models.AuditProfileUpdate, "profile updated", map[string]any{
		"user_id":          userID,
		"password_changed": p.Password != nil,
	})
	return nil
}

// Profile returns the caller's public record and linked account.
func (s *UserService) Profile(ctx context.Context, userID string) (models.PublicUser, *models.Account, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.PublicUser{}, nil, err
	}
	if u == nil {
		return models.PublicUser{}, nil, ErrUserNotFound
	}

	account, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return models.PublicUser{}, nil, err
	}
	return u.Public(), account, nil
}

// Search returns every user whose first or last name contains filter as a
// case-insensitive substring, credentials stripped. Empty filter matches all.
func (s *UserService) Search(ctx context.Context, filter string) ([]models.PublicUser, error) {
	users, err := s.users.SearchByName(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}
