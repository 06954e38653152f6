package service

import (
	"context"
	"errors"
	"testing"

	"walletapp/internal/models"
	"walletapp/internal/repository"
)

// mockAccountsRepo is a lightweight in-test mock for repository.Accounts.
type mockAccountsRepo struct {
	GetByUserIDFn func(userID string) (*models.Account, error)
}

func (m *mockAccountsRepo) GetByUserID(_ context.Context, userID string) (*models.Account, error) {
	return m.GetByUserIDFn(userID)
}

func strPtr(s string) *string { return &s }

func TestUserService_UpdateProfile_HashesPassword(t *testing.T) {
	var gotID string
	var gotUpd repository.UserUpdate
	repo := &mockUsersRepo{
		UpdateFn: func(id string, upd repository.UserUpdate) error {
			gotID = id
			gotUpd = upd
			return nil
		},
	}
	rec := &mockRecorder{}
	svc := NewUserService(repo, &mockAccountsRepo{}, rec)

	err := svc.UpdateProfile(context.Background(), "user-a", ProfileUpdate{
		Password:  strPtr("newpass"),
		FirstName: strPtr("New"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}

	if gotID != "user-a" {
		t.Fatalf("update id: got %q, want %q", gotID, "user-a")
	}
	if gotUpd.PasswordHash == nil {
		t.Fatalf("expected password hash to be set")
	}
	if *gotUpd.PasswordHash == "newpass" {
		t.Fatalf("password must be hashed before storage")
	}
	if err := verifyPassword(*gotUpd.PasswordHash, "newpass"); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
	if gotUpd.FirstName == nil || *gotUpd.FirstName != "New" {
		t.Fatalf("firstName not passed through: %+v", gotUpd)
	}
	if gotUpd.LastName != nil {
		t.Fatalf("lastName should stay unset")
	}
	if len(rec.types) != 1 || rec.types[0] != models.AuditProfileUpdate {
		t.Fatalf("expected PROFILE_UPDATE audit record, got %v", rec.types)
	}
}

func TestUserService_UpdateProfile_EmptyUpdate(t *testing.T) {
	var gotUpd repository.UserUpdate
	repo := &mockUsersRepo{
		UpdateFn: func(_ string, upd repository.UserUpdate) error {
			gotUpd = upd
			return nil
		},
	}
	svc := NewUserService(repo, &mockAccountsRepo{}, &mockRecorder{})

	if err := svc.UpdateProfile(context.Background(), "user-a", ProfileUpdate{}); err != nil {
		t.Fatalf("empty update should succeed, got %v", err)
	}
	if gotUpd.PasswordHash != nil || gotUpd.FirstName != nil || gotUpd.LastName != nil {
		t.Fatalf("expected no fields set, got %+v", gotUpd)
	}
}

func TestUserService_UpdateProfile_RepoError(t *testing.T) {
	repo := &mockUsersRepo{
		UpdateFn: func(string, repository.UserUpdate) error { return errors.New("db down") },
	}
	rec := &mockRecorder{}
	svc := NewUserService(repo, &mockAccountsRepo{}, rec)

	if err := svc.UpdateProfile(context.Background(), "user-a", ProfileUpdate{FirstName: strPtr("X")}); err == nil {
		t.Fatalf("expected repo error")
	}
	if len(rec.types) != 0 {
		t.Fatalf("no audit record on failed update, got %v", rec.types)
	}
}

func TestUserService_Profile(t *testing.T) {
	repo := &mockUsersRepo{
		GetByIDFn: func(id string) (*models.User, error) {
			return &models.User{ID: id, Username: "a@b.com", PasswordHash: "h", FirstName: "A", LastName: "B"}, nil
		},
	}
	accounts := &mockAccountsRepo{
		GetByUserIDFn: func(userID string) (*models.Account, error) {
			return &models.Account{ID: "acc-1", UserID: userID, Balance: 99.5}, nil
		},
	}
	svc := NewUserService(repo, accounts, &mockRecorder{})

	user, account, err := svc.Profile(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if user.ID != "user-a" || user.Username != "a@b.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if account == nil || account.Balance != 99.5 {
		t.Fatalf("unexpected account: %+v", account)
	}
}

func TestUserService_Profile_UnknownUser(t *testing.T) {
	repo := &mockUsersRepo{
		GetByIDFn: func(string) (*models.User, error) { return nil, nil },
	}
	svc := NewUserService(repo, &mockAccountsRepo{}, &mockRecorder{})

	_, _, err := svc.Profile(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Search_StripsCredentials(t *testing.T) {
	var gotFilter string
	repo := &mockUsersRepo{
		SearchByNameFn: func(filter string) ([]models.User, error) {
			gotFilter = filter
			return []models.User{
				{ID: "1", Username: "john@doe.com", PasswordHash: "hash1", FirstName: "John", LastName: "Doe"},
				{ID: "2", Username: "jane@doe.com", PasswordHash: "hash2", FirstName: "Jane", LastName: "Doe"},
			}, nil
		},
	}
	svc := NewUserService(repo, &mockAccountsRepo{}, &mockRecorder{})

	out, err := svc.Search(context.Background(), "doe")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if gotFilter != "doe" {
		t.Fatalf("filter: got %q, want %q", gotFilter, "doe")
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 users, got %d", len(out))
	}
	if out[0].ID != "1" || out[0].Username != "john@doe.com" || out[0].FirstName != "John" {
		t.Fatalf("unexpected projection: %+v", out[0])
	}
}

func TestUserService_Search_EmptyResult(t *testing.T) {
	repo := &mockUsersRepo{
		SearchByNameFn: func(string) ([]models.User, error) { return nil, nil },
	}
	svc := NewUserService(repo, &mockAccountsRepo{}, &mockRecorder{})

	out, err := svc.Search(context.Background(), "zzz")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", out)
	}
}
