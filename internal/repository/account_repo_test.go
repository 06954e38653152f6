package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockAccountRepo(t *testing.T) (*AccountRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewAccountRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestAccountRepository_GetByUserID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock, cleanup := newMockAccountRepo(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"id", "user_id", "balance"}).
			AddRow("aid-1", "uid-1", 1234.5)
		mock.ExpectQuery(regexp.QuoteMeta(selectAccountByUserIDSQL)).
			WithArgs("uid-1").
			WillReturnRows(rows)

		a, err := repo.GetByUserID(context.Background(), "uid-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a == nil || a.ID != "aid-1" || a.UserID != "uid-1" || a.Balance != 1234.5 {
			t.Fatalf("unexpected account: %+v", a)
		}
	})

	t.Run("not found (ErrNoRows)", func(t *testing.T) {
		repo, mock, cleanup := newMockAccountRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectAccountByUserIDSQL)).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		a, err := repo.GetByUserID(context.Background(), "ghost")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a != nil {
			t.Fatalf("expected nil account, got %+v", a)
		}
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock, cleanup := newMockAccountRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectAccountByUserIDSQL)).
			WithArgs("uid-1").
			WillReturnError(errors.New("db down"))

		if _, err := repo.GetByUserID(context.Background(), "uid-1"); err == nil {
			t.Fatalf("expected error")
		}
	})
}
