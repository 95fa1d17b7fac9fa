package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	dbgen "github.com/codr1/canchas/internal/db/generated"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "data.db", want: "data.db?_fk=1&_txlock=immediate"},
		{in: "data.db?cache=shared", want: "data.db?cache=shared&_fk=1&_txlock=immediate"},
		{in: "data.db?_fk=0", want: "data.db?_fk=0&_txlock=immediate"},
		{in: "data.db?_txlock=deferred", want: "data.db?_txlock=deferred&_fk=1"},
	}
	for _, test := range tests {
		if got := sqliteDSN(test.in); got != test.want {
			t.Fatalf("sqliteDSN(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestNewAppliesMigrations(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer database.Close()

	for _, table := range []string{"users", "canchas", "direcciones", "horarios", "reservas", "resenas"} {
		var name string
		err := database.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	var fk int
	if err := database.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("pragma: %v", err)
	}
	if fk != 1 {
		t.Fatalf("expected foreign keys enabled, got %d", fk)
	}
}

func TestRunInTxRollsBackOnError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer sqlDB.Close()

	database := &DB{DB: sqlDB, Queries: dbgen.New(sqlDB)}
	failure := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM horarios").WithArgs("2026-01-01").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectRollback()

	err = database.RunInTx(context.Background(), func(tx *DB) error {
		if _, err := tx.Queries.DeleteHorariosBefore(context.Background(), "2026-01-01"); err != nil {
			return err
		}
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("expected original error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRunInTxCommits(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer sqlDB.Close()

	database := &DB{DB: sqlDB, Queries: dbgen.New(sqlDB)}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE reservas SET reminder_sent_at").WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = database.RunInTx(context.Background(), func(tx *DB) error {
		return tx.Queries.MarkReservaReminded(context.Background(), 7)
	})
	if err != nil {
		t.Fatalf("run in tx: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRunInTxReportsCommitFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer sqlDB.Close()

	database := &DB{DB: sqlDB, Queries: dbgen.New(sqlDB)}

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(sql.ErrConnDone)

	err = database.RunInTx(context.Background(), func(*DB) error { return nil })
	if !errors.Is(err, sql.ErrConnDone) {
		t.Fatalf("expected commit error, got %v", err)
	}
}
