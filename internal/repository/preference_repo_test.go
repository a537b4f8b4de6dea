package repository

import (
	"database/sql"
	"regexp"
	"testing"

	"envmonitor/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPreferenceSQLite_SaveAndLoad(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	repo := NewPreferenceSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(upsertPreferencesSQL)).
		WithArgs(1, false, true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(selectPreferencesSQL)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"sound_enabled", "notifications_enabled"}).AddRow(false, true))

	want := models.Preferences{SoundEnabled: false, NotificationsEnabled: true}
	if err := repo.Save(ctx(t), want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, found, err := repo.Load(ctx(t))
	if err != nil || !found {
		t.Fatalf("Load: found=%v err=%v", found, err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestPreferenceSQLite_LoadMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectPreferencesSQL)).
		WithArgs(1).
		WillReturnError(sql.ErrNoRows)

	_, found, err := NewPreferenceSQLite(db).Load(ctx(t))
	if err != nil || found {
		t.Fatalf("expected not found, got found=%v err=%v", found, err)
	}
}
