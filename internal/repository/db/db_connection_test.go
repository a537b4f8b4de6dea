package db

import (
	"path/filepath"
	"testing"
)

func TestInitDB_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := InitDB(path)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer func() { _ = db.Close() }()

	for _, table := range []string{"thresholds", "preferences", "audit_logs", "users"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}

	// re-running the schema must be harmless
	if err := ensureSchema(db); err != nil {
		t.Fatalf("ensureSchema second run: %v", err)
	}
}

func TestInitDB_ThresholdsSingleRow(t *testing.T) {
	db, err := InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer func() { _ = db.Close() }()

	_, err = db.Exec(`INSERT INTO thresholds (id, temp_high, temp_low, hum_high, hum_low, updated_at)
		VALUES ('station-2', 1, 2, 3, 4, CURRENT_TIMESTAMP)`)
	if err == nil {
		t.Fatalf("expected CHECK constraint to reject a non-global row")
	}
}
