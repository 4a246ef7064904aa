package storage_test

import (
	"path/filepath"
	"testing"

	"taskflow/internal/storage"
)

func openTestDB(t *testing.T) *storage.SessionDB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoad_EmptyDatabase(t *testing.T) {
	db := openTestDB(t)
	token, user, err := db.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "" || user != "" {
		t.Errorf("empty db yielded %q, %q", token, user)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)
	if err := db.Save("tok-1", `{"username":"alice"}`); err != nil {
		t.Fatalf("Save: %v", err)
	}
	token, user, err := db.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "tok-1" || user != `{"username":"alice"}` {
		t.Errorf("Load = %q, %q", token, user)
	}
}

func TestSave_Overwrites(t *testing.T) {
	db := openTestDB(t)
	if err := db.Save("tok-1", `{"username":"alice"}`); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := db.Save("tok-2", `{"username":"bob"}`); err != nil {
		t.Fatalf("Save: %v", err)
	}
	token, user, _ := db.Load()
	if token != "tok-2" || user != `{"username":"bob"}` {
		t.Errorf("Load = %q, %q", token, user)
	}
}

func TestClear(t *testing.T) {
	db := openTestDB(t)
	if err := db.Save("tok-1", `{"username":"alice"}`); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := db.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	token, user, _ := db.Load()
	if token != "" || user != "" {
		t.Errorf("Clear left %q, %q", token, user)
	}
	// Clearing an already-empty record is fine.
	if err := db.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	db, err := storage.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := db.Save("tok-1", `{"username":"alice"}`); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err = storage.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	token, user, err := db.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "tok-1" || user != `{"username":"alice"}` {
		t.Errorf("Load after reopen = %q, %q", token, user)
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := storage.Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
