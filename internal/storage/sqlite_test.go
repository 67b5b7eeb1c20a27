package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	records := []SolveRecord{
		{BoardKey: "board-a", Mode: "optimal", Solution: "r3 -1", Moves: 1, Elapsed: 12 * time.Millisecond},
		{BoardKey: "board-b", Mode: "optimal-bounded", Bound: 2, Solution: "r3 -1, c4 -1", Moves: 2, Elapsed: 80 * time.Millisecond},
		{BoardKey: "board-a", Mode: "fast", Solution: "c4 2, r1 3", Moves: 2, Elapsed: 3 * time.Millisecond},
	}
	for _, r := range records {
		if _, err := store.SaveSolve(r); err != nil {
			t.Fatalf("SaveSolve() failed: %v", err)
		}
	}

	recent, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(recent))
	}

	// Newest first
	if recent[0].Mode != "fast" || recent[2].Mode != "optimal" {
		t.Errorf("Records not in newest-first order: %v", recent)
	}
	if recent[1].Solution != "r3 -1, c4 -1" || recent[1].Bound != 2 {
		t.Errorf("Bounded record round-tripped wrong: %+v", recent[1])
	}
	if recent[2].Elapsed != 12*time.Millisecond {
		t.Errorf("Elapsed = %v, want 12ms", recent[2].Elapsed)
	}
}

func TestStoreRecentLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveSolve(SolveRecord{BoardKey: "board", Mode: "optimal", Solution: "r1 1", Moves: 1})
	}

	recent, err := store.Recent(3)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("Expected 3 records with limit, got %d", len(recent))
	}
}

func TestStoreForBoard(t *testing.T) {
	store := openTestStore(t)

	store.SaveSolve(SolveRecord{BoardKey: "board-a", Mode: "optimal", Solution: "r1 1", Moves: 1})
	store.SaveSolve(SolveRecord{BoardKey: "board-b", Mode: "optimal", Solution: "r2 1", Moves: 1})
	store.SaveSolve(SolveRecord{BoardKey: "board-a", Mode: "fast", Solution: "r1 1, r2 1", Moves: 2})

	records, err := store.ForBoard("board-a", 10)
	if err != nil {
		t.Fatalf("ForBoard() failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records for board-a, got %d", len(records))
	}
	for _, r := range records {
		if r.BoardKey != "board-a" {
			t.Errorf("ForBoard returned record for %q", r.BoardKey)
		}
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Nested directories are created on demand.
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
