package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, path string) *Watcher {
	t.Helper()
	w, err := New(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(w.Stop)
	return w
}

func TestWatcherCoalescesWrites(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	db := filepath.Join(dir, "family.db")
	if err := os.WriteFile(db, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	w := startWatcher(t, db)

	for i := range 5 {
		if err := os.WriteFile(db+"-wal", []byte{byte(i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-w.Changes:
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported for WAL writes")
	}
	select {
	case <-w.Changes:
		t.Error("burst of writes reported twice")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	db := filepath.Join(dir, "family.db")
	w := startWatcher(t, db)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "family.dbx"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Changes:
		t.Error("change reported for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRelevant(t *testing.T) {
	t.Parallel()
	w := &Watcher{Path: "/data/family.db"}
	tests := []struct {
		name string
		want bool
	}{
		{"/data/family.db", true},
		{"/data/family.db-wal", true},
		{"/data/family.db-shm", true},
		{"/data/family.db-journal", true},
		{"/data/family.db.bak", false},
		{"/data/other.db", false},
	}
	for _, tt := range tests {
		if got := w.relevant(tt.name); got != tt.want {
			t.Errorf("relevant(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
