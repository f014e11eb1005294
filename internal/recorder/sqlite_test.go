package recorder

import (
	"path/filepath"
	"testing"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "rhodlsync.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestCursor_EmptyThenSet(t *testing.T) {
	r := openTestRecorder(t)

	date, err := r.LastSynced()
	if err != nil {
		t.Fatal(err)
	}
	if date != "" {
		t.Fatalf("fresh cursor = %q, want empty", date)
	}

	if err := r.SetLastSynced("2024-03-12"); err != nil {
		t.Fatal(err)
	}
	date, err = r.LastSynced()
	if err != nil {
		t.Fatal(err)
	}
	if date != "2024-03-12" {
		t.Fatalf("cursor = %q, want 2024-03-12", date)
	}
}

func TestCursor_Overwrite(t *testing.T) {
	r := openTestRecorder(t)
	if err := r.SetLastSynced("2024-03-10"); err != nil {
		t.Fatal(err)
	}
	if err := r.SetLastSynced("2024-03-12"); err != nil {
		t.Fatal(err)
	}
	date, err := r.LastSynced()
	if err != nil {
		t.Fatal(err)
	}
	if date != "2024-03-12" {
		t.Fatalf("cursor = %q, want the newer date", date)
	}
}

func TestRecordRun(t *testing.T) {
	r := openTestRecorder(t)
	err := r.RecordRun(&RunRecord{
		Mode:        "APPEND",
		RowsFetched: 5000,
		RowsKept:    4400,
		RowsWritten: 2,
		Status:      "OK",
	})
	if err != nil {
		t.Fatalf("record run: %v", err)
	}

	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM run_history`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("run_history rows = %d, want 1", count)
	}
}
