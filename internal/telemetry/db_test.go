package telemetry

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openMem(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSessionLifecycle(t *testing.T) {
	db := openMem(t)
	start := time.UnixMilli(1_700_000_000_000)

	s, err := db.Begin(Session{Adapter: "terminal", Preset: "classic", Strategy: "shift", Lines: 60, StartedAt: start})
	if err != nil {
		t.Fatal(err)
	}
	if s.ID == "" {
		t.Fatal("expected an id")
	}

	got, err := db.Get(s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Lines != 60 || !got.StartedAt.Equal(start) || !got.EndedAt.IsZero() {
		t.Errorf("unexpected session %+v", got)
	}
	if got.Duration() != 0 {
		t.Error("open session should have no duration")
	}

	s.EndedAt = start.Add(90 * time.Second)
	s.Rendered, s.Skipped, s.MeanFPS = 5400, 12, 59.8
	if err := db.Finish(s); err != nil {
		t.Fatal(err)
	}
	got, _ = db.Get(s.ID)
	if got.Rendered != 5400 || got.Skipped != 12 || got.MeanFPS != 59.8 {
		t.Errorf("counters not stored: %+v", got)
	}
	if got.Duration() != 90*time.Second {
		t.Errorf("duration = %v", got.Duration())
	}
}

func TestNotFound(t *testing.T) {
	db := openMem(t)
	if _, err := db.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get: expected ErrNotFound, got %v", err)
	}
	if err := db.Finish(Session{ID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Finish: expected ErrNotFound, got %v", err)
	}
}

func TestRecentAndPrune(t *testing.T) {
	db := openMem(t)
	base := time.UnixMilli(1_700_000_000_000)
	for i := 0; i < 5; i++ {
		if _, err := db.Begin(Session{Adapter: "window", StartedAt: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatal(err)
		}
	}

	recent, err := db.Recent(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 3 {
		t.Fatalf("got %d sessions", len(recent))
	}
	if !recent[0].StartedAt.After(recent[1].StartedAt) {
		t.Error("expected newest first")
	}

	n, err := db.Prune(2)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("pruned %d, want 3", n)
	}
	all, _ := db.Recent(10)
	if len(all) != 2 {
		t.Errorf("%d sessions left, want 2", len(all))
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	s, err := db.Begin(Session{Adapter: "terminal"})
	if err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, err := db.Get(s.ID); err != nil {
		t.Errorf("session lost across reopen: %v", err)
	}
}
