package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatch_SignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")

	s, err := OpenSQLite(path, fixedClock())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	w, err := Watch(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Stop()

	if _, err := s.CreateSession(context.Background(), "from another process"); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Changes():
	case <-time.After(3 * time.Second):
		t.Fatal("no change signal after write")
	}
}

func TestWatch_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")

	w, err := Watch(path, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Changes():
		t.Error("unexpected change signal for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatch_StopClosesChannels(t *testing.T) {
	w, err := Watch(filepath.Join(t.TempDir(), "history.db"), 10*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()

	select {
	case _, ok := <-w.Changes():
		if ok {
			t.Error("expected Changes to be closed")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Changes not closed after Stop")
	}
}
