package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zhubert/sidepanel/internal/store"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"lowercase y", "y\n", true},
		{"uppercase Y", "Y\n", true},
		{"lowercase yes", "yes\n", true},
		{"uppercase YES", "YES\n", true},
		{"mixed case Yes", "Yes\n", true},
		{"lowercase n", "n\n", false},
		{"lowercase no", "no\n", false},
		{"empty input", "\n", false},
		{"random text", "maybe\n", false},
		{"y with spaces", "  y  \n", true},
		{"yes with spaces", "  yes  \n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.input)
			result := confirm(reader, "Test?")
			if result != tt.expected {
				t.Errorf("confirm(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestConfirm_EOF(t *testing.T) {
	// Test with empty reader (simulates EOF)
	reader := strings.NewReader("")
	result := confirm(reader, "Test?")
	if result != false {
		t.Errorf("confirm(EOF) = %v, want false", result)
	}
}

func TestConfirm_ErrorReader(t *testing.T) {
	// Test with a reader that returns an error
	reader := &errorReader{}
	result := confirm(reader, "Test?")
	if result != false {
		t.Errorf("confirm(error) = %v, want false", result)
	}
}

// errorReader is a reader that always returns an error
type errorReader struct{}

func (e *errorReader) Read(p []byte) (n int, err error) {
	return 0, io.ErrUnexpectedEOF
}

func seedStore(t *testing.T, path string, titles ...string) {
	t.Helper()
	st, err := store.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer st.Close()
	for _, title := range titles {
		if _, err := st.CreateSession(context.Background(), title); err != nil {
			t.Fatalf("CreateSession() error = %v", err)
		}
	}
}

func countSessions(t *testing.T, path string) int {
	t.Helper()
	st, err := store.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer st.Close()
	sessions, err := st.Sessions(context.Background())
	if err != nil {
		t.Fatalf("Sessions() error = %v", err)
	}
	return len(sessions)
}

func TestRunClean(t *testing.T) {
	tests := []struct {
		name       string
		skip       bool
		input      string
		wantLeft   int
		wantLogged bool
	}{
		{"confirmed", false, "y\n", 0, false},
		{"declined", false, "n\n", 2, true},
		{"skip confirm", true, "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			dbPath := filepath.Join(dir, "history.db")
			logFile := filepath.Join(dir, "sidepanel.log")
			seedStore(t, dbPath, "one", "two")
			if err := os.WriteFile(logFile, []byte("log"), 0644); err != nil {
				t.Fatal(err)
			}

			orig := skipConfirm
			defer func() { skipConfirm = orig }()
			skipConfirm = tt.skip

			if err := runCleanWithReader(strings.NewReader(tt.input)); err != nil {
				t.Fatalf("runCleanWithReader() error = %v", err)
			}
			if got := countSessions(t, dbPath); got != tt.wantLeft {
				t.Errorf("%d sessions left, want %d", got, tt.wantLeft)
			}
			if fileExists(logFile) != tt.wantLogged {
				t.Errorf("log exists = %v, want %v", fileExists(logFile), tt.wantLogged)
			}
		})
	}
}

func TestRunClean_NothingToClean(t *testing.T) {
	isolate(t)
	if err := runCleanWithReader(&errorReader{}); err != nil {
		t.Errorf("runCleanWithReader() error = %v", err)
	}
}
