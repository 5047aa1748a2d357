package clipboard

import (
	"errors"
	"testing"

	perrors "github.com/zhubert/sidepanel/internal/errors"
)

type fakeBackend struct {
	initErr   error
	initCalls int
	data      []byte
}

func (f *fakeBackend) Init() error       { f.initCalls++; return f.initErr }
func (f *fakeBackend) Read() []byte      { return f.data }
func (f *fakeBackend) Write(text []byte) { f.data = append([]byte(nil), text...) }

func TestReadWriteText(t *testing.T) {
	fake := &fakeBackend{}
	SetBackend(fake)
	defer ResetBackend()

	if got, err := ReadText(); err != nil || got != "" {
		t.Fatalf("ReadText() on empty = %q, %v", got, err)
	}
	if err := WriteText("line one\nline two"); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	got, err := ReadText()
	if err != nil {
		t.Fatalf("ReadText() error = %v", err)
	}
	if got != "line one\nline two" {
		t.Errorf("ReadText() = %q", got)
	}
	if fake.initCalls != 1 {
		t.Errorf("Init called %d times, want 1", fake.initCalls)
	}
}

func TestInitFailure(t *testing.T) {
	SetBackend(&fakeBackend{initErr: errors.New("no display")})
	defer ResetBackend()

	_, err := ReadText()
	if !perrors.Is(err, perrors.KindClipboard) {
		t.Errorf("ReadText() error = %v, want clipboard error", err)
	}
	if err := Init(); err == nil {
		t.Error("Init() should keep failing while the backend does")
	}
}
