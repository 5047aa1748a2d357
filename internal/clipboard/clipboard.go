// Package clipboard reads and writes text on the system clipboard.
package clipboard

import (
	"sync"

	"golang.design/x/clipboard"

	perrors "github.com/zhubert/sidepanel/internal/errors"
	"github.com/zhubert/sidepanel/internal/logger"
)

// Backend is the system clipboard surface the package needs.
type Backend interface {
	Init() error
	Read() []byte
	Write(text []byte)
}

type systemBackend struct{}

func (systemBackend) Init() error       { return clipboard.Init() }
func (systemBackend) Read() []byte      { return clipboard.Read(clipboard.FmtText) }
func (systemBackend) Write(text []byte) { clipboard.Write(clipboard.FmtText, text) }

var (
	mu          sync.Mutex
	backend     Backend = systemBackend{}
	initialized bool
)

// SetBackend swaps the clipboard implementation. Tests only.
func SetBackend(b Backend) {
	mu.Lock()
	defer mu.Unlock()
	backend = b
	initialized = false
}

// ResetBackend restores the system clipboard.
func ResetBackend() {
	SetBackend(systemBackend{})
}

// Init initializes the clipboard. Safe to call multiple times.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked()
}

func initLocked() error {
	if initialized {
		return nil
	}
	if err := backend.Init(); err != nil {
		logger.WithComponent("clipboard").Warn("failed to initialize", "error", err)
		return perrors.ClipboardUnavailable(err)
	}
	initialized = true
	return nil
}

// ReadText returns the clipboard text, or "" when it holds none.
func ReadText() (string, error) {
	mu.Lock()
	defer mu.Unlock()
	if err := initLocked(); err != nil {
		return "", err
	}
	return string(backend.Read()), nil
}

// WriteText places text on the clipboard.
func WriteText(text string) error {
	mu.Lock()
	defer mu.Unlock()
	if err := initLocked(); err != nil {
		return err
	}
	backend.Write([]byte(text))
	return nil
}
