// Package store persists chat sessions and their messages.
//
// SQLite backs the panel at runtime; Memory serves tests and the --store
// ":memory:" mode. Both return sessions newest first and messages in the
// order they were appended.
package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zhubert/sidepanel/internal/history"
	"github.com/zhubert/sidepanel/internal/transcript"
)

// Store is the persistence boundary the app talks to.
type Store interface {
	CreateSession(ctx context.Context, title string) (history.SessionSummary, error)
	Session(ctx context.Context, id string) (history.SessionSummary, error)
	Sessions(ctx context.Context) ([]history.SessionSummary, error)
	RenameSession(ctx context.Context, id, title string) error
	DeleteSession(ctx context.Context, id string) error
	AppendMessage(ctx context.Context, sessionID string, msg transcript.Message) error
	Messages(ctx context.Context, sessionID string) ([]transcript.Message, error)
	Clear(ctx context.Context) error
	Close() error
}

// MemoryPath selects the in-memory store when passed to Open.
const MemoryPath = ":memory:"

// Clock returns the current time. Stores take one so tests can pin it.
type Clock func() time.Time

// Open returns the store for path: Memory for MemoryPath, SQLite otherwise.
func Open(path string) (Store, error) {
	if path == MemoryPath {
		return NewMemory(time.Now), nil
	}
	return OpenSQLite(path, time.Now)
}

func newSessionID() string {
	return uuid.New().String()
}

// TitleFromContent derives a session title from the first message typed
// into it: the first non-blank line, cut to maxRunes.
func TitleFromContent(content string, maxRunes int) string {
	line := ""
	for _, l := range strings.Split(content, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			line = l
			break
		}
	}
	r := []rune(line)
	if maxRunes > 0 && len(r) > maxRunes {
		return string(r[:maxRunes-1]) + "…"
	}
	return line
}
