package store

import (
	"context"
	"sort"
	"sync"

	perrors "github.com/zhubert/sidepanel/internal/errors"
	"github.com/zhubert/sidepanel/internal/history"
	"github.com/zhubert/sidepanel/internal/transcript"
)

// Memory is an in-process Store. Safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	now      Clock
	seq      int
	sessions map[string]memSession
	messages map[string][]transcript.Message
}

type memSession struct {
	summary history.SessionSummary
	seq     int
}

// NewMemory returns an empty in-memory store.
func NewMemory(now Clock) *Memory {
	return &Memory{
		now:      now,
		sessions: make(map[string]memSession),
		messages: make(map[string][]transcript.Message),
	}
}

func (m *Memory) CreateSession(_ context.Context, title string) (history.SessionSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	sum := history.SessionSummary{ID: newSessionID(), Title: title, CreatedAt: m.now().UnixMilli()}
	m.sessions[sum.ID] = memSession{summary: sum, seq: m.seq}
	return sum, nil
}

func (m *Memory) Session(_ context.Context, id string) (history.SessionSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return history.SessionSummary{}, perrors.SessionNotFound(id)
	}
	return s.summary, nil
}

func (m *Memory) Sessions(_ context.Context) ([]history.SessionSummary, error) {
	m.mu.RLock()
	all := make([]memSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].summary.CreatedAt != all[j].summary.CreatedAt {
			return all[i].summary.CreatedAt > all[j].summary.CreatedAt
		}
		return all[i].seq > all[j].seq
	})

	out := make([]history.SessionSummary, len(all))
	for i, s := range all {
		out[i] = s.summary
	}
	return out, nil
}

func (m *Memory) RenameSession(_ context.Context, id, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return perrors.SessionNotFound(id)
	}
	s.summary.Title = title
	m.sessions[id] = s
	return nil
}

func (m *Memory) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return perrors.SessionNotFound(id)
	}
	delete(m.sessions, id)
	delete(m.messages, id)
	return nil
}

func (m *Memory) AppendMessage(_ context.Context, sessionID string, msg transcript.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		return perrors.SessionNotFound(sessionID)
	}
	m.messages[sessionID] = append(m.messages[sessionID], msg)
	return nil
}

func (m *Memory) Messages(_ context.Context, sessionID string) ([]transcript.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	msgs := m.messages[sessionID]
	out := make([]transcript.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions = make(map[string]memSession)
	m.messages = make(map[string][]transcript.Message)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
