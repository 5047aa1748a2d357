package app

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/sidepanel/internal/agent"
	perrors "github.com/zhubert/sidepanel/internal/errors"
	"github.com/zhubert/sidepanel/internal/history"
	"github.com/zhubert/sidepanel/internal/logger"
	"github.com/zhubert/sidepanel/internal/notification"
	"github.com/zhubert/sidepanel/internal/store"
	"github.com/zhubert/sidepanel/internal/transcript"
	"github.com/zhubert/sidepanel/internal/ui"
)

// sendMessage persists the user's text and starts a task for it. The first
// message of a new chat creates the session, titled after the text.
func (m *Model) sendMessage(text string) tea.Cmd {
	ctx := context.Background()

	if m.active == nil {
		sess, err := m.store.CreateSession(ctx, store.TitleFromContent(text, sessionTitleRunes))
		if err != nil {
			m.setError("Could not create chat", err)
			return nil
		}
		m.setActive(&sess)
		m.reloadSessions()
	}
	sessionID := m.active.ID

	msg := transcript.Message{
		Actor:     transcript.ActorUser,
		Content:   text,
		Timestamp: m.now().UnixMilli(),
	}
	if err := m.store.AppendMessage(ctx, sessionID, msg); err != nil {
		m.setError("Could not save message", err)
		return nil
	}
	m.messages = append(m.messages, msg)
	m.telemetry.MessageSent(ctx)

	ch, err := m.runner.Start(ctx, sessionID, text)
	if err != nil {
		m.setError("Could not start task", err)
		return m.refreshTranscript()
	}
	m.tasks[sessionID] = ch
	m.telemetry.TaskStarted(ctx)
	m.setStatus("")
	logger.WithSession(sessionID).Info("task started")

	return tea.Batch(m.refreshTranscript(), m.listenForAgentEvents(ch))
}

// handleAgentEvent applies one task event. Messages are persisted whether or
// not their session is on screen; progress placeholders are never stored.
func (m *Model) handleAgentEvent(ev agent.Event) tea.Cmd {
	ctx := context.Background()
	id := ev.SessionID
	log := logger.WithSession(id)

	switch ev.Kind {
	case agent.EventProgress:
		m.progress[id] = ev.Message

	case agent.EventMessage:
		delete(m.progress, id)
		if err := m.store.AppendMessage(ctx, id, ev.Message); err != nil {
			if perrors.Is(err, perrors.KindNotFound) {
				log.Debug("dropping message for deleted session")
			} else {
				m.setError("Could not save message", err)
			}
		} else if m.isActive(id) {
			m.messages = append(m.messages, ev.Message)
		}

	case agent.EventDone:
		delete(m.progress, id)
		delete(m.tasks, id)
		m.finishTask(ctx, id, ev)
		if m.isActive(id) {
			return m.refreshTranscript()
		}
		return nil
	}

	var cmd tea.Cmd
	if m.isActive(id) {
		cmd = m.refreshTranscript()
	}
	return tea.Batch(cmd, m.listenForAgentEvents(m.tasks[id]))
}

func (m *Model) finishTask(ctx context.Context, id string, ev agent.Event) {
	log := logger.WithSession(id)
	title := m.sessionTitle(id)

	switch {
	case ev.Err != nil:
		m.setError("Task failed", ev.Err)
	case ev.Stopped:
		m.telemetry.TaskStopped(ctx)
		log.Info("task stopped")
		if m.config.GetNotificationsEnabled() {
			if err := notification.TaskStopped(title); err != nil {
				log.Warn("notification failed", "error", err)
			}
		}
		if m.isActive(id) {
			m.setStatus("Task stopped")
		}
	default:
		m.telemetry.TaskCompleted(ctx)
		log.Info("task completed")
		if m.config.GetNotificationsEnabled() {
			if err := notification.TaskCompleted(title); err != nil {
				log.Warn("notification failed", "error", err)
			}
		}
	}
}

// stopActiveTask cancels the task of the session on screen.
func (m *Model) stopActiveTask() {
	if m.active == nil {
		return
	}
	if !m.runner.Stop(m.active.ID) {
		m.log.Debug("no task to stop", "sessionID", m.active.ID)
		return
	}
	m.setStatus("Stopping…")
}

// openSession loads a chat from history and shows it.
func (m *Model) openSession(id string) tea.Cmd {
	ctx := context.Background()

	sess, err := m.store.Session(ctx, id)
	if err != nil {
		if perrors.Is(err, perrors.KindNotFound) {
			m.log.Warn("session no longer exists", "sessionID", id)
			m.config.SetLastSessionID("")
			return nil
		}
		m.setError("Could not open chat", err)
		return nil
	}
	msgs, err := m.store.Messages(ctx, id)
	if err != nil {
		m.setError("Could not load messages", err)
		return nil
	}

	m.setActive(&sess)
	m.messages = msgs
	m.setStatus("")
	m.setTab(ui.TabChat)
	return m.refreshTranscript()
}

// newChat clears the chat tab. Tasks of the previous chat keep running.
func (m *Model) newChat() tea.Cmd {
	m.setActive(nil)
	m.messages = nil
	m.setStatus("")
	m.setTab(ui.TabChat)
	return m.refreshTranscript()
}

func (m *Model) setActive(sess *history.SessionSummary) {
	m.active = sess
	id := ""
	if sess != nil {
		id = sess.ID
	}
	if m.config.GetLastSessionID() != id {
		m.config.SetLastSessionID(id)
		m.saveConfig()
	}
}

func (m *Model) isActive(id string) bool {
	return m.active != nil && m.active.ID == id
}

func (m *Model) sessionTitle(id string) string {
	for _, s := range m.history.Sessions() {
		if s.ID == id {
			return s.Titled(ui.UntitledSession)
		}
	}
	return ui.UntitledSession
}

// requestDelete asks for confirmation when the config wants it.
func (m *Model) requestDelete(id string) {
	if !m.config.GetConfirmDelete() {
		m.deleteSession(id)
		return
	}
	m.modal.Show(ui.NewConfirmDeleteState(id, m.sessionTitle(id)))
}

// deleteSession removes a chat, stopping its task first.
func (m *Model) deleteSession(id string) {
	ctx := context.Background()
	if _, running := m.tasks[id]; running {
		m.runner.Stop(id)
	}
	if err := m.store.DeleteSession(ctx, id); err != nil {
		m.setError("Could not delete chat", err)
		return
	}
	m.telemetry.SessionDeleted(ctx)
	logger.WithSession(id).Info("session deleted")

	if m.isActive(id) {
		m.setActive(nil)
		m.messages = nil
		m.refreshTranscript()
	}
	m.reloadSessions()
	m.setStatus("Chat deleted")
}

// reloadSessions refreshes the history list from the store.
func (m *Model) reloadSessions() {
	sessions, err := m.store.Sessions(context.Background())
	if err != nil {
		m.setError("Could not load history", err)
		return
	}
	m.history.SetSessions(sessions)

	if m.active == nil {
		return
	}
	for _, s := range sessions {
		if s.ID == m.active.ID {
			sess := s
			m.active = &sess
			return
		}
	}
	// Deleted elsewhere
	m.setActive(nil)
	m.messages = nil
	m.refreshTranscript()
}

// reloadActiveMessages re-reads the chat on screen after an outside write.
func (m *Model) reloadActiveMessages() tea.Cmd {
	if m.active == nil {
		return nil
	}
	msgs, err := m.store.Messages(context.Background(), m.active.ID)
	if err != nil {
		m.setError("Could not load messages", err)
		return nil
	}
	m.messages = msgs
	return m.refreshTranscript()
}

// refreshTranscript pushes the active chat, plus any progress placeholder,
// into the transcript and syncs the busy state.
func (m *Model) refreshTranscript() tea.Cmd {
	msgs := m.messages
	if m.active != nil {
		if p, ok := m.progress[m.active.ID]; ok {
			msgs = append(append([]transcript.Message(nil), m.messages...), p)
		}
	}

	busy := m.IsBusy()
	m.composer.SetShowStopButton(busy)
	m.header.SetBusy(busy)
	title := ""
	if m.active != nil {
		title = m.active.Titled(ui.UntitledSession)
	}
	m.header.SetSessionTitle(title)

	cmd := m.transcript.SetMessages(msgs, m.now())
	m.layout()
	return cmd
}

func (m *Model) saveConfig() {
	if err := m.config.Save(); err != nil {
		m.log.Warn("failed to save config", "error", err)
	}
}
