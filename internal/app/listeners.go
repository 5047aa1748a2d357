package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/sidepanel/internal/agent"
	"github.com/zhubert/sidepanel/internal/clipboard"
)

// AgentEventMsg carries one event from a running task.
type AgentEventMsg struct {
	Event agent.Event
}

// StoreChangedMsg reports that another process wrote to the store.
type StoreChangedMsg struct{}

// StoreWatchErrorMsg reports a failure inside the store watcher.
type StoreWatchErrorMsg struct {
	Err error
}

// ClipboardMsg carries text read from the clipboard for the composer.
type ClipboardMsg struct {
	Text string
	Err  error
}

// listenForAgentEvents waits for the next event of a task. A closed channel
// yields nil; the Done event that precedes the close ends the task.
func (m *Model) listenForAgentEvents(ch <-chan agent.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return AgentEventMsg{Event: ev}
	}
}

// listenForStoreChanges creates a command to wait for the next store change
func (m *Model) listenForStoreChanges() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	ch := m.watcher.Changes()
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return StoreChangedMsg{}
	}
}

// listenForStoreErrors creates a command to wait for the next watcher error
func (m *Model) listenForStoreErrors() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	ch := m.watcher.Errors()
	return func() tea.Msg {
		err, ok := <-ch
		if !ok {
			return nil
		}
		return StoreWatchErrorMsg{Err: err}
	}
}

// readClipboard reads the clipboard off the event loop.
func readClipboard() tea.Msg {
	text, err := clipboard.ReadText()
	return ClipboardMsg{Text: text, Err: err}
}
