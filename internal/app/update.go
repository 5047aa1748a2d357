package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/sidepanel/internal/config"
	"github.com/zhubert/sidepanel/internal/keys"
	"github.com/zhubert/sidepanel/internal/ui"
	"github.com/zhubert/sidepanel/internal/ui/modals"
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()

	case tea.BackgroundColorMsg:
		if m.config.GetTheme() == config.ThemeAuto {
			m.log.Debug("terminal background detected", "dark", msg.IsDark())
			m.applyDarkMode(msg.IsDark())
		}

	case tea.KeyPressMsg:
		if m.modal.IsVisible() {
			cmds = append(cmds, m.handleModalKey(msg))
			break
		}
		cmd, quit := m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)

	case tea.MouseClickMsg:
		if !m.modal.IsVisible() {
			cmds = append(cmds, m.handleClick(msg))
		}

	case tea.MouseMotionMsg:
		if !m.modal.IsVisible() {
			m.handleMotion(msg)
		}

	case tea.MouseReleaseMsg:
		if !m.modal.IsVisible() {
			cmds = append(cmds, m.handleRelease(msg))
		}

	case tea.MouseWheelMsg:
		if !m.modal.IsVisible() {
			cmds = append(cmds, m.handleWheel(msg))
		}

	case ui.ProgressTickMsg:
		_, cmd := m.transcript.Update(msg)
		cmds = append(cmds, cmd)

	case AgentEventMsg:
		cmds = append(cmds, m.handleAgentEvent(msg.Event))

	case ClipboardMsg:
		cmds = append(cmds, m.handleClipboard(msg))

	case ui.SelectionCopiedMsg:
		m.setStatus("Copied to clipboard")

	case ui.ClipboardErrorMsg:
		m.setError("Copy failed", msg.Error)

	case StoreChangedMsg:
		m.log.Debug("store changed on disk")
		m.reloadSessions()
		if !m.IsBusy() {
			cmds = append(cmds, m.reloadActiveMessages())
		}
		cmds = append(cmds, m.listenForStoreChanges())

	case StoreWatchErrorMsg:
		m.log.Warn("store watcher error", "error", msg.Err)
		cmds = append(cmds, m.listenForStoreErrors())

	default:
		// Bracketed paste and cursor blinks go to the composer.
		if m.tab == ui.TabChat {
			_, cmd := m.composer.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.drain()...)
	m.layout()
	return m, tea.Batch(cmds...)
}

// handleKey routes a key press outside of modals. quit is true for ctrl+c.
func (m *Model) handleKey(msg tea.KeyPressMsg) (cmd tea.Cmd, quit bool) {
	switch msg.String() {
	case keys.CtrlC:
		return nil, true
	case keys.Tab, keys.ShiftTab:
		if m.tab == ui.TabChat {
			m.setTab(ui.TabHistory)
		} else {
			m.setTab(ui.TabChat)
		}
		return nil, false
	case keys.CtrlN:
		return m.newChat(), false
	case keys.CtrlT:
		m.toggleTheme()
		return nil, false
	case keys.CtrlX:
		m.stopActiveTask()
		return nil, false
	}

	if m.tab == ui.TabHistory {
		_, cmd = m.history.Update(msg)
		return cmd, false
	}

	switch msg.String() {
	case keys.Escape:
		m.composer.Stop()
		return nil, false
	case keys.CtrlV:
		return readClipboard, false
	case keys.PgUp, keys.PgDown:
		_, cmd = m.transcript.Update(msg)
		return cmd, false
	}
	_, cmd = m.composer.Update(msg)
	return cmd, false
}

// handleModalKey drives the confirmation dialog. Enter applies the current
// choice, Esc dismisses it.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) tea.Cmd {
	state, ok := m.modal.State.(*ui.ConfirmDeleteState)
	if !ok {
		m.modal.Hide()
		return nil
	}

	switch msg.String() {
	case keys.Escape:
		m.modal.Hide()
		return nil
	case keys.Enter:
		m.modal.Hide()
		if state.Confirmed() {
			m.deleteSession(state.SessionID)
		}
		return nil
	}

	_, cmd := m.modal.Update(msg)
	if c, ok := m.modal.State.(modals.Completer); ok && c.Done() {
		m.modal.Hide()
		if state.Confirmed() {
			m.deleteSession(state.SessionID)
		}
	}
	return cmd
}

func (m *Model) handleClipboard(msg ClipboardMsg) tea.Cmd {
	if msg.Err != nil {
		m.setError("Clipboard unavailable", msg.Err)
		return nil
	}
	if msg.Text == "" || m.setDraft == nil {
		return nil
	}
	m.setDraft(m.composer.Value() + msg.Text)
	return nil
}

// setTab shows one tab and moves focus into it.
func (m *Model) setTab(tab ui.Tab) {
	m.tab = tab
	m.header.SetTab(tab)
	m.history.SetVisible(tab == ui.TabHistory)
	m.history.SetFocused(tab == ui.TabHistory)
	m.composer.SetFocused(tab == ui.TabChat)
}

// toggleTheme flips the palette and pins it in the config.
func (m *Model) toggleTheme() {
	m.applyDarkMode(!m.dark)
	theme := config.ThemeLight
	if m.dark {
		theme = config.ThemeDark
	}
	if err := m.config.SetTheme(theme); err != nil {
		m.log.Warn("invalid theme", "theme", theme, "error", err)
		return
	}
	m.saveConfig()
}

func (m *Model) applyDarkMode(dark bool) {
	m.dark = dark
	ui.SetDarkMode(dark)
	m.transcript.SetDarkMode(dark)
	m.history.SetDarkMode(dark)
	m.composer.SetDarkMode(dark)
}
