package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/sidepanel/internal/ui"
)

// updateSizes updates component sizes based on window size
func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.composer.SetSize(ctx.ContentWidth)
	m.history.SetSize(ctx.ContentWidth, ctx.ContentHeight)
	m.layout()
}

// layout gives the transcript whatever the composer leaves over. The
// composer grows with its draft, so this runs after every update.
func (m *Model) layout() {
	ctx := ui.GetViewContext()
	if ctx.ContentHeight == 0 {
		return
	}
	m.transcript.SetSize(ctx.ContentWidth, max(1, ctx.ContentHeight-m.composer.Height()))
}

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}
	v.SetContent(m.render())
	return v
}

// RenderToString renders the screen as a plain string.
func (m *Model) RenderToString() string {
	return m.render()
}

func (m *Model) render() string {
	ctx := ui.GetViewContext()
	m.footer.SetContext(m.tab, m.IsBusy(), m.modal.IsVisible(), len(m.history.Sessions()) > 0)

	if m.modal.IsVisible() {
		return m.modal.View(ctx.TerminalWidth, ctx.TerminalHeight)
	}

	var content string
	if m.tab == ui.TabHistory {
		content = m.history.View()
	} else {
		content = lipgloss.JoinVertical(lipgloss.Left, m.transcript.View(), m.composer.View())
	}
	content = lipgloss.NewStyle().
		Width(ctx.ContentWidth).
		Height(ctx.ContentHeight).
		MaxHeight(ctx.ContentHeight).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		content,
		m.statusView(ctx.TerminalWidth),
		m.footer.View(),
	)
}

func (m *Model) statusView(width int) string {
	style := ui.StatusInfoStyle
	if m.statusIsErr {
		style = ui.StatusErrorStyle
	}
	return style.Width(width).MaxHeight(1).Render(m.status)
}

// handleClick routes a click to the component under it. Presses on the
// transcript start a text selection.
func (m *Model) handleClick(msg tea.MouseClickMsg) tea.Cmd {
	if msg.Button != tea.MouseLeft {
		return nil
	}
	ctx := ui.GetViewContext()
	y := msg.Y - ui.HeaderHeight
	if y < 0 || y >= ctx.ContentHeight {
		return nil
	}

	if m.tab == ui.TabHistory {
		m.history.Click(msg.X, y)
		return nil
	}
	top := ctx.ContentHeight - m.composer.Height()
	if y >= top {
		m.composer.Click(msg.X, y-top)
		return nil
	}
	return m.transcript.MouseDown(msg.X, y)
}

func (m *Model) handleMotion(msg tea.MouseMotionMsg) {
	if m.tab == ui.TabChat {
		m.transcript.MouseDrag(msg.X, msg.Y-ui.HeaderHeight)
	}
}

func (m *Model) handleRelease(msg tea.MouseReleaseMsg) tea.Cmd {
	if m.tab != ui.TabChat {
		return nil
	}
	return m.transcript.MouseUp(msg.X, msg.Y-ui.HeaderHeight)
}

func (m *Model) handleWheel(msg tea.MouseWheelMsg) tea.Cmd {
	if m.tab == ui.TabHistory {
		_, cmd := m.history.Update(msg)
		return cmd
	}
	_, cmd := m.transcript.Update(msg)
	return cmd
}
