package modals

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// ConfirmDeleteState asks before a chat is removed from history.
type ConfirmDeleteState struct {
	SessionID    string
	SessionTitle string

	confirmed bool
	form      *huh.Form
}

func (*ConfirmDeleteState) modalState() {}

func (s *ConfirmDeleteState) Title() string { return "Delete Chat?" }

func (s *ConfirmDeleteState) Help() string {
	return "←/→ to choose, Enter to confirm, Esc to cancel"
}

func (s *ConfirmDeleteState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	sessionLabel := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render(s.SessionTitle)

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, sessionLabel, s.form.View(), help)
}

func (s *ConfirmDeleteState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Confirmed reports whether "Delete" is the current choice.
func (s *ConfirmDeleteState) Confirmed() bool {
	return s.confirmed
}

// Done reports whether the form finished by itself (y/n pressed).
func (s *ConfirmDeleteState) Done() bool {
	return s.form.State == huh.StateCompleted
}

// NewConfirmDeleteState creates a confirmation for the given session.
// "Keep" is preselected.
func NewConfirmDeleteState(sessionID, sessionTitle string) *ConfirmDeleteState {
	s := &ConfirmDeleteState{
		SessionID:    sessionID,
		SessionTitle: sessionTitle,
	}

	s.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Remove this chat and its messages?").
			Affirmative("Delete").
			Negative("Keep").
			Value(&s.confirmed),
	)).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalWidth - 6)

	initHuhForm(s.form)
	return s
}
