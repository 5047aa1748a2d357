package modals

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

func TestConfirmDelete_DefaultsToKeep(t *testing.T) {
	s := NewConfirmDeleteState("s1", "Book a flight")
	if s.Confirmed() {
		t.Error("a fresh confirmation must not be confirmed")
	}
	if s.Done() {
		t.Error("a fresh confirmation is not done")
	}
	view := ansi.Strip(s.Render())
	for _, want := range []string{"Delete Chat?", "Book a flight", "Delete", "Keep"} {
		if !strings.Contains(view, want) {
			t.Errorf("render missing %q:\n%s", want, view)
		}
	}
}

func TestConfirmDelete_EnterAndEscAreLeftToTheApp(t *testing.T) {
	s := NewConfirmDeleteState("s1", "t")
	for _, msg := range []tea.KeyPressMsg{
		{Code: tea.KeyEnter},
		{Code: tea.KeyEscape},
	} {
		state, cmd := s.Update(msg)
		if state != s || cmd != nil {
			t.Errorf("%s should be a no-op", msg.String())
		}
	}
	if s.Done() {
		t.Error("enter must not complete the form on its own")
	}
}

func TestConfirmDelete_Toggle(t *testing.T) {
	s := NewConfirmDeleteState("s1", "t")
	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if !s.Confirmed() {
		t.Error("left should move the choice to Delete")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if s.Confirmed() {
		t.Error("right should move the choice back to Keep")
	}
}

func TestConfirmDelete_Title(t *testing.T) {
	s := NewConfirmDeleteState("s1", "t")
	if s.Title() != "Delete Chat?" || s.Help() == "" {
		t.Errorf("Title() = %q, Help() = %q", s.Title(), s.Help())
	}
}
