package ui

import (
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width       int
	tab         Tab
	busy        bool // Whether the selected session is running a task
	modal       bool // Whether a modal is open
	hasSessions bool // Whether the history list has rows
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(tab Tab, busy, modal, hasSessions bool) {
	f.tab = tab
	f.busy = busy
	f.modal = modal
	f.hasSessions = hasSessions
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// Bindings returns the shortcuts shown for the current context.
func (f *Footer) Bindings() []KeyBinding {
	switch {
	case f.modal:
		return []KeyBinding{
			{Key: "←/→", Desc: "choose"},
			{Key: "enter", Desc: "confirm"},
			{Key: "esc", Desc: "cancel"},
		}
	case f.tab == TabHistory:
		bindings := []KeyBinding{}
		if f.hasSessions {
			bindings = append(bindings,
				KeyBinding{Key: "↑/↓", Desc: "move"},
				KeyBinding{Key: "enter", Desc: "open"},
				KeyBinding{Key: "d", Desc: "delete"},
			)
		}
		return append(bindings,
			KeyBinding{Key: "tab", Desc: "chat"},
			KeyBinding{Key: "ctrl+c", Desc: "quit"},
		)
	case f.busy:
		return []KeyBinding{
			{Key: "esc", Desc: "stop"},
			{Key: "tab", Desc: "history"},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	default:
		return []KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: "shift+enter", Desc: "newline"},
			{Key: "ctrl+v", Desc: "paste"},
			{Key: "ctrl+n", Desc: "new chat"},
			{Key: "tab", Desc: "history"},
			{Key: "ctrl+t", Desc: "theme"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	}
}

// View renders the footer. Bindings that do not fit on one line are dropped
// from the end.
func (f *Footer) View() string {
	sep := "  " + lipgloss.NewStyle().Foreground(ColorBorder).Render("|") + "  "
	avail := f.width - FooterStyle.GetHorizontalFrameSize()

	var content string
	for i, b := range f.Bindings() {
		part := FooterKeyStyle.Render(b.Key) + FooterDescStyle.Render(": "+b.Desc)
		if i > 0 {
			part = sep + part
		}
		if f.width > 0 && ansi.StringWidth(content+part) > avail {
			break
		}
		content += part
	}

	return FooterStyle.Width(f.width).Render(content)
}
