package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Chrome colors. regenerateStyles reassigns these whenever the theme changes.
var (
	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorBorder      color.Color
	ColorBorderFocus color.Color
	ColorBg          color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorWarning     color.Color
	ColorError       color.Color
)

// Chrome styles
var (
	HeaderStyle lipgloss.Style

	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style

	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style

	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style

	StatusInfoStyle  lipgloss.Style
	StatusErrorStyle lipgloss.Style
)

func init() {
	SetTheme(DefaultTheme)
}

// transcriptStyles are derived per render from the dark flag, never from the
// process-wide theme, so a transcript render depends only on its inputs.
type transcriptStyles struct {
	boundary lipgloss.Style
	label    lipgloss.Style
	content  lipgloss.Style
	time     lipgloss.Style
	track    lipgloss.Style
	bar      lipgloss.Style

	selection lipgloss.Style
	copied    lipgloss.Style
}

func newTranscriptStyles(dark bool) transcriptStyles {
	t := Palette(dark)
	return transcriptStyles{
		boundary: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Boundary)),
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Label)).Bold(true),
		content:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Content)),
		time:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.Time)).Align(lipgloss.Right),
		track:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.ProgressTrack)),
		bar:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.ProgressBar)),

		selection: lipgloss.NewStyle().Foreground(lipgloss.Color(t.TextInverse)).Background(lipgloss.Color(t.Primary)),
		copied:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.TextInverse)).Background(lipgloss.Color(t.Secondary)),
	}
}

type historyStyles struct {
	heading     lipgloss.Style
	placeholder lipgloss.Style
	rowBar      lipgloss.Style
	rowBarFocus lipgloss.Style
	title       lipgloss.Style
	date        lipgloss.Style
	deleteBtn   lipgloss.Style
}

func newHistoryStyles(dark bool) historyStyles {
	t := Palette(dark)
	return historyStyles{
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Heading)).Bold(true),
		placeholder: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.PlaceholderText)).
			Background(lipgloss.Color(t.PlaceholderBg)).
			Padding(0, 1),
		rowBar:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.RowBorder)),
		rowBarFocus: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)),
		title:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.RowTitle)).Bold(true),
		date:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.RowDate)),
		deleteBtn: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.DeleteText)).
			Background(lipgloss.Color(t.DeleteBg)),
	}
}

type composerStyles struct {
	input         lipgloss.Style
	inputFocused  lipgloss.Style
	inputDisabled lipgloss.Style
	text          lipgloss.Style
	placeholder   lipgloss.Style
	muted         lipgloss.Style
	send          lipgloss.Style
	sendDisabled  lipgloss.Style
	stop          lipgloss.Style
}

func newComposerStyles(dark bool) composerStyles {
	t := Palette(dark)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	button := lipgloss.NewStyle().
		Width(ComposerButtonWidth).
		Align(lipgloss.Center).
		Bold(true)
	return composerStyles{
		input:         box.BorderForeground(lipgloss.Color(t.Border)),
		inputFocused:  box.BorderForeground(lipgloss.Color(t.GetBorderFocus())),
		inputDisabled: box.BorderForeground(lipgloss.Color(t.Border)).Faint(true),
		text:          lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		placeholder:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.TextMuted)),
		muted:         lipgloss.NewStyle().Foreground(lipgloss.Color(t.TextMuted)).Faint(true),
		send: button.
			Foreground(lipgloss.Color(t.TextInverse)).
			Background(lipgloss.Color(t.Primary)),
		sendDisabled: button.
			Foreground(lipgloss.Color(t.TextMuted)).
			Background(lipgloss.Color(t.Border)),
		stop: button.
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(t.Stop)),
	}
}
