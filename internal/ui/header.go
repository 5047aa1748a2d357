package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// Tab identifies the active content pane.
type Tab int

const (
	TabChat Tab = iota
	TabHistory
)

func (t Tab) String() string {
	if t == TabHistory {
		return "History"
	}
	return "Chat"
}

const headerTitle = " sidepanel"

// Header represents the top header bar
type Header struct {
	width        int
	tab          Tab
	sessionTitle string
	busy         bool
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetTab sets the highlighted tab
func (h *Header) SetTab(tab Tab) {
	h.tab = tab
}

// SetSessionTitle sets the current session title to display
func (h *Header) SetSessionTitle(title string) {
	h.sessionTitle = title
}

// SetBusy marks the session as running a task
func (h *Header) SetBusy(busy bool) {
	h.busy = busy
}

// View renders the header
func (h *Header) View() string {
	var left strings.Builder
	left.WriteString(headerTitle)
	left.WriteString("  ")

	// Track the active tab's rune range so it can be underlined.
	activeStart, activeEnd := -1, -1
	for i, tab := range []Tab{TabChat, TabHistory} {
		if i > 0 {
			left.WriteString("  ")
		}
		label := tab.String()
		if tab == h.tab {
			activeStart = runeLen(left.String())
			activeEnd = activeStart + runeLen(label)
		}
		left.WriteString(label)
	}

	var right string
	if h.sessionTitle != "" {
		right = h.sessionTitle
		if h.busy {
			right = "● " + right
		}
		right += " "
	}

	leftText := left.String()
	avail := h.width - runewidth.StringWidth(leftText) - 1
	if avail < 0 {
		avail = 0
	}
	if runewidth.StringWidth(right) > avail {
		right = runewidth.Truncate(right, avail, "… ")
	}

	paddingLen := h.width - runewidth.StringWidth(leftText) - runewidth.StringWidth(right)
	if paddingLen < 0 {
		paddingLen = 0
	}

	fullContent := leftText + strings.Repeat(" ", paddingLen) + right
	return h.renderGradient(fullContent, activeStart, activeEnd)
}

func runeLen(s string) int {
	return len([]rune(s))
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders content over a background fading from the theme's
// primary color into its background. Runes in [activeStart, activeEnd) are
// underlined.
func (h *Header) renderGradient(content string, activeStart, activeEnd int) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)
	if !IsDark() {
		// The left end of the gradient is dark even in the light theme.
		textColor = lipgloss.Color(theme.TextInverse)
	}

	titleEnd := runeLen(headerTitle)
	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		bgColor := lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))

		style := lipgloss.NewStyle().
			Background(bgColor).
			Bold(i < titleEnd)

		switch {
		case i >= activeStart && i < activeEnd:
			style = style.Foreground(textColor).Bold(true).Underline(true)
		case i > titleEnd && t > 0.5:
			style = style.Foreground(mutedColor)
		default:
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
