// Package ui provides theme management for the application.
// The side panel has a dark and a light palette; the grays follow the
// Tailwind scale so the panel sits naturally next to a browser UI.
package ui

import "charm.land/lipgloss/v2"

// Theme defines a complete color palette for the application.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (used for focus, highlights, headers)
	Primary string
	// Secondary is the secondary accent color (used for key hints, info)
	Secondary string

	// Bg is the main background; the header gradient fades into it
	Bg string

	// Text colors
	Text        string
	TextMuted   string
	TextInverse string

	// Semantic colors
	Warning string
	Error   string
	Stop    string // Stop affordance while a task runs

	// Border colors
	Border      string
	BorderFocus string // Defaults to Primary if empty

	// Transcript colors
	Boundary      string // Rule between actor groups
	Label         string // Actor label
	Content       string // Message text
	Time          string // Relative time label
	ProgressTrack string
	ProgressBar   string

	// History list colors
	Heading         string
	PlaceholderBg   string
	PlaceholderText string
	RowBorder       string
	RowBg           string
	RowTitle        string
	RowDate         string
	DeleteBg        string
	DeleteText      string
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeDark  ThemeName = "dark"
	ThemeLight ThemeName = "light"
)

// DefaultTheme is used until the terminal reports its background
const DefaultTheme = ThemeDark

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeDark: {
		Name:        "Dark",
		Primary:     "#7C3AED",
		Secondary:   "#06B6D4",
		Bg:          "#1F2937",
		Text:        "#F9FAFB",
		TextMuted:   "#9CA3AF",
		TextInverse: "#1F2937",
		Warning:     "#F59E0B",
		Error:       "#EF4444",
		Stop:        "#EF4444",
		Border:      "#374151",

		Boundary:      "#374151",
		Label:         "#E5E7EB",
		Content:       "#E5E7EB",
		Time:          "#6B7280",
		ProgressTrack: "#4B5563",
		ProgressBar:   "#9CA3AF",

		Heading:         "#E5E7EB",
		PlaceholderBg:   "#1F2937",
		PlaceholderText: "#9CA3AF",
		RowBorder:       "#4B5563",
		RowBg:           "#1F2937",
		RowTitle:        "#E5E7EB",
		RowDate:         "#9CA3AF",
		DeleteBg:        "#374151",
		DeleteText:      "#D1D5DB",
	},
	ThemeLight: {
		Name:        "Light",
		Primary:     "#6D28D9",
		Secondary:   "#0891B2",
		Bg:          "#FFFFFF",
		Text:        "#111827",
		TextMuted:   "#6B7280",
		TextInverse: "#FFFFFF",
		Warning:     "#D97706",
		Error:       "#DC2626",
		Stop:        "#EF4444",
		Border:      "#E5E7EB",

		Boundary:      "#E5E7EB",
		Label:         "#111827",
		Content:       "#1F2937",
		Time:          "#9CA3AF",
		ProgressTrack: "#D1D5DB",
		ProgressBar:   "#6B7280",

		Heading:         "#1F2937",
		PlaceholderBg:   "#F3F4F6",
		PlaceholderText: "#6B7280",
		RowBorder:       "#D1D5DB",
		RowBg:           "#FFFFFF",
		RowTitle:        "#111827",
		RowDate:         "#6B7280",
		DeleteBg:        "#E5E7EB",
		DeleteText:      "#6B7280",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{ThemeDark, ThemeLight}
}

// GetTheme returns a theme by name, defaulting to dark if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

// Palette returns the palette for the given mode.
func Palette(dark bool) Theme {
	if dark {
		return BuiltinThemes[ThemeDark]
	}
	return BuiltinThemes[ThemeLight]
}

// currentTheme holds the active theme
var currentTheme = BuiltinThemes[DefaultTheme]

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme and regenerates all styles
func SetTheme(name ThemeName) {
	currentTheme = GetTheme(name)
	regenerateStyles()
	RefreshModalStyles()
}

// SetDarkMode switches between the dark and light palettes.
func SetDarkMode(dark bool) {
	if dark {
		SetTheme(ThemeDark)
	} else {
		SetTheme(ThemeLight)
	}
}

// IsDark reports whether the dark palette is active.
func IsDark() bool {
	return CurrentThemeName() == ThemeDark
}

// CurrentThemeName returns the name of the current theme
func CurrentThemeName() ThemeName {
	for name, theme := range BuiltinThemes {
		if theme.Name == currentTheme.Name {
			return name
		}
	}
	return DefaultTheme
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorError = lipgloss.Color(t.Error)

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginTop(1)

	StatusInfoStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Padding(0, 1)
}
