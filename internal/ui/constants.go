// Package ui provides constants for layout calculations and configuration.
package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// StatusHeight is the line reserved for status and error messages
	StatusHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// MinTerminalWidth and MinTerminalHeight bound the layout from below
	MinTerminalWidth  = 40
	MinTerminalHeight = 12

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80
)

// Composer sizing. Heights are textarea rows, not including the border.
const (
	MinInputHeight = 1
	MaxInputHeight = 5

	// InputBorderHeight is the border size around the textarea
	InputBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area
	InputPaddingWidth = 2

	// ComposerButtonWidth is the width of the send/stop affordance
	ComposerButtonWidth = 8
)

// History list layout. Rows are measured from the top of the list component.
const (
	// HistoryHeadingHeight covers the "Chat History" heading and the blank line under it
	HistoryHeadingHeight = 2

	// HistoryRowHeight is title line + date line
	HistoryRowHeight = 2

	// HistoryRowGap is the blank line between rows
	HistoryRowGap = 1

	// HistoryDeleteZoneWidth is the clickable width of the delete affordance
	HistoryDeleteZoneWidth = 3
)

// Progress indicator
const (
	ProgressBarWidth = 24
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 56
)
