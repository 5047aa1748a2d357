// Package ui provides the user interface components for the side panel.
//
// # Layout
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header: title, tabs, session title (1 line)         │
//	├─────────────────────────────────────────────────────┤
//	│                                                     │
//	│   Chat tab: Transcript above Composer               │
//	│   History tab: HistoryList                          │
//	│                                                     │
//	├─────────────────────────────────────────────────────┤
//	│ Status (1 line)                                     │
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// Transcript renders an ordered message sequence grouped by actor. A rule is
// drawn between groups, non-user groups get a bold label, and each message
// carries a right-aligned relative time. The "Showing progress..." message is
// drawn as an indeterminate progress bar driven by ProgressTick.
//
// HistoryList shows saved sessions with a delete affordance on every row.
// Clicking the affordance deletes; clicking anywhere else on the row selects.
//
// Composer owns the draft text. It grows between MinInputHeight and
// MaxInputHeight rows and swaps its send affordance for a stop affordance
// while a task runs. A parent may overwrite the draft through the setter
// handed to RegisterDraftSetter; only the latest registration is live.
//
// # Themes
//
// Two palettes exist, dark and light. Components take the dark flag
// explicitly so their output is a pure function of their inputs. The header,
// footer and modals follow the process-wide theme set with SetDarkMode.
package ui
