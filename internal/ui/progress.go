package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
)

// ProgressTickMsg advances the indeterminate progress animation
type ProgressTickMsg time.Time

const progressInterval = 120 * time.Millisecond

// progressSegmentRatio is the share of the track covered by the moving segment
const progressSegmentRatio = 4

// ProgressTick returns a command that sends a tick message after a delay
func ProgressTick() tea.Cmd {
	return tea.Tick(progressInterval, func(t time.Time) tea.Msg {
		return ProgressTickMsg(t)
	})
}

// renderProgressBar draws a track with a segment that slides across it and
// wraps around. frame selects the segment position.
func renderProgressBar(width, frame int, s transcriptStyles) string {
	if width <= 0 {
		return ""
	}
	seg := max(1, width/progressSegmentRatio)
	cycle := width + seg
	start := frame%cycle - seg

	var track, bar strings.Builder
	var result strings.Builder
	flush := func() {
		if track.Len() > 0 {
			result.WriteString(s.track.Render(track.String()))
			track.Reset()
		}
		if bar.Len() > 0 {
			result.WriteString(s.bar.Render(bar.String()))
			bar.Reset()
		}
	}

	inBar := false
	for i := 0; i < width; i++ {
		on := i >= start && i < start+seg
		if on != inBar {
			flush()
			inBar = on
		}
		if on {
			bar.WriteString("━")
		} else {
			track.WriteString("━")
		}
	}
	flush()
	return result.String()
}
