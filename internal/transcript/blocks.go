package transcript

import (
	"time"

	"github.com/zhubert/sidepanel/internal/logger"
)

// ProgressSentinel is the content value rendered as a progress indicator.
const ProgressSentinel = "Showing progress..."

// Message is one entry of a conversation. Slice order is display order.
type Message struct {
	Actor     Actor  `json:"actor"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
}

// IsProgress reports whether the message is the progress placeholder.
func (m Message) IsProgress() bool {
	return m.Content == ProgressSentinel
}

// Block is the render plan for a single message.
type Block struct {
	Message Message

	// Boundary is set when the actor differs from the previous message, and
	// always for the first message. ShowBoundary omits the first one.
	Boundary     bool
	ShowBoundary bool

	Label     string
	ShowLabel bool

	Progress bool
	Time     string

	// Empty blocks render nothing; the actor had no profile.
	Empty bool
}

// BuildBlocks groups msgs by adjacent actor and resolves labels and times.
// It never reorders or mutates msgs.
func BuildBlocks(msgs []Message, now time.Time) []Block {
	blocks := make([]Block, 0, len(msgs))
	for i, m := range msgs {
		b := Block{
			Message:  m,
			Boundary: i == 0 || msgs[i-1].Actor != m.Actor,
		}
		b.ShowBoundary = b.Boundary && i > 0

		profile, ok := LookupProfile(m.Actor)
		if !ok {
			logger.WithComponent("transcript").Warn("no profile for actor, rendering empty block",
				"actor", string(m.Actor), "index", i)
			b.Empty = true
			blocks = append(blocks, b)
			continue
		}

		if b.Boundary && m.Actor != ActorUser {
			b.Label = DisplayName(profile.Name)
			b.ShowLabel = true
		}

		if m.IsProgress() {
			b.Progress = true
		} else {
			b.Time = FormatTimestamp(m.Timestamp, now)
		}

		blocks = append(blocks, b)
	}
	return blocks
}

// CountBoundaryMarkers returns how many separators a render of blocks draws.
func CountBoundaryMarkers(blocks []Block) int {
	n := 0
	for _, b := range blocks {
		if b.ShowBoundary && !b.Empty {
			n++
		}
	}
	return n
}

// HasProgress reports whether any block is a progress placeholder.
func HasProgress(blocks []Block) bool {
	for _, b := range blocks {
		if b.Progress && !b.Empty {
			return true
		}
	}
	return false
}
