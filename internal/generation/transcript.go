package generation

import (
	"strings"

	"github.com/Srujan0798/CareerMirror/internal/types"
)

// DefaultMinUserTurns is the minimum number of user messages a
// transcript needs before generation is attempted.
const DefaultMinUserTurns = 2

// RenderTranscript flattens a conversation into the prompt form both
// document calls consume. Both calls must see the identical rendering.
func RenderTranscript(transcript []types.Message) string {
	lines := make([]string, 0, len(transcript))
	for _, msg := range transcript {
		speaker := "Assistant"
		if msg.Role == types.RoleUser {
			speaker = "User"
		}
		lines = append(lines, speaker+": "+msg.Text)
	}
	return strings.Join(lines, "\n\n")
}

// CountUserTurns returns the number of non-empty user messages.
func CountUserTurns(transcript []types.Message) int {
	n := 0
	for _, msg := range transcript {
		if msg.Role == types.RoleUser && strings.TrimSpace(msg.Text) != "" {
			n++
		}
	}
	return n
}
