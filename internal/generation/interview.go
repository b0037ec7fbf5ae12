package generation

import (
	"context"
	"log"
	"strings"

	"github.com/Srujan0798/CareerMirror/internal/llm"
	"github.com/Srujan0798/CareerMirror/internal/types"
)

// Fallback replies keep the interview flowing when the provider
// hiccups; a chat turn never hard-fails the conversation.
const (
	emptyReplyFallback = "I'm listening. Could you tell me more?"
	errorReplyFallback = "I seem to be having a momentary connection issue. Could you please repeat that?"
)

// Interviewer relays one conversational turn of the career interview.
type Interviewer struct {
	client llm.Client
}

// NewInterviewer returns an Interviewer using the given client.
func NewInterviewer(client llm.Client) *Interviewer {
	return &Interviewer{client: client}
}

// Reply sends the user's message with the prior transcript and returns
// the counselor's next question. Provider failures degrade to a
// fallback reply rather than an error.
func (iv *Interviewer) Reply(ctx context.Context, history []types.Message, message string) string {
	turns := make([]llm.Turn, 0, len(history))
	for _, msg := range history {
		turns = append(turns, llm.Turn{Role: msg.Role, Text: msg.Text})
	}

	reply, err := iv.client.Chat(ctx, interviewSystemPrompt, turns, message)
	if err != nil {
		log.Printf("Interview chat turn failed: %v", err)
		return errorReplyFallback
	}
	if strings.TrimSpace(reply) == "" {
		return emptyReplyFallback
	}
	return reply
}
