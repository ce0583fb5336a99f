package game

import (
	"time"

	"github.com/sc2ctl/jeopardy/internal/protocol"
)

const chatHistoryCap = 100

// chatLog is the append-only chat history. Messages are never mutated; the
// log keeps the most recent chatHistoryCap entries for replay to new
// connections.
type chatLog struct {
	messages []protocol.ChatMessage
}

func newChatLog() *chatLog {
	return &chatLog{}
}

func (c *chatLog) append(username, message string, isAdmin bool, at time.Time) protocol.ChatMessage {
	msg := protocol.ChatMessage{
		Username:  username,
		Message:   message,
		Timestamp: at.UTC().Format(time.RFC3339),
		IsAdmin:   isAdmin,
	}
	c.messages = append(c.messages, msg)
	if len(c.messages) > chatHistoryCap {
		c.messages = c.messages[len(c.messages)-chatHistoryCap:]
	}
	return msg
}

func (c *chatLog) history() []protocol.ChatMessage {
	out := make([]protocol.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}
