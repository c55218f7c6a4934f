package chat

import (
	"sync"

	"github.com/gramsehat/backend/pkg/model"
)

// Conversation is an append-only message log. Messages are only ever added at the
// end, and the bot message being revealed is updated in place by id.
type Conversation struct {
	id   string
	lang string

	mu       sync.RWMutex
	messages []model.ChatMessage
	typing   bool
	current  *Task
}

// ID returns the conversation id
func (c *Conversation) ID() string {
	return c.id
}

// Language returns the language responses are resolved in
func (c *Conversation) Language() string {
	return c.lang
}

// Messages returns a snapshot of the log in creation order
func (c *Conversation) Messages() []model.ChatMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Typing reports whether the typing indicator is shown
func (c *Conversation) Typing() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.typing
}

// InFlight reports whether a response is currently being produced
func (c *Conversation) InFlight() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current != nil
}

// cancel stops the response in flight, if any
func (c *Conversation) cancel() {
	c.mu.RLock()
	task := c.current
	c.mu.RUnlock()

	if task != nil {
		task.Cancel()
	}
}

// begin claims the conversation for a new response
func (c *Conversation) begin(task *Task, userMsg model.ChatMessage) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		return false
	}
	c.current = task
	c.messages = append(c.messages, userMsg)
	return true
}

func (c *Conversation) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
	c.typing = false
}

func (c *Conversation) setTyping(typing bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.typing = typing
}

func (c *Conversation) append(msg model.ChatMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

func (c *Conversation) updateText(id, text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].ID == id {
			c.messages[i].Text = text
			return true
		}
	}
	return false
}
