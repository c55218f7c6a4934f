package chat

import (
	"context"

	"github.com/gramsehat/backend/pkg/model"
)

// UpdateKind tells a stream consumer what changed
type UpdateKind string

const (
	// UpdateTyping is sent once when the typing indicator turns on
	UpdateTyping UpdateKind = "typing"
	// UpdateMessage carries a snapshot of the bot message being revealed
	UpdateMessage UpdateKind = "message"
)

// Update is one step of a response stream
type Update struct {
	Kind    UpdateKind        `json:"kind"`
	Message model.ChatMessage `json:"message"`
}

// Task is a running response. Updates are delivered in order, each message
// snapshot holding a prefix of the next one, and the channel is closed when
// the task finishes.
type Task struct {
	userMsg model.ChatMessage
	key     ResponseKey

	updates chan Update
	done    chan struct{}
	cancel  context.CancelFunc
	err     error
}

func newTask(userMsg model.ChatMessage, key ResponseKey, capacity int, cancel context.CancelFunc) *Task {
	return &Task{
		userMsg: userMsg,
		key:     key,
		updates: make(chan Update, capacity),
		done:    make(chan struct{}),
		cancel:  cancel,
	}
}

// UserMessage returns the message that started the task
func (t *Task) UserMessage() model.ChatMessage {
	return t.userMsg
}

// Key returns the classified response key
func (t *Task) Key() ResponseKey {
	return t.key
}

// Updates returns the update stream
func (t *Task) Updates() <-chan Update {
	return t.updates
}

// Done is closed once the task has finished
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes and returns its error
func (t *Task) Wait() error {
	<-t.done
	return t.err
}

// Err returns the task error, or nil while it is still running
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Cancel stops the task. Text revealed so far stays in the conversation.
func (t *Task) Cancel() {
	t.cancel()
}

// send never blocks, the channel is sized for every update of the task
func (t *Task) send(u Update) {
	select {
	case t.updates <- u:
	default:
	}
}
