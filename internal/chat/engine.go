package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gramsehat/backend/pkg/model"
	"go.uber.org/zap"
)

const (
	DefaultLatency        = 1500 * time.Millisecond
	DefaultRevealInterval = 20 * time.Millisecond

	timestampLayout = "03:04 PM"
)

var (
	ErrEmptyMessage     = errors.New("message is empty")
	ErrResponseInFlight = errors.New("a response is already being generated")
)

// Engine produces simulated assistant responses. After a fixed latency the
// canned response is revealed one character at a time.
type Engine struct {
	translator Translator
	latency    time.Duration
	interval   time.Duration
	now        func() time.Time
	logger     *zap.Logger
}

// NewEngine creates an Engine. Non-positive durations fall back to the defaults.
func NewEngine(translator Translator, latency, interval time.Duration, logger *zap.Logger) *Engine {
	if latency <= 0 {
		latency = DefaultLatency
	}
	if interval <= 0 {
		interval = DefaultRevealInterval
	}
	return &Engine{
		translator: translator,
		latency:    latency,
		interval:   interval,
		now:        time.Now,
		logger:     logger,
	}
}

// WithClock replaces the clock used for message ids and timestamps
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// NewConversation creates a conversation seeded with the greeting
func (e *Engine) NewConversation(id, lang string) *Conversation {
	return &Conversation{
		id:       id,
		lang:     lang,
		messages: []model.ChatMessage{e.newMessage(model.SenderBot, greetingText(e.translator, lang))},
	}
}

// Respond appends the user message to conv and starts revealing the answer.
// Only one response per conversation may run at a time.
func (e *Engine) Respond(ctx context.Context, conv *Conversation, input string) (*Task, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyMessage
	}

	key := Classify(input)
	runes := []rune(responseText(e.translator, conv.Language(), key))

	ctx, cancel := context.WithCancel(ctx)
	userMsg := e.newMessage(model.SenderUser, input)

	// typing + empty message + one snapshot per rune
	task := newTask(userMsg, key, len(runes)+2, cancel)

	if !conv.begin(task, userMsg) {
		cancel()
		return nil, ErrResponseInFlight
	}

	e.logger.Debug("chat response started",
		zap.String("conversation_id", conv.ID()),
		zap.String("response_key", string(key)),
		zap.Int("length", len(runes)),
	)

	go e.run(ctx, conv, task, runes)

	return task, nil
}

func (e *Engine) run(ctx context.Context, conv *Conversation, task *Task, runes []rune) {
	finish := func(err error) {
		conv.end()
		task.err = err
		close(task.updates)
		close(task.done)
		task.cancel()

		if err != nil {
			e.logger.Info("chat response stopped",
				zap.String("conversation_id", conv.ID()),
				zap.Error(err),
			)
		}
	}

	conv.setTyping(true)
	task.send(Update{Kind: UpdateTyping})

	if err := sleep(ctx, e.latency); err != nil {
		finish(err)
		return
	}

	conv.setTyping(false)
	msg := e.newMessage(model.SenderBot, "")
	conv.append(msg)
	task.send(Update{Kind: UpdateMessage, Message: msg})

	for i := 1; i <= len(runes); i++ {
		if err := sleep(ctx, e.interval); err != nil {
			finish(err)
			return
		}
		msg.Text = string(runes[:i])
		conv.updateText(msg.ID, msg.Text)
		task.send(Update{Kind: UpdateMessage, Message: msg})
	}

	finish(nil)
}

func (e *Engine) newMessage(sender model.Sender, text string) model.ChatMessage {
	now := e.now()
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return model.ChatMessage{
		ID:        fmt.Sprintf("%s-%d-%s", sender, now.UnixMilli(), suffix),
		Text:      text,
		Sender:    sender,
		Timestamp: now.Format(timestampLayout),
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
