package chat

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gramsehat/backend/internal/i18n"
	"github.com/gramsehat/backend/pkg/model"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fastEngine() *Engine {
	return NewEngine(nil, time.Millisecond, time.Microsecond, zap.NewNop())
}

// collect drains a task and returns every update
func collect(t *testing.T, task *Task) []Update {
	t.Helper()

	var updates []Update
	timeout := time.After(10 * time.Second)
	for {
		select {
		case u, ok := <-task.Updates():
			if !ok {
				return updates
			}
			updates = append(updates, u)
		case <-timeout:
			t.Fatal("timed out waiting for task updates")
			return nil
		}
	}
}

func TestEngine_NewConversation(t *testing.T) {
	fixed := time.Date(2025, 3, 4, 14, 5, 0, 0, time.UTC)
	e := fastEngine().WithClock(func() time.Time { return fixed })

	conv := e.NewConversation("c1", i18n.English)

	msgs := conv.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, greeting, msgs[0].Text)
	assert.Equal(t, model.SenderBot, msgs[0].Sender)
	assert.Equal(t, "02:05 PM", msgs[0].Timestamp)
	assert.Regexp(t, regexp.MustCompile(`^bot-1741097100000-[0-9a-f]{9}$`), msgs[0].ID)
	assert.False(t, conv.Typing())
	assert.False(t, conv.InFlight())
}

func TestEngine_RespondRevealsFullText(t *testing.T) {
	e := fastEngine()
	conv := e.NewConversation("c1", i18n.English)

	task, err := e.Respond(context.Background(), conv, "I have a fever and need an appointment")
	require.NoError(t, err)
	assert.Equal(t, KeyFever, task.Key())
	assert.Equal(t, model.SenderUser, task.UserMessage().Sender)

	updates := collect(t, task)
	require.NoError(t, task.Wait())
	assert.NoError(t, task.Err())

	want := fallbackResponses[KeyFever]
	require.NotEmpty(t, updates)
	assert.Equal(t, UpdateTyping, updates[0].Kind)
	assert.Equal(t, "", updates[1].Message.Text)
	assert.Len(t, updates, len([]rune(want))+2)

	last := updates[len(updates)-1]
	assert.Equal(t, want, last.Message.Text)

	msgs := conv.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, model.SenderBot, msgs[0].Sender)
	assert.Equal(t, "I have a fever and need an appointment", msgs[1].Text)
	assert.Equal(t, model.SenderUser, msgs[1].Sender)
	assert.Equal(t, want, msgs[2].Text)
	assert.Equal(t, last.Message.ID, msgs[2].ID)
	assert.False(t, conv.Typing())
	assert.False(t, conv.InFlight())
}

func TestEngine_DefaultResponse(t *testing.T) {
	e := fastEngine()
	conv := e.NewConversation("c1", i18n.English)

	task, err := e.Respond(context.Background(), conv, "xyz123")
	require.NoError(t, err)
	require.NoError(t, task.Wait())

	msgs := conv.Messages()
	assert.Equal(t, fallbackResponses[KeyDefault], msgs[len(msgs)-1].Text)
}

func TestEngine_LocalizedResponse(t *testing.T) {
	localizer, err := i18n.New()
	require.NoError(t, err)

	e := NewEngine(localizer, time.Millisecond, time.Microsecond, zap.NewNop())
	conv := e.NewConversation("c1", i18n.Hindi)

	assert.Equal(t, localizer.T(i18n.Hindi, "sahayak.greeting", ""), conv.Messages()[0].Text)

	task, err := e.Respond(context.Background(), conv, "बुखार")
	require.NoError(t, err)
	require.NoError(t, task.Wait())

	msgs := conv.Messages()
	assert.Equal(t, localizer.T(i18n.Hindi, "sahayak.responses.fever", ""), msgs[len(msgs)-1].Text)
}

func TestEngine_EmptyInput(t *testing.T) {
	e := fastEngine()
	conv := e.NewConversation("c1", i18n.English)

	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := e.Respond(context.Background(), conv, input)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}
	assert.Len(t, conv.Messages(), 1)
}

func TestEngine_OneResponseInFlight(t *testing.T) {
	e := NewEngine(nil, time.Hour, time.Millisecond, zap.NewNop())
	conv := e.NewConversation("c1", i18n.English)

	task, err := e.Respond(context.Background(), conv, "fever")
	require.NoError(t, err)

	_, err = e.Respond(context.Background(), conv, "cough")
	assert.ErrorIs(t, err, ErrResponseInFlight)
	assert.Len(t, conv.Messages(), 2, "rejected message is not appended")

	assert.Eventually(t, conv.Typing, time.Second, time.Millisecond)
	assert.NoError(t, task.Err(), "still running")

	task.Cancel()
	assert.ErrorIs(t, task.Wait(), context.Canceled)
	assert.False(t, conv.InFlight())
	assert.False(t, conv.Typing())

	next, err := e.Respond(context.Background(), conv, "cough")
	require.NoError(t, err)
	next.Cancel()
	_ = next.Wait()
}

func TestEngine_CancelKeepsPartialText(t *testing.T) {
	e := NewEngine(nil, time.Millisecond, 5*time.Millisecond, zap.NewNop())
	conv := e.NewConversation("c1", i18n.English)

	task, err := e.Respond(context.Background(), conv, "headache")
	require.NoError(t, err)

	var seen int
	for u := range task.Updates() {
		if u.Kind == UpdateMessage && u.Message.Text != "" {
			seen++
		}
		if seen == 3 {
			task.Cancel()
			break
		}
	}

	assert.ErrorIs(t, task.Wait(), context.Canceled)

	full := fallbackResponses[KeyHeadache]
	msgs := conv.Messages()
	require.Len(t, msgs, 3)
	partial := msgs[2].Text
	assert.NotEmpty(t, partial)
	assert.True(t, strings.HasPrefix(full, partial))
	assert.Less(t, len(partial), len(full))
}

func TestEngine_ParentContextCancels(t *testing.T) {
	e := NewEngine(nil, time.Hour, time.Millisecond, zap.NewNop())
	conv := e.NewConversation("c1", i18n.English)

	ctx, cancel := context.WithCancel(context.Background())
	task, err := e.Respond(ctx, conv, "fever")
	require.NoError(t, err)

	cancel()

	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("task did not stop")
	}
	assert.ErrorIs(t, task.Err(), context.Canceled)
	assert.Len(t, conv.Messages(), 2, "no bot message before latency elapsed")
}

// Every snapshot of the revealed message is a prefix of the next and the last equals the response
func TestProperty_RevealIsPrefixMonotonic(t *testing.T) {
	inputs := []string{"fever", "headache", "cough", "book", "दवा", "help", "hurt", "hello there"}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("snapshots grow by prefix to the full response", prop.ForAll(
		func(i int) bool {
			input := inputs[i]
			e := NewEngine(nil, time.Nanosecond, time.Nanosecond, zap.NewNop())
			conv := e.NewConversation("prop", i18n.English)

			task, err := e.Respond(context.Background(), conv, input)
			if err != nil {
				return false
			}

			prev := ""
			for u := range task.Updates() {
				if u.Kind != UpdateMessage {
					continue
				}
				if !strings.HasPrefix(u.Message.Text, prev) {
					return false
				}
				if len([]rune(u.Message.Text)) > len([]rune(prev))+1 {
					return false
				}
				prev = u.Message.Text
			}

			return task.Wait() == nil && prev == fallbackResponses[Classify(input)]
		},
		gen.IntRange(0, len(inputs)-1),
	))

	properties.TestingRun(t)
}
