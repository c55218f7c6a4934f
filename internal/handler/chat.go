package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gramsehat/backend/internal/chat"
	"go.uber.org/zap"
)

// ChatHandler exposes the Sahayak assistant
type ChatHandler struct {
	service *chat.Service
	// baseCtx outlives requests; responses keep running after a client disconnects
	baseCtx  context.Context
	language func() string
	logger   *zap.Logger
}

// NewChatHandler creates a new ChatHandler. language supplies the app
// language for conversations started without one.
func NewChatHandler(baseCtx context.Context, service *chat.Service, language func() string, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		service:  service,
		baseCtx:  baseCtx,
		language: language,
		logger:   logger,
	}
}

type startConversationRequest struct {
	Language string `json:"language"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

// StartConversation opens a conversation seeded with the greeting
func (h *ChatHandler) StartConversation(c *gin.Context) {
	var req startConversationRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, "Invalid request body", err)
			return
		}
	}

	lang := req.Language
	if lang == "" && h.language != nil {
		lang = h.language()
	}

	conv := h.service.Start(lang)

	c.JSON(http.StatusCreated, gin.H{
		"id":       conv.ID(),
		"language": conv.Language(),
		"messages": conv.Messages(),
	})
}

// GetMessages returns the message log and whether the assistant is typing
func (h *ChatHandler) GetMessages(c *gin.Context) {
	conv, err := h.service.Conversation(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load conversation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": conv.Messages(),
		"typing":   conv.Typing(),
	})
}

// SendMessage appends the user message and streams the reply as server-sent
// events: user, typing, a message snapshot per revealed character, then done.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request body", err)
		return
	}

	task, err := h.service.Send(h.baseCtx, c.Param("id"), req.Text)
	if err != nil {
		respondError(c, err, "Failed to send message")
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	h.emit(c, "user", task.UserMessage())

	if !h.relay(c, task) {
		h.logger.Debug("chat client disconnected",
			zap.String("conversation_id", c.Param("id")),
		)
		return
	}

	status := "completed"
	if task.Wait() != nil {
		status = "canceled"
	}

	h.emit(c, "done", gin.H{
		"status": status,
		"key":    task.Key(),
	})
}

// EndConversation discards a conversation when the client leaves the chat screen
func (h *ChatHandler) EndConversation(c *gin.Context) {
	if err := h.service.End(c.Param("id")); err != nil {
		respondError(c, err, "Failed to end conversation")
		return
	}
	c.Status(http.StatusNoContent)
}

// relay forwards task updates until the task finishes. It returns false when
// the client went away first.
func (h *ChatHandler) relay(c *gin.Context, task *chat.Task) bool {
	updates := task.Updates()
	for {
		select {
		case u, ok := <-updates:
			if !ok {
				return true
			}
			h.emit(c, string(u.Kind), u.Message)
		case <-c.Request.Context().Done():
			return false
		}
	}
}

func (h *ChatHandler) emit(c *gin.Context, event string, data any) {
	c.SSEvent(event, data)
	c.Writer.Flush()
}
