package chat

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/gramsehat/backend/internal/i18n"
	"github.com/gramsehat/backend/pkg/model"
	"go.uber.org/zap"
)

// ErrConversationNotFound is returned for unknown conversation ids
var ErrConversationNotFound = errors.New("conversation not found")

// Service keeps the conversations of the assistant
type Service struct {
	engine *Engine
	logger *zap.Logger

	mu            sync.RWMutex
	conversations map[string]*Conversation
}

// NewService creates a new chat Service
func NewService(engine *Engine, logger *zap.Logger) *Service {
	return &Service{
		engine:        engine,
		logger:        logger,
		conversations: make(map[string]*Conversation),
	}
}

// Start opens a conversation in lang. Unsupported languages use English.
func (s *Service) Start(lang string) *Conversation {
	if !i18n.IsSupported(lang) {
		lang = i18n.English
	}

	conv := s.engine.NewConversation(uuid.New().String(), lang)

	s.mu.Lock()
	s.conversations[conv.ID()] = conv
	s.mu.Unlock()

	s.logger.Info("conversation started",
		zap.String("conversation_id", conv.ID()),
		zap.String("language", lang),
	)

	return conv
}

// Conversation looks up a conversation
func (s *Service) Conversation(id string) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[id]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return conv, nil
}

// Messages returns the message log of a conversation
func (s *Service) Messages(id string) ([]model.ChatMessage, error) {
	conv, err := s.Conversation(id)
	if err != nil {
		return nil, err
	}
	return conv.Messages(), nil
}

// Send appends a user message and starts the response task. The task lives
// as long as ctx, so callers streaming to a client should pass a context that
// outlives the request.
func (s *Service) Send(ctx context.Context, id, text string) (*Task, error) {
	conv, err := s.Conversation(id)
	if err != nil {
		return nil, err
	}
	return s.engine.Respond(ctx, conv, text)
}

// End removes a conversation and cancels its response if one is in flight
func (s *Service) End(id string) error {
	s.mu.Lock()
	conv, ok := s.conversations[id]
	if ok {
		delete(s.conversations, id)
	}
	s.mu.Unlock()

	if !ok {
		return ErrConversationNotFound
	}

	conv.cancel()
	s.logger.Info("conversation ended", zap.String("conversation_id", id))
	return nil
}

// Close cancels every response still in flight
func (s *Service) Close() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, conv := range s.conversations {
		conv.cancel()
	}
}
