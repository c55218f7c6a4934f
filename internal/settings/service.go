package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gramsehat/backend/internal/i18n"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// LanguageKey is the only persisted setting
const LanguageKey = "selectedLanguage"

// ErrUnsupportedLanguage is returned for languages without a catalogue
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Service holds the selected UI language
type Service struct {
	store   Store
	logger  *zap.Logger
	matcher language.Matcher

	mu   sync.RWMutex
	lang string
	// stored is set when lang is the value held by the store
	stored bool
}

// NewService creates a settings Service. The language is English until Init runs.
func NewService(store Store, logger *zap.Logger) *Service {
	tags := make([]language.Tag, 0, len(i18n.Languages))
	for _, l := range i18n.Languages {
		tags = append(tags, language.MustParse(l))
	}

	return &Service{
		store:   store,
		logger:  logger,
		matcher: language.NewMatcher(tags),
		lang:    i18n.English,
	}
}

// Init resolves the language: the stored choice first, then the closest supported
// match for the device locale, then English. A failing store also yields English.
func (s *Service) Init(ctx context.Context, deviceLocale string) string {
	lang, stored := s.resolve(ctx, deviceLocale)

	s.mu.Lock()
	s.lang = lang
	s.stored = stored
	s.mu.Unlock()

	s.logger.Info("language initialised",
		zap.String("language", lang),
		zap.String("device_locale", deviceLocale),
	)
	return lang
}

func (s *Service) resolve(ctx context.Context, deviceLocale string) (string, bool) {
	stored, err := s.store.Get(ctx, LanguageKey)
	switch {
	case err == nil && i18n.IsSupported(stored):
		return stored, true
	case err == nil:
		s.logger.Warn("ignoring unsupported stored language", zap.String("language", stored))
	case !errors.Is(err, ErrSettingNotFound):
		s.logger.Error("failed to read language setting", zap.Error(err))
		return i18n.English, false
	}

	return s.Match(deviceLocale), false
}

// Match returns the supported language closest to locale, or English
func (s *Service) Match(locale string) string {
	if locale == "" {
		return i18n.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return i18n.English
	}

	_, idx, confidence := s.matcher.Match(tag)
	if confidence == language.No {
		return i18n.English
	}
	return i18n.Languages[idx]
}

// Language returns the current language
func (s *Service) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang
}

// SetLanguage switches the language and persists it. The write is skipped
// only when lang is already the stored value.
func (s *Service) SetLanguage(ctx context.Context, lang string) error {
	if !i18n.IsSupported(lang) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stored && s.lang == lang {
		return nil
	}

	if err := s.store.Set(ctx, LanguageKey, lang); err != nil {
		return fmt.Errorf("failed to save language: %w", err)
	}

	s.logger.Info("language changed",
		zap.String("from", s.lang),
		zap.String("to", lang),
	)
	s.lang = lang
	s.stored = true
	return nil
}
