package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"
)

// Supported language tags
const (
	English = "en-US"
	Hindi   = "hi-IN"
	Punjabi = "pa-IN"
)

// Languages lists the supported languages, default first
var Languages = []string{English, Hindi, Punjabi}

//go:embed locales/*.json
var locales embed.FS

// Localizer resolves localized strings from the embedded catalogues
type Localizer struct {
	catalogues map[string]map[string]string
}

// New loads every embedded catalogue
func New() (*Localizer, error) {
	l := &Localizer{catalogues: make(map[string]map[string]string, len(Languages))}

	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to list locales: %w", err)
	}

	for _, entry := range entries {
		data, err := locales.ReadFile(path.Join("locales", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", entry.Name(), err)
		}

		catalogue := make(map[string]string)
		if err := json.Unmarshal(data, &catalogue); err != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", entry.Name(), err)
		}

		l.catalogues[strings.TrimSuffix(entry.Name(), ".json")] = catalogue
	}

	return l, nil
}

// T returns the string for key in lang. Keys missing from lang are looked up in
// English, and fallback is returned when neither has the key.
func (l *Localizer) T(lang, key, fallback string) string {
	if l == nil {
		return fallback
	}
	if s := l.catalogues[lang][key]; s != "" {
		return s
	}
	if s := l.catalogues[English][key]; s != "" {
		return s
	}
	return fallback
}

// IsSupported reports whether lang is one of Languages
func IsSupported(lang string) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}
