package provider

import (
	"context"
	"fmt"

	"github.com/lingobridge/lingobridge"
)

// MockTranslator is a deterministic translator for testing. Its default
// phrase table is symmetric, so translating a known phrase out and back
// yields the original text.
type MockTranslator struct {
	Translations map[string]string  // Map of source text to translation
	Err          error              // When set, every call fails with this error
	CallCount    int                // Number of times Translate was called
	LastRequest  *TranslateRequest  // Last request received
}

// NewMockTranslator creates a mock translator with default phrase pairs.
func NewMockTranslator() *MockTranslator {
	pairs := map[string]string{
		"Hola, necesito ayuda": "Hello, I need help",
		"We can help":          "Podemos ayudar",
		"Hola":                 "Hello",
		"Bonjour":              "Hello there",
	}

	// Make the table its own inverse.
	translations := make(map[string]string, len(pairs)*2)
	for from, to := range pairs {
		translations[from] = to
		translations[to] = from
	}

	return &MockTranslator{Translations: translations}
}

// Translate returns the mock translation, the input unchanged when source
// and target match, or bracketed text for unknown phrases.
func (m *MockTranslator) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	m.CallCount++
	m.LastRequest = &req

	if m.Err != nil {
		return "", m.Err
	}

	if lingobridge.SameLanguage(req.SourceLang, req.TargetLang) {
		return req.Text, nil
	}

	if translation, ok := m.Translations[req.Text]; ok {
		return translation, nil
	}

	return fmt.Sprintf("[%s:%s] %s", req.SourceLang, req.TargetLang, req.Text), nil
}

// Reset resets the call count and last request.
func (m *MockTranslator) Reset() {
	m.CallCount = 0
	m.LastRequest = nil
}

// Verify MockTranslator implements Translator
var _ Translator = (*MockTranslator)(nil)
