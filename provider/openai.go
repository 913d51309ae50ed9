package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/lingobridge/lingobridge"
)

// DefaultBaseURL points at Groq's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// LLMTranslator implements Translator against any OpenAI-compatible
// chat-completion API (Groq by default).
type LLMTranslator struct {
	client      *openai.Client
	model       string
	temperature float32
}

// LLMConfig holds configuration for the LLM translator.
type LLMConfig struct {
	APIKey      string  // API key for the endpoint
	Model       string  // Model to use (default: "llama-3.3-70b-versatile")
	Temperature float32 // Temperature for generation (default: 0.2)
	BaseURL     string  // OpenAI-compatible endpoint (default: Groq)
}

// NewLLMTranslator creates a chat-completion translator.
func NewLLMTranslator(cfg LLMConfig) *LLMTranslator {
	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = cfg.BaseURL
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}

	return &LLMTranslator{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Translate renders text in the target language. When source and target
// match, the input is returned unchanged without an API call.
func (p *LLMTranslator) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	if lingobridge.SameLanguage(req.SourceLang, req.TargetLang) {
		return req.Text, nil
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(req)},
		},
		Temperature: p.temperature,
	})
	if err != nil {
		return "", &lingobridge.ProviderError{
			Message:   "chat completion failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return "", &lingobridge.ProviderError{
			Message:   "no response from model",
			Retryable: true,
		}
	}

	translated := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translated == "" {
		return "", &lingobridge.ProviderError{
			Message:   "empty translation from model",
			Retryable: true,
		}
	}

	return translated, nil
}

func buildPrompt(req TranslateRequest) string {
	source := lingobridge.GetLanguageName(req.SourceLang)
	target := lingobridge.GetLanguageName(req.TargetLang)

	return fmt.Sprintf(`Translate the following text from %s to %s:

"%s"

Provide ONLY the translated text without any additional explanations, notes, or quotation marks around the text.`,
		source, target, req.Text)
}

func isRetryableError(err error) bool {
	// Check for common retryable conditions
	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"rate limit",
		"timeout",
		"connection refused",
		"temporary",
		"503",
		"502",
		"429",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// Verify LLMTranslator implements Translator
var _ Translator = (*LLMTranslator)(nil)
