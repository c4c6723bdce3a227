package service

import (
	"context"
	"errors"
)

// ErrLLMDisabled is returned when no language model API key is configured
var ErrLLMDisabled = errors.New("language model is not enabled (missing API key)")

// ChatCompleter is the interface for OpenAI-compatible chat providers
type ChatCompleter interface {
	// ChatCompletion sends one non-streaming chat completion request
	ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error)

	// IsEnabled returns whether the client is configured and ready
	IsEnabled() bool
}

// Ensure OpenAIClient implements ChatCompleter
var _ ChatCompleter = (*OpenAIClient)(nil)
