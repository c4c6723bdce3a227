package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantchat/internal/model"
)

// scriptedLLM replays canned replies; the last one repeats once the script runs out
type scriptedLLM struct {
	mu       sync.Mutex
	replies  []ChatMessage
	err      error
	disabled bool
	requests []ChatCompletionRequest
}

func (s *scriptedLLM) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.replies) == 0 {
		return &ChatCompletionResponse{}, nil
	}
	idx := min(len(s.requests), len(s.replies)) - 1
	return &ChatCompletionResponse{Choices: []ChatChoice{{Message: s.replies[idx]}}}, nil
}

func (s *scriptedLLM) IsEnabled() bool { return !s.disabled }

func toolCall(id, name, args string) ToolCall {
	return ToolCall{ID: id, Type: "function", Function: FunctionCall{Name: name, Arguments: args}}
}

func answer(text string) ChatMessage {
	return ChatMessage{Role: "assistant", Content: text}
}

func callTools(calls ...ToolCall) ChatMessage {
	return ChatMessage{Role: "assistant", ToolCalls: calls}
}

// echoTools returns tools that report the input they were given
func echoTools(inputs *[]string) []Tool {
	record := func(name string) Tool {
		return Tool{
			Name:        name,
			Description: name + " tool",
			Run: func(ctx context.Context, input string) string {
				*inputs = append(*inputs, input)
				return name + ":" + input
			},
		}
	}
	return []Tool{record(model.ToolSearchProducts), record(model.ToolGetCareGuides)}
}

func TestAgent_ToolCallThenAnswer(t *testing.T) {
	var inputs []string
	llm := &scriptedLLM{replies: []ChatMessage{
		callTools(toolCall("", model.ToolSearchProducts, `{"query":"low light"}`)),
		answer("  Try a snake plant.  "),
	}}
	agent := NewAgent(llm, echoTools(&inputs), 6)

	var observed []model.ToolInvocation
	result, err := agent.Run(context.Background(), "plants for a dark room", func(step model.ToolInvocation) {
		observed = append(observed, step)
	})
	require.NoError(t, err)

	assert.Equal(t, "Try a snake plant.", result.Output)
	assert.Equal(t, []model.ToolInvocation{
		{Tool: model.ToolSearchProducts, Input: "low light", Output: "search_products:low light"},
	}, result.Steps)
	assert.Equal(t, result.Steps, observed)
	assert.Equal(t, []string{"low light"}, inputs)

	require.Len(t, llm.requests, 2)
	first := llm.requests[0]
	assert.Len(t, first.Tools, 2)
	assert.Equal(t, "auto", first.ToolChoice)
	assert.Equal(t, "system", first.Messages[0].Role)
	assert.Equal(t, "Customer message: plants for a dark room", first.Messages[1].Content)

	second := llm.requests[1].Messages
	require.Len(t, second, 4)
	assistant, tool := second[2], second[3]
	require.Len(t, assistant.ToolCalls, 1)
	assert.Regexp(t, `^call_`, assistant.ToolCalls[0].ID)
	assert.Equal(t, "tool", tool.Role)
	assert.Equal(t, assistant.ToolCalls[0].ID, tool.ToolCallID)
	assert.Equal(t, "search_products:low light", tool.Content)
}

func TestAgent_UnknownToolIsObservation(t *testing.T) {
	var inputs []string
	llm := &scriptedLLM{replies: []ChatMessage{
		callTools(toolCall("c1", "browse_web", `{"query":"ferns"}`)),
		answer("Here is what I found."),
	}}
	agent := NewAgent(llm, echoTools(&inputs), 6)

	result, err := agent.Run(context.Background(), "ferns", nil)
	require.NoError(t, err)

	require.Len(t, result.Steps, 1)
	step := result.Steps[0]
	assert.False(t, step.Succeeded())
	assert.Equal(t, "browse_web is not a valid tool, try one of [search_products, get_care_guides].", step.Error)
	assert.Empty(t, inputs)
	assert.Equal(t, step.Error, llm.requests[1].Messages[3].Content)
}

func TestAgent_RawArgumentsUsedAsQuery(t *testing.T) {
	var inputs []string
	llm := &scriptedLLM{replies: []ChatMessage{
		callTools(toolCall("c1", model.ToolGetCareGuides, "monstera care")),
		answer("done"),
	}}
	agent := NewAgent(llm, echoTools(&inputs), 6)

	_, err := agent.Run(context.Background(), "monstera", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"monstera care"}, inputs)
}

func TestAgent_IterationLimit(t *testing.T) {
	var inputs []string
	llm := &scriptedLLM{replies: []ChatMessage{
		callTools(toolCall("c1", model.ToolSearchProducts, `{"query":"plants"}`)),
	}}
	agent := NewAgent(llm, echoTools(&inputs), 3)

	result, err := agent.Run(context.Background(), "plants", nil)
	require.NoError(t, err)
	assert.Equal(t, IterationLimitOutput, result.Output)
	assert.Len(t, result.Steps, 3)
	assert.Len(t, llm.requests, 3)
}

func TestAgent_ParallelCallsTruncatedToBudget(t *testing.T) {
	var inputs []string
	llm := &scriptedLLM{replies: []ChatMessage{
		callTools(
			toolCall("a", model.ToolSearchProducts, `{"query":"one"}`),
			toolCall("b", model.ToolSearchProducts, `{"query":"two"}`),
			toolCall("c", model.ToolSearchProducts, `{"query":"three"}`),
		),
	}}
	agent := NewAgent(llm, echoTools(&inputs), 2)

	result, err := agent.Run(context.Background(), "plants", nil)
	require.NoError(t, err)
	assert.Equal(t, IterationLimitOutput, result.Output)
	assert.Equal(t, []string{"one", "two"}, inputs)
	assert.Len(t, llm.requests, 1)
}

func TestAgent_Errors(t *testing.T) {
	boom := errors.New("upstream 500")

	t.Run("completion error", func(t *testing.T) {
		agent := NewAgent(&scriptedLLM{err: boom}, nil, 3)
		_, err := agent.Run(context.Background(), "hi", nil)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("no choices", func(t *testing.T) {
		agent := NewAgent(&scriptedLLM{}, nil, 3)
		_, err := agent.Run(context.Background(), "hi", nil)
		assert.Error(t, err)
	})

	t.Run("disabled", func(t *testing.T) {
		agent := NewAgent(&scriptedLLM{disabled: true}, nil, 3)
		_, err := agent.Run(context.Background(), "hi", nil)
		assert.ErrorIs(t, err, ErrLLMDisabled)
	})

	t.Run("nil client", func(t *testing.T) {
		agent := NewAgent(nil, nil, 3)
		_, err := agent.Run(context.Background(), "hi", nil)
		assert.ErrorIs(t, err, ErrLLMDisabled)
	})
}
