package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"plantchat/internal/model"
	"plantchat/internal/utils"
)

// IterationLimitOutput is the agent output when the tool budget runs out before a final answer
const IterationLimitOutput = "Agent stopped due to iteration limit or time limit."

const systemPrompt = `You are an expert plant consultant helping customers find plants and care guidance. Your goal is to ALWAYS provide helpful recommendations by actively using your tools.

CRITICAL INSTRUCTIONS:
1. ALWAYS use search_products first when customers ask for plant recommendations
2. If initial search yields few results, try broader search terms
3. Use multiple searches with different keywords if needed
4. Only ask clarifying questions AFTER attempting to find relevant products
5. Provide specific product recommendations with prices and care tips
6. Include care guidance when relevant

Your tools provide real-time data from our inventory:
- search_products: Find plants matching customer needs (use broad terms first)
- get_care_guides: Get detailed care instructions
- get_categories: Browse available plant types

SEARCH STRATEGY:
- Start with broad terms: "indoor plants", "low light", "beginner"
- Then try specific terms: "succulents", "air purifying", "pet safe"
- Include budget if mentioned: "under $50", "budget plants"
- Try multiple searches to find the best matches

RESPONSE FORMAT:
- Lead with product recommendations when found
- Include prices, care level, and key features
- Mention pet safety when relevant
- Provide care tips or guide links
- Ask follow-up questions to refine recommendations`

// AgentResult is the final text of an agent run and the tool calls that produced it
type AgentResult struct {
	Output string
	Steps  []model.ToolInvocation
}

// StepObserver is notified after every tool invocation
type StepObserver func(step model.ToolInvocation)

// Runner runs the tool-using agent loop for one customer message
type Runner interface {
	Run(ctx context.Context, input string, observe StepObserver) (*AgentResult, error)
}

// Agent drives an OpenAI-compatible function-calling loop over the catalog tools
type Agent struct {
	llm           ChatCompleter
	tools         []Tool
	byName        map[string]Tool
	maxIterations int
}

// NewAgent creates an agent. maxIterations bounds the tool invocations per run.
func NewAgent(llm ChatCompleter, tools []Tool, maxIterations int) *Agent {
	byName := make(map[string]Tool, len(tools))
	for _, t := range tools {
		byName[t.Name] = t
	}
	return &Agent{llm: llm, tools: tools, byName: byName, maxIterations: maxIterations}
}

// Run sends the message to the model and executes the tools it asks for
// until it answers in plain text or the iteration budget is spent.
// Unknown tools and malformed arguments become observations, not errors.
func (a *Agent) Run(ctx context.Context, input string, observe StepObserver) (*AgentResult, error) {
	if a.llm == nil || !a.llm.IsEnabled() {
		return nil, ErrLLMDisabled
	}

	logger := log.Ctx(ctx)
	result := &AgentResult{}
	messages := []ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: "Customer message: " + input},
	}
	definitions := a.toolDefinitions()

	for len(result.Steps) < a.maxIterations {
		resp, err := a.llm.ChatCompletion(ctx, ChatCompletionRequest{
			Messages:   messages,
			Tools:      definitions,
			ToolChoice: "auto",
		})
		if err != nil {
			return nil, fmt.Errorf("agent completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, errors.New("agent completion returned no choices")
		}

		reply := resp.Choices[0].Message
		if len(reply.ToolCalls) == 0 {
			result.Output = strings.TrimSpace(reply.Content)
			return result, nil
		}

		budget := a.maxIterations - len(result.Steps)
		calls := reply.ToolCalls
		if len(calls) > budget {
			calls = calls[:budget]
		}
		for i := range calls {
			if calls[i].ID == "" {
				calls[i].ID = "call_" + uuid.NewString()
			}
			if calls[i].Type == "" {
				calls[i].Type = "function"
			}
		}
		messages = append(messages, ChatMessage{Role: "assistant", Content: reply.Content, ToolCalls: calls})

		for _, call := range calls {
			step := a.invoke(ctx, call)
			result.Steps = append(result.Steps, step)
			if observe != nil {
				observe(step)
			}

			observation := step.Output
			if !step.Succeeded() {
				observation = step.Error
			}
			messages = append(messages, ChatMessage{
				Role:       "tool",
				ToolCallID: call.ID,
				Name:       call.Function.Name,
				Content:    observation,
			})

			logger.Debug().
				Str("tool", step.Tool).
				Str("input", step.Input).
				Bool("ok", step.Succeeded()).
				Msg("agent tool call")
		}
	}

	logger.Warn().Int("max_iterations", a.maxIterations).Msg("agent iteration limit reached")
	result.Output = IterationLimitOutput
	return result, nil
}

func (a *Agent) invoke(ctx context.Context, call ToolCall) model.ToolInvocation {
	input := utils.ToolQuery(call.Function.Arguments)
	step := model.ToolInvocation{Tool: call.Function.Name, Input: input}

	tool, ok := a.byName[call.Function.Name]
	if !ok {
		step.Error = fmt.Sprintf("%s is not a valid tool, try one of [%s].", call.Function.Name, toolNames(a.tools))
		return step
	}

	step.Output = tool.Run(ctx, input)
	return step
}

func (a *Agent) toolDefinitions() []ToolDefinition {
	defs := make([]ToolDefinition, 0, len(a.tools))
	for _, t := range a.tools {
		defs = append(defs, ToolDefinition{
			Type: "function",
			Function: FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"query": map[string]any{
							"type":        "string",
							"description": "Free text search terms",
						},
					},
					"required": []string{"query"},
				},
			},
		})
	}
	return defs
}
