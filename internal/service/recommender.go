package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"

	"plantchat/internal/model"
	"plantchat/internal/utils"
)

// FallbackResponse is the reply text used when the agent could not complete
const FallbackResponse = "I found some plants that might interest you! Let me know if you'd like more specific recommendations or have questions about plant care."

// Fallback confidence depending on whether the direct search found products
const (
	fallbackConfidenceWithProducts = 0.6
	fallbackConfidenceEmpty        = 0.3
)

// fallbackSearchTerms picks one coarse search term; earlier rules win
var fallbackSearchTerms = utils.KeywordTable{
	{Phrases: []string{"beginner", "easy", "simple"}, Value: "beginner plants"},
	{Phrases: []string{"low light", "dark", "shade"}, Value: "low light plants"},
	{Phrases: []string{"succulent", "cactus"}, Value: "succulents"},
	{Phrases: []string{"pet", "cat", "dog", "safe"}, Value: "pet safe plants"},
}

const defaultFallbackTerm = "indoor plants"

// SearchEventCallback is called for streaming recommendation events
type SearchEventCallback func(event string, data any) error

// Recommender turns a customer message into a recommendation envelope
type Recommender struct {
	agent         Runner
	catalog       ProductSearcher
	fallbackLimit int
}

// NewRecommender creates a new recommendation orchestrator
func NewRecommender(agent Runner, catalog ProductSearcher, fallbackLimit int) *Recommender {
	return &Recommender{agent: agent, catalog: catalog, fallbackLimit: fallbackLimit}
}

// Recommend answers one message. It never fails: agent errors and panics
// degrade to a direct catalog search with a generic reply.
func (r *Recommender) Recommend(ctx context.Context, message string) *model.ChatResponse {
	return r.recommend(ctx, message, nil)
}

// RecommendStream answers one message and reports progress: "start" once,
// "tool" after every agent tool call, "result" with the envelope, then "done".
func (r *Recommender) RecommendStream(ctx context.Context, message string, callback SearchEventCallback) (*model.ChatResponse, error) {
	if err := callback("start", map[string]any{"message": message}); err != nil {
		return nil, err
	}

	observe := func(step model.ToolInvocation) {
		if err := callback("tool", step); err != nil {
			log.Ctx(ctx).Debug().Err(err).Msg("dropping tool event")
		}
	}

	resp := r.recommend(ctx, message, observe)

	if err := callback("result", resp); err != nil {
		return resp, err
	}
	if err := callback("done", map[string]any{"status": "completed"}); err != nil {
		return resp, err
	}
	return resp, nil
}

func (r *Recommender) recommend(ctx context.Context, message string, observe StepObserver) (resp *model.ChatResponse) {
	logger := log.Ctx(ctx)

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().Interface("panic", rec).Msg("recommendation panicked, using fallback")
			resp = r.fallback(ctx, message)
		}
	}()

	if r.agent == nil {
		return r.fallback(ctx, message)
	}

	result, err := r.agent.Run(ctx, message, observe)
	if err != nil {
		logger.Error().Err(err).Msg("agent execution failed, using fallback")
		return r.fallback(ctx, message)
	}

	products := productsFromTrace(result.Steps)
	guides := guidesFromTrace(result.Steps)

	if len(products) == 0 && !searchedProducts(result.Steps) {
		products = r.fallbackProducts(ctx, message)
	}

	logger.Info().
		Int("tool_calls", len(result.Steps)).
		Int("products", len(products)).
		Int("guides", len(guides)).
		Msg("recommendation built")

	return &model.ChatResponse{
		Response:               result.Output,
		ProductRecommendations: products,
		CareGuides:             guides,
		SuggestedActions:       SuggestActions(message, products, guides, result.Output),
		ConfidenceScore:        Confidence(message, products, guides, result.Output),
		QueryUnderstood:        AnalyzeQuery(message),
	}
}

func (r *Recommender) fallback(ctx context.Context, message string) *model.ChatResponse {
	products := r.fallbackProducts(ctx, message)

	confidence := fallbackConfidenceEmpty
	if len(products) > 0 {
		confidence = fallbackConfidenceWithProducts
	}

	return &model.ChatResponse{
		Response:               FallbackResponse,
		ProductRecommendations: products,
		CareGuides:             []model.CareGuide{},
		SuggestedActions:       FallbackActions(message),
		ConfidenceScore:        confidence,
		QueryUnderstood:        AnalyzeQuery(message),
	}
}

// fallbackProducts runs one direct catalog search on a coarse term derived from the message
func (r *Recommender) fallbackProducts(ctx context.Context, message string) (products []model.Product) {
	products = []model.Product{}
	if r.catalog == nil {
		return products
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Ctx(ctx).Error().Interface("panic", rec).Msg("fallback search panicked")
			products = []model.Product{}
		}
	}()

	term := FallbackSearchTerm(message)
	found, err := r.catalog.SearchProducts(ctx, term)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("term", term).Msg("fallback search failed")
		return products
	}
	if len(found) > r.fallbackLimit {
		found = found[:r.fallbackLimit]
	}
	return append(products, found...)
}

// FallbackSearchTerm derives the coarse search term used when the agent did not search
func FallbackSearchTerm(message string) string {
	if term, ok := fallbackSearchTerms.FirstMatch(strings.ToLower(message)); ok {
		return term
	}
	return defaultFallbackTerm
}

func searchedProducts(steps []model.ToolInvocation) bool {
	for _, step := range steps {
		if step.Tool == model.ToolSearchProducts {
			return true
		}
	}
	return false
}

// productsFromTrace adopts the most recent product search whose output is a non-empty list
func productsFromTrace(steps []model.ToolInvocation) []model.Product {
	if products, ok := latestList[model.Product](steps, model.ToolSearchProducts); ok {
		return products
	}
	return []model.Product{}
}

// guidesFromTrace adopts the most recent care guide lookup whose output is a non-empty list
func guidesFromTrace(steps []model.ToolInvocation) []model.CareGuide {
	if guides, ok := latestList[model.CareGuide](steps, model.ToolGetCareGuides); ok {
		return guides
	}
	return []model.CareGuide{}
}

func latestList[T any](steps []model.ToolInvocation, tool string) ([]T, bool) {
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		if step.Tool != tool || !step.Succeeded() {
			continue
		}
		var items []T
		if err := json.Unmarshal([]byte(step.Output), &items); err != nil || len(items) == 0 {
			continue
		}
		return items, true
	}
	return nil, false
}
