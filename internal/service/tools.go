package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"plantchat/internal/model"
)

// Tool is a capability the agent can invoke with a single text argument.
// Run never fails; errors come back as descriptive text.
type Tool struct {
	Name        string
	Description string
	Run         func(ctx context.Context, input string) string
}

// ProductSearcher finds products for a free text request
type ProductSearcher interface {
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)
}

// GuideSearcher finds care guides for a free text request
type GuideSearcher interface {
	GetCareGuides(ctx context.Context, query string) ([]model.CareGuide, error)
}

// CategoryLister lists catalog categories
type CategoryLister interface {
	GetCategories(ctx context.Context) ([]model.Category, error)
}

// NewCatalogTools builds the three catalog tools in registration order
func NewCatalogTools(products ProductSearcher, guides GuideSearcher, categories CategoryLister) []Tool {
	return []Tool{
		{
			Name: model.ToolSearchProducts,
			Description: "Search for plant products. ALWAYS use this tool first for plant recommendations. " +
				"Use broad keywords initially, then narrow if needed. " +
				"Examples: 'low light plants', 'beginner plants', 'pet safe succulents', 'under $30'.",
			Run: func(ctx context.Context, input string) string {
				result, err := products.SearchProducts(ctx, input)
				return renderToolResult(ctx, model.ToolSearchProducts, "Error searching products", result, err)
			},
		},
		{
			Name: model.ToolGetCareGuides,
			Description: "Get plant care instructions. Use after finding products or when asked about plant care. " +
				"Include plant names or care topics.",
			Run: func(ctx context.Context, input string) string {
				result, err := guides.GetCareGuides(ctx, input)
				return renderToolResult(ctx, model.ToolGetCareGuides, "Error getting care guides", result, err)
			},
		},
		{
			Name: model.ToolGetCategories,
			Description: "Get available product categories. " +
				"Use when customer wants to explore options or when no specific products found.",
			Run: func(ctx context.Context, input string) string {
				result, err := categories.GetCategories(ctx)
				return renderToolResult(ctx, model.ToolGetCategories, "Error getting categories", result, err)
			},
		},
	}
}

// renderToolResult encodes a lookup result as an indented JSON array, or the
// error as "<prefix>: <message>"
func renderToolResult[T any](ctx context.Context, tool, errPrefix string, items []T, err error) string {
	if err == nil {
		if items == nil {
			items = []T{}
		}
		var data []byte
		data, err = json.MarshalIndent(items, "", "  ")
		if err == nil {
			return string(data)
		}
	}
	log.Ctx(ctx).Error().Err(err).Str("tool", tool).Msg("tool lookup failed")
	return fmt.Sprintf("%s: %v", errPrefix, err)
}

// toolNames lists tool names joined for prompts and error observations
func toolNames(tools []Tool) string {
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.Name)
	}
	return strings.Join(names, ", ")
}
