package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"plantchat/internal/model"
)

func TestSuggestActions(t *testing.T) {
	snake := []model.Product{{ID: "p1", Title: "Snake Plant"}}
	two := []model.Product{{ID: "p1"}, {ID: "p2"}}
	guides := []model.CareGuide{{ID: "g1"}}

	tests := []struct {
		name     string
		query    string
		products []model.Product
		guides   []model.CareGuide
		reply    string
		want     []string
	}{
		{
			name:     "clarifying question wins over results",
			query:    "I want a plant",
			products: snake,
			reply:    "Happy to help! What's your budget and do you have any pets?",
			want:     []string{"Under $30", "Under $50", "$50-100", "Yes, I have pets"},
		},
		{
			name:  "experience question",
			query: "plants",
			reply: "Could you tell me more? What's your experience with plants?",
			want:  []string{"I'm a beginner", "I'm experienced with plants"},
		},
		{
			name:     "single product gets a care guide chip",
			query:    "plants for my office",
			products: snake,
			reply:    "The Snake Plant is a great choice.",
			want: []string{
				"Care guide for Snake Plant",
				"Show low-light options",
				"Find pet-safe plants",
				"Show budget-friendly options",
			},
		},
		{
			name:     "covered refinements are skipped then padded",
			query:    "pet safe plants under $30 for low light",
			products: two,
			want: []string{
				"Browse plant categories",
				"Show me indoor plants",
				"Plant care tips",
				"Browse categories",
			},
		},
		{
			name:   "guides only",
			query:  "how to care for ferns",
			guides: guides,
			want:   []string{"Find related plants to buy", "More care guides", "Common plant problems"},
		},
		{
			name:  "nothing found",
			query: "hello",
			reply: "Hello! I can help you find plants.",
			want: []string{
				"Show popular indoor plants",
				"Find beginner-friendly plants",
				"Browse plant categories",
				"Plant care basics",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestActions(tt.query, tt.products, tt.guides, tt.reply)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), 4)
			assert.GreaterOrEqual(t, len(got), 2)
		})
	}
}

func TestFallbackActions(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"hi", []string{"Show me plant care guides", "Find beginner-friendly plants", "Show pet-safe options"}},
		{"beginner care", []string{"Show pet-safe options", "Find plants for low light"}},
		{"care for beginners with pets", []string{
			"Find plants for low light", "Show me indoor plants", "Plant care tips", "Browse categories",
		}},
		{"beginner pet care in low light", []string{"Show me indoor plants", "Plant care tips", "Browse categories"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, FallbackActions(tt.query))
		})
	}
}
