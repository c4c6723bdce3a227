package service

import (
	"fmt"
	"strings"

	"plantchat/internal/model"
	"plantchat/internal/utils"
)

const (
	maxSuggestedActions = 4
	minSuggestedActions = 2
	maxFallbackActions  = 3
)

var clarificationPhrases = []string{
	"tell me more", "could you tell me", "what's your experience",
	"what's your budget", "any pets", "how much sun", "where will",
}

var defaultActions = []string{"Show me indoor plants", "Plant care tips", "Browse categories"}

// SuggestActions proposes follow-up chips for the customer. Clarifying
// questions in the reply take priority, then product results, then guides.
func SuggestActions(query string, products []model.Product, guides []model.CareGuide, reply string) []string {
	queryLower := strings.ToLower(query)
	replyLower := strings.ToLower(reply)
	var actions []string

	switch {
	case utils.ContainsAny(replyLower, clarificationPhrases...):
		if strings.Contains(replyLower, "experience") {
			actions = append(actions, "I'm a beginner", "I'm experienced with plants")
		}
		if strings.Contains(replyLower, "budget") {
			actions = append(actions, "Under $30", "Under $50", "$50-100")
		}
		if strings.Contains(replyLower, "pets") {
			actions = append(actions, "Yes, I have pets", "No pets")
		}
		if utils.ContainsAny(replyLower, "sun", "light") {
			actions = append(actions, "Bright indirect light", "Low light area", "Direct sunlight")
		}
		if utils.ContainsAny(replyLower, "where", "location") {
			actions = append(actions, "Indoor living room", "Office desk", "Bedroom")
		}

	case len(products) > 0:
		if len(products) == 1 {
			title := products[0].Title
			if title == "" {
				title = "this plant"
			}
			actions = append(actions, fmt.Sprintf("Care guide for %s", title))
		}
		if !strings.Contains(queryLower, "low light") {
			actions = append(actions, "Show low-light options")
		}
		if !strings.Contains(queryLower, "pet") {
			actions = append(actions, "Find pet-safe plants")
		}
		if !utils.ContainsAny(queryLower, "$", "budget", "cheap", "expensive") {
			actions = append(actions, "Show budget-friendly options")
		}
		actions = append(actions, "Browse plant categories")

	case len(guides) > 0:
		actions = append(actions, "Find related plants to buy", "More care guides", "Common plant problems")

	default:
		actions = append(actions,
			"Show popular indoor plants",
			"Find beginner-friendly plants",
			"Browse plant categories",
			"Plant care basics",
		)
	}

	return padActions(capActions(utils.Dedupe(actions), maxSuggestedActions))
}

// FallbackActions is the reduced chip set used when the agent failed
func FallbackActions(query string) []string {
	lower := strings.ToLower(query)
	var actions []string

	if !strings.Contains(lower, "care") {
		actions = append(actions, "Show me plant care guides")
	}
	if !strings.Contains(lower, "beginner") {
		actions = append(actions, "Find beginner-friendly plants")
	}
	if !strings.Contains(lower, "pet") {
		actions = append(actions, "Show pet-safe options")
	}
	if !strings.Contains(lower, "low light") {
		actions = append(actions, "Find plants for low light")
	}

	return padActions(capActions(actions, maxFallbackActions))
}

// padActions tops up a short list from the defaults, skipping duplicates
func padActions(actions []string) []string {
	if len(actions) >= minSuggestedActions {
		return actions
	}
	return capActions(utils.Dedupe(append(actions, defaultActions...)), maxSuggestedActions)
}

func capActions(actions []string, n int) []string {
	if len(actions) > n {
		return actions[:n]
	}
	return actions
}
