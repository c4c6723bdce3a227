package service

import (
	"strings"
	"unicode/utf8"

	"plantchat/internal/model"
	"plantchat/internal/utils"
)

var (
	specificTerms  = []string{"beginner", "low light", "pet safe", "succulent", "indoor", "office", "bedroom"}
	helpfulPhrases = []string{"recommend", "suggest", "perfect", "great choice", "here are"}
)

// Confidence scores how well a response answers the query, in [0, 1].
// Any response carrying products or guides scores at least 0.5.
func Confidence(query string, products []model.Product, guides []model.CareGuide, reply string) float64 {
	score := 0.4

	if len(products) > 0 {
		score += 0.3
		if len(products) > 1 {
			score += 0.1
		}
		for _, p := range products {
			if p.MatchScore > 0.7 {
				score += 0.1
				break
			}
		}
	}

	if len(guides) > 0 {
		score += 0.2
		if len(guides) > 1 {
			score += 0.1
		}
	}

	queryLower := strings.ToLower(query)
	hits := 0
	for _, term := range specificTerms {
		if strings.Contains(queryLower, term) {
			hits++
		}
	}
	score += min(float64(hits)*0.05, 0.15)

	if utils.ContainsAny(strings.ToLower(reply), helpfulPhrases...) {
		score += 0.1
	}

	found := len(products) > 0 || len(guides) > 0
	if !found && utf8.RuneCountInString(reply) < 50 {
		score -= 0.2
	}
	if found {
		score = max(score, 0.5)
	}

	return min(max(score, 0.0), 1.0)
}
