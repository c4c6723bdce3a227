package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"plantchat/internal/model"
	"plantchat/internal/utils"
)

var (
	carePhrases     = []string{"how to care", "care guide", "problem with", "help with", "dying", "yellow leaves"}
	urgentWords     = []string{"dying", "help", "problem"}
	productPhrases  = []string{"looking for", "recommend", "buy", "find plant", "suggest", "need a plant", "want a plant"}
	categoryPhrases = []string{"category", "categories", "types of plants", "what plants"}
	plantWords      = []string{"plant", "succulent", "flower", "tree"}

	wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	stopwords   = map[string]struct{}{
		"a": {}, "an": {}, "the": {}, "is": {}, "are": {}, "for": {}, "to": {}, "of": {},
		"i": {}, "me": {}, "my": {}, "need": {}, "want": {}, "can": {}, "you": {}, "help": {},
	}
)

// AnalyzeQuery classifies intent and urgency, lists keywords, and attaches the extracted filters
func AnalyzeQuery(text string) model.QueryAnalysis {
	lower := strings.ToLower(text)
	analysis := model.QueryAnalysis{
		OriginalQuery: text,
		Intent:        model.IntentUnknown,
		Keywords:      []string{},
		Urgency:       model.UrgencyNormal,
	}

	switch {
	case utils.ContainsAny(lower, carePhrases...):
		analysis.Intent = model.IntentCareGuidance
		if utils.ContainsAny(lower, urgentWords...) {
			analysis.Urgency = model.UrgencyHigh
		}
	case utils.ContainsAny(lower, productPhrases...):
		analysis.Intent = model.IntentProductRecommendation
	case utils.ContainsAny(lower, categoryPhrases...):
		analysis.Intent = model.IntentCategoryInquiry
	case utils.ContainsAny(lower, plantWords...):
		analysis.Intent = model.IntentProductRecommendation
	}

	for _, word := range wordPattern.FindAllString(lower, -1) {
		if _, stop := stopwords[word]; stop || utf8.RuneCountInString(word) <= 2 {
			continue
		}
		analysis.Keywords = append(analysis.Keywords, word)
	}

	analysis.Entities = ExtractFilters(text)
	if !analysis.Entities.IsEmpty() && analysis.Intent == model.IntentUnknown {
		analysis.Intent = model.IntentProductRecommendation
	}

	return analysis
}
