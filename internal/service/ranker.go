package service

import (
	"sort"
	"strings"

	"plantchat/internal/config"
	"plantchat/internal/model"
	"plantchat/internal/utils"
)

// Care guide relevance weights
const (
	guideWeightTitle       = 3.0
	guideWeightCategory    = 2.0
	guideWeightDescription = 1.0
	guideWeightDifficulty  = 1.5
)

// Ranker scores catalog products against extracted filters and care guides against raw queries
type Ranker struct {
	weights config.RankingConfig
}

// NewRanker creates a new ranker with specified weights
func NewRanker(weights config.RankingConfig) *Ranker {
	return &Ranker{weights: weights}
}

// ScoreProduct computes how well a product matches the filters.
// Each present filter dimension adds its weight to the maximum and, when
// satisfied, to the raw score. Feature and stock bonuses add to the raw
// score only, so the result is not capped at 1. With no filter dimension
// the score is a neutral 0.5.
func (r *Ranker) ScoreProduct(p model.Product, filters model.FilterSet) float64 {
	score := 0.0
	maxScore := 0.0
	w := r.weights

	if filters.MaintenanceLevel != nil {
		maxScore += w.WeightMaintenance
		maintenance := strings.ToLower(p.Details.Maintenance)
		if strings.Contains(maintenance, *filters.MaintenanceLevel) {
			score += w.WeightMaintenance
		}
	}

	if filters.Sunlight != nil {
		maxScore += w.WeightSunlight
		if strings.Contains(strings.ToLower(p.Details.Sunlight), *filters.Sunlight) {
			score += w.WeightSunlight
		}
	}

	if filters.Category != nil {
		maxScore += w.WeightCategory
		if strings.EqualFold(p.Category, *filters.Category) {
			score += w.WeightCategory
		}
	}

	if filters.Type != nil {
		maxScore += w.WeightType
		if strings.EqualFold(p.Type, *filters.Type) {
			score += w.WeightType
		}
	}

	if filters.PetSafe {
		maxScore += w.WeightPetSafe
		toxicity := strings.ToLower(p.Details.Toxicity)
		if utils.ContainsAny(toxicity, "non-toxic", "safe") {
			score += w.WeightPetSafe
		}
	}

	features := strings.ToLower(p.Details.SpecialFeatures)
	if strings.Contains(features, "air purifying") {
		score += w.Bonus
	}
	if strings.Contains(features, "low maintenance") {
		score += w.Bonus
	}
	if p.Stock.InStock() {
		score += w.Bonus
	}

	if maxScore == 0 {
		return 0.5
	}
	if maxScore < 1 {
		maxScore = 1
	}
	return score / maxScore
}

// RankProducts sets MatchScore on every product and sorts descending. Ties keep input order.
func (r *Ranker) RankProducts(products []model.Product, filters model.FilterSet) {
	for i := range products {
		products[i].MatchScore = r.ScoreProduct(products[i], filters)
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].MatchScore > products[j].MatchScore
	})
}

// ScoreGuide computes an unbounded relevance score of a guide for a raw query.
// A query token counts when it appears anywhere inside the field text.
func (r *Ranker) ScoreGuide(g model.CareGuide, query string) float64 {
	score := 0.0
	lower := strings.ToLower(query)
	tokens := strings.Fields(lower)

	if utils.ContainsAny(strings.ToLower(g.Title), tokens...) {
		score += guideWeightTitle
	}
	if utils.ContainsAny(strings.ToLower(g.Category), tokens...) {
		score += guideWeightCategory
	}
	if utils.ContainsAny(strings.ToLower(g.Description), tokens...) {
		score += guideWeightDescription
	}

	if strings.Contains(lower, "beginner") && g.Difficulty == model.DifficultyEasy {
		score += guideWeightDifficulty
	} else if strings.Contains(lower, "advanced") && g.Difficulty == model.DifficultyAdvanced {
		score += guideWeightDifficulty
	}
	return score
}

// RankGuides sets RelevanceScore on every guide and sorts descending. Ties keep input order.
func (r *Ranker) RankGuides(guides []model.CareGuide, query string) {
	for i := range guides {
		guides[i].RelevanceScore = r.ScoreGuide(guides[i], query)
	}
	sort.SliceStable(guides, func(i, j int) bool {
		return guides[i].RelevanceScore > guides[j].RelevanceScore
	})
}
