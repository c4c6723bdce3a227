package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"plantchat/internal/model"
	"plantchat/internal/repository"
	"plantchat/internal/utils"
)

// Tier limits for care guide retrieval
const (
	guideTitleLimit      = 3
	guideCategoryLimit   = 2
	guideDifficultyLimit = 3
)

// titleRangeEnd is appended to a title to form the upper bound of a prefix range
const titleRangeEnd = "\uf8ff"

var guideCategoryTable = utils.KeywordTable{
	{Phrases: []string{"tropical"}, Value: "Tropical Plants"},
	{Phrases: []string{"succulent"}, Value: "Succulents & Cacti"},
	{Phrases: []string{"cactus"}, Value: "Succulents & Cacti"},
	{Phrases: []string{"flower"}, Value: "Flowering Plants"},
	{Phrases: []string{"herb"}, Value: "Herbs & Edibles"},
	{Phrases: []string{"monstera"}, Value: "Tropical Plants"},
	{Phrases: []string{"snake plant"}, Value: "Air Purifying"},
	{Phrases: []string{"pothos"}, Value: "Tropical Plants"},
	{Phrases: []string{"spider plant"}, Value: "Air Purifying"},
}

var easyGuidePhrases = []string{"beginner", "easy", "simple"}

// CareGuideService finds care guides for a plant or care topic
type CareGuideService struct {
	store      repository.DocumentStore
	ranker     *Ranker
	maxResults int
}

// NewCareGuideService creates a new care guide lookup service
func NewCareGuideService(store repository.DocumentStore, ranker *Ranker, maxResults int) *CareGuideService {
	return &CareGuideService{store: store, ranker: ranker, maxResults: maxResults}
}

// GetCareGuides runs the tiered lookup: title prefix, then keyword category,
// then difficulty or a generic scan. A tier runs only when the previous one
// found nothing.
func (s *CareGuideService) GetCareGuides(ctx context.Context, query string) ([]model.CareGuide, error) {
	lower := strings.ToLower(query)

	docs, err := s.find(ctx, repository.NewQuery().
		Between("title", query, query+titleRangeEnd).
		WithLimit(guideTitleLimit))
	if err != nil {
		return nil, err
	}
	tier := "title"

	if len(docs) == 0 {
		if category, ok := guideCategoryTable.FirstMatch(lower); ok {
			docs, err = s.find(ctx, repository.NewQuery().
				Where("category", category).
				WithLimit(guideCategoryLimit))
			if err != nil {
				return nil, err
			}
			tier = "category"
		}
	}

	if len(docs) == 0 {
		q := repository.NewQuery().WithLimit(guideDifficultyLimit)
		tier = "generic"
		if utils.ContainsAny(lower, easyGuidePhrases...) {
			q = q.Where("difficulty", model.DifficultyEasy)
			tier = "difficulty"
		}
		if docs, err = s.find(ctx, q); err != nil {
			return nil, err
		}
	}

	seen := make(map[string]struct{}, len(docs))
	guides := make([]model.CareGuide, 0, len(docs))
	for _, doc := range docs {
		if _, dup := seen[doc.ID]; dup {
			continue
		}
		seen[doc.ID] = struct{}{}

		var g model.CareGuide
		if err := doc.Decode(&g); err != nil {
			return nil, fmt.Errorf("care guide %s: %w", doc.ID, err)
		}
		g.ID = doc.ID
		guides = append(guides, g)
	}

	s.ranker.RankGuides(guides, query)
	if len(guides) > s.maxResults {
		guides = guides[:s.maxResults]
	}

	log.Ctx(ctx).Debug().
		Str("query", query).
		Str("tier", tier).
		Int("results", len(guides)).
		Msg("care guide search")

	return guides, nil
}

func (s *CareGuideService) find(ctx context.Context, q repository.Query) ([]repository.Document, error) {
	docs, err := s.store.Find(ctx, repository.CollectionCareGuides, q)
	if err != nil {
		return nil, fmt.Errorf("find care guides: %w", err)
	}
	return docs, nil
}
