package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"plantchat/internal/config"
	"plantchat/internal/model"
	"plantchat/internal/repository"
)

func product(id, title, category, subCategory string, price float64, details map[string]interface{}, available bool, qty int) repository.Document {
	return repository.Document{ID: id, Data: model.JSONMap{
		"title":       title,
		"category":    category,
		"subCategory": subCategory,
		"type":        "Indoor Plant",
		"price":       price,
		"details":     details,
		"stock":       map[string]interface{}{"availability": available, "quantity": qty},
	}}
}

func guide(id, title, category, difficulty, description string) repository.Document {
	return repository.Document{ID: id, Data: model.JSONMap{
		"title":       title,
		"category":    category,
		"difficulty":  difficulty,
		"description": description,
		"quickTips":   []interface{}{"Check the soil before watering"},
	}}
}

func catalogStore(t *testing.T) *repository.MemoryStore {
	t.Helper()
	store := repository.NewMemoryStore()
	ctx := context.Background()

	_, errs := store.PutBatch(ctx, repository.CollectionProducts, []repository.Document{
		product("p1", "Snake Plant", "Air Purifying", "Desktop Plants", 24.99, map[string]interface{}{
			"maintenance": "Low", "sunlight": "Low to bright indirect", "toxicity": "Mildly toxic to pets",
			"specialFeatures": "Air purifying, low maintenance",
		}, true, 12),
		product("p2", "ZZ Plant", "Air Purifying", "Floor Plants", 35, map[string]interface{}{
			"maintenance": "Low", "sunlight": "Low light, indirect", "toxicity": "Toxic if ingested",
		}, true, 4),
		product("p3", "Spider Plant", "Air Purifying", "Hanging Plants", 18, map[string]interface{}{
			"maintenance": "Low", "sunlight": "Bright indirect", "toxicity": "Non-toxic, pet safe",
		}, true, 20),
		product("p4", "Calathea Medallion", "Tropical Plants", "Desktop Plants", 42, map[string]interface{}{
			"maintenance": "Moderate", "sunlight": "Medium indirect", "toxicity": "Pet safe",
		}, true, 3),
		product("p5", "Echeveria", "Succulents & Cacti", "Desktop Plants", 12, map[string]interface{}{
			"maintenance": "Low", "sunlight": "Bright direct sun", "toxicity": "Pet safe",
		}, true, 30),
		product("p6", "Fiddle Leaf Fig", "Trees & Large Plants", "Floor Plants", 89, map[string]interface{}{
			"maintenance": "High", "sunlight": "Bright indirect", "toxicity": "Toxic to pets",
		}, false, 0),
		product("p7", "Boston Fern", "Tropical Plants", "Hanging Plants", 28, map[string]interface{}{
			"maintenance": "Moderate", "sunlight": "Indirect", "toxicity": "Pet safe",
		}, true, 0),
	})
	require.Empty(t, errs)

	_, errs = store.PutBatch(ctx, repository.CollectionCareGuides, []repository.Document{
		guide("g1", "Snake Plant Care Guide", "Air Purifying", model.DifficultyEasy, "Keep your snake plant thriving"),
		guide("g2", "Monstera Deliciosa Care", "Tropical Plants", model.DifficultyModerate, "Support those split leaves"),
		guide("g3", "Pothos: The Easiest Houseplant", "Tropical Plants", model.DifficultyEasy, "Trailing vines for any shelf"),
		guide("g4", "Succulent Watering Basics", "Succulents & Cacti", model.DifficultyEasy, "Soak and dry"),
		guide("g5", "Orchid Reblooming", "Flowering Plants", model.DifficultyAdvanced, "Coax new spikes"),
	})
	require.Empty(t, errs)

	_, errs = store.PutBatch(ctx, repository.CollectionCategories, []repository.Document{
		{ID: "tropical", Data: model.JSONMap{"name": "Tropical Plants", "description": "Lush foliage", "product_count": 2}},
		{ID: "succulents", Data: model.JSONMap{"name": "Succulents & Cacti", "description": "Drought tolerant", "product_count": 1}},
	})
	require.Empty(t, errs)

	return store
}

// stubStore returns canned documents per collection and counts calls
type stubStore struct {
	mu      sync.Mutex
	docs    map[string][]repository.Document
	err     error
	calls   int
	queries []repository.Query
}

func (s *stubStore) Find(ctx context.Context, collection string, q repository.Query) ([]repository.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.queries = append(s.queries, q)
	if s.err != nil {
		return nil, s.err
	}
	return s.docs[collection], nil
}

func (s *stubStore) PutBatch(ctx context.Context, collection string, docs []repository.Document) (int, []string) {
	return 0, nil
}

func (s *stubStore) Close() error { return nil }

func defaultWeights() config.RankingConfig {
	return config.RankingConfig{
		WeightMaintenance: 3.0,
		WeightSunlight:    3.0,
		WeightCategory:    2.0,
		WeightType:        2.0,
		WeightPetSafe:     1.0,
		Bonus:             0.5,
	}
}

func testRanker() *Ranker {
	return NewRanker(defaultWeights())
}

func productIDs(products []model.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func guideIDs(guides []model.CareGuide) []string {
	out := make([]string, 0, len(guides))
	for _, g := range guides {
		out = append(out, g.ID)
	}
	return out
}
