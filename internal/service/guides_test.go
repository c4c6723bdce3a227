package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantchat/internal/model"
	"plantchat/internal/repository"
)

func TestCareGuideService_GetCareGuides(t *testing.T) {
	svc := NewCareGuideService(catalogStore(t), testRanker(), 3)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "title prefix",
			query: "Snake Plant",
			want:  []string{"g1"},
		},
		{
			name:  "category keyword",
			query: "my monstera is dying",
			want:  []string{"g2", "g3"},
		},
		{
			name:  "beginner difficulty",
			query: "easy beginner plants",
			want:  []string{"g3", "g1", "g4"},
		},
		{
			name:  "generic scan",
			query: "watering schedule",
			want:  []string{"g1", "g2", "g3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guides, err := svc.GetCareGuides(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, guideIDs(guides))
		})
	}
}

func TestCareGuideService_TitleTierIsCaseSensitive(t *testing.T) {
	svc := NewCareGuideService(catalogStore(t), testRanker(), 3)

	guides, err := svc.GetCareGuides(context.Background(), "snake plant")
	require.NoError(t, err)
	// falls through to the "snake plant" category keyword
	assert.Equal(t, []string{"g1"}, guideIDs(guides))
	assert.Equal(t, "Air Purifying", guides[0].Category)
}

func TestCareGuideService_TierQueries(t *testing.T) {
	store := &stubStore{}
	svc := NewCareGuideService(store, testRanker(), 3)

	guides, err := svc.GetCareGuides(context.Background(), "easy succulent care")
	require.NoError(t, err)
	assert.Empty(t, guides)

	require.Len(t, store.queries, 3)

	title := store.queries[0]
	assert.Equal(t, 3, title.Limit)
	assert.Equal(t, []repository.FieldRange{
		{Field: "title", Min: "easy succulent care", Max: "easy succulent care" + titleRangeEnd},
	}, title.Ranges)

	category := store.queries[1]
	assert.Equal(t, 2, category.Limit)
	assert.Equal(t, []repository.FieldEquals{{Field: "category", Value: "Succulents & Cacti"}}, category.Equals)

	difficulty := store.queries[2]
	assert.Equal(t, 3, difficulty.Limit)
	assert.Equal(t, []repository.FieldEquals{{Field: "difficulty", Value: model.DifficultyEasy}}, difficulty.Equals)
}

func TestCareGuideService_DedupesAndCaps(t *testing.T) {
	store := &stubStore{docs: map[string][]repository.Document{
		repository.CollectionCareGuides: {
			guide("a", "Fern Basics", "Tropical Plants", model.DifficultyEasy, ""),
			guide("a", "Fern Basics", "Tropical Plants", model.DifficultyEasy, ""),
			guide("b", "Fern Humidity", "Tropical Plants", model.DifficultyEasy, ""),
			guide("c", "Fern Pests", "Tropical Plants", model.DifficultyEasy, ""),
			guide("d", "Fern Repotting", "Tropical Plants", model.DifficultyEasy, ""),
		},
	}}
	svc := NewCareGuideService(store, testRanker(), 3)

	guides, err := svc.GetCareGuides(context.Background(), "Fern")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, guideIDs(guides))
	assert.Equal(t, 1, store.calls)
}

func TestCareGuideService_StoreError(t *testing.T) {
	boom := errors.New("timeout")
	svc := NewCareGuideService(&stubStore{err: boom}, testRanker(), 3)

	guides, err := svc.GetCareGuides(context.Background(), "orchids")
	assert.Nil(t, guides)
	assert.ErrorIs(t, err, boom)
}
