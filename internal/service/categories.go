package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"plantchat/internal/cache"
	"plantchat/internal/model"
	"plantchat/internal/repository"
)

// CategoryCacheKey is the cache key holding the full category list
var CategoryCacheKey = cache.Key("categories", "all")

// CategoryService lists catalog categories through an optional cache
type CategoryService struct {
	store repository.DocumentStore
	cache cache.Client
	ttl   time.Duration
}

// NewCategoryService creates a category lookup. cacheClient may be nil.
func NewCategoryService(store repository.DocumentStore, cacheClient cache.Client, ttl time.Duration) *CategoryService {
	return &CategoryService{store: store, cache: cacheClient, ttl: ttl}
}

// GetCategories returns every category. Cache failures fall through to the store.
func (s *CategoryService) GetCategories(ctx context.Context) ([]model.Category, error) {
	logger := log.Ctx(ctx)

	if s.cache != nil {
		data, err := s.cache.Get(ctx, CategoryCacheKey)
		switch {
		case err == nil:
			var categories []model.Category
			decodeErr := json.Unmarshal(data, &categories)
			if decodeErr == nil {
				return categories, nil
			}
			logger.Warn().Err(decodeErr).Msg("discarding unreadable cached categories")
		case !errors.Is(err, cache.ErrCacheMiss):
			logger.Warn().Err(err).Msg("category cache read failed")
		}
	}

	docs, err := s.store.Find(ctx, repository.CollectionCategories, repository.NewQuery())
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}

	categories := make([]model.Category, 0, len(docs))
	for _, doc := range docs {
		var c model.Category
		if err := doc.Decode(&c); err != nil {
			return nil, fmt.Errorf("category %s: %w", doc.ID, err)
		}
		c.ID = doc.ID
		categories = append(categories, c)
	}

	if s.cache != nil {
		if data, err := json.Marshal(categories); err == nil {
			if err := s.cache.Set(ctx, CategoryCacheKey, data, s.ttl); err != nil {
				logger.Warn().Err(err).Msg("category cache write failed")
			}
		}
	}

	return categories, nil
}
