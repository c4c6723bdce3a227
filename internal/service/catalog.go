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

// CatalogService finds products matching a free text request
type CatalogService struct {
	store          repository.DocumentStore
	ranker         *Ranker
	candidateLimit int
	maxResults     int
}

// NewCatalogService creates a new catalog lookup service
func NewCatalogService(store repository.DocumentStore, ranker *Ranker, candidateLimit, maxResults int) *CatalogService {
	return &CatalogService{
		store:          store,
		ranker:         ranker,
		candidateLimit: candidateLimit,
		maxResults:     maxResults,
	}
}

// SearchProducts extracts filters from the query, pre-filters in the store on
// availability, category, sub-category and type, post-filters the candidates
// in process, then returns the best matches in descending score order.
func (s *CatalogService) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	filters := ExtractFilters(query)

	q := repository.NewQuery().
		Where("stock.availability", true).
		WithLimit(s.candidateLimit)
	if filters.Category != nil {
		q = q.Where("category", *filters.Category)
	}
	if filters.SubCategory != nil {
		q = q.Where("subCategory", *filters.SubCategory)
	}
	if filters.Type != nil {
		q = q.Where("type", *filters.Type)
	}

	docs, err := s.store.Find(ctx, repository.CollectionProducts, q)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	products := make([]model.Product, 0, len(docs))
	for _, doc := range docs {
		var p model.Product
		if err := doc.Decode(&p); err != nil {
			return nil, fmt.Errorf("product %s: %w", doc.ID, err)
		}
		p.ID = doc.ID
		if !passesPostFilters(p, filters) {
			continue
		}
		products = append(products, p)
	}

	s.ranker.RankProducts(products, filters)
	if len(products) > s.maxResults {
		products = products[:s.maxResults]
	}

	log.Ctx(ctx).Debug().
		Str("query", query).
		Int("candidates", len(docs)).
		Int("results", len(products)).
		Msg("product search")

	return products, nil
}

func passesPostFilters(p model.Product, filters model.FilterSet) bool {
	// a zero bound is no bound
	if filters.PriceMax != nil && *filters.PriceMax > 0 && p.Price > *filters.PriceMax {
		return false
	}
	if filters.PriceMin != nil && *filters.PriceMin > 0 && p.Price < *filters.PriceMin {
		return false
	}
	if filters.MaintenanceLevel != nil &&
		!strings.Contains(strings.ToLower(p.Details.Maintenance), *filters.MaintenanceLevel) {
		return false
	}
	if filters.Sunlight != nil &&
		!strings.Contains(strings.ToLower(p.Details.Sunlight), *filters.Sunlight) {
		return false
	}
	if filters.PetSafe && utils.ContainsAny(strings.ToLower(p.Details.Toxicity), "toxic", "poisonous") {
		return false
	}
	return true
}
