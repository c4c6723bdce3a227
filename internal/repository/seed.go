package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"plantchat/internal/model"
)

// SeedData maps a collection name to its documents; each document carries its "id"
type SeedData map[string][]model.JSONMap

// LoadSeedFile reads a JSON seed file
func LoadSeedFile(path string) (SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var data SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return data, nil
}

// Seed writes every seed document into the store and returns the number written
func Seed(ctx context.Context, store DocumentStore, data SeedData) (int, []string) {
	collections := make([]string, 0, len(data))
	for name := range data {
		collections = append(collections, name)
	}
	sort.Strings(collections)

	total := 0
	var errs []string
	for _, name := range collections {
		docs := make([]Document, 0, len(data[name]))
		for i, body := range data[name] {
			id, _ := body["id"].(string)
			if id == "" {
				errs = append(errs, fmt.Sprintf("%s[%d]: missing string id", name, i))
				continue
			}
			docs = append(docs, Document{ID: id, Data: body})
		}
		n, batchErrs := store.PutBatch(ctx, name, docs)
		total += n
		errs = append(errs, batchErrs...)
	}
	return total, errs
}
