package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"plantchat/internal/model"
)

// Collections held by the document store
const (
	CollectionProducts   = "products"
	CollectionCareGuides = "care_guides"
	CollectionCategories = "categories"
)

var (
	// ErrUnknownCollection is returned for collection names outside the catalog
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrInvalidField is returned for field paths that are not dotted identifiers
	ErrInvalidField = errors.New("invalid field path")
)

var fieldPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// DocumentStore reads catalog documents by collection with equality and range filters
type DocumentStore interface {
	Find(ctx context.Context, collection string, q Query) ([]Document, error)
	PutBatch(ctx context.Context, collection string, docs []Document) (int, []string)
	Close() error
}

// Document is one stored record with its catalog-assigned identifier
type Document struct {
	ID   string        `db:"id"`
	Data model.JSONMap `db:"data"`
}

// Decode converts the document body into a typed record
func (d Document) Decode(target interface{}) error {
	return d.Data.Decode(target)
}

// FieldEquals matches documents whose field equals Value
type FieldEquals struct {
	Field string
	Value interface{}
}

// FieldRange matches documents whose string field lies in [Min, Max]
type FieldRange struct {
	Field string
	Min   string
	Max   string
}

// Query describes a filtered, limited scan. A zero Limit means unbounded.
type Query struct {
	Equals []FieldEquals
	Ranges []FieldRange
	Limit  int
}

// NewQuery starts an unfiltered query
func NewQuery() Query {
	return Query{}
}

// Where adds an equality filter
func (q Query) Where(field string, value interface{}) Query {
	q.Equals = append(append([]FieldEquals(nil), q.Equals...), FieldEquals{Field: field, Value: value})
	return q
}

// Between adds an inclusive string range filter
func (q Query) Between(field, min, max string) Query {
	q.Ranges = append(append([]FieldRange(nil), q.Ranges...), FieldRange{Field: field, Min: min, Max: max})
	return q
}

// WithLimit caps the number of returned documents
func (q Query) WithLimit(n int) Query {
	q.Limit = n
	return q
}

// Validate checks every field path in the query
func (q Query) Validate() error {
	for _, eq := range q.Equals {
		if !fieldPattern.MatchString(eq.Field) {
			return fmt.Errorf("%w: %q", ErrInvalidField, eq.Field)
		}
	}
	for _, r := range q.Ranges {
		if !fieldPattern.MatchString(r.Field) {
			return fmt.Errorf("%w: %q", ErrInvalidField, r.Field)
		}
	}
	return nil
}

func checkCollection(collection string) error {
	switch collection {
	case CollectionProducts, CollectionCareGuides, CollectionCategories:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
}

// textValue renders a filter value the way a JSON scalar reads as text
func textValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func splitField(field string) []string {
	return strings.Split(field, ".")
}
