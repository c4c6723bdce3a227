package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const documentsTable = "documents"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
	seq        BIGSERIAL,
	collection TEXT        NOT NULL,
	id         TEXT        NOT NULL,
	data       JSONB       NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS documents_collection_seq_idx ON documents (collection, seq);
`

const upsertSQL = `INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)
ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`

// PostgresStore keeps catalog documents as JSONB rows
type PostgresStore struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
}

// NewPostgresStore connects to PostgreSQL
func NewPostgresStore(dsn string, maxConn, maxIdleConn int) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewPostgresStoreWithDB(db), nil
}

// NewPostgresStoreWithDB wraps an existing connection pool
func NewPostgresStoreWithDB(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db, dialect: goqu.Dialect("postgres")}
}

// EnsureSchema creates the documents table when missing
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Find returns documents of a collection matching every filter in q, in insertion order
func (s *PostgresStore) Find(ctx context.Context, collection string, q Query) ([]Document, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	query, args, err := s.buildFind(collection, q)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var docs []Document
	if err := s.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	return docs, nil
}

func (s *PostgresStore) buildFind(collection string, q Query) (string, []interface{}, error) {
	ds := s.dialect.From(documentsTable).
		Select("id", "data").
		Where(goqu.C("collection").Eq(collection))

	for _, eq := range q.Equals {
		ds = ds.Where(jsonText(eq.Field).Eq(textValue(eq.Value)))
	}
	for _, r := range q.Ranges {
		// byte order, so a "" upper bound works as a prefix match
		field := goqu.L(fmt.Sprintf(`(data #>> '{%s}') COLLATE "C"`, strings.Join(splitField(r.Field), ",")))
		ds = ds.Where(field.Gte(r.Min), field.Lte(r.Max))
	}

	ds = ds.Order(goqu.C("seq").Asc())
	if q.Limit > 0 {
		ds = ds.Limit(uint(q.Limit))
	}
	return ds.Prepared(true).ToSQL()
}

// jsonText reads a dotted path from the data column as text. Paths are validated before use.
func jsonText(field string) exp.LiteralExpression {
	return goqu.L(fmt.Sprintf("data #>> '{%s}'", strings.Join(splitField(field), ",")))
}

// PutBatch upserts documents in a single transaction
func (s *PostgresStore) PutBatch(ctx context.Context, collection string, docs []Document) (int, []string) {
	success := 0
	var errors []string

	if err := checkCollection(collection); err != nil {
		return success, append(errors, err.Error())
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to start transaction: %v", err))
		return success, errors
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, upsertSQL)
	if err != nil {
		errors = append(errors, fmt.Sprintf("failed to prepare statement: %v", err))
		return success, errors
	}
	defer stmt.Close()

	for _, doc := range docs {
		if doc.ID == "" {
			errors = append(errors, fmt.Sprintf("%s: document without id", collection))
			continue
		}
		raw, err := json.Marshal(doc.Data)
		if err != nil {
			errors = append(errors, fmt.Sprintf("%s/%s: %v", collection, doc.ID, err))
			continue
		}
		if _, err := stmt.ExecContext(ctx, collection, doc.ID, string(raw)); err != nil {
			errors = append(errors, fmt.Sprintf("%s/%s: %v", collection, doc.ID, err))
			continue
		}
		success++
	}

	if err := tx.Commit(); err != nil {
		errors = append(errors, fmt.Sprintf("failed to commit transaction: %v", err))
		return 0, errors
	}

	return success, errors
}

var _ DocumentStore = (*PostgresStore)(nil)
