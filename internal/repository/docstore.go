package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDocumentNotFound is returned when a document id has no row in its
// collection. Typed repositories map it onto their domain sentinel.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore is a generic keyed JSON document store on top of PostgreSQL.
// Every collection lives in the shared documents table; one row per document,
// addressed by (collection, id). There are no cross-document guarantees.
type DocumentStore struct {
	db *pgxpool.Pool
}

func NewDocumentStore(db *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{db: db}
}

// Get returns the raw document or ErrDocumentNotFound.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	var doc []byte
	err := s.db.QueryRow(ctx,
		`SELECT doc FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get document %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

// Set marshals value and upserts it under (collection, id). Last write wins.
func (s *DocumentStore) Set(ctx context.Context, collection, id string, value any) error {
	doc, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal document %s/%s: %w", collection, id, err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO documents (collection, id, doc)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (collection, id)
		 DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		collection, id, doc,
	)
	if err != nil {
		return fmt.Errorf("set document %s/%s: %w", collection, id, err)
	}
	return nil
}

// Update shallow-merges partial into an existing document. Missing documents
// are an error; Set is the way to create.
func (s *DocumentStore) Update(ctx context.Context, collection, id string, partial map[string]any) error {
	patch, err := json.Marshal(partial)
	if err != nil {
		return fmt.Errorf("marshal patch %s/%s: %w", collection, id, err)
	}

	tag, err := s.db.Exec(ctx,
		`UPDATE documents SET doc = doc || $3, updated_at = now()
		 WHERE collection = $1 AND id = $2`,
		collection, id, patch,
	)
	if err != nil {
		return fmt.Errorf("update document %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// Delete removes a document; deleting a missing document is an error so
// callers can surface not-found to the API layer.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("delete document %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// List returns every document of a collection in insertion order.
func (s *DocumentStore) List(ctx context.Context, collection string) ([][]byte, error) {
	rows, err := s.db.Query(ctx,
		`SELECT doc FROM documents WHERE collection = $1 ORDER BY created_at`,
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("list collection %s: %w", collection, err)
	}
	defer rows.Close()

	return collectDocs(rows, collection)
}

// QueryEqual returns documents whose top-level field equals value.
func (s *DocumentStore) QueryEqual(ctx context.Context, collection, field, value string) ([][]byte, error) {
	rows, err := s.db.Query(ctx,
		`SELECT doc FROM documents
		 WHERE collection = $1 AND doc ->> $2 = $3
		 ORDER BY created_at`,
		collection, field, value,
	)
	if err != nil {
		return nil, fmt.Errorf("query collection %s by %s: %w", collection, field, err)
	}
	defer rows.Close()

	return collectDocs(rows, collection)
}

// QueryArrayContains returns documents whose top-level string-array field
// contains value.
func (s *DocumentStore) QueryArrayContains(ctx context.Context, collection, field, value string) ([][]byte, error) {
	rows, err := s.db.Query(ctx,
		`SELECT doc FROM documents
		 WHERE collection = $1 AND doc -> $2 ? $3
		 ORDER BY created_at`,
		collection, field, value,
	)
	if err != nil {
		return nil, fmt.Errorf("query collection %s by array %s: %w", collection, field, err)
	}
	defer rows.Close()

	return collectDocs(rows, collection)
}

// ArrayAppend appends elem to a top-level array field of an existing
// document, creating the array when absent.
func (s *DocumentStore) ArrayAppend(ctx context.Context, collection, id, field string, elem any) error {
	raw, err := json.Marshal(elem)
	if err != nil {
		return fmt.Errorf("marshal array element %s/%s: %w", collection, id, err)
	}

	tag, err := s.db.Exec(ctx,
		`UPDATE documents
		 SET doc = jsonb_set(doc, ARRAY[$3],
		                     COALESCE(doc -> $3, '[]'::jsonb) || jsonb_build_array($4::jsonb)),
		     updated_at = now()
		 WHERE collection = $1 AND id = $2`,
		collection, id, field, raw,
	)
	if err != nil {
		return fmt.Errorf("append to %s/%s.%s: %w", collection, id, field, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// ArrayRemoveString removes every occurrence of value from a top-level
// string-array field.
func (s *DocumentStore) ArrayRemoveString(ctx context.Context, collection, id, field, value string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE documents
		 SET doc = jsonb_set(doc, ARRAY[$3], COALESCE(doc -> $3, '[]'::jsonb) - $4),
		     updated_at = now()
		 WHERE collection = $1 AND id = $2`,
		collection, id, field, value,
	)
	if err != nil {
		return fmt.Errorf("remove from %s/%s.%s: %w", collection, id, field, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func collectDocs(rows pgx.Rows, collection string) ([][]byte, error) {
	var docs [][]byte
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan document from %s: %w", collection, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collection %s: %w", collection, err)
	}
	return docs, nil
}
