// Package vectorstore provides embedding-backed storage and similarity
// search over ingested document chunks.
package vectorstore

import "context"

// Document is a chunk of ingested text with its embedding vector.
type Document struct {
	ID       string
	Content  string
	Vector   []float32
	Metadata map[string]string
}

// SearchResult is a single match from a similarity search.
type SearchResult struct {
	ID       string
	Score    float32
	Content  string
	Metadata map[string]string
}

// Store provides vector storage and similarity search.
type Store interface {
	// Upsert inserts or updates documents.
	Upsert(ctx context.Context, docs []Document) error
	// Search finds the top-k most similar documents.
	Search(ctx context.Context, vector []float32, topK int) ([]SearchResult, error)
	// Close releases resources.
	Close() error
}

// EmbeddingClient produces embedding vectors for texts, one vector per
// input in the same order.
type EmbeddingClient interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
