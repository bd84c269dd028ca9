package vectorstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEmbedder implements EmbeddingClient using the OpenAI embeddings
// API.
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAIEmbedder creates an embedder. An empty model selects
// text-embedding-3-small.
func NewOpenAIEmbedder(apiKey, model string) *OpenAIEmbedder {
	m := openai.SmallEmbedding3
	if model != "" {
		m = openai.EmbeddingModel(model)
	}
	return &OpenAIEmbedder{
		client: openai.NewClient(apiKey),
		model:  m,
	}
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding index out of range: %d", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}

// Indexer chunks, embeds, and stores document text.
type Indexer struct {
	embed EmbeddingClient
	store Store
	split *Splitter
}

// NewIndexer creates an indexer. A nil splitter uses the defaults.
func NewIndexer(embed EmbeddingClient, store Store, split *Splitter) *Indexer {
	if split == nil {
		split = NewSplitter()
	}
	return &Indexer{embed: embed, store: store, split: split}
}

// IndexDocument splits the text into chunks, embeds them, and upserts them
// with the source name recorded in metadata. It returns the number of
// chunks stored.
func (ix *Indexer) IndexDocument(ctx context.Context, source, text string) (int, error) {
	chunks := ix.split.Split(text)
	if len(chunks) == 0 {
		return 0, nil
	}

	vectors, err := ix.embed.Embed(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("embedding: %w", err)
	}
	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("embedding count mismatch: got %d, want %d", len(vectors), len(chunks))
	}

	docs := make([]Document, len(chunks))
	for i := range chunks {
		docs[i] = Document{
			ID:      uuid.NewString(),
			Content: chunks[i],
			Vector:  vectors[i],
			Metadata: map[string]string{
				"source": source,
			},
		}
	}

	if err := ix.store.Upsert(ctx, docs); err != nil {
		return 0, fmt.Errorf("upsert: %w", err)
	}
	return len(docs), nil
}
