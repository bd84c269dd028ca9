package vectorstore

import (
	"context"
	"fmt"
)

// defaultTopK is the number of chunks returned per topic query.
const defaultTopK = 4

// TopicRetriever answers topic queries with the most relevant stored
// chunks. It implements the content retrieval capability the quiz builder
// consumes.
type TopicRetriever struct {
	embed EmbeddingClient
	store Store
	topK  int
}

// NewTopicRetriever creates a retriever over the given store. topK <= 0
// selects the default.
func NewTopicRetriever(embed EmbeddingClient, store Store, topK int) *TopicRetriever {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &TopicRetriever{embed: embed, store: store, topK: topK}
}

// Retrieve embeds the topic, runs a similarity search, and returns the
// matching chunk texts, most relevant first.
func (r *TopicRetriever) Retrieve(ctx context.Context, topic string) ([]string, error) {
	vectors, err := r.embed.Embed(ctx, []string{topic})
	if err != nil {
		return nil, fmt.Errorf("embed topic: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embed topic: empty response")
	}

	results, err := r.store.Search(ctx, vectors[0], r.topK)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	chunks := make([]string, len(results))
	for i, res := range results {
		chunks[i] = res.Content
	}
	return chunks, nil
}
