package vectorstore

import (
	"context"
	"errors"
	"testing"
)

// fakeEmbedder maps each text to a fixed vector.
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, ok := f.vectors[text]
		if !ok {
			vec = []float32{0, 0}
		}
		out[i] = vec
	}
	return out, nil
}

func TestRetrieveReturnsMostRelevantChunks(t *testing.T) {
	store := NewMemoryStore()
	store.Upsert(context.Background(), []Document{
		{ID: "1", Content: "goroutines are lightweight", Vector: []float32{1, 0}},
		{ID: "2", Content: "sqlite is a file database", Vector: []float32{0, 1}},
		{ID: "3", Content: "channels connect goroutines", Vector: []float32{0.8, 0.2}},
	})

	embed := &fakeEmbedder{vectors: map[string][]float32{
		"concurrency": {1, 0},
	}}
	retriever := NewTopicRetriever(embed, store, 2)

	chunks, err := retriever.Retrieve(context.Background(), "concurrency")
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[0] != "goroutines are lightweight" {
		t.Errorf("first chunk = %q", chunks[0])
	}
	if chunks[1] != "channels connect goroutines" {
		t.Errorf("second chunk = %q", chunks[1])
	}
}

func TestRetrieveEmbedError(t *testing.T) {
	wantErr := errors.New("api down")
	retriever := NewTopicRetriever(&fakeEmbedder{err: wantErr}, NewMemoryStore(), 0)

	_, err := retriever.Retrieve(context.Background(), "anything")
	if !errors.Is(err, wantErr) {
		t.Errorf("got %v, want wrapped %v", err, wantErr)
	}
}

func TestRetrieverDefaultTopK(t *testing.T) {
	r := NewTopicRetriever(&fakeEmbedder{}, NewMemoryStore(), 0)
	if r.topK != defaultTopK {
		t.Errorf("topK = %d, want %d", r.topK, defaultTopK)
	}
	r = NewTopicRetriever(&fakeEmbedder{}, NewMemoryStore(), 7)
	if r.topK != 7 {
		t.Errorf("topK = %d, want 7", r.topK)
	}
}

func TestIndexDocument(t *testing.T) {
	store := NewMemoryStore()
	embed := &fakeEmbedder{vectors: map[string][]float32{}}
	indexer := NewIndexer(embed, store, &Splitter{Separator: ".", ChunkSize: 20, Overlap: 8})

	n, err := indexer.IndexDocument(context.Background(), "notes.txt", "aaaa. bbbb. cccc. dddd.")
	if err != nil {
		t.Fatalf("IndexDocument: %v", err)
	}
	if n != 2 {
		t.Errorf("chunks stored = %d, want 2", n)
	}
	if store.Size() != 2 {
		t.Errorf("store size = %d, want 2", store.Size())
	}

	results, err := store.Search(context.Background(), []float32{0, 0}, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, res := range results {
		if res.Metadata["source"] != "notes.txt" {
			t.Errorf("metadata source = %q, want notes.txt", res.Metadata["source"])
		}
		if res.ID == "" {
			t.Error("document stored without an ID")
		}
	}
}

func TestIndexDocumentEmptyText(t *testing.T) {
	store := NewMemoryStore()
	indexer := NewIndexer(&fakeEmbedder{}, store, nil)

	n, err := indexer.IndexDocument(context.Background(), "empty.txt", "   ")
	if err != nil {
		t.Fatalf("IndexDocument: %v", err)
	}
	if n != 0 || store.Size() != 0 {
		t.Errorf("n = %d, size = %d, want 0, 0", n, store.Size())
	}
}
