package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"quizbot"
	"quizbot/vectorstore"
)

// Ingests extracted document text into the vector store. PDF text
// extraction happens upstream (e.g. pdftotext); this command consumes the
// resulting text files.
func main() {
	var (
		configPath = flag.String("config", "", "Path to config file (default: ./config.yaml if present)")
		chunkSize  = flag.Int("chunk-size", 1000, "Maximum chunk size in characters")
		overlap    = flag.Int("overlap", 100, "Chunk overlap in characters")
		verbose    = flag.Bool("verbose", false, "Enable verbose debugging output")
	)
	flag.Parse()

	quizbot.SetVerbose(*verbose)

	files := flag.Args()
	if len(files) == 0 {
		log.Fatal("No input files. Usage: ingest [flags] file.txt ...")
	}

	cfg, err := quizbot.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.OpenAI.APIKey == "" {
		log.Fatal("OpenAI API key is required. Set QUIZBOT_OPENAI_API_KEY or OPENAI_API_KEY.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	store, err := vectorstore.NewQdrant(ctx, cfg.Vector.Host, cfg.Vector.Port, cfg.Vector.Collection)
	if err != nil {
		log.Fatalf("Failed to connect to vector store: %v", err)
	}
	defer store.Close()

	embedder := vectorstore.NewOpenAIEmbedder(cfg.OpenAI.APIKey, cfg.OpenAI.EmbedModel)

	// Embed a probe to learn the model's vector dimension before creating
	// the collection.
	probe, err := embedder.Embed(ctx, []string{"dimension probe"})
	if err != nil || len(probe) == 0 {
		log.Fatalf("Failed to probe embedding dimension: %v", err)
	}
	if err := store.EnsureCollection(ctx, len(probe[0])); err != nil {
		log.Fatalf("Failed to ensure collection: %v", err)
	}

	splitter := &vectorstore.Splitter{
		Separator: ".",
		ChunkSize: *chunkSize,
		Overlap:   *overlap,
	}
	indexer := vectorstore.NewIndexer(embedder, store, splitter)

	total := 0
	for _, file := range files {
		text, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", file, err)
		}

		n, err := indexer.IndexDocument(ctx, filepath.Base(file), string(text))
		if err != nil {
			log.Fatalf("Failed to index %s: %v", file, err)
		}
		log.Printf("Indexed %s: %d chunks", file, n)
		total += n
	}

	log.Printf("Total chunks indexed: %d", total)
}
