package quizbot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Vector.Host != "localhost" {
		t.Errorf("vector host = %q, want localhost", cfg.Vector.Host)
	}
	if cfg.Vector.Port != 6334 {
		t.Errorf("vector port = %d, want 6334", cfg.Vector.Port)
	}
	if cfg.Vector.Collection != "quizbot" {
		t.Errorf("collection = %q, want quizbot", cfg.Vector.Collection)
	}
	if cfg.Vector.TopK != 4 {
		t.Errorf("top_k = %d, want 4", cfg.Vector.TopK)
	}
	if cfg.DB.Path != "./quiz.db" {
		t.Errorf("db path = %q, want ./quiz.db", cfg.DB.Path)
	}
	if cfg.Web.Addr != ":8180" {
		t.Errorf("web addr = %q, want :8180", cfg.Web.Addr)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("QUIZBOT_VECTOR_HOST", "qdrant.internal")
	t.Setenv("QUIZBOT_VECTOR_PORT", "6400")
	t.Setenv("QUIZBOT_OPENAI_API_KEY", "sk-from-env")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Vector.Host != "qdrant.internal" {
		t.Errorf("vector host = %q, want qdrant.internal", cfg.Vector.Host)
	}
	if cfg.Vector.Port != 6400 {
		t.Errorf("vector port = %d, want 6400", cfg.Vector.Port)
	}
	if cfg.OpenAI.APIKey != "sk-from-env" {
		t.Errorf("api key = %q, want sk-from-env", cfg.OpenAI.APIKey)
	}
}

func TestLoadConfigPlainOpenAIKeyFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-plain")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-plain" {
		t.Errorf("api key = %q, want sk-plain", cfg.OpenAI.APIKey)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `openai:
  model: gpt-4o-mini
vector:
  host: example.com
  top_k: 8
web:
  addr: ":9000"
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", cfg.OpenAI.Model)
	}
	if cfg.Vector.Host != "example.com" {
		t.Errorf("vector host = %q, want example.com", cfg.Vector.Host)
	}
	if cfg.Vector.TopK != 8 {
		t.Errorf("top_k = %d, want 8", cfg.Vector.TopK)
	}
	if cfg.Web.Addr != ":9000" {
		t.Errorf("web addr = %q, want :9000", cfg.Web.Addr)
	}
	// Unset keys keep their defaults.
	if cfg.Vector.Port != 6334 {
		t.Errorf("vector port = %d, want default 6334", cfg.Vector.Port)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
