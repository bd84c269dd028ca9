package quizbot

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	OpenAI OpenAIConfig `mapstructure:"openai"`
	Vector VectorConfig `mapstructure:"vector"`
	DB     DBConfig     `mapstructure:"db"`
	Web    WebConfig    `mapstructure:"web"`
}

type OpenAIConfig struct {
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	EmbedModel string `mapstructure:"embed_model"`
}

type VectorConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Collection string `mapstructure:"collection"`
	TopK       int    `mapstructure:"top_k"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type WebConfig struct {
	Addr          string `mapstructure:"addr"`
	SessionSecret string `mapstructure:"session_secret"`
}

// LoadConfig reads configuration from the given YAML file (optional) with
// QUIZBOT_* environment variables taking precedence. An empty path falls
// back to config.yaml in the working directory if present.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "")
	v.SetDefault("openai.embed_model", "")
	v.SetDefault("vector.host", "localhost")
	v.SetDefault("vector.port", 6334)
	v.SetDefault("vector.collection", "quizbot")
	v.SetDefault("vector.top_k", 4)
	v.SetDefault("db.path", "./quiz.db")
	v.SetDefault("web.addr", ":8180")
	v.SetDefault("web.session_secret", "")

	v.SetEnvPrefix("QUIZBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The plain OpenAI variable still works when no prefixed one is set.
	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return &cfg, nil
}
