package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DatasetConfig points at the disease/symptom dataset file.
type DatasetConfig struct {
	Path string `yaml:"path"`
}

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the embedding provider.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// GeneratorConfig configures the chat completion provider used by the
// dialogue controller.
type GeneratorConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// MatcherConfig tunes the retrieval pipeline.
type MatcherConfig struct {
	Threshold float64 `yaml:"threshold"`
	TopK      int     `yaml:"top_k"`
}

// RedisConfig contains connection details for a Redis session store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TTLSecs  int    `yaml:"ttl_secs"`
}

// MemoryConfig selects and configures the session store implementation.
type MemoryConfig struct {
	Type  string       `yaml:"type"`
	Redis *RedisConfig `yaml:"redis,omitempty"`
}

// DialogueConfig selects the turn protocol for the interactive chat.
type DialogueConfig struct {
	Protocol string `yaml:"protocol"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Dataset   DatasetConfig   `yaml:"dataset"`
	Embedder  EmbedderConfig  `yaml:"embedder"`
	Generator GeneratorConfig `yaml:"generator"`
	Matcher   MatcherConfig   `yaml:"matcher"`
	Memory    MemoryConfig    `yaml:"memory"`
	Dialogue  DialogueConfig  `yaml:"dialogue"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/triage/config.yaml.
// If neither exists, it writes defaults to ~/.config/triage/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "triage", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Dataset:  DatasetConfig{Path: "data/medical_dataset.json"},
		Embedder: EmbedderConfig{Type: "openai"},
		Generator: GeneratorConfig{
			APIKeyEnv:   "OPENAI_API_KEY",
			Model:       "gpt-4o-mini",
			TimeoutSecs: 60,
		},
		Matcher:  MatcherConfig{Threshold: 0.45, TopK: 5},
		Memory:   MemoryConfig{Type: "memory"},
		Dialogue: DialogueConfig{Protocol: "v1"},
	}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Dataset.Path == "" {
		cfg.Dataset.Path = "data/medical_dataset.json"
	}
	if cfg.Matcher.Threshold == 0 {
		cfg.Matcher.Threshold = 0.45
	}
	if cfg.Matcher.TopK == 0 {
		cfg.Matcher.TopK = 5
	}
	if cfg.Dialogue.Protocol == "" {
		cfg.Dialogue.Protocol = "v1"
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "openai"
	}
	if cfg.Embedder.Type == "openai" {
		if cfg.Embedder.OpenAI == nil {
			cfg.Embedder.OpenAI = &OpenAIEmbedderConfig{}
		}
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
	}
	if cfg.Generator.APIKeyEnv == "" {
		cfg.Generator.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Generator.Model == "" {
		cfg.Generator.Model = "gpt-4o-mini"
	}
	if cfg.Generator.TimeoutSecs == 0 {
		cfg.Generator.TimeoutSecs = 60
	}
	if cfg.Memory.Type == "" {
		cfg.Memory.Type = "memory"
	}
	if cfg.Memory.Type == "redis" && cfg.Memory.Redis != nil && cfg.Memory.Redis.Addr == "" {
		cfg.Memory.Redis.Addr = "localhost:6379"
	}
}
