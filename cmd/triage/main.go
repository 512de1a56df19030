package main

import (
	"context"
	"flag"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/RudrakshSJoshi/graph-diagnosis/internal/catalog"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/config"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/dialogue"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/embedding"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/embedding/openai"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/engine"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/llm"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/matcher"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/memory"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/memory/local"
	memredis "github.com/RudrakshSJoshi/graph-diagnosis/internal/memory/redis"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/triage/config.yaml if not provided)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Assemble components
	var emb embedding.Embedder
	switch cfg.Embedder.Type {
	case "openai", "":
		client, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		emb = client
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	records, err := catalog.Load(cfg.Dataset.Path)
	if err != nil {
		log.Printf("dataset unavailable, continuing with an empty catalog: %v", err)
	}
	index, err := catalog.BuildIndex(context.Background(), records, emb)
	if err != nil {
		log.Fatalf("failed to build symptom index: %v", err)
	}

	generator := llm.NewOpenAIClient(llm.Config{
		BaseURL:     cfg.Generator.BaseURL,
		APIKeyEnv:   cfg.Generator.APIKeyEnv,
		Model:       cfg.Generator.Model,
		Temperature: cfg.Generator.Temperature,
		Timeout:     time.Duration(cfg.Generator.TimeoutSecs) * time.Second,
	})

	var store memory.Store
	switch cfg.Memory.Type {
	case "memory", "":
		store = local.NewStore()
	case "redis":
		if cfg.Memory.Redis == nil {
			log.Fatalf("redis memory config missing")
		}
		rs := memredis.NewStore(memredis.Options{
			Addr:     cfg.Memory.Redis.Addr,
			Password: cfg.Memory.Redis.Password,
			DB:       cfg.Memory.Redis.DB,
			TTL:      time.Duration(cfg.Memory.Redis.TTLSecs) * time.Second,
		})
		if err := rs.Ping(context.Background()); err != nil {
			log.Fatalf("redis unavailable: %v", err)
		}
		defer rs.Close()
		store = rs
	default:
		log.Fatalf("unknown memory store: %s", cfg.Memory.Type)
	}

	eng := engine.New(index, matcher.New(emb))
	controller := dialogue.New(eng, generator, store,
		dialogue.WithTopK(cfg.Matcher.TopK),
		dialogue.WithThreshold(cfg.Matcher.Threshold),
	)

	protocol := tui.Protocol(cfg.Dialogue.Protocol)
	sessionID := uuid.NewString()
	m := tui.New(controller, protocol, sessionID)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
