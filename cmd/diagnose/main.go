package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/RudrakshSJoshi/graph-diagnosis/internal/catalog"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/config"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/dialogue"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/embedding/openai"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/engine"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/llm"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/matcher"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/memory/local"
)

// diagnose runs a single examine/evaluate turn and prints the reply, useful
// for scripting and for smoke-testing a dataset without the chat UI.
func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "config.yaml", "Path to config YAML")
	flag.Parse()
	if len(flag.Args()) == 0 {
		fmt.Println("Usage: diagnose [--config=config.yaml] \"describe your symptoms\"")
		os.Exit(1)
	}
	query := strings.Join(flag.Args(), " ")

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.Embedder.OpenAI == nil {
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}
	emb, err := openai.NewClient(openai.Config{
		BaseURL:   cfg.Embedder.OpenAI.BaseURL,
		APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
		Model:     cfg.Embedder.OpenAI.Model,
		Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("openai embedder init failed: %v", err)
	}

	records, err := catalog.Load(cfg.Dataset.Path)
	if err != nil {
		log.Printf("dataset unavailable, continuing with an empty catalog: %v", err)
	}
	ctx := context.Background()
	index, err := catalog.BuildIndex(ctx, records, emb)
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

	controller := dialogue.New(engine.New(index, matcher.New(emb)), generator, local.NewStore(),
		dialogue.WithTopK(cfg.Matcher.TopK),
		dialogue.WithThreshold(cfg.Matcher.Threshold),
	)

	reply, more, err := controller.ExamineQuery(ctx, uuid.NewString(), query, true)
	if err != nil {
		log.Fatalf("turn failed: %v", err)
	}
	fmt.Println(reply)
	if more {
		fmt.Println("\n(The assistant needs more detail; run the interactive triage chat to continue.)")
	}
}
