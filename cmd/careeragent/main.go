// Command careeragent is the career assistance CLI: retrieval-grounded
// learning roadmaps, job market analysis and resume matching.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/adapters/driven/config/file"
	embgemini "github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/adapters/driven/embedding/gemini"
	llmgemini "github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/adapters/driven/llm/gemini"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/adapters/driven/scrape"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/adapters/driven/storage/filesystem"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/adapters/driven/storage/sqlite"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/adapters/driving/cli"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/chunker"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/config"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/ports/driven"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/services"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/logger"
)

func main() {
	cli.SetBuilder(buildServices)
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildServices wires the full service graph from configuration.
// Called lazily by the CLI on the first command that needs services.
func buildServices(configPath string) (cli.Services, error) {
	ctx := context.Background()

	cfg, err := config.Load(configPath)
	if err != nil {
		return cli.Services{}, err
	}

	docStore, err := filesystem.NewDocStore(cfg.DataDir)
	if err != nil {
		return cli.Services{}, fmt.Errorf("open document store: %w", err)
	}

	metaStore, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return cli.Services{}, fmt.Errorf("open metadata store: %w", err)
	}

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return cli.Services{}, fmt.Errorf("open prompt store: %w", err)
	}

	// The embedder is required for retrieval; the LLM is optional and
	// services degrade without it.
	if cfg.GeminiAPIKey == "" {
		return cli.Services{}, fmt.Errorf("%s is not set", config.EnvGeminiAPIKey)
	}

	embedder, err := embgemini.NewEmbeddingService(ctx, embgemini.Config{
		APIKey:     cfg.GeminiAPIKey,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
	})
	if err != nil {
		return cli.Services{}, fmt.Errorf("create embedding service: %w", err)
	}

	var llm driven.LLMService
	llmService, err := llmgemini.NewLLMService(ctx, llmgemini.Config{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.LLM.Model,
	})
	if err != nil {
		logger.Warn("LLM unavailable, continuing with degraded features: %v", err)
	} else {
		llm = llmService
	}

	splitter := chunker.New(
		chunker.WithChunkSize(cfg.Retrieval.ChunkSize),
		chunker.WithOverlap(cfg.Retrieval.ChunkOverlap),
	)

	retriever := services.NewRetrieverService(
		docStore, docStore, embedder, splitter, docStore.IndexDir())

	careerSource := scrape.NewCareerScraper(cfg.Scrape.Timeout)
	jobBoard := scrape.NewJobScraper(cfg.Scrape.Timeout)

	return cli.Services{
		Roadmap:   services.NewRoadmapService(retriever, docStore, careerSource, llm, prompts, cfg.Retrieval.TopK),
		Market:    services.NewMarketService(jobBoard, metaStore, llm, prompts),
		Match:     services.NewMatchService(metaStore, embedder, llm, prompts),
		Retriever: retriever,
	}, nil
}
