package main

import (
	"context"
	"os"

	"ai-coursekb-be/internal/config"
	"ai-coursekb-be/internal/pkg/logger"
	"ai-coursekb-be/internal/repository/unitofwork"
	"ai-coursekb-be/internal/service"
	"ai-coursekb-be/pkg/database"
	"ai-coursekb-be/pkg/embedding"
	"ai-coursekb-be/pkg/lexical"
	"ai-coursekb-be/pkg/retrieval"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Usage: go run ./cmd/diagnose_retrieval <session_id> <query...>
// Prints the fused ranking with per-chunk semantic, lexical, and hybrid
// scores so weight tuning can be done against real data.
func main() {
	if len(os.Args) < 3 {
		color.Red("Usage: diagnose_retrieval <session_id> <query>")
		os.Exit(1)
	}

	sessionId, err := uuid.Parse(os.Args[1])
	if err != nil {
		color.Red("Invalid session id: %v", err)
		os.Exit(1)
	}
	queryText := os.Args[2]

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	embedder, err := embedding.NewProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		color.Red("Failed to initialize embedding provider: %v", err)
		os.Exit(1)
	}

	uowFactory := unitofwork.NewRepositoryFactory(db)
	source := service.NewGormChunkSource(uowFactory)
	tokenizer := lexical.NewTokenizer()
	diagLogger := logger.NewIsolatedLogger("logs/diagnose_retrieval.log")
	engine := retrieval.NewEngine(embedder, source, tokenizer, diagLogger)

	color.Cyan("Retrieval diagnosis for session %s", sessionId)
	color.Cyan("Query: %q\n", queryText)

	for _, weight := range []float64{0.0, 0.3, 0.5, 1.0} {
		color.Yellow("\n--- lexical_weight = %.1f ---", weight)

		res, err := engine.Search(context.Background(), retrieval.Query{
			SessionId:     sessionId,
			Text:          queryText,
			TopK:          10,
			LexicalWeight: weight,
		})
		if err != nil {
			color.Red("Search failed: %v", err)
			continue
		}
		if res.Degraded {
			color.Red("Degraded: %s", res.DegradedReason)
		}

		for i, chunk := range res.Chunks {
			color.Green("%2d. hybrid=%.4f sem=%.4f lex=%.4f  %s",
				i+1, chunk.HybridScore, chunk.SemanticScore, chunk.LexicalScore, chunk.SourceFile)
			preview := chunk.Text
			if len(preview) > 120 {
				preview = preview[:120] + "..."
			}
			color.White("    %s", preview)
		}
	}
}
