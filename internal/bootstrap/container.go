package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-coursekb-be/internal/config"
	"ai-coursekb-be/internal/controller"
	"ai-coursekb-be/internal/pkg/logger"
	"ai-coursekb-be/internal/repository/memory"
	"ai-coursekb-be/internal/repository/unitofwork"
	"ai-coursekb-be/internal/service"
	"ai-coursekb-be/pkg/budget"
	"ai-coursekb-be/pkg/embedding"
	"ai-coursekb-be/pkg/extraction"
	"ai-coursekb-be/pkg/lexical"
	llmfactory "ai-coursekb-be/pkg/llm/factory"
	"ai-coursekb-be/pkg/retrieval"

	pktNats "ai-coursekb-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController    controller.ISessionController
	ChunkController      controller.IChunkController
	ExtractionController controller.IExtractionController
	RetrievalController  controller.IRetrievalController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	// 3. AI Providers
	embeddingProvider, err := embedding.NewProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Embedding Provider: %v", err)
	}
	log.Printf("[INFO] Using Embedding Provider: %s", cfg.Ai.EmbeddingProvider)

	if cfg.Ai.EmbeddingCache && rdb != nil {
		embeddingProvider = embedding.NewCachedProvider(embeddingProvider, rdb, cfg.Ai.OllamaModel)
		log.Printf("[INFO] Embedding cache enabled")
	}

	llmProvider, err := llmfactory.NewProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Extraction Pipeline
	limits := budget.DefaultLimits()
	for model, chars := range cfg.Extraction.ModelBudgets {
		limits[model] = chars
	}
	budgets := budget.NewManager(limits, budget.DefaultFallbackChars)

	extractionLogger := logger.NewIsolatedLogger(cfg.App.ExtractionLogPath)
	synthesizer := extraction.NewSynthesizer(llmProvider, budgets, extractionLogger)
	scheduler := extraction.NewScheduler(budgets, extraction.SchedulerConfig{
		MaxRetries:   cfg.Extraction.MaxRetries,
		RetryBackoff: time.Duration(cfg.Extraction.RetryBackoffMs) * time.Millisecond,
		Concurrency:  cfg.Extraction.Concurrency,
		AvgItemCost:  cfg.Extraction.AvgItemCost,
	}, extractionLogger)

	tokenizer := lexical.NewTokenizer()
	planner := extraction.NewPlanner(tokenizer)
	jobRepo := memory.NewJobRepository()

	// 5. Retrieval Engine
	chunkSource := service.NewGormChunkSource(uowFactory)
	engine := retrieval.NewEngine(embeddingProvider, chunkSource, tokenizer, sysLogger)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedTopic,
		uowFactory,
		embeddingProvider,
		sysLogger,
	)

	sessionService := service.NewSessionService(uowFactory)
	chunkService := service.NewChunkService(uowFactory, publisherService, natsPub, sysLogger)
	retrievalService := service.NewRetrievalService(uowFactory, engine)
	extractionService := service.NewExtractionService(
		uowFactory,
		jobRepo,
		synthesizer,
		scheduler,
		planner,
		embeddingProvider,
		natsPub,
		extractionLogger,
	)

	// 7. Controllers
	return &Container{
		SessionController:    controller.NewSessionController(sessionService),
		ChunkController:      controller.NewChunkController(chunkService),
		ExtractionController: controller.NewExtractionController(extractionService),
		RetrievalController:  controller.NewRetrievalController(retrievalService),

		ConsumerService: consumerService,
	}
}
