package bootstrap

import (
	"context"
	"log"

	"ai-datachat-be/internal/config"
	"ai-datachat-be/internal/controller"
	"ai-datachat-be/internal/pkg/logger"
	"ai-datachat-be/internal/repository/contract"
	"ai-datachat-be/internal/repository/implementation"
	"ai-datachat-be/internal/repository/memory"
	"ai-datachat-be/internal/service"
	"ai-datachat-be/pkg/agent/translator"
	"ai-datachat-be/pkg/embedding"
	llmollama "ai-datachat-be/pkg/llm/ollama"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DatasetController  controller.IDatasetController
	ChatController     controller.IChatController
	CacheController    controller.ICacheController
	FeedbackController controller.IFeedbackController
	ModelController    controller.IModelController

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. AI Providers
	embeddingProvider := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)

	llmProvider := llmollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.LLMModel)
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3. Repositories
	sessionRepo := memory.NewSessionRepository()

	var cacheRepo contract.QueryCacheRepository
	switch cfg.Cache.Backend {
	case "redis":
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		cacheRepo = implementation.NewRedisCacheRepository(rdb)
		log.Printf("[INFO] Using Cache Backend: REDIS")
	default:
		cacheRepo = implementation.NewQueryCacheRepository(db)
		log.Printf("[INFO] Using Cache Backend: POSTGRES")
	}
	feedbackRepo := implementation.NewFeedbackRepository(db)

	// 4. Services
	datasetService := service.NewDatasetService(sessionRepo, embeddingProvider, sysLogger)
	cacheService := service.NewCacheService(
		cacheRepo,
		embeddingProvider,
		cfg.Cache.SimilarityThreshold,
		cfg.Cache.Backend,
		sysLogger,
	)
	queryService := service.NewQueryService(
		datasetService,
		cacheService,
		translator.NewTranslator(llmProvider),
		cfg.Ai.ContextTopK,
		sysLogger,
	)
	feedbackService := service.NewFeedbackService(feedbackRepo, datasetService)
	modelService := service.NewModelService(llmProvider, cfg.Ai.LLMProvider)

	// 5. Controllers
	return &Container{
		DatasetController:  controller.NewDatasetController(datasetService),
		ChatController:     controller.NewChatController(queryService),
		CacheController:    controller.NewCacheController(cacheService),
		FeedbackController: controller.NewFeedbackController(feedbackService),
		ModelController:    controller.NewModelController(modelService),
		Logger:             sysLogger,
	}
}
