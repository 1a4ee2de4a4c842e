package bootstrap

import (
	"context"
	"fmt"
	"log"

	"ai-ragchat-be/internal/config"
	"ai-ragchat-be/internal/controller"
	"ai-ragchat-be/internal/pkg/logger"
	"ai-ragchat-be/internal/repository/memory"
	"ai-ragchat-be/internal/repository/postgres"
	redisRepo "ai-ragchat-be/internal/repository/redis"
	"ai-ragchat-be/internal/repository/unitofwork"
	"ai-ragchat-be/internal/service"
	"ai-ragchat-be/internal/websocket"
	"ai-ragchat-be/pkg/embedding"
	"ai-ragchat-be/pkg/events"
	"ai-ragchat-be/pkg/llm"
	"ai-ragchat-be/pkg/llm/factory"
	"ai-ragchat-be/pkg/rag"
	"ai-ragchat-be/pkg/rag/executor"
	"ai-ragchat-be/pkg/rag/history"
	"ai-ragchat-be/pkg/rag/prompt"
	"ai-ragchat-be/pkg/rag/rephrase"
	"ai-ragchat-be/pkg/rag/response"
	"ai-ragchat-be/pkg/rag/retrieval"
	"ai-ragchat-be/pkg/rag/search"

	pktNats "ai-ragchat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	containerModule = "BOOTSTRAP"
	// Each instance reads turn events with its own ordered consumer; no
	// durable name so every instance sees every turn.
	turnConsumerName = ""
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	DocumentController controller.IDocumentController

	// WebSockets
	ChatHandler  *websocket.ChatHandler
	WebSocketHub *websocket.Hub

	// Services, exposed for the cmd binaries
	ChatService     service.IChatService
	IndexingService service.IIndexingService
	ConsumerService service.IConsumerService

	Logger    logger.ILogger
	JwtSecret string

	natsSub *pktNats.Subscriber
	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger, JwtSecret: cfg.App.JwtSecret}

	// 2. AI providers
	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "gemini":
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Ai.EmbeddingProvider)
	}

	llmProvider, err := factory.NewLLMProvider(factory.ProviderConfig{
		Type:    cfg.Ai.LLMProvider,
		Model:   cfg.Ai.LLMModel,
		BaseURL: cfg.Ai.LLMBaseURL,
		APIKey:  llmAPIKey(cfg),
	})
	if err != nil {
		return nil, err
	}

	// 3. Event bus. Without NATS the hub receives turn events directly.
	wsHub := websocket.NewHub(sysLogger)
	var turnPublisher events.Publisher = wsHub
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn(containerModule, "NATS publisher unavailable, using local hub", map[string]interface{}{"error": err.Error()})
		} else {
			natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, sysLogger)
			if err != nil {
				natsPub.Close()
				sysLogger.Warn(containerModule, "NATS subscriber unavailable, using local hub", map[string]interface{}{"error": err.Error()})
			} else {
				turnPublisher = natsPub
				c.natsSub = natsSub
				c.closers = append(c.closers, natsPub.Close, natsSub.Close)
			}
		}
	}

	// 4. History
	store, err := newHistoryStore(cfg, uowFactory, c)
	if err != nil {
		return nil, err
	}
	locks := history.NewLocker()

	var window history.Window = history.Unbounded
	if cfg.Chat.HistoryMaxTurns > 0 {
		window = history.LastTurns(cfg.Chat.HistoryMaxTurns)
	}

	// 5. Pipeline
	prompts := prompt.WithCache(prompt.Chain{
		postgres.NewPromptProvider(uowFactory),
		prompt.NewDefaultRegistry(),
	}, cfg.Chat.PromptCacheTTL)

	retriever := search.NewVectorRetriever(
		embeddingProvider,
		postgres.NewPassageIndex(uowFactory),
		search.Config{TopK: cfg.Chat.RetrieverTopK, MinScore: cfg.Chat.RetrieverMinScore},
		sysLogger,
	)

	pipeline := executor.NewPipeline(
		store,
		rephrase.NewStage(rephrase.NewCompleter(llmProvider, cfg.Ai.LLMProvider, cfg.Chat.RephraseTemperature), prompts),
		retrieval.NewStage(retriever),
		response.NewStage(rag.NewCompleter(llmProvider, cfg.Ai.LLMProvider, answerOptions(cfg)...), prompts),
		executor.WithLogger(sysLogger),
		executor.WithLocker(locks),
		executor.WithWindow(window),
		executor.WithStageTimeout(cfg.Chat.StageTimeout),
		executor.WithPublisher(turnPublisher),
	)

	// 6. Indexing queue
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	publisherService := service.NewPublisherService(cfg.Chat.IndexTopicName, pubSub)
	indexingService := service.NewIndexingService(
		uowFactory,
		embeddingProvider,
		service.ChunkConfig{Size: cfg.Chat.ChunkSize, Overlap: cfg.Chat.ChunkOverlap},
		turnPublisher,
		sysLogger,
	)
	consumerService := service.NewConsumerService(pubSub, cfg.Chat.IndexTopicName, indexingService, sysLogger)

	// 7. Services & Controllers
	chatService := service.NewChatService(pipeline, store, locks)
	documentService := service.NewDocumentService(publisherService)

	c.ChatController = controller.NewChatController(chatService)
	c.DocumentController = controller.NewDocumentController(documentService)
	c.ChatHandler = websocket.NewChatHandler(wsHub, chatService, cfg.App.JwtSecret, sysLogger)
	c.WebSocketHub = wsHub
	c.ChatService = chatService
	c.IndexingService = indexingService
	c.ConsumerService = consumerService

	return c, nil
}

// Start runs the hub, the indexing consumer and, with NATS, the turn
// event fan-out until ctx is done.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)

	if err := c.ConsumerService.Consume(ctx); err != nil {
		return err
	}

	if c.natsSub != nil {
		if err := c.natsSub.Subscribe(ctx, events.TypeTurnCompleted, turnConsumerName, c.WebSocketHub.Publish); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	if err := c.Logger.Sync(); err != nil {
		log.Printf("logger sync: %v", err)
	}
}

func newHistoryStore(cfg *config.Config, uowFactory unitofwork.RepositoryFactory, c *Container) (history.Store, error) {
	switch cfg.Chat.HistoryBackend {
	case "", "memory":
		return memory.NewHistoryRepository(cfg.Chat.HistoryTTL), nil
	case "postgres":
		return postgres.NewHistoryRepository(uowFactory), nil
	case "redis":
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			c.Logger.Warn(containerModule, "Failed to parse Redis URL, using it as an address", map[string]interface{}{"error": err.Error()})
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis history backend: %w", err)
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
		return redisRepo.NewHistoryRepository(rdb, cfg.Chat.HistoryTTL), nil
	default:
		return nil, fmt.Errorf("unsupported history backend: %s", cfg.Chat.HistoryBackend)
	}
}

// answerOptions leaves temperature at the provider default.
func answerOptions(cfg *config.Config) []llm.Option {
	if cfg.Ai.LLMMaxTokens > 0 {
		return []llm.Option{llm.WithMaxTokens(cfg.Ai.LLMMaxTokens)}
	}
	return nil
}

func llmAPIKey(cfg *config.Config) string {
	switch cfg.Ai.LLMProvider {
	case "openai":
		return cfg.Keys.OpenAI
	case "huggingface":
		return cfg.Keys.HuggingFace
	default:
		return ""
	}
}
