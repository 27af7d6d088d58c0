package bootstrap

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"ai-tutor-be/internal/config"
	"ai-tutor-be/internal/controller"
	"ai-tutor-be/internal/model"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/pkg/mailer"
	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/internal/repository/implementation"
	"ai-tutor-be/internal/repository/memory"
	redisrepo "ai-tutor-be/internal/repository/redis"
	"ai-tutor-be/internal/service"
	"ai-tutor-be/pkg/ai/router"
	"ai-tutor-be/pkg/chatbot"
	"ai-tutor-be/pkg/database"
	"ai-tutor-be/pkg/events"
	"ai-tutor-be/pkg/llm/factory"
	"ai-tutor-be/pkg/rag/corpus"
	"ai-tutor-be/pkg/rag/intent"
	"ai-tutor-be/pkg/rag/matcher"
	"ai-tutor-be/pkg/rag/session"
	"ai-tutor-be/pkg/rag/watcher"
	"ai-tutor-be/pkg/tools/calculator"
	"ai-tutor-be/pkg/tools/todo"
	"ai-tutor-be/pkg/tools/weather"
	"ai-tutor-be/pkg/tools/websearch"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	ChatController   controller.IChatController
	CorpusController controller.ICorpusController

	// Services (the terminal shell talks to these directly)
	ChatService    service.IChatService
	ReindexService service.IReindexService

	Matcher *matcher.Matcher
	// Watcher is nil when DOCS_WATCH=false
	Watcher *watcher.Watcher

	closers []func() error
}

// NewContainer wires every dependency. db may be nil, the todo list then
// lives in memory.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.ILogger) (*Container, error) {
	c := &Container{Logger: log}

	// 1. Corpus and retrieval
	loader := corpus.NewDirectoryLoader(cfg.Corpus.DocsDir, cfg.Corpus.Extensions...)
	matchCfg := matcher.DefaultConfig()
	matchCfg.Threshold = cfg.Corpus.TrustThreshold
	matchCfg.TitleWeight = cfg.Corpus.TitleWeight
	matchCfg.KeywordWeight = cfg.Corpus.KeywordWeight
	c.Matcher = matcher.New(matchCfg, nil)

	// 2. Reindex bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, pubSub.Close)
	publisher := service.NewPublisherService(events.TopicCorpus, pubSub)
	c.ReindexService = service.NewReindexService(pubSub, publisher, events.TopicCorpus, c.Matcher, loader, log)

	if cfg.Corpus.Watch {
		c.Watcher = watcher.New(cfg.Corpus.DocsDir, cfg.Corpus.WatchDebounce, loader.Supports,
			func(ctx context.Context, paths []string) {
				if err := c.ReindexService.RequestReindex(ctx, events.ReasonWatcher, paths); err != nil {
					log.Error("WATCHER", "Failed to queue reindex", map[string]interface{}{"error": err.Error()})
				}
			}, log)
	}

	// 3. Sessions
	sessionRepo, err := newSessionRepository(cfg.Session, c)
	if err != nil {
		return nil, err
	}
	sessions := session.NewManager(sessionRepo, cfg.Session.HistoryLimit)

	// 4. Tools
	var taskRepo contract.TaskRepository = memory.NewTaskRepository()
	if db != nil {
		if err := database.Migrate(db, &model.Task{}); err != nil {
			return nil, fmt.Errorf("migrate todo tasks: %w", err)
		}
		taskRepo = implementation.NewTaskRepository(db)
	}

	handlers := router.Handlers{
		Calculator: calculator.New(),
		Weather: weather.NewClient(weather.Config{
			UserAgent:   cfg.Tools.UserAgent,
			DefaultCity: cfg.Tools.WeatherDefaultCity,
			Timeout:     cfg.Tools.HandlerTimeout,
		}),
		WebSearch: websearch.NewClient(websearch.Config{
			Region:     cfg.Tools.WebRegion,
			MaxResults: cfg.Tools.WebMaxResults,
			UserAgent:  cfg.Tools.UserAgent,
			Timeout:    cfg.Tools.HandlerTimeout,
		}),
		Todo:   todo.NewService(taskRepo, log),
		Mailer: mailer.NewEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Email, cfg.SMTP.Password, senderAddress(cfg.SMTP), log),
	}

	provider, err := factory.NewLLMProvider(factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  llmBaseURL(cfg.Ai),
		APIKey:   cfg.Ai.HuggingFaceKey,
		Timeout:  cfg.Ai.Timeout,
	})
	if err != nil {
		// smalltalk answers with a handler failure until the provider is fixed
		log.Warn("BOOTSTRAP", "LLM provider unavailable, smalltalk disabled", map[string]interface{}{"error": err.Error()})
	} else {
		handlers.Smalltalk = chatbot.NewSmalltalk(provider, log)
	}

	// 5. Router and services
	r := router.NewRouter(
		intent.NewClassifier(),
		c.Matcher,
		handlers,
		router.Config{
			HandlerTimeout: cfg.Tools.HandlerTimeout,
			WebMaxResults:  cfg.Tools.WebMaxResults,
			MaxAnswerChars: cfg.Corpus.MaxAnswerChars,
		},
		log,
	)
	c.ChatService = service.NewChatService(sessions, r, log)

	// 6. Controllers
	c.ChatController = controller.NewChatController(c.ChatService)
	c.CorpusController = controller.NewCorpusController(c.ReindexService)

	return c, nil
}

// Close releases the bus and the redis client
func (c *Container) Close() error {
	var first error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func newSessionRepository(cfg config.SessionConfig, c *Container) (contract.SessionRepository, error) {
	switch cfg.Store {
	case "", "memory":
		return memory.NewSessionRepository(cfg.TTL), nil
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		c.closers = append(c.closers, rdb.Close)
		return redisrepo.NewSessionRepository(rdb, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unsupported session store: %s", cfg.Store)
	}
}

func senderAddress(cfg config.SMTPConfig) string {
	if cfg.Email == "" {
		return ""
	}
	return (&mail.Address{Name: cfg.SenderName, Address: cfg.Email}).String()
}

func llmBaseURL(cfg config.AIConfig) string {
	if cfg.LLMProvider == "huggingface" {
		return cfg.HuggingFaceURL
	}
	return cfg.OllamaBaseURL
}
