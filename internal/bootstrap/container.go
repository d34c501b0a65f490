package bootstrap

import (
	"context"
	"log"

	"sales-crm-be/internal/config"
	"sales-crm-be/internal/controller"
	"sales-crm-be/internal/handler"
	"sales-crm-be/internal/pkg/logger"
	"sales-crm-be/internal/pkg/mailer"
	"sales-crm-be/internal/repository/memory"
	"sales-crm-be/internal/service"
	"sales-crm-be/internal/store"
	"sales-crm-be/internal/websocket"
	"sales-crm-be/pkg/analysis"
	"sales-crm-be/pkg/llm/factory"
	"sales-crm-be/pkg/ruleengine"

	pktNats "sales-crm-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	DashboardController controller.IDashboardController
	ActionController    controller.IActionController
	ChatController      controller.IChatController
	VoiceController     controller.IVoiceController

	// Background services (exposed for main.go to run)
	NotifierService service.INotifierService

	// WebSockets
	DashboardStreamHandler *handler.DashboardStreamHandler
	WebSocketHub           *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	crmStore := store.New(cfg.Store.SnapshotPath, sysLogger)
	if err := crmStore.Load(); err != nil {
		log.Fatalf("[FATAL] Failed to load CRM snapshot: %v", err)
	}

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI components
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	analyzer := analysis.NewAnalyzer(llmProvider, sysLogger)
	sessionRepo := memory.NewSessionRepository()

	// 4. Infrastructure
	// NATS bridge is optional: a missing broker only disables the external feed
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis backplane for multi-instance websocket fanout
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
	}

	wsLogger := logger.NewIsolatedLogger("logs/dashboard-stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Services
	engine := ruleengine.New(crmStore, sysLogger)
	publisherService := service.NewPublisherService(cfg.App.EventTopic, pubSub)

	accountService := service.NewAccountService(crmStore, engine, publisherService, sysLogger)
	chatService := service.NewChatService(sessionRepo, crmStore, llmProvider, sysLogger)
	voiceService := service.NewVoiceService(crmStore, accountService, analyzer, sysLogger)

	notifierService := service.NewNotifierService(
		pubSub,
		cfg.App.EventTopic,
		wsHub,
		natsPub,
		emailService,
		cfg.SMTP.ReminderEmail,
		sysLogger,
	)

	// 6. Controllers
	return &Container{
		DashboardController: controller.NewDashboardController(accountService),
		ActionController:    controller.NewActionController(accountService),
		ChatController:      controller.NewChatController(chatService),
		VoiceController:     controller.NewVoiceController(voiceService),

		NotifierService: notifierService,

		DashboardStreamHandler: handler.NewDashboardStreamHandler(wsHub, wsLogger),
		WebSocketHub:           wsHub,
	}
}
