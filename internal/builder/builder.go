package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pcforge/builder-backend/internal/api"
	buildapi "github.com/pcforge/builder-backend/internal/api/build"
	chatroomapi "github.com/pcforge/builder-backend/internal/api/chatroom"
	personalisationapi "github.com/pcforge/builder-backend/internal/api/personalisation"
	userapi "github.com/pcforge/builder-backend/internal/api/user"
	"github.com/pcforge/builder-backend/internal/config"
	"github.com/pcforge/builder-backend/internal/integration/catalog"
	"github.com/pcforge/builder-backend/internal/integration/llm"
	"github.com/pcforge/builder-backend/internal/pkg/formatter"
	"github.com/pcforge/builder-backend/internal/repository"
	"github.com/pcforge/builder-backend/internal/usecase/build"
	"github.com/pcforge/builder-backend/internal/usecase/chat"
	"github.com/pcforge/builder-backend/internal/usecase/user"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories over the document store
	docStore := repository.NewDocumentStore(db)
	buildRepo := repository.NewBuildDocStore(docStore)
	componentRepo := repository.NewComponentDocStore(docStore, cfg.CacheCfg)
	userRepo := repository.NewUserDocStore(docStore)
	chatroomRepo := repository.NewChatroomDocStore(docStore)
	personalisationRepo := repository.NewPersonalisationDocStore(docStore)
	logger.Info("Repositories initialized")

	// Initialize external service connectors (with mock support)
	var catalogConnector build.CatalogAPI
	var llmClient build.LLMClient

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		catalogConnector = catalog.NewMockConnector(logger)
		llmClient = llm.NewMockClient(logger)
	} else {
		logger.Info("Using real connectors for external services")
		catalogConnector = catalog.NewConnector(cfg.CatalogConnectorCfg, logger)
		llmClient = llm.NewOpenAIClient(cfg.LLMCfg, logger)
	}

	// Initialize use cases
	fetcher := build.NewFetcher(catalogConnector, componentRepo, cfg.StorageComponents, logger)
	allocator := build.NewAllocator(cfg.BudgetFractions)
	prompter := build.NewPrompter(llmClient, logger)
	formatters := formatter.NewFactory()

	buildUC := build.NewUsecase(
		buildRepo,
		fetcher,
		allocator,
		prompter,
		formatters,
		logger,
	)

	userUC := user.NewUsecase(userRepo, personalisationRepo, logger)

	chatUC := chat.NewUsecase(
		chatroomRepo,
		userRepo,
		personalisationRepo,
		llmClient,
		cfg.ChatCfg,
		logger,
	)
	logger.Info("Use cases initialized")

	// Setup API handlers
	buildHandler := buildapi.NewHandler(buildUC)
	userHandler := userapi.NewHandler(userUC)
	chatroomHandler := chatroomapi.NewHandler(chatUC)
	personalisationHandler := personalisationapi.NewHandler(userUC)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(buildHandler, userHandler, chatroomHandler, personalisationHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}
