package main

import (
	"context"
	"errors"
	"os"

	"reianalyst-backend/handlers"
	"reianalyst-backend/llm"
	"reianalyst-backend/search"
	"reianalyst-backend/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	if err := godotenv.Load(); err != nil {
		_ = godotenv.Load("../../.env")
	}

	logger := initLogger()
	defer logger.Sync()

	// Underwriting policy and router rules are overridable from JSON
	// files; missing files mean built-in defaults.
	underwriting := loadUnderwriting(logger)
	routerRules := loadRouterRules(logger)

	// Initialize retrieval client
	searcher, err := search.NewSearcherFromEnv()
	if err != nil {
		logger.Fatal("Failed to initialize search provider", zap.Error(err))
	}

	// Initialize response generator. A missing credential is a service
	// level misconfiguration: the server still boots, and the assistant
	// endpoint answers 5xx until the key is supplied.
	generator, err := llm.NewGeneratorFromEnv(context.Background())
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			logger.Warn("Generation API key not set, assistant endpoint disabled")
		} else {
			logger.Fatal("Failed to initialize generator", zap.Error(err))
		}
	}

	// Initialize services
	analystService := service.NewAnalystService(
		service.WithUnderwriting(underwriting),
	)

	chatOpts := []service.ChatServiceOption{
		service.ChatWithRouter(service.NewQueryRouter(routerRules)),
		service.ChatWithSearcher(searcher),
		service.ChatWithLogger(logger),
	}
	if generator != nil {
		chatOpts = append(chatOpts, service.ChatWithGenerator(generator))
	}
	chatService := service.NewChatService(chatOpts...)

	// Initialize handlers
	analystHandler := handlers.NewAnalystHandler(analystService, logger)
	chatHandler := handlers.NewChatHandler(chatService, logger)

	// Setup Gin router
	r := gin.Default()

	// The dashboard is served from arbitrary origins; allow all and
	// answer preflight requests.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "X-Client-Info", "Apikey"},
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		api.POST("/analyze", analystHandler.AnalyzeProperty)
		api.POST("/assistant", chatHandler.Assistant)
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("Server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func initLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	if os.Getenv("LOG_LEVEL") == "debug" {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

func loadUnderwriting(logger *zap.Logger) service.Underwriting {
	path := os.Getenv("UNDERWRITING_CONFIG")
	if path == "" {
		return service.DefaultUnderwriting()
	}
	u, err := service.LoadUnderwritingFromFile(path)
	if err != nil {
		logger.Warn("Failed to load underwriting config, using defaults", zap.Error(err))
	}
	return u
}

func loadRouterRules(logger *zap.Logger) []service.RouterRule {
	path := os.Getenv("ROUTER_RULES")
	if path == "" {
		return service.DefaultRouterRules()
	}
	rules, err := service.LoadRouterRulesFromFile(path)
	if err != nil {
		logger.Warn("Failed to load router rules, using defaults", zap.Error(err))
	}
	return rules
}
