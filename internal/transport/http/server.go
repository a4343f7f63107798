package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"docportal/internal/ai"
	appsvc "docportal/internal/app"
	"docportal/internal/bootstrap"
	"docportal/internal/cache"
	"docportal/internal/loader"
	rabbitmqClient "docportal/internal/platform/rabbitmq"
	"docportal/internal/repository"
	"docportal/internal/transport/http/handler"
	"docportal/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.MaxMultipartMemory = app.Config.MaxUploadBytes()

	userRepo := repository.NewUserRepository(app.MySQL)
	sessionRepo := repository.NewSessionRepository(app.MySQL)
	docRepo := repository.NewDocumentRepository(app.MySQL)
	chunkRepo := repository.NewChunkRepository(app.MySQL)
	messageRepo := repository.NewMessageRepository(app.MySQL)

	llm := app.Config.LLM
	client := ai.NewOpenAICompatibleClient()
	embedder := ai.NewTextEmbedder(client, ai.EmbeddingConfig{
		BaseURL: llm.BaseURL,
		APIKey:  llm.APIKey,
		Model:   llm.EmbeddingModel,
	})
	completer := ai.NewChatCompleter(client, ai.ChatConfig{
		BaseURL: llm.BaseURL,
		APIKey:  llm.APIKey,
		Model:   llm.Model,
	})
	describer := ai.NewVisionDescriber(client, ai.VisionConfig{
		BaseURL:   llm.BaseURL,
		APIKey:    llm.APIKey,
		Model:     llm.VisionModel,
		MaxTokens: llm.VisionMaxTokens,
	})

	docLoader := loader.New(app.Logger, describer)
	publisher := rabbitmqClient.NewMessagePublisher(app.MQConn, app.Config.RabbitMQ.MessagePersistQueue)
	historyCache := cache.NewHistoryCache(app.Redis, time.Duration(app.Config.Redis.HistoryTTLSeconds)*time.Second)

	indexService := appsvc.NewIndexService(
		sessionRepo,
		docRepo,
		chunkRepo,
		messageRepo,
		docLoader,
		embedder,
		completer,
		publisher,
		historyCache,
		app.Logger,
		appsvc.IndexOptions{
			TopK:         app.Config.Storage.TopK,
			ChunkSize:    app.Config.Storage.ChunkSize,
			ChunkOverlap: app.Config.Storage.ChunkOverlap,
			MaxContext:   llm.MaxContextMessage,
		},
	)
	analyzeService := appsvc.NewAnalyzeService(docLoader, completer, app.Logger)
	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)

	baseDir := app.Config.Storage.BaseDir
	maxBytes := app.Config.MaxUploadBytes()
	healthHandler := handler.NewHealthHandler(app)
	portalHandler := handler.NewPortalHandler(analyzeService, baseDir, maxBytes)
	chatHandler := handler.NewChatHandler(indexService, baseDir, maxBytes)
	authHandler := handler.NewAuthHandler(authService)
	sessionHandler := handler.NewSessionHandler(indexService)

	router.StaticFile("/", "web/index.html")
	router.GET("/health", healthHandler.Status)
	router.GET("/healthz", healthHandler.Check)

	router.POST("/analyze", portalHandler.Analyze)
	router.POST("/compare", portalHandler.Compare)
	router.POST("/chat/index", chatHandler.Index)
	router.POST("/chat/query", chatHandler.Query)

	v1 := router.Group("/api/v1")
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", middleware.AuthJWT(app.Config.Auth.JWTSecret), authHandler.Me)

	sessionGroup := v1.Group("/sessions")
	sessionGroup.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	sessionGroup.GET("", sessionHandler.List)
	sessionGroup.GET("/:session_id/documents", sessionHandler.Documents)
	sessionGroup.DELETE("/:session_id", sessionHandler.Delete)

	return router
}
