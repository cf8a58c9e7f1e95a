package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clipstream/pkg/cache"
	"clipstream/pkg/config"
	"clipstream/pkg/database"
	"clipstream/pkg/jwt"
	"clipstream/pkg/logger"
	"clipstream/pkg/middleware"
	"clipstream/pkg/queue"
	socialHTTP "clipstream/services/social/internal/controller/http"
	"clipstream/services/social/internal/repo/persistent"
	"clipstream/services/social/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (counters fall back to the database)", err)
		redisClient = nil
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil
	}

	jwtService := jwt.NewServiceWithTTL(
		cfg.JWTSecret,
		time.Duration(cfg.AccessTokenTTLMin)*time.Minute,
		time.Duration(cfg.RefreshTokenTTLMin)*time.Minute,
	)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		jwtService:  jwtService,
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	likeRepo := persistent.NewLikeRepository(a.db)
	subscriptionRepo := persistent.NewSubscriptionRepository(a.db)
	commentRepo := persistent.NewCommentRepository(a.db)
	tweetRepo := persistent.NewTweetRepository(a.db)
	contentRepo := persistent.NewContentRepository(a.db)

	likeUseCase := usecase.NewLikeUseCase(likeRepo, commentRepo, tweetRepo, contentRepo, a.redisClient, a.queueClient, a.log)
	subscriptionUseCase := usecase.NewSubscriptionUseCase(subscriptionRepo, contentRepo, a.redisClient, a.queueClient, a.log)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, contentRepo, a.queueClient, a.log)
	tweetUseCase := usecase.NewTweetUseCase(tweetRepo, contentRepo)

	socialHandler := socialHTTP.NewSocialHandler(likeUseCase, subscriptionUseCase, commentUseCase, tweetUseCase)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		api.GET("/videos/:videoId/comments", socialHandler.ListComments)
		api.GET("/users/:userId/tweets", socialHandler.GetUserTweets)
		api.GET("/likes/:kind/:id/count", socialHandler.GetLikeCount)
		api.GET("/channels/:channelId/subscribers", socialHandler.GetSubscribers)
		api.GET("/channels/:channelId/subscribers/count", socialHandler.GetSubscriberCount)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService))
		if a.redisClient != nil {
			protected.Use(middleware.RateLimitMiddleware(a.redisClient, 100, time.Minute))
		}
		{
			protected.POST("/likes/:kind/:id", socialHandler.ToggleLike)
			protected.GET("/likes/videos", socialHandler.GetLikedVideos)

			protected.POST("/subscriptions/:channelId", socialHandler.ToggleSubscription)
			protected.GET("/subscriptions/:channelId/status", socialHandler.GetSubscriptionStatus)
			protected.GET("/subscriptions", socialHandler.GetSubscriptions)

			protected.POST("/videos/:videoId/comments", socialHandler.AddComment)
			protected.PATCH("/comments/:id", socialHandler.UpdateComment)
			protected.DELETE("/comments/:id", socialHandler.DeleteComment)

			protected.POST("/tweets", socialHandler.CreateTweet)
			protected.PATCH("/tweets/:id", socialHandler.UpdateTweet)
			protected.DELETE("/tweets/:id", socialHandler.DeleteTweet)
		}
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Social service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down social service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		a.queueClient.Close()
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Social service exited")
	return nil
}
