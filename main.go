package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chessnerd435/study-app/config"
	"github.com/chessnerd435/study-app/internal/handlers"
	"github.com/chessnerd435/study-app/internal/middleware"
	"github.com/chessnerd435/study-app/internal/repository"
	"github.com/chessnerd435/study-app/internal/service"
	"github.com/chessnerd435/study-app/pkg/cache"
	"github.com/chessnerd435/study-app/pkg/database"
	"github.com/chessnerd435/study-app/pkg/email"
	"github.com/chessnerd435/study-app/pkg/messaging"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	log.Println("Configuration loaded")

	pgClient, err := database.NewPostgresClient(&cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	log.Println("Connected to PostgreSQL")
	defer pgClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := pgClient.InitSchema(ctx); err != nil {
		log.Printf("Warning: Failed to initialize PostgreSQL schema: %v", err)
	} else {
		log.Println("PostgreSQL schema initialized")
	}
	cancel()

	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")
	defer redisClient.Close()

	rabbitClient, err := messaging.NewRabbitMQClient(&cfg.RabbitMQ)
	if err != nil {
		log.Printf("Warning: Failed to connect to RabbitMQ: %v", err)
		rabbitClient = nil
	} else {
		log.Println("Connected to RabbitMQ")
		defer rabbitClient.Close()
	}

	smtpClient := email.NewSMTPClient(&cfg.SMTP)
	log.Println("SMTP client initialized")

	db := pgClient.GetDB()
	profileRepo := repository.NewProfileRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	authRepo := repository.NewAuthRepository(redisClient, db)
	draftRepo := repository.NewDraftRepository(redisClient)
	attemptRepo := repository.NewAttemptRepository(redisClient)

	var publisher service.EventPublisher
	if rabbitClient != nil {
		publisher = rabbitClient
	}

	authService := service.NewAuthService(profileRepo, authRepo, publisher, &cfg.Auth)
	quizService := service.NewQuizService(quizRepo)
	draftService := service.NewDraftService(draftRepo, quizRepo, profileRepo, publisher)
	attemptService := service.NewAttemptService(attemptRepo, quizRepo, authService, publisher)

	if rabbitClient != nil {
		log.Println("Starting RabbitMQ consumers...")
		notifier := service.NewNotifier(rabbitClient, smtpClient)
		notifier.Start(context.Background())
	}

	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService)
	draftHandler := handlers.NewDraftHandler(draftService)
	attemptHandler := handlers.NewAttemptHandler(attemptService)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "study-app",
		})
	})

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", authHandler.SignUp)
		authGroup.POST("/login", authHandler.SignIn)
		authGroup.POST("/google", authHandler.GoogleSignIn)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	authProtected := router.Group("/auth")
	authProtected.Use(middleware.JWTAuth(cfg.Auth.JWTSecret, authService))
	{
		authProtected.POST("/logout", authHandler.Logout)
	}

	profilesGroup := router.Group("/profiles")
	profilesGroup.Use(middleware.JWTAuth(cfg.Auth.JWTSecret, authService))
	{
		profilesGroup.GET("/me", profileHandler.Me)
	}

	quizzesGroup := router.Group("/quizzes")
	quizzesGroup.Use(middleware.JWTAuth(cfg.Auth.JWTSecret, authService))
	{
		quizzesGroup.GET("", quizHandler.ListPublic)
		quizzesGroup.GET("/mine", quizHandler.ListMine)
		quizzesGroup.GET("/:id", quizHandler.Get)
		quizzesGroup.POST("/:id/attempts", attemptHandler.Start)
	}

	draftsGroup := router.Group("/drafts")
	draftsGroup.Use(middleware.JWTAuth(cfg.Auth.JWTSecret, authService))
	{
		draftsGroup.GET("", draftHandler.Get)
		draftsGroup.POST("", draftHandler.Reset)
		draftsGroup.POST("/questions", draftHandler.AddQuestion)
		draftsGroup.PUT("/questions/:index", draftHandler.UpdateQuestion)
		draftsGroup.DELETE("/questions/:index", draftHandler.RemoveQuestion)
		draftsGroup.POST("/questions/:index/toggle", draftHandler.ToggleQuestion)
		draftsGroup.POST("/submit", draftHandler.Submit)
	}

	attemptsGroup := router.Group("/attempts")
	attemptsGroup.Use(middleware.JWTAuth(cfg.Auth.JWTSecret, authService))
	{
		attemptsGroup.GET("/:id", attemptHandler.Get)
		attemptsGroup.POST("/:id/answer", attemptHandler.SubmitAnswer)
		attemptsGroup.POST("/:id/next", attemptHandler.Next)
		attemptsGroup.POST("/:id/retry", attemptHandler.Retry)
	}

	httpAddr := ":" + cfg.Server.HTTPPort
	log.Printf("Study backend starting on port %s...", cfg.Server.HTTPPort)
	go func() {
		if err := router.Run(httpAddr); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Study backend stopped")
}
