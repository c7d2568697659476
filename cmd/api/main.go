package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/examprep-api/internal/config"
	"github.com/yourusername/examprep-api/internal/handler"
	"github.com/yourusername/examprep-api/internal/middleware"
	pgRepo "github.com/yourusername/examprep-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/examprep-api/internal/repository/redis"
	"github.com/yourusername/examprep-api/internal/service"
	"github.com/yourusername/examprep-api/internal/service/access"
	"github.com/yourusername/examprep-api/pkg/auth"
	"github.com/yourusername/examprep-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	attemptRepo := pgRepo.NewAttemptRepo(db)
	statsRepo := pgRepo.NewStatsRepo(db)
	mockTestRepo := pgRepo.NewMockTestRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Политика доступа к админке: единый allow-list из конфигурации
	policy := access.NewPolicy(cfg.Admin.Emails)

	// Инициализируем JWT сервис
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	statsService := service.NewStatsService(
		statsRepo,
		cacheRepo,
		time.Duration(cfg.Stats.CacheTTLSec)*time.Second,
	)
	practiceService := service.NewPracticeService(
		questionRepo,
		attemptRepo,
		statsService,
		cfg.Practice.DefaultBatchSize,
		cfg.Practice.MaxBatchSize,
	)
	questionService := service.NewQuestionService(questionRepo, statsService)
	userService := service.NewUserService(attemptRepo, mockTestRepo, statsService)
	adminService := service.NewAdminService(userRepo, questionRepo, mockTestRepo, statsService)
	authService := service.NewAuthService(userRepo, jwtService, policy)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService)
	statsHandler := handler.NewStatsHandler(statsService)
	practiceHandler := handler.NewPracticeHandler(practiceService, questionService)
	adminHandler := handler.NewAdminHandler(questionService, adminService)
	userHandler := handler.NewUserHandler(userService)

	authMiddleware := middleware.NewAuthMiddleware(jwtService, policy)

	isProduction := gin.Mode() == gin.ReleaseMode

	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Публичная статистика
		api.GET("/stats/:dimension", statsHandler.GetDimensionStats)

		// Практика
		practiceGroup := api.Group("/practice")
		{
			practiceGroup.GET("/subjects", practiceHandler.GetSubjects)

			authedPractice := practiceGroup.Group("/")
			authedPractice.Use(authMiddleware.RequireAuth())
			{
				authedPractice.GET("/batch", practiceHandler.GetBatch)
				authedPractice.POST("/answer", practiceHandler.SubmitAnswer)
			}
		}

		// Текущий пользователь
		usersGroup := api.Group("/users")
		usersGroup.Use(authMiddleware.RequireAuth())
		{
			usersGroup.GET("/me", authHandler.Me)
			usersGroup.GET("/me/stats", statsHandler.GetMyProgress)
			usersGroup.GET("/me/attempts", practiceHandler.GetMyAttempts)
			usersGroup.GET("/me/dashboard", userHandler.GetMyDashboard)
		}

		// Административная консоль
		adminGroup := api.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			adminGroup.GET("/stats", adminHandler.GetDashboard)

			questionsGroup := adminGroup.Group("/questions")
			{
				questionsGroup.POST("", adminHandler.CreateQuestion)
				questionsGroup.GET("", adminHandler.ListQuestions)
				questionsGroup.GET("/export", adminHandler.ExportQuestions)

				byID := questionsGroup.Group("/:id")
				byID.Use(middleware.ExtractUintParam("id", "questionID"))
				{
					byID.GET("", adminHandler.GetQuestion)
					byID.PUT("", adminHandler.UpdateQuestion)
					byID.DELETE("", adminHandler.DeleteQuestion)
				}
			}
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown с таймаутом
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
