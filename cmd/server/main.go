package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"keymint.backend/internal/config"
	"keymint.backend/internal/infrastructure/repositories"
	"keymint.backend/internal/interfaces/http/handlers"
	"keymint.backend/internal/interfaces/http/middleware"
	"keymint.backend/internal/usecases"
	"keymint.backend/pkg/jwt"
	"keymint.backend/pkg/logger"
	"keymint.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			TranslateError: true,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(context.Background(), "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(context.Background(), "Connected to PostgreSQL")
	}

	// The verdict cache is an optimization; run without it when Redis is
	// disabled or unreachable.
	var cache usecases.VerdictCache
	if cfg.Redis.Enabled {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			logger.Warn(context.Background(), "Redis unavailable, verdict cache disabled", zap.Error(err))
		} else {
			cache = redis.NewVerdictCache(24 * time.Hour)
			logger.Info(context.Background(), "Redis verdict cache initialized")
		}
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	apiKeyRepo := repositories.NewApiKeyRepository(db)
	userRepo := repositories.NewUserRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	uow := repositories.NewUnitOfWork(db)

	apiKeyUsecase := usecases.NewApiKeyUsecase(apiKeyRepo, userRepo, uow, cache)
	authUsecase := usecases.NewAuthUsecase(adminRepo, jwtService)

	apiKeyHandler := handlers.NewApiKeyHandler(apiKeyUsecase)
	authHandler := handlers.NewAuthHandler(authUsecase)
	adminHandler := handlers.NewAdminHandler(apiKeyUsecase)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	registerRoutes(r, routeDeps{
		apiKeyHandler:  apiKeyHandler,
		authHandler:    authHandler,
		adminHandler:   adminHandler,
		authMiddleware: middleware.AuthMiddleware(jwtService),
	})

	logger.Info(context.Background(), "Server starting", zap.String("port", cfg.Server.Port))

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
