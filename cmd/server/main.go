package main

import (
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"bhai/internal/auth"
	"bhai/internal/config"
	"bhai/internal/dashboard"
	"bhai/internal/http/handlers"
	"bhai/internal/llm"
	"bhai/internal/logger"
	"bhai/internal/records"
	"bhai/internal/storage"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat, "bhai")
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	kv, err := newKV(cfg)
	if err != nil {
		zlog.Fatal("failed to init storage backend", zap.Error(err))
	}
	store := storage.NewStore(kv, zlog)

	llmClient := llm.NewOpenAI(
		cfg.OpenAIAPIKey,
		cfg.OpenAIBaseURL,
		cfg.OpenAIModel,
		cfg.OpenRouterReferrer,
		cfg.OpenRouterTitle,
	)

	authSvc := auth.NewService(store, zlog)
	recordsSvc := records.NewService(store, zlog)
	agg := dashboard.NewAggregator(store)

	router := handlers.NewRouter(store, authSvc, recordsSvc, agg, llmClient, cfg.JWTSecret, zlog)

	zlog.Info("starting server",
		zap.String("addr", cfg.ListenAddr),
		zap.String("storage", string(cfg.StorageBackend)),
		zap.String("model", cfg.OpenAIModel),
	)
	if err := router.Run(cfg.ListenAddr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func newKV(cfg *config.Config) (storage.KV, error) {
	if cfg.StorageBackend == config.BackendRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return storage.NewRedisKV(client), nil
	}
	return storage.NewFileKV(cfg.DataDir)
}
