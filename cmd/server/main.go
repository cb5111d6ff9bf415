package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nexusai/router-api/internal/analytics"
	"github.com/nexusai/router-api/internal/chat"
	"github.com/nexusai/router-api/internal/config"
	"github.com/nexusai/router-api/internal/platform/logger"
	"github.com/nexusai/router-api/internal/platform/otel"
	"github.com/nexusai/router-api/internal/router"
	"github.com/nexusai/router-api/internal/server"
	"github.com/nexusai/router-api/internal/store/cache"
	memorycache "github.com/nexusai/router-api/internal/store/cache/memory"
	rediscache "github.com/nexusai/router-api/internal/store/cache/redis"
	"github.com/nexusai/router-api/internal/store/sqlite"

	// Import providers to trigger init() registration
	_ "github.com/nexusai/router-api/internal/llm/anthropic"
	_ "github.com/nexusai/router-api/internal/llm/google"
	_ "github.com/nexusai/router-api/internal/llm/groq"
	_ "github.com/nexusai/router-api/internal/llm/ollama"
	_ "github.com/nexusai/router-api/internal/llm/openai"
)

func main() {
	logger.Initialize(logger.DefaultConfig())
	defer logger.Sync()
	log := logger.Get()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	shutdownTracer, err := otel.InitTracer("router-api", log, os.Stdout)
	if err != nil {
		log.Warn("tracing disabled", zap.Error(err))
		shutdownTracer = func(context.Context) error { return nil }
	}

	repo, err := sqlite.NewSQLiteStorage(cfg.Server.DBPath)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer repo.Close()

	var catalogCache cache.CacheService
	if cfg.Redis.Enabled {
		rc, err := rediscache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn("redis unreachable, using in-process cache", zap.Error(err))
			catalogCache = memorycache.NewMemoryCache()
		} else {
			catalogCache = rc
		}
	} else {
		catalogCache = memorycache.NewMemoryCache()
	}

	rt := router.New(cfg, log)
	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	rt.Bootstrap(bootCtx)
	cancelBoot()

	ingestCtx, cancelIngest := context.WithCancel(context.Background())
	defer cancelIngest()
	ingestor := analytics.NewIngestor(log, repo)
	ingestor.Start(ingestCtx)

	// No document retriever is wired by default; RAG requests degrade to
	// plain chat until one is configured.
	chatSvc := chat.NewService(log, rt, repo, nil, ingestor)
	analyticsSvc := analytics.NewService(repo)

	srv := server.New(cfg, log, chatSvc, rt, repo, catalogCache, analyticsSvc)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: srv.Handler(),
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	ingestor.Stop()
	if err := shutdownTracer(ctx); err != nil {
		log.Warn("tracer shutdown failed", zap.Error(err))
	}
}
