package server

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/nexusai/router-api/internal/analytics"
	"github.com/nexusai/router-api/internal/chat"
	"github.com/nexusai/router-api/internal/config"
	"github.com/nexusai/router-api/internal/router"
	"github.com/nexusai/router-api/internal/server/validator"
	"github.com/nexusai/router-api/internal/store"
	"github.com/nexusai/router-api/internal/store/cache"
)

type Server struct {
	engine    *gin.Engine
	config    *config.Config
	logger    *zap.Logger
	chat      *chat.Service
	router    *router.Router
	repo      store.Repository
	cache     cache.CacheService
	analytics analytics.Service
}

func New(cfg *config.Config, logger *zap.Logger, chatSvc *chat.Service, rt *router.Router, repo store.Repository, c cache.CacheService, an analytics.Service) *Server {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	validator.InitValidator()

	engine := gin.New()
	engine.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	engine.Use(ginzap.RecoveryWithZap(logger, true))
	engine.Use(otelgin.Middleware("router-api"))

	s := &Server{
		engine:    engine,
		config:    cfg,
		logger:    logger,
		chat:      chatSvc,
		router:    rt,
		repo:      repo,
		cache:     c,
		analytics: an,
	}

	s.setupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}
