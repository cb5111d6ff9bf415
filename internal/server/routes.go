package server

import (
	"github.com/nexusai/router-api/internal/server/middleware"
	v1 "github.com/nexusai/router-api/internal/server/v1"
)

func (s *Server) setupRoutes() {
	s.engine.Use(middleware.CORS())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.ErrorHandler(s.logger))

	limiter := middleware.NewRateLimiter(
		s.config.RateLimit.RequestsPerSecond,
		s.config.RateLimit.Burst,
		s.logger,
	)

	healthHandler := v1.NewHealthHandler()
	s.engine.GET("/health", healthHandler.Health)

	api := s.engine.Group("/api/v1")
	api.Use(limiter.Middleware())
	api.Use(middleware.Auth(s.config.Server.APIKeys))
	{
		chatHandler := v1.NewChatHandler(s.chat)
		api.POST("/chat", chatHandler.Chat)

		modelHandler := v1.NewModelHandler(s.logger, s.router, s.cache)
		api.GET("/models", modelHandler.ListModels)

		providerHandler := v1.NewProviderHandler(s.router)
		api.GET("/providers/status", providerHandler.Status)

		convHandler := v1.NewConversationHandler(s.repo)
		api.GET("/conversations", convHandler.List)
		api.GET("/conversations/:id/messages", convHandler.Messages)
		api.DELETE("/conversations/:id", convHandler.Delete)

		analyticsHandler := v1.NewAnalyticsHandler(s.analytics)
		api.GET("/analytics/overview", analyticsHandler.Overview)
		api.GET("/analytics/models", analyticsHandler.ModelUsage)
		api.GET("/analytics/requests", analyticsHandler.RecentRequests)
	}
}
