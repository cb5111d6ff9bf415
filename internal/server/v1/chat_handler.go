package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexusai/router-api/internal/chat"
	"github.com/nexusai/router-api/internal/router"
	"github.com/nexusai/router-api/internal/server/validator"
	"github.com/nexusai/router-api/pkg/api"
)

type ChatHandler struct {
	service *chat.Service
}

func NewChatHandler(service *chat.Service) *ChatHandler {
	return &ChatHandler{service: service}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req chat.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationError(validator.ParseValidationError(err)))
		return
	}
	if req.Message == "" && req.Image == "" {
		_ = c.Error(api.BadRequestError("No message or image provided"))
		return
	}

	resp, err := h.service.Chat(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(problemFor(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// problemFor maps the dispatch taxonomy onto RFC 9457 problems so callers
// can tell "this model does not exist" from "try again later".
func problemFor(err error) *api.Problem {
	switch {
	case errors.Is(err, router.ErrModelNotFound):
		return api.NotFoundError("No enabled provider serves the requested model")
	case errors.Is(err, router.ErrRateLimited):
		return api.RateLimitError("All capable providers are at their rate limit")
	case errors.Is(err, router.ErrUnsupportedModel):
		return api.BadRequestError("The requested model does not support chat completions")
	case errors.Is(err, router.ErrProviderError):
		return api.UpstreamError("The upstream provider failed to complete the request", err)
	default:
		return api.InternalError("Failed to process chat request", err)
	}
}
