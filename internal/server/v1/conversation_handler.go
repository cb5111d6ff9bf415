package v1

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nexusai/router-api/internal/store"
	"github.com/nexusai/router-api/pkg/api"
)

type ConversationHandler struct {
	repo store.Repository
}

func NewConversationHandler(repo store.Repository) *ConversationHandler {
	return &ConversationHandler{repo: repo}
}

func (h *ConversationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	convs, err := h.repo.Conversations().List(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(api.InternalError("Failed to list conversations", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs, "count": len(convs)})
}

func (h *ConversationHandler) Messages(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.repo.Conversations().Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = c.Error(api.NotFoundError("Conversation not found"))
			return
		}
		_ = c.Error(api.InternalError("Failed to load conversation", err))
		return
	}

	msgs, err := h.repo.Messages().ListByConversation(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(api.InternalError("Failed to load messages", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs, "count": len(msgs)})
}

func (h *ConversationHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.repo.Conversations().Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = c.Error(api.NotFoundError("Conversation not found"))
			return
		}
		_ = c.Error(api.InternalError("Failed to load conversation", err))
		return
	}

	if err := h.repo.Conversations().Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(api.InternalError("Failed to delete conversation", err))
		return
	}
	c.Status(http.StatusNoContent)
}
