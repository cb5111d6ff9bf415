package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nexusai/router-api/internal/store/cache/memory"
	"github.com/nexusai/router-api/pkg/api"
)

type stubLister struct {
	models []api.Model
	calls  int
}

func (s *stubLister) ListModels(ctx context.Context) []api.Model {
	s.calls++
	return s.models
}

func newModelRouter(h *ModelHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/models", h.ListModels)
	return r
}

type catalogResponse struct {
	Models []api.Model `json:"models"`
	Count  int         `json:"count"`
	Cached bool        `json:"cached"`
}

func TestListModels_CachesCatalog(t *testing.T) {
	lister := &stubLister{models: []api.Model{
		{ID: "llama-3.1-8b-instant", Provider: "groq", CostPer1KTokens: 0.05},
		{ID: "gpt-4o", Provider: "openai", CostPer1KTokens: 2.5},
	}}
	h := NewModelHandler(zap.NewNop(), lister, memory.NewMemoryCache())
	r := newModelRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/models", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var first catalogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.False(t, first.Cached)
	assert.Equal(t, 2, first.Count)
	assert.Equal(t, "llama-3.1-8b-instant", first.Models[0].ID)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/models", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var second catalogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.True(t, second.Cached)
	assert.Equal(t, 2, second.Count)
	assert.Equal(t, 1, lister.calls, "second read should come from cache")
}

func TestListModels_NoCache(t *testing.T) {
	lister := &stubLister{models: []api.Model{{ID: "gemini-1.5-flash", Provider: "google"}}}
	h := NewModelHandler(zap.NewNop(), lister, nil)
	r := newModelRouter(h)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/models", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 2, lister.calls)
}
