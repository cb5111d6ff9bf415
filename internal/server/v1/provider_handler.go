package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexusai/router-api/pkg/api"
)

// StatusReporter is the health slice of the provider router.
type StatusReporter interface {
	ProviderStatus() map[string]api.ProviderStatus
}

type ProviderHandler struct {
	reporter StatusReporter
}

func NewProviderHandler(reporter StatusReporter) *ProviderHandler {
	return &ProviderHandler{reporter: reporter}
}

func (h *ProviderHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"providers": h.reporter.ProviderStatus()})
}
