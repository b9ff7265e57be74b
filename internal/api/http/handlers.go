package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/hostbridge/internal/api/bridge"
	"github.com/GriffinCanCode/hostbridge/internal/infrastructure/monitoring"
)

// Version is reported by the root endpoint.
const Version = "0.1.0"

const maxBodySize = 64 << 20

// Processor turns one request body into one reply body.
type Processor interface {
	Process(ctx context.Context, raw []byte) ([]byte, error)
}

// Handlers contains all HTTP handlers
type Handlers struct {
	processor Processor
	metrics   *monitoring.Metrics
	platform  string
	logger    *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(processor Processor, metrics *monitoring.Metrics, platform string, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		processor: processor,
		metrics:   metrics,
		platform:  platform,
		logger:    logger,
	}
}

// Root handles liveness
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "hostbridge",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"platform": h.platform,
		"metrics":  h.metrics.Snapshot(),
	})
}

// Syscall handles one envelope
func (h *Handlers) Syscall(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodySize))
	if err != nil {
		h.logger.Warn("Failed to read request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	reply, err := h.processor.Process(c.Request.Context(), body)
	switch {
	case errors.Is(err, bridge.ErrMalformed):
		c.JSON(http.StatusBadRequest, gin.H{"error": bridge.ErrMalformed.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", reply)
}
