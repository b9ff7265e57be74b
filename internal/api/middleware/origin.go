package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/hostbridge/internal/infrastructure/monitoring"
)

// OriginGuard admits requests whose Origin starts with an allowed prefix.
type OriginGuard struct {
	prefixes []string
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// NewOriginGuard creates a guard. Empty prefixes are ignored, so a guard
// built from no usable prefixes admits nothing.
func NewOriginGuard(prefixes []string, metrics *monitoring.Metrics, logger *zap.Logger) *OriginGuard {
	if logger == nil {
		logger = zap.NewNop()
	}
	kept := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return &OriginGuard{prefixes: kept, metrics: metrics, logger: logger}
}

// Prefixes returns the allowed origin prefixes.
func (g *OriginGuard) Prefixes() []string {
	return append([]string(nil), g.prefixes...)
}

// Allowed reports whether origin is admitted. A missing origin never is.
// A prefix matches whole origins or path segments, so "http://h:80" does not
// admit "http://h:8080".
func (g *OriginGuard) Allowed(origin string) bool {
	if origin == "" {
		return false
	}
	for _, p := range g.prefixes {
		if matchesPrefix(origin, p) {
			return true
		}
	}
	return false
}

func matchesPrefix(origin, prefix string) bool {
	if !strings.HasPrefix(origin, prefix) {
		return false
	}
	if len(origin) == len(prefix) || strings.HasSuffix(prefix, "/") {
		return true
	}
	return origin[len(prefix)] == '/'
}

// CheckOrigin is a websocket.Upgrader CheckOrigin func.
func (g *OriginGuard) CheckOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if g.Allowed(origin) {
		return true
	}
	g.reject(origin, r)
	return false
}

// Middleware aborts requests from other origins with an empty 403.
func (g *OriginGuard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if !g.Allowed(origin) {
			g.reject(origin, c.Request)
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

func (g *OriginGuard) reject(origin string, r *http.Request) {
	g.metrics.RecordDropped("origin")
	g.logger.Warn("Rejected message from unauthorized origin",
		zap.String("origin", origin),
		zap.String("path", r.URL.Path),
		zap.String("remote", r.RemoteAddr),
	)
}
