package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		c.Next()

		// Route pattern, not the raw path
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.RecordHTTPRequest(method, path, status, time.Since(start))
	}
}

// Timer measures syscall duration
type Timer struct {
	start   time.Time
	metrics *Metrics
	syscall string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, syscall string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		syscall: syscall,
	}
}

// Stop stops the timer and records the outcome
func (t *Timer) Stop(status string, success bool) {
	t.metrics.RecordSyscall(t.syscall, status, success, time.Since(t.start))
}
