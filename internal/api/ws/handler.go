package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/hostbridge/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/hostbridge/internal/shared/id"
)

const (
	maxMessageSize = 64 << 20
	writeWait      = 10 * time.Second
)

// Processor turns one request message into one reply.
type Processor interface {
	Process(ctx context.Context, raw []byte) ([]byte, error)
}

// Handler manages WebSocket connections
type Handler struct {
	processor Processor
	upgrader  websocket.Upgrader
	metrics   *monitoring.Metrics
	logger    *zap.Logger

	base context.Context
	stop context.CancelFunc
}

// NewHandler creates a WebSocket handler. checkOrigin decides the handshake.
func NewHandler(processor Processor, checkOrigin func(r *http.Request) bool, metrics *monitoring.Metrics, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	base, stop := context.WithCancel(context.Background())
	return &Handler{
		processor: processor,
		upgrader:  websocket.Upgrader{CheckOrigin: checkOrigin},
		metrics:   metrics,
		logger:    logger,
		base:      base,
		stop:      stop,
	}
}

// Shutdown cancels in-flight dispatches and closes every open connection.
// Connections accepted afterwards are closed immediately.
func (h *Handler) Shutdown() {
	h.stop()
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	connID := id.NewConnID()
	log := h.logger.With(zap.String("conn_id", connID.String()))
	log.Info("Bridge connected", zap.String("origin", c.GetHeader("Origin")))

	h.metrics.IncWSConnections()
	defer h.metrics.DecWSConnections()

	ctx, cancel := context.WithCancel(h.base)
	context.AfterFunc(ctx, func() { conn.Close() })
	s := &session{conn: conn, log: log, metrics: h.metrics}

	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
		log.Info("Bridge disconnected")
	}()

	conn.SetReadLimit(maxMessageSize)
	for {
		kind, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}
		if kind != websocket.TextMessage {
			h.metrics.RecordDropped("binary")
			log.Warn("Dropping non-text frame", zap.Int("type", kind))
			continue
		}
		h.metrics.RecordWSMessage("in")

		wg.Add(1)
		go func() {
			defer wg.Done()
			reply, err := h.processor.Process(ctx, raw)
			if err != nil {
				return
			}
			s.send(reply)
		}()
	}
}

// session serializes writes on one connection.
type session struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	log     *zap.Logger
	metrics *monitoring.Metrics
}

func (s *session) send(reply []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.TextMessage, reply); err != nil {
		s.log.Warn("WebSocket write error", zap.Error(err))
		return
	}
	s.metrics.RecordWSMessage("out")
}
