package lifecycle

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Intent names.
const (
	IntentAppInfo  = "appInfo"
	IntentClose    = "close"
	IntentCloseAll = "closeAll"
	IntentQuit     = "quit"
)

// Reply statuses.
const (
	StatusOK            = "ok"
	StatusUnknownIntent = "unknown intent"
)

// Reply is merged over the intent message.
type Reply struct {
	Success  bool
	Status   string
	Modified *bool
	Title    string
}

// Fields returns the reply as response keys.
func (r *Reply) Fields() map[string]any {
	fields := map[string]any{
		"success": r.Success,
		"status":  r.Status,
	}
	if r.Modified != nil {
		fields["modified"] = *r.Modified
	}
	if r.Title != "" {
		fields["title"] = r.Title
	}
	return fields
}

// Handler tracks front-end application state between intents.
type Handler struct {
	mu       sync.Mutex
	modified bool
	title    string

	shutdown func()
	once     sync.Once
	logger   *zap.Logger
}

// NewHandler creates a handler. shutdown runs at most once, on the first quit.
func NewHandler(shutdown func(), logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if shutdown == nil {
		shutdown = func() {}
	}
	return &Handler{shutdown: shutdown, logger: logger}
}

// Handle answers one intent. msg is the decoded request object.
func (h *Handler) Handle(ctx context.Context, intent string, msg map[string]any) *Reply {
	switch intent {
	case IntentAppInfo:
		return h.appInfo(msg)
	case IntentClose, IntentCloseAll:
		modified := h.Modified()
		h.logger.Info("Close requested",
			zap.String("intent", intent),
			zap.String("title", h.Title()),
			zap.Bool("modified", modified),
		)
		return &Reply{Success: true, Status: StatusOK, Modified: &modified}
	case IntentQuit:
		h.logger.Info("Quit requested")
		h.once.Do(h.shutdown)
		return &Reply{Success: true, Status: StatusOK}
	default:
		h.logger.Warn("Unknown intent", zap.String("intent", intent))
		return &Reply{Success: false, Status: StatusUnknownIntent}
	}
}

func (h *Handler) appInfo(msg map[string]any) *Reply {
	h.mu.Lock()
	defer h.mu.Unlock()

	if v, ok := msg["modified"].(bool); ok {
		h.modified = v
	}
	if v, ok := msg["title"].(string); ok {
		h.title = v
	}
	modified := h.modified
	return &Reply{Success: true, Status: StatusOK, Modified: &modified, Title: h.title}
}

// Modified reports the last dirty flag sent with appInfo.
func (h *Handler) Modified() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.modified
}

// Title reports the last title sent with appInfo.
func (h *Handler) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.title
}
