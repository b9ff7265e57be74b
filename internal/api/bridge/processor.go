// Package bridge turns raw transport messages into dispatches and replies.
//
// Both the WebSocket and the HTTP transport feed bytes through a Processor.
// The reply is the request object with the outcome merged over it, so callers
// correlate replies by whatever keys they put in the request.
package bridge

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/hostbridge/internal/domain/lifecycle"
	"github.com/GriffinCanCode/hostbridge/internal/domain/syscall"
	"github.com/GriffinCanCode/hostbridge/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/hostbridge/internal/shared/id"
)

// ErrMalformed is returned for messages that are not a syscall or intent
// envelope.
var ErrMalformed = errors.New("malformed envelope")

// Dispatcher executes syscalls.
type Dispatcher interface {
	Dispatch(ctx context.Context, env *syscall.Envelope) *syscall.Result
}

// IntentHandler answers window intents.
type IntentHandler interface {
	Handle(ctx context.Context, intent string, msg map[string]any) *lifecycle.Reply
}

// Processor decodes, routes and encodes envelopes.
type Processor struct {
	dispatcher Dispatcher
	intents    IntentHandler
	metrics    *monitoring.Metrics
	logger     *zap.Logger
}

// NewProcessor creates a processor. metrics may be nil.
func NewProcessor(dispatcher Dispatcher, intents IntentHandler, metrics *monitoring.Metrics, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		dispatcher: dispatcher,
		intents:    intents,
		metrics:    metrics,
		logger:     logger,
	}
}

// Process handles one message and returns the encoded reply. Malformed
// messages are logged, counted and reported as ErrMalformed.
func (p *Processor) Process(ctx context.Context, raw []byte) ([]byte, error) {
	var msg map[string]any
	if err := sonic.Unmarshal(raw, &msg); err != nil || msg == nil {
		return nil, p.drop(err)
	}
	var env syscall.Envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return nil, p.drop(err)
	}

	reqID := id.NewRequestID()
	var fields map[string]any

	switch {
	case env.Syscall != "":
		timer := monitoring.NewTimer(p.metrics, metricLabel(env.Syscall))
		res := p.dispatcher.Dispatch(ctx, &env)
		timer.Stop(res.Status, res.Success)
		p.logger.Debug("Syscall dispatched",
			zap.String("request_id", reqID.String()),
			zap.String("syscall", env.Syscall),
			zap.String("status", res.Status),
		)
		fields = res.Fields()
	case env.Intent != "":
		reply := p.intents.Handle(ctx, env.Intent, msg)
		p.metrics.RecordIntent(intentLabel(env.Intent), reply.Status)
		p.logger.Debug("Intent handled",
			zap.String("request_id", reqID.String()),
			zap.String("intent", env.Intent),
			zap.String("status", reply.Status),
		)
		fields = reply.Fields()
	default:
		return nil, p.drop(nil)
	}

	for k, v := range fields {
		msg[k] = v
	}
	out, err := sonic.Marshal(msg)
	if err != nil {
		p.logger.Error("Failed to encode reply",
			zap.String("request_id", reqID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("encode reply: %w", err)
	}
	return out, nil
}

func (p *Processor) drop(cause error) error {
	p.metrics.RecordDropped("malformed")
	p.logger.Warn("Dropping malformed message", zap.Error(cause))
	if cause == nil {
		return ErrMalformed
	}
	return fmt.Errorf("%w: %w", ErrMalformed, cause)
}

// metricLabel bounds label cardinality to the known operations.
func metricLabel(name string) string {
	switch name {
	case syscall.OpConfig, syscall.OpProbe, syscall.OpRead, syscall.OpWrite,
		syscall.OpDelete, syscall.OpRename, syscall.OpCopy, syscall.OpRun, syscall.OpOpen:
		return name
	}
	return "unknown"
}

func intentLabel(name string) string {
	switch name {
	case lifecycle.IntentAppInfo, lifecycle.IntentClose, lifecycle.IntentCloseAll, lifecycle.IntentQuit:
		return name
	}
	return "unknown"
}
