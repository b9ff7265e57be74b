package syscall

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/hostbridge/internal/domain/classify"
	"github.com/GriffinCanCode/hostbridge/internal/domain/vpath"
	"github.com/GriffinCanCode/hostbridge/internal/domain/workspace"
	"github.com/GriffinCanCode/hostbridge/internal/platform"
)

// DefaultRunTimeout bounds run when the request does not set a timeout.
const DefaultRunTimeout = 60 * time.Second

// ConfigStore is the configuration document store used by config and write.
type ConfigStore interface {
	Get() (*workspace.Document, error)
	Write(doc *workspace.Document) error
	Invalidate()
	ConfigBase() string
}

// Deps are the collaborators of a Dispatcher.
type Deps struct {
	Resolver   *vpath.Resolver
	Store      ConfigStore
	Classifier *classify.Classifier
	Platform   platform.Platform
	Logger     *zap.Logger
	RunTimeout time.Duration
}

// Dispatcher routes envelopes to operations.
type Dispatcher struct {
	resolver   *vpath.Resolver
	store      ConfigStore
	classifier *classify.Classifier
	platform   platform.Platform
	logger     *zap.Logger
	runTimeout time.Duration
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(deps Deps) *Dispatcher {
	d := &Dispatcher{
		resolver:   deps.Resolver,
		store:      deps.Store,
		classifier: deps.Classifier,
		platform:   deps.Platform,
		logger:     deps.Logger,
		runTimeout: deps.RunTimeout,
	}
	if d.classifier == nil {
		d.classifier = classify.New(0)
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	if d.runTimeout <= 0 {
		d.runTimeout = DefaultRunTimeout
	}
	return d
}

// Dispatch runs the operation named by env.Syscall.
func (d *Dispatcher) Dispatch(ctx context.Context, env *Envelope) (res *Result) {
	if env == nil {
		env = &Envelope{}
	}

	realPath, _ := d.resolvePath(env.Path)
	realDest, _ := d.resolveDestination(env.Destination, realPath)

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Syscall panicked",
				zap.String("syscall", env.Syscall),
				zap.Any("panic", r))
			res = failure(fmt.Errorf("%s: internal error: %v", env.Syscall, r))
		}
		res.RealPath = realPath
		res.RealDestination = realDest
	}()

	d.logger.Debug("Dispatching syscall",
		zap.String("syscall", env.Syscall),
		zap.String("path", env.Path),
		zap.String("realPath", realPath))

	switch env.Syscall {
	case OpConfig:
		res = d.config(env.Config)
	case OpProbe:
		res = d.probeResult(realPath)
	case OpRead:
		res = d.read(ctx, realPath, env.Encoding, env.Filter)
	case OpWrite:
		res = d.write(realPath, env.Data, env.Encoding)
	case OpDelete:
		res = d.delete(ctx, realPath)
	case OpRename:
		res = d.rename(realPath, realDest)
	case OpCopy:
		res = d.copy(ctx, realPath, realDest)
	case OpRun:
		res = d.run(ctx, env.Command)
	case OpOpen:
		res = d.open(ctx, env.URL, env.Path)
	default:
		res = fail(StatusUnknownCommand)
	}

	if res.Err != nil {
		d.logger.Warn("Syscall failed",
			zap.String("syscall", env.Syscall),
			zap.String("realPath", realPath),
			zap.String("message", res.Err.Message))
	}
	return res
}

func (d *Dispatcher) resolvePath(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	return d.resolver.Resolve(p)
}

// resolveDestination resolves dest on its own when it is rooted or starts
// with a token, otherwise relative to the parent of the resolved source.
func (d *Dispatcher) resolveDestination(dest, realPath string) (string, bool) {
	if dest == "" {
		return "", false
	}
	if isRooted(dest) {
		return d.resolver.Resolve(dest)
	}
	if realPath == "" {
		return "", false
	}
	parent := path.Dir(toSlash(realPath))
	return d.resolver.Resolve(path.Join(parent, toSlash(dest)))
}

// config persists raw when it is present and returns the current document.
// A document that does not decode is answered, never written.
func (d *Dispatcher) config(raw json.RawMessage) *Result {
	if len(raw) > 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		doc := workspace.NewDocument()
		if err := json.Unmarshal(raw, doc); err != nil {
			return failure(withCode(CodeInvalidData, fmt.Errorf("config: %w", err)))
		}
		if err := d.store.Write(doc); err != nil {
			return failure(err)
		}
	}
	current, err := d.store.Get()
	if err != nil {
		return failure(err)
	}
	res := ok(StatusOK)
	res.Config = current
	return res
}

// isRooted reports whether s starts with a token marker or a separator.
func isRooted(s string) bool {
	return s != "" && strings.ContainsRune(`[/\`, rune(s[0]))
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
