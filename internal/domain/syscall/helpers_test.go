package syscall

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/hostbridge/internal/domain/classify"
	"github.com/GriffinCanCode/hostbridge/internal/domain/vpath"
	"github.com/GriffinCanCode/hostbridge/internal/domain/workspace"
	"github.com/GriffinCanCode/hostbridge/internal/platform"
	"github.com/GriffinCanCode/hostbridge/tests/helpers/testutil"
)

type fixture struct {
	home       string
	apps       string
	store      *workspace.Store
	platform   *testutil.MockPlatform
	dispatcher *Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ws := testutil.NewWorkspace(t)
	f := &fixture{
		home:     ws.Home,
		apps:     ws.Apps,
		platform: testutil.NewMockPlatform(),
	}

	f.store = workspace.NewStore(f.apps, "http://127.0.0.1:8000/apps/", zap.NewNop(),
		workspace.WithHomeDir(ws.HomeDir()))
	resolver := vpath.NewResolver(vpath.Slash, func() vpath.Table { return f.store.Workspaces() })

	f.dispatcher = NewDispatcher(Deps{
		Resolver:   resolver,
		Store:      f.store,
		Classifier: classify.New(0),
		Platform:   f.platform,
		Logger:     zap.NewNop(),
	})
	return f
}

func (f *fixture) do(env *Envelope) *Result {
	return f.dispatcher.Dispatch(context.Background(), env)
}

func (f *fixture) homePath(parts ...string) string {
	return filepath.Join(append([]string{f.home}, parts...)...)
}

func jsonString(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	testutil.WriteFile(t, path, content)
}

func platformOutput(stdout string) platform.Output {
	return platform.Output{Stdout: stdout}
}
