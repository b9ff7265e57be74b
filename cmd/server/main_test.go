package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("BRIDGE_APPS_PATH", "/env/apps")

	tests := []struct {
		name      string
		args      []string
		wantPort  string
		wantApps  string
		wantHost  string
		wantLevel string
		wantDev   bool
	}{
		{
			name:      "env only",
			args:      nil,
			wantPort:  "9100",
			wantApps:  "/env/apps",
			wantHost:  "127.0.0.1",
			wantLevel: "info",
		},
		{
			name:      "flags win",
			args:      []string{"--apps=/flag/apps", "--port", "9200", "--host", "0.0.0.0"},
			wantPort:  "9200",
			wantApps:  "/flag/apps",
			wantHost:  "0.0.0.0",
			wantLevel: "info",
		},
		{
			name:      "dev implies debug",
			args:      []string{"--dev"},
			wantPort:  "9100",
			wantApps:  "/env/apps",
			wantHost:  "127.0.0.1",
			wantLevel: "debug",
			wantDev:   true,
		},
		{
			name:      "explicit level beats dev",
			args:      []string{"--dev", "--log-level", "warn"},
			wantPort:  "9100",
			wantApps:  "/env/apps",
			wantHost:  "127.0.0.1",
			wantLevel: "warn",
			wantDev:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			require.NoError(t, cmd.ParseFlags(tt.args))

			var f flags
			f.apps, _ = cmd.Flags().GetString("apps")
			f.port, _ = cmd.Flags().GetString("port")
			f.host, _ = cmd.Flags().GetString("host")
			f.dev, _ = cmd.Flags().GetBool("dev")
			f.logLevel, _ = cmd.Flags().GetString("log-level")

			cfg, err := loadConfig(cmd, f)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPort, cfg.Server.Port)
			assert.Equal(t, tt.wantApps, cfg.Bridge.AppsPath)
			assert.Equal(t, tt.wantHost, cfg.Server.Host)
			assert.Equal(t, tt.wantLevel, cfg.Logging.Level)
			assert.Equal(t, tt.wantDev, cfg.Logging.Development)
		})
	}
}

func TestLoadConfigRejectsBadPort(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--port", "web"}))

	_, err := loadConfig(cmd, flags{port: "web"})
	assert.Error(t, err)
}

func TestResolveCommand(t *testing.T) {
	apps := t.TempDir()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"resolve", "--apps", apps, "[home]/notes.txt", "[apps]", "[missing]/x"})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "[home]/notes.txt\t"+filepath.Join(home, "notes.txt"), lines[0])
	assert.Equal(t, "[apps]\t"+apps, lines[1])
	assert.Equal(t, "[missing]/x\t(illegal path)", lines[2])

	_, err := os.Stat(filepath.Join(apps, "config.json"))
	assert.True(t, os.IsNotExist(err), "resolving never creates the document")
}

func TestResolveCommandLeavesDocumentUntouched(t *testing.T) {
	apps := t.TempDir()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	original := `{"appsUrl":"http://elsewhere/apps/","workspaces":{"code":"/src"}}`
	path := filepath.Join(apps, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"resolve", "--apps", apps, "[code]/x"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "[code]/x\t"+filepath.FromSlash("/src/x"), strings.TrimSpace(out.String()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}
