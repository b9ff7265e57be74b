package platform

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/hostbridge/internal/domain/vpath"
)

func missingTools(string) (string, error) {
	return "", exec.ErrNotFound
}

func buildTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "src")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "top.txt"), []byte("top"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "mid.txt"), []byte("mid"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "b", "deep.bin"), []byte{0, 1, 2}, 0o600))
	return root
}

func assertTreeCopied(t *testing.T, dst string) {
	t.Helper()
	for rel, want := range map[string]string{
		"top.txt":                           "top",
		filepath.Join("a", "mid.txt"):       "mid",
		filepath.Join("a", "b", "deep.bin"): "\x00\x01\x02",
	} {
		data, err := os.ReadFile(filepath.Join(dst, rel))
		require.NoError(t, err, rel)
		assert.Equal(t, want, string(data), rel)
	}
	info, err := os.Stat(filepath.Join(dst, "empty"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPosixFallbacks(t *testing.T) {
	p := &Posix{goos: "linux", lookPath: missingTools}
	ctx := context.Background()

	t.Run("copy tree in process", func(t *testing.T) {
		src := buildTree(t)
		dst := filepath.Join(t.TempDir(), "dst")

		out, err := p.CopyTree(ctx, src, dst)
		require.NoError(t, err)
		assert.Empty(t, out.Stdout)
		assertTreeCopied(t, dst)
	})

	t.Run("copy into existing directory nests like cp", func(t *testing.T) {
		src := buildTree(t)
		dst := t.TempDir()

		_, err := p.CopyTree(ctx, src, dst)
		require.NoError(t, err)
		assertTreeCopied(t, filepath.Join(dst, filepath.Base(src)))
		_, err = os.Stat(filepath.Join(dst, "top.txt"))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("remove tree in process", func(t *testing.T) {
		src := buildTree(t)

		_, err := p.RemoveTree(ctx, src)
		require.NoError(t, err)
		_, err = os.Stat(src)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestPosixNativeTools(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix tools")
	}
	for _, tool := range []string{"rm", "cp"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not available", tool)
		}
	}

	p := NewPosix()
	ctx := context.Background()

	src := buildTree(t)
	dst := filepath.Join(t.TempDir(), "dst")
	_, err := p.CopyTree(ctx, src, dst)
	require.NoError(t, err)
	assertTreeCopied(t, dst)

	existing := t.TempDir()
	_, err = p.CopyTree(ctx, src, existing)
	require.NoError(t, err)
	assertTreeCopied(t, filepath.Join(existing, filepath.Base(src)))

	_, err = p.RemoveTree(ctx, dst)
	require.NoError(t, err)
	_, err = os.Stat(dst)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	out, err := p.RemoveTree(ctx, dst)
	assert.Error(t, err, "removing a missing tree fails")
	assert.NotEmpty(t, out.Stderr)
}

func TestPosixShell(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix shell")
	}
	p := NewPosix()

	cmd := p.Shell(context.Background(), "echo hello; echo oops 1>&2")
	out, err := capture(cmd)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out.Stdout)
	assert.Equal(t, "oops\n", out.Stderr)

	out, err = capture(p.Shell(context.Background(), "echo partial; exit 3"))
	require.Error(t, err)
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
	assert.Equal(t, "partial\n", out.Stdout)
}

func TestPosixDescriptors(t *testing.T) {
	p := &Posix{goos: "darwin", lookPath: missingTools}
	assert.Equal(t, "darwin", p.Name())
	assert.Equal(t, []string{"darwin"}, p.Keys())
	assert.Equal(t, vpath.Slash, p.Style())
	assert.Empty(t, p.DriveRoot())
	assert.Equal(t, "open", p.opener())

	_, _, err := p.ListDrives(context.Background())
	assert.ErrorIs(t, err, ErrNoDrives)

	assert.Equal(t, "xdg-open", (&Posix{goos: "linux"}).opener())
}

func TestWindowsDescriptors(t *testing.T) {
	w := NewWindows()
	assert.Equal(t, "windows", w.Name())
	assert.Equal(t, []string{"win32", "windows"}, w.Keys())
	assert.Equal(t, vpath.Backslash, w.Style())
	assert.Equal(t, `\`, w.DriveRoot())

	cmd := w.Shell(context.Background(), "dir")
	assert.Equal(t, []string{"cmd", "/C", "dir"}, cmd.Args)
}

func TestWindowsCopyFallback(t *testing.T) {
	w := &Windows{lookPath: missingTools}
	src := buildTree(t)
	dst := filepath.Join(t.TempDir(), "dst")

	_, err := w.CopyTree(context.Background(), src, dst)
	require.NoError(t, err)
	assertTreeCopied(t, dst)

	// xcopy /i semantics: an existing destination receives the contents.
	existing := t.TempDir()
	_, err = w.CopyTree(context.Background(), src, existing)
	require.NoError(t, err)
	assertTreeCopied(t, existing)

	_, err = w.RemoveTree(context.Background(), dst)
	require.NoError(t, err)
	_, err = os.Stat(dst)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWindowsCommandLines(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"recursive delete", rmdirLine(`C:\Users\me\My Files`), `cmd /C rmdir /s /q "C:\Users\me\My Files"`},
		{"quoted run", `echo "hello world"`, `cmd /C echo "hello world"`},
		{"plain", "dir", "cmd /C dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shellLine(tt.line))
		})
	}
}

func TestParseDrives(t *testing.T) {
	tests := []struct {
		name   string
		stdout string
		want   []string
	}{
		{"typical", "\r\nDrives: C:\\ D:\\ \r\n", []string{`C:\`, `D:\`}},
		{"single", "Drives: C:\\", []string{`C:\`}},
		{"empty", "", nil},
		{"header only", "Drives:", []string{}},
		{"noise skipped", "Drives: C:\\ junk E:\\", []string{`C:\`, `E:\`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDrives(tt.stdout))
		})
	}
}

func TestCopyTreeMissingSource(t *testing.T) {
	err := copyTree(context.Background(), filepath.Join(t.TempDir(), "nope"), t.TempDir())
	assert.Error(t, err)
}

func TestCopyTreeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := copyTree(ctx, buildTree(t), filepath.Join(t.TempDir(), "dst"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNative(t *testing.T) {
	p := Native()
	if runtime.GOOS == "windows" {
		assert.IsType(t, &Windows{}, p)
		return
	}
	assert.IsType(t, &Posix{}, p)
	assert.Equal(t, runtime.GOOS, p.Name())
}
