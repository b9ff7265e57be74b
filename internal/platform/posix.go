package platform

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/GriffinCanCode/hostbridge/internal/domain/vpath"
)

// Posix implements Platform for Linux, macOS and the BSDs.
type Posix struct {
	goos     string
	lookPath lookPathFunc
}

// NewPosix creates a Posix platform for the running GOOS.
func NewPosix() *Posix {
	return &Posix{goos: runtime.GOOS, lookPath: exec.LookPath}
}

func (p *Posix) Name() string { return p.goos }

func (p *Posix) Keys() []string { return []string{p.goos} }

func (p *Posix) Style() vpath.Style { return vpath.Slash }

func (p *Posix) DriveRoot() string { return "" }

func (p *Posix) ListDrives(context.Context) ([]string, Output, error) {
	return nil, Output{}, ErrNoDrives
}

// RemoveTree runs rm -R, or os.RemoveAll when rm is unavailable.
func (p *Posix) RemoveTree(ctx context.Context, path string) (Output, error) {
	if _, err := p.lookPath("rm"); err != nil {
		return Output{}, os.RemoveAll(path)
	}
	return capture(exec.CommandContext(ctx, "rm", "-R", path))
}

// CopyTree runs cp -R, or copies in process when cp is unavailable. Like
// cp -R, an existing directory dst receives the copy as dst/<base of src>.
func (p *Posix) CopyTree(ctx context.Context, src, dst string) (Output, error) {
	if _, err := p.lookPath("cp"); err != nil {
		if info, err := os.Stat(dst); err == nil && info.IsDir() {
			dst = filepath.Join(dst, filepath.Base(src))
		}
		return Output{}, copyTree(ctx, src, dst)
	}
	return capture(exec.CommandContext(ctx, "cp", "-R", src, dst))
}

func (p *Posix) Shell(ctx context.Context, line string) *exec.Cmd {
	return exec.CommandContext(ctx, "sh", "-c", line)
}

func (p *Posix) OpenFile(ctx context.Context, path string) error {
	return detach(exec.Command(p.opener(), path))
}

func (p *Posix) OpenURL(ctx context.Context, url string) error {
	return detach(exec.Command(p.opener(), url))
}

func (p *Posix) opener() string {
	if p.goos == "darwin" {
		return "open"
	}
	return "xdg-open"
}
