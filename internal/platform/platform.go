package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/GriffinCanCode/hostbridge/internal/domain/vpath"
)

// ErrNoDrives is returned by ListDrives on hosts without drive letters.
var ErrNoDrives = errors.New("platform has no drive list")

// Output is the captured output of a native tool.
type Output struct {
	Stdout string
	Stderr string
}

// Platform is the host capability used by the syscall dispatcher.
type Platform interface {
	// Name is the Go name of the host OS.
	Name() string
	// Keys lists the names a run command object may use for this host,
	// most specific first.
	Keys() []string
	Style() vpath.Style
	// DriveRoot is the resolved path that lists drives when read, or ""
	// when the host has none.
	DriveRoot() string
	ListDrives(ctx context.Context) ([]string, Output, error)
	RemoveTree(ctx context.Context, path string) (Output, error)
	CopyTree(ctx context.Context, src, dst string) (Output, error)
	// Shell returns a command that runs line through the host shell.
	Shell(ctx context.Context, line string) *exec.Cmd
	OpenFile(ctx context.Context, path string) error
	OpenURL(ctx context.Context, url string) error
}

// lookPathFunc matches exec.LookPath.
type lookPathFunc func(file string) (string, error)

// capture runs cmd and returns its output. A non-zero exit is an error that
// still carries the output.
func capture(cmd *exec.Cmd) (Output, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		return out, fmt.Errorf("%s: %w", cmd.Path, err)
	}
	return out, nil
}

// detach starts cmd without waiting for the launched handler to exit.
func detach(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
