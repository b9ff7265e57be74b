package platform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/GriffinCanCode/hostbridge/internal/domain/vpath"
)

// Windows implements Platform for Windows hosts.
type Windows struct {
	lookPath lookPathFunc
}

// NewWindows creates a Windows platform.
func NewWindows() *Windows {
	return &Windows{lookPath: exec.LookPath}
}

func (w *Windows) Name() string { return "windows" }

// Keys accepts the browser-side name first, then the Go name.
func (w *Windows) Keys() []string { return []string{"win32", "windows"} }

func (w *Windows) Style() vpath.Style { return vpath.Backslash }

func (w *Windows) DriveRoot() string { return `\` }

// ListDrives parses the output of "fsutil fsinfo drives".
func (w *Windows) ListDrives(ctx context.Context) ([]string, Output, error) {
	out, err := capture(exec.CommandContext(ctx, "fsutil", "fsinfo", "drives"))
	if err != nil {
		return nil, out, err
	}
	return parseDrives(out.Stdout), out, nil
}

func (w *Windows) RemoveTree(ctx context.Context, path string) (Output, error) {
	if _, err := w.lookPath("cmd"); err != nil {
		return Output{}, os.RemoveAll(path)
	}
	return capture(w.Shell(ctx, rmdirLine(path)))
}

// CopyTree runs xcopy /e /i, which copies the contents of src into dst
// whether or not dst exists. The in-process fallback does the same.
func (w *Windows) CopyTree(ctx context.Context, src, dst string) (Output, error) {
	if _, err := w.lookPath("xcopy"); err != nil {
		return Output{}, copyTree(ctx, src, dst)
	}
	return capture(exec.CommandContext(ctx, "xcopy", "/e", "/i", src, dst))
}

// Shell hands line to cmd.exe untouched. cmd does not understand the
// backslash escaping Go applies to quoted arguments.
func (w *Windows) Shell(ctx context.Context, line string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "cmd", "/C", line)
	setCmdLine(cmd, shellLine(line))
	return cmd
}

// shellLine is the literal command line cmd.exe receives for line.
func shellLine(line string) string {
	return "cmd /C " + line
}

func rmdirLine(path string) string {
	return fmt.Sprintf(`rmdir /s /q "%s"`, path)
}

func (w *Windows) OpenFile(ctx context.Context, path string) error {
	return detach(exec.Command("rundll32", "url.dll,FileProtocolHandler", path))
}

func (w *Windows) OpenURL(ctx context.Context, url string) error {
	return detach(exec.Command("rundll32", "url.dll,FileProtocolHandler", url))
}

// parseDrives turns "Drives: C:\ D:\" into []string{`C:\`, `D:\`}.
func parseDrives(stdout string) []string {
	fields := strings.Fields(stdout)
	if len(fields) == 0 {
		return nil
	}
	drives := make([]string, 0, len(fields)-1)
	for _, f := range fields[1:] {
		if len(f) >= 2 && f[1] == ':' {
			drives = append(drives, f)
		}
	}
	return drives
}
