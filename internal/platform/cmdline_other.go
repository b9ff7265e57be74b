//go:build !windows

package platform

import "os/exec"

// setCmdLine is a no-op where argv is passed as a vector.
func setCmdLine(cmd *exec.Cmd, line string) {}
