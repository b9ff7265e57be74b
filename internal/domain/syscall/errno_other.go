//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package syscall

import (
	gosyscall "syscall"
)

// errnoName leaves the code to sentinelCode on hosts without POSIX errno
// names.
func errnoName(gosyscall.Errno) string {
	return ""
}
