//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package syscall

import (
	gosyscall "syscall"

	"golang.org/x/sys/unix"
)

func errnoName(e gosyscall.Errno) string {
	return unix.ErrnoName(e)
}
