//go:build windows

package syscall

import (
	"os"
	gosyscall "syscall"
	"time"
)

func fillSys(p *Properties, info os.FileInfo) {
	attr, ok := info.Sys().(*gosyscall.Win32FileAttributeData)
	if !ok {
		return
	}
	atime := time.Unix(0, attr.LastAccessTime.Nanoseconds())
	birth := time.Unix(0, attr.CreationTime.Nanoseconds())
	p.Atime = &atime
	p.Birthtime = &birth
}
