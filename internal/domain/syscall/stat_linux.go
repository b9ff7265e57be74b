//go:build linux

package syscall

import (
	"os"
	gosyscall "syscall"
	"time"
)

func fillSys(p *Properties, info os.FileInfo) {
	st, ok := info.Sys().(*gosyscall.Stat_t)
	if !ok {
		return
	}
	atime := time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec))
	ctime := time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
	uid, gid := st.Uid, st.Gid

	p.Atime = &atime
	p.Ctime = &ctime
	p.Dev = uint64(st.Dev)
	p.Ino = uint64(st.Ino)
	p.Nlink = uint64(st.Nlink)
	p.UID = &uid
	p.GID = &gid
	p.Rdev = uint64(st.Rdev)
	p.Blksize = int64(st.Blksize)
	p.Blocks = int64(st.Blocks)
}
