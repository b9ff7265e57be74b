//go:build darwin

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
	atime := time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec)
	ctime := time.Unix(st.Ctimespec.Sec, st.Ctimespec.Nsec)
	birth := time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
	uid, gid := st.Uid, st.Gid

	p.Atime = &atime
	p.Ctime = &ctime
	p.Birthtime = &birth
	p.Dev = uint64(st.Dev)
	p.Ino = st.Ino
	p.Nlink = uint64(st.Nlink)
	p.UID = &uid
	p.GID = &gid
	p.Rdev = uint64(st.Rdev)
	p.Blksize = int64(st.Blksize)
	p.Blocks = st.Blocks
}
