//go:build linux

package file

import (
	"os"
	"syscall"
	"time"
)

type sysStat struct {
	uid, gid     uint32
	inode        uint64
	atime, ctime time.Time
}

func statSys(fi os.FileInfo) sysStat {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return sysStat{atime: fi.ModTime(), ctime: fi.ModTime()}
	}
	return sysStat{
		uid:   st.Uid,
		gid:   st.Gid,
		inode: st.Ino,
		atime: time.Unix(st.Atim.Unix()),
		ctime: time.Unix(st.Ctim.Unix()),
	}
}

const (
	accessRead  = 0x4
	accessWrite = 0x2
)

func accessible(path string, mode uint32) bool {
	return syscall.Access(path, mode) == nil
}
