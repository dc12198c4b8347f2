//go:build !linux

package file

import (
	"os"
	"time"
)

type sysStat struct {
	uid, gid     uint32
	inode        uint64
	atime, ctime time.Time
}

func statSys(fi os.FileInfo) sysStat {
	return sysStat{atime: fi.ModTime(), ctime: fi.ModTime()}
}

const (
	accessRead  = 0x4
	accessWrite = 0x2
)

// accessible approximates access(2) by opening the path.
func accessible(path string, mode uint32) bool {
	flag := os.O_RDONLY
	if mode == accessWrite {
		info, err := os.Stat(path)
		if err != nil {
			return false
		}
		if info.IsDir() {
			return info.Mode().Perm()&0200 != 0
		}
		flag = os.O_WRONLY
	}
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
