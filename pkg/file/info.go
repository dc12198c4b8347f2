package file

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// FileInfo is a metadata snapshot of a filesystem entry.
type FileInfo struct {
	Name     string      `json:"filename"`
	Path     string      `json:"pathname"`
	Dir      string      `json:"path"`
	UID      uint32      `json:"owner"`
	GID      uint32      `json:"group"`
	Inode    uint64      `json:"inode"`
	Atime    time.Time   `json:"atime"`
	Ctime    time.Time   `json:"ctime"`
	Mtime    time.Time   `json:"mtime"`
	Perms    os.FileMode `json:"perms"`
	Size     int64       `json:"size"`
	Type     string      `json:"type"`
	Ext      string      `json:"ext"`
	MIME     string      `json:"mime"`
	IsDir    bool        `json:"isDir"`
	IsFile   bool        `json:"isFile"`
	IsLink   bool        `json:"isLink"`
	Readable bool        `json:"isReadable"`
	Writable bool        `json:"isWritable"`
}

// Info stats path. Links are reported as links, while the remaining
// fields describe the link target when it resolves.
func (m *Manager) Info(path string) (*FileInfo, error) {
	path = Normalize(path)
	lst, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat: %w", err)
	}
	st := lst
	if lst.Mode()&os.ModeSymlink != 0 {
		if target, err := os.Stat(path); err == nil {
			st = target
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	sys := statSys(st)
	info := &FileInfo{
		Name:     filepath.Base(path),
		Path:     abs,
		Dir:      filepath.Dir(path),
		UID:      sys.uid,
		GID:      sys.gid,
		Inode:    sys.inode,
		Atime:    sys.atime,
		Ctime:    sys.ctime,
		Mtime:    st.ModTime(),
		Perms:    st.Mode().Perm(),
		Size:     st.Size(),
		Type:     fileType(lst.Mode()),
		IsDir:    st.IsDir(),
		IsFile:   st.Mode().IsRegular(),
		IsLink:   lst.Mode()&os.ModeSymlink != 0,
		Readable: accessible(path, accessRead),
		Writable: accessible(path, accessWrite),
	}

	switch {
	case info.IsFile:
		info.Ext = Ext(path)
		if mtype, err := mimetype.DetectFile(path); err == nil {
			info.MIME = mtype.String()
		}
	case info.IsDir:
		info.MIME = "inode/directory"
	}
	return info, nil
}

func fileType(mode os.FileMode) string {
	switch {
	case mode.IsRegular():
		return "file"
	case mode.IsDir():
		return "dir"
	case mode&os.ModeSymlink != 0:
		return "link"
	case mode&os.ModeNamedPipe != 0:
		return "fifo"
	case mode&os.ModeSocket != 0:
		return "socket"
	case mode&os.ModeCharDevice != 0:
		return "char"
	case mode&os.ModeDevice != 0:
		return "block"
	}
	return "unknown"
}

// Attributes accepted by ChangeFile.
const (
	AttrMode  = "mode"
	AttrOwner = "owner"
	AttrGroup = "group"
)

// ChangeFile updates one attribute of path. Mode values are octal;
// owner and group accept a name or a numeric id.
func (m *Manager) ChangeFile(path, attr, value string) error {
	path = Normalize(path)
	switch attr {
	case AttrMode:
		mode, err := strconv.ParseUint(value, 8, 32)
		if err != nil {
			return fmt.Errorf("invalid mode %q: %w", value, err)
		}
		return os.Chmod(path, os.FileMode(mode))
	case AttrOwner:
		uid, err := lookupID(value, func(name string) (string, error) {
			u, err := user.Lookup(name)
			if err != nil {
				return "", err
			}
			return u.Uid, nil
		})
		if err != nil {
			return err
		}
		return os.Chown(path, uid, -1)
	case AttrGroup:
		gid, err := lookupID(value, func(name string) (string, error) {
			g, err := user.LookupGroup(name)
			if err != nil {
				return "", err
			}
			return g.Gid, nil
		})
		if err != nil {
			return err
		}
		return os.Chown(path, -1, gid)
	}
	return fmt.Errorf("%w: attribute %q", ErrUnsupportedOp, attr)
}

func lookupID(value string, resolve func(string) (string, error)) (int, error) {
	if id, err := strconv.Atoi(value); err == nil {
		return id, nil
	}
	raw, err := resolve(value)
	if err != nil {
		return 0, fmt.Errorf("unknown id %q: %w", value, err)
	}
	return strconv.Atoi(raw)
}
