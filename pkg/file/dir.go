package file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"
)

// DirStats summarizes a directory tree. The root itself is not counted.
type DirStats struct {
	Size      int64 `json:"size"`
	FileCount int64 `json:"filecount"`
	DirCount  int64 `json:"dircount"`
}

// CreateDir creates dir and any missing parents using the configured mode.
func (m *Manager) CreateDir(dir string) error {
	dir = Normalize(dir)
	if err := os.MkdirAll(dir, m.cfg.DirMode); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	m.logger.Debug("directory created", zap.String("path", dir))
	return nil
}

// RemoveDir removes dir. With all set, subdirectories are removed
// recursively; otherwise only the files directly inside dir are deleted
// before the final rmdir, which then fails if subdirectories remain.
func (m *Manager) RemoveDir(dir string, all bool) error {
	dir = Normalize(dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	var errs []error
	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())
		switch {
		case entry.IsDir() && all:
			if err := m.RemoveDir(child, true); err != nil {
				errs = append(errs, err)
			}
		case !entry.IsDir():
			if err := os.Remove(child); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if err := os.Remove(dir); err != nil {
		errs = append(errs, fmt.Errorf("failed to remove directory: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		m.logger.Warn("remove directory failed", zap.String("path", dir), zap.Error(err))
		return err
	}
	return nil
}

// IsEmpty reports whether dir has no entries.
func (m *Manager) IsEmpty(dir string) (bool, error) {
	f, err := os.Open(Normalize(dir))
	if err != nil {
		return false, err
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); err != nil {
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// Scan returns the entry names of dir sorted by name.
func (m *Manager) Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(Normalize(dir))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// DirInfo walks dir and totals regular file sizes, files and
// subdirectories. Symlinks are not followed.
func (m *Manager) DirInfo(dir string) (DirStats, error) {
	root := filepath.Clean(Normalize(dir))
	if err := requireDir(root); err != nil {
		return DirStats{}, err
	}

	var size, files, dirs atomic.Int64
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(path string, d os.DirEntry, err error) error {
		if err != nil || path == root {
			return nil // Skip errors
		}

		if d.IsDir() {
			dirs.Add(1)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		files.Add(1)
		size.Add(info.Size())
		return nil
	})
	if err != nil {
		return DirStats{}, fmt.Errorf("walk failed: %w", err)
	}

	return DirStats{
		Size:      size.Load(),
		FileCount: files.Load(),
		DirCount:  dirs.Load(),
	}, nil
}

func requireDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotExist, dir)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrNotExist, dir)
	}
	return nil
}
