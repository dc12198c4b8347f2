package file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// CreateFile touches path, creating parent directories. An existing file
// is kept, with its times updated, unless overwrite is set, in which case
// it is replaced by an empty file. Zero times default to now.
func (m *Manager) CreateFile(path string, overwrite bool, mtime, atime time.Time) error {
	path = Normalize(path)
	now := time.Now()
	if mtime.IsZero() {
		mtime = now
	}
	if atime.IsZero() {
		atime = now
	}

	if overwrite && exists(path) {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to replace file: %w", err)
		}
	}
	if err := m.CreateDir(filepath.Dir(path)); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, m.cfg.FileMode)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Chtimes(path, atime, mtime)
}

// ReadFile returns the contents of path.
func (m *Manager) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(Normalize(path))
}

// ReadTemplate returns the contents of path, or "" if it cannot be read.
func (m *Manager) ReadTemplate(path string) string {
	data, err := os.ReadFile(Normalize(path))
	if err != nil {
		return ""
	}
	return string(data)
}

// UnlinkFile deletes path.
func (m *Manager) UnlinkFile(path string) error {
	path = Normalize(path)
	if !exists(path) {
		return fmt.Errorf("%w: %s", ErrNotExist, path)
	}
	return os.Remove(path)
}

// Rename moves oldPath to newPath. Identical paths are a no-op.
func (m *Manager) Rename(oldPath, newPath string) error {
	oldPath, newPath = Normalize(oldPath), Normalize(newPath)
	if oldPath == newPath {
		return nil
	}
	return os.Rename(oldPath, newPath)
}

// HandleFile copies or moves a single regular file, creating the target
// directory. An existing target yields ErrExists unless overwrite is set; it
// is replaced only once the new content is complete. Source and target
// naming the same file is refused with ErrExists.
func (m *Manager) HandleFile(oldPath, newPath string, op Op, overwrite bool) error {
	if op != OpCopy && op != OpMove {
		return fmt.Errorf("%w: %q", ErrUnsupportedOp, op)
	}
	oldPath, newPath = Normalize(oldPath), Normalize(newPath)

	src, err := os.Stat(oldPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotExist, oldPath)
		}
		return err
	}
	if !src.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrNotExist, oldPath)
	}

	if dst, err := os.Stat(newPath); err == nil {
		if os.SameFile(src, dst) {
			return fmt.Errorf("%w: %s and %s are the same file", ErrExists, oldPath, newPath)
		}
		if !overwrite {
			return fmt.Errorf("%w: %s", ErrExists, newPath)
		}
	} else if exists(newPath) && !overwrite {
		return fmt.Errorf("%w: %s", ErrExists, newPath)
	}

	if err := m.CreateDir(filepath.Dir(newPath)); err != nil {
		return err
	}

	switch op {
	case OpCopy:
		err = copyFile(oldPath, newPath)
	case OpMove:
		err = moveFile(oldPath, newPath)
	}
	if err != nil {
		m.logger.Warn("file operation failed",
			zap.String("op", string(op)),
			zap.String("from", oldPath),
			zap.String("to", newPath),
			zap.Error(err))
		return err
	}

	m.logger.Debug("file handled",
		zap.String("op", string(op)),
		zap.String("from", oldPath),
		zap.String("to", newPath))
	return nil
}

// HandleDir copies or moves a directory tree. Failures on individual files
// are collected and do not stop the walk. A move removes the source
// directory once every entry was handled. A target inside the source tree
// is refused.
func (m *Manager) HandleDir(oldPath, newPath string, op Op, overwrite bool) error {
	if op != OpCopy && op != OpMove {
		return fmt.Errorf("%w: %q", ErrUnsupportedOp, op)
	}
	oldPath, newPath = Normalize(oldPath), Normalize(newPath)
	if err := requireDir(oldPath); err != nil {
		return err
	}
	if within(oldPath, newPath) {
		return fmt.Errorf("%w: %s is inside %s", ErrUnsupportedOp, newPath, oldPath)
	}
	return m.handleDir(oldPath, newPath, op, overwrite)
}

func (m *Manager) handleDir(oldPath, newPath string, op Op, overwrite bool) error {
	if err := m.CreateDir(newPath); err != nil {
		return err
	}

	entries, err := os.ReadDir(oldPath)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	var errs []error
	for _, entry := range entries {
		from := filepath.Join(oldPath, entry.Name())
		to := filepath.Join(newPath, entry.Name())
		if entry.IsDir() {
			err = m.handleDir(from, to, op, overwrite)
		} else {
			err = m.HandleFile(from, to, op, overwrite)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if op == OpMove {
		if err := os.Remove(oldPath); err != nil {
			return fmt.Errorf("failed to remove source directory: %w", err)
		}
	}
	return nil
}

// within reports whether target is dir itself or lies below it.
func within(dir, target string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return false
	}
	if resolved, err := filepath.EvalSymlinks(absDir); err == nil {
		absDir = resolved
	}
	if resolved, err := evalExisting(absTarget); err == nil {
		absTarget = resolved
	}
	rel, err := filepath.Rel(absDir, absTarget)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// evalExisting resolves symlinks in the longest existing prefix of path.
func evalExisting(path string) (string, error) {
	var rest []string
	for {
		resolved, err := filepath.EvalSymlinks(path)
		if err == nil {
			return filepath.Join(append([]string{resolved}, rest...)...), nil
		}
		parent := filepath.Dir(path)
		if parent == path {
			return "", err
		}
		rest = append([]string{filepath.Base(path)}, rest...)
		path = parent
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// copyFile writes src to a temporary file next to dst and renames it over
// dst, so an existing dst is only replaced by complete content.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}

	out, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return fmt.Errorf("failed to create target: %w", err)
	}
	tmp := out.Name()
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("copy failed: %w", err)
	}
	if err := out.Chmod(info.Mode().Perm()); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace target: %w", err)
	}
	return nil
}

// moveFile renames, falling back to copy and delete across devices.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}
