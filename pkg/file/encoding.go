package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/saintfish/chardet"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

// EncodingAuto asks ChangeFileCode to detect the source encoding.
const EncodingAuto = "auto"

// ErrUnknownEncoding is returned for an encoding label with no decoder.
var ErrUnknownEncoding = errors.New("file: unknown encoding")

// DetectEncoding guesses the character set of data, defaulting to utf-8.
func DetectEncoding(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

// lookupEncoding resolves a WHATWG label, retrying without hyphens so
// detector names such as "GB-18030" resolve too.
func lookupEncoding(label string) (encoding.Encoding, error) {
	if enc, _ := charset.Lookup(label); enc != nil {
		return enc, nil
	}
	if enc, _ := charset.Lookup(strings.ReplaceAll(label, "-", "")); enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
}

// Transcode converts data from the in encoding to the out encoding. An in
// value of EncodingAuto detects the source encoding.
func Transcode(data []byte, in, out string) ([]byte, error) {
	if in == EncodingAuto {
		in = DetectEncoding(data)
	}
	src, err := lookupEncoding(in)
	if err != nil {
		return nil, err
	}
	dst, err := lookupEncoding(out)
	if err != nil {
		return nil, err
	}

	utf8, err := src.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", in, err)
	}
	converted, err := dst.NewEncoder().Bytes(utf8)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", out, err)
	}
	return converted, nil
}

// ChangeFileCode rewrites the regular file at path from the in encoding to
// the out encoding.
func (m *Manager) ChangeFileCode(path, in, out string) error {
	path = Normalize(path)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotExist, path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrNotExist, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	converted, err := Transcode(data, in, out)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, converted, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	m.logger.Debug("file re-encoded",
		zap.String("path", path),
		zap.String("from", in),
		zap.String("to", out))
	return nil
}

// ChangeDirFilesCode converts every regular file under dir whose extension
// equals ext. Subdirectories are visited only when recursive is set.
// Conversion failures are collected and returned together.
func (m *Manager) ChangeDirFilesCode(dir, in, out string, recursive bool, ext string) error {
	root := filepath.Clean(Normalize(dir))
	if err := requireDir(root); err != nil {
		return err
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if d.IsDir() {
			if path != root && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || Ext(path) != ext {
			return nil
		}

		if err := m.ChangeFileCode(path, in, out); err != nil {
			mu.Lock()
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk failed: %w", err)
	}
	return errors.Join(errs...)
}
