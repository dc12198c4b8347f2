package file

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filters accepted by ListDirInfo besides an extension alternation.
const (
	FilterAll    = "*"
	FilterFolder = "folder"
	FilterFile   = "file"
)

// Orders accepted by ListDirInfo.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
	SortNat  = "nat"
)

// ListDirInfo lists the paths under dir, descending into subdirectories
// when recursive is set. filter is FilterAll, FilterFolder, FilterFile or
// a "|" separated extension list such as "go|md" matched literally and
// case-insensitively against file names; an empty filter means FilterAll. order is SortAsc,
// SortDesc, SortNat (case-insensitive natural order) or anything else for
// directory order.
func (m *Manager) ListDirInfo(dir string, recursive bool, filter, order string) ([]string, error) {
	dir = strings.TrimSuffix(Normalize(dir), "/")
	if dir == "" {
		dir = "/"
	}
	if err := requireDir(dir); err != nil {
		return nil, err
	}

	var match func(path string, isDir bool) bool
	switch filter {
	case "", FilterAll:
		match = func(string, bool) bool { return true }
	case FilterFolder:
		match = func(_ string, isDir bool) bool { return isDir }
	case FilterFile:
		match = func(_ string, isDir bool) bool { return !isDir }
	default:
		re, err := extensionPattern(filter)
		if err != nil {
			return nil, err
		}
		match = func(path string, isDir bool) bool {
			return !isDir && re.MatchString(Basename(path))
		}
	}

	files, err := listDir(dir, recursive, match)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(order) {
	case SortAsc:
		sort.Strings(files)
	case SortDesc:
		sort.Sort(sort.Reverse(sort.StringSlice(files)))
	case SortNat:
		slices.SortStableFunc(files, NaturalCompare)
	}
	return files, nil
}

// extensionPattern matches file names ending in any of the "|" separated
// extensions. Extensions are literal text.
func extensionPattern(filter string) (*regexp.Regexp, error) {
	var exts []string
	for _, ext := range strings.Split(filter, "|") {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext != "" {
			exts = append(exts, regexp.QuoteMeta(ext))
		}
	}
	if len(exts) == 0 {
		return nil, fmt.Errorf("invalid extension filter %q", filter)
	}
	return regexp.Compile(`(?i)\.(?:` + strings.Join(exts, "|") + `)$`)
}

func listDir(dir string, recursive bool, match func(string, bool) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	sep := "/"
	if strings.HasSuffix(dir, "/") {
		sep = ""
	}

	var files []string
	for _, entry := range entries {
		path := dir + sep + entry.Name()
		if entry.IsDir() && recursive {
			children, err := listDir(path, recursive, match)
			if err != nil {
				return nil, err
			}
			files = append(files, children...)
		}
		if match(path, entry.IsDir()) {
			files = append(files, path)
		}
	}
	return files, nil
}

// Glob returns the paths matching pattern, which may use "**" to cross
// directory boundaries.
func (m *Manager) Glob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob failed: %w", err)
	}
	return matches, nil
}

// NaturalCompare orders a and b case-insensitively, comparing runs of
// digits by numeric value so "img12" sorts after "img2".
func NaturalCompare(a, b string) int {
	a, b = strings.ToLower(a), strings.ToLower(b)
	for a != "" && b != "" {
		ca, cb := a[0], b[0]
		if isDigit(ca) && isDigit(cb) {
			na, ra := digitRun(a)
			nb, rb := digitRun(b)
			if c := compareDigits(na, nb); c != 0 {
				return c
			}
			a, b = ra, rb
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		a, b = a[1:], b[1:]
	}
	return len(a) - len(b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func digitRun(s string) (string, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// compareDigits compares decimal strings of any length by value.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}
