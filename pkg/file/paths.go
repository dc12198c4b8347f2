package file

import (
	"math"
	"path"
	"strconv"
	"strings"
)

// Normalize converts backslashes to slashes and collapses doubled
// separators.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}

// CheckPath returns p with a trailing slash.
func CheckPath(p string) string {
	if strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}

// Basename returns the last element of p, ignoring a trailing slash.
func Basename(p string) string {
	p = Normalize(p)
	if p == "" {
		return ""
	}
	return path.Base(p)
}

// Ext returns the extension of p without the leading dot.
func Ext(p string) string {
	return strings.TrimPrefix(path.Ext(Basename(p)), ".")
}

// PathParts is the decomposition returned by PathInfo.
type PathParts struct {
	Dir      string // "." when p has no directory part
	Base     string
	Ext      string
	Filename string // Base without extension
}

// PathInfo splits p into its directory, base name, extension and stem.
func PathInfo(p string) PathParts {
	p = Normalize(p)
	base := Basename(p)
	ext := Ext(base)

	stem := base
	if ext != "" {
		stem = strings.TrimSuffix(base, "."+ext)
	}

	return PathParts{
		Dir:      path.Dir(strings.TrimSuffix(p, "/")),
		Base:     base,
		Ext:      ext,
		Filename: stem,
	}
}

// FatherDir returns the name of the directory n levels above p. When n is
// not positive or exceeds the depth of p, the base name is returned.
func FatherDir(p string, n int) string {
	p = strings.TrimSuffix(Normalize(p), "/")
	segments := strings.Split(p, "/")
	if n <= 0 || n >= len(segments) {
		return Basename(p)
	}
	return segments[len(segments)-1-n]
}

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// ByteFormat renders size with binary units, rounding to dec decimals and
// dropping trailing zeros: 1536 becomes "1.5 KB".
func ByteFormat(size int64, dec int) string {
	value := float64(size)
	pos := 0
	for math.Abs(value) >= 1024 && pos < len(byteUnits)-1 {
		value /= 1024
		pos++
	}

	if dec < 0 {
		dec = 0
	}
	scale := math.Pow(10, float64(dec))
	value = math.Round(value*scale) / scale

	return strconv.FormatFloat(value, 'f', -1, 64) + " " + byteUnits[pos]
}
