// Package util contains small helpers that would not hurt the simplicity of
// Go if they would be in the builtins/stdlib.
package util

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// Min returns the minimum of a and b.
func Min(a, b int) int {
	if a < b {
		return a
	}

	return b
}

// Max returns the maximum of a and b.
func Max(a, b int) int {
	if a < b {
		return b
	}

	return a
}

// Clamps x into [lo, hi]
func Clamp(x, lo, hi int) int {
	return Max(lo, Min(x, hi))
}

// OmitBytes converts a byte slice into a string representation that omits
// data in the middle if necessary. It is meant for log and test output.
func OmitBytes(data []byte, lim int) string {
	lo := Min(lim, len(data))
	hi := Max(len(data)-lim, lo)

	if lo == hi {
		return fmt.Sprintf("%v", data)
	}

	return fmt.Sprintf("%v ... %v", data[:lo], data[hi:])
}

// Closer closes `c` and logs the error if that failed.
// Useful for defer statements where the error is not interesting anymore.
func Closer(c io.Closer) {
	if err := c.Close(); err != nil {
		log.WithError(err).Warnf("failed to close %v", c)
	}
}

// SizeAccumulator is a io.Writer that simply counts
// the amount of bytes that has been written to it.
// It's useful to count the output size of a stream.
type SizeAccumulator struct {
	size uint64
}

func (s *SizeAccumulator) Write(buf []byte) (int, error) {
	atomic.AddUint64(&s.size, uint64(len(buf)))
	return len(buf), nil
}

// Size returns the cumulated written size in bytes.
func (s *SizeAccumulator) Size() uint64 {
	return atomic.LoadUint64(&s.size)
}

// SuffixPath returns `path` with `suffix` inserted right before the extension
// of the last path element ("a/b.txt" -> "a/b_encoded.txt"). If the file has
// no extension, the suffix is appended. A leading dot of hidden files does not
// count as extension.
func SuffixPath(path, suffix string) string {
	dir, base := filepath.Split(path)

	idx := strings.LastIndex(base, ".")
	if idx <= 0 {
		return path + suffix
	}

	return dir + base[:idx] + suffix + base[idx:]
}
