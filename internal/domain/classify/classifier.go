// Package classify decides whether a file holds text or binary content and
// remembers the verdict per file extension.
package classify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultScanLimit is the size at or above which unknown files are assumed
// binary without being read.
const DefaultScanLimit int64 = 1 << 20

// Verdict is the memoized classification of an extension.
type Verdict int

const (
	Unknown Verdict = iota
	Text
	Binary
)

func (v Verdict) String() string {
	switch v {
	case Text:
		return "text"
	case Binary:
		return "binary"
	default:
		return "unknown"
	}
}

// Classifier memoizes text/binary verdicts by lower-cased extension.
type Classifier struct {
	limit int64

	mu   sync.RWMutex
	memo map[string]Verdict
}

// New creates a classifier. A non-positive limit selects DefaultScanLimit.
func New(limit int64) *Classifier {
	if limit <= 0 {
		limit = DefaultScanLimit
	}
	return &Classifier{
		limit: limit,
		memo:  make(map[string]Verdict),
	}
}

// IsBinary classifies the file at path whose size is already known.
func (c *Classifier) IsBinary(path string, size int64) (bool, error) {
	ext := strings.ToLower(filepath.Ext(path))

	if ext != "" {
		switch c.Known(ext) {
		case Text:
			return false, nil
		case Binary:
			return true, nil
		}
	}

	if size >= c.limit {
		return true, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("classify %s: %w", path, err)
	}

	binary := containsControl(data)
	if ext != "" {
		c.remember(ext, binary)
	}
	return binary, nil
}

// Known returns the memoized verdict for ext (".png").
func (c *Classifier) Known(ext string) Verdict {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.memo[strings.ToLower(ext)]
}

func (c *Classifier) remember(ext string, binary bool) {
	v := Text
	if binary {
		v = Binary
	}
	c.mu.Lock()
	c.memo[ext] = v
	c.mu.Unlock()
}

// containsControl reports whether data holds a byte below 32 other than tab,
// line feed or carriage return.
func containsControl(data []byte) bool {
	for _, b := range data {
		if b < 32 && b != '\t' && b != '\n' && b != '\r' {
			return true
		}
	}
	return false
}
