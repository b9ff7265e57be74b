package vpath

import (
	"strings"
)

// Style selects the path rooting rules of the host.
type Style int

const (
	// Slash is the POSIX convention: "/"-rooted, "/" separated.
	Slash Style = iota
	// Backslash is the Windows convention: drive-letter rooted, "\" separated.
	Backslash
)

// Separator returns the native separator for the style.
func (s Style) Separator() string {
	if s == Backslash {
		return `\`
	}
	return "/"
}

// String returns the string representation of the style
func (s Style) String() string {
	switch s {
	case Slash:
		return "slash"
	case Backslash:
		return "backslash"
	default:
		return "unknown"
	}
}

// hasDrive reports whether p starts with a drive qualifier such as "C:".
func hasDrive(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// scrub converts separators to "/" and deletes every "/.." occurrence.
func scrub(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	return strings.ReplaceAll(p, "/..", "")
}
