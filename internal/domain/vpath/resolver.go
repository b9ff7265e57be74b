package vpath

import (
	"strings"
)

// maxSubstitutions bounds chained token expansion. A workspace whose target
// refers back to itself would otherwise never terminate.
const maxSubstitutions = 32

// Table is the workspace lookup consulted during resolution.
type Table interface {
	Lookup(name string) (string, bool)
	Each(fn func(name, target string) bool)
}

// Resolver rewrites virtual paths into host paths and back.
type Resolver struct {
	style  Style
	tables func() Table
}

// NewResolver creates a resolver. tables is called once per operation and
// must return a consistent snapshot of the workspace table.
func NewResolver(style Style, tables func() Table) *Resolver {
	return &Resolver{style: style, tables: tables}
}

// Resolve converts a virtual path into an absolute host path. It returns
// false for empty input, for an unknown or empty workspace token, and for
// token chains that do not terminate.
func (r *Resolver) Resolve(virtual string) (string, bool) {
	if virtual == "" {
		return "", false
	}
	return r.resolveWith(r.tables(), virtual)
}

func (r *Resolver) resolveWith(table Table, p string) (string, bool) {
	for n := 0; ; n++ {
		if _, _, ok := leadingToken(p); !ok {
			break
		}
		if n == maxSubstitutions {
			return "", false
		}
		p = scrub(p)
		name, rest, _ := leadingToken(p)
		target, found := lookup(table, name)
		if !found {
			return "", false
		}
		p = target + rest
	}

	p = r.root(scrub(p))
	if p == "" {
		return "", false
	}
	return p, true
}

func lookup(table Table, name string) (string, bool) {
	if table == nil {
		return "", false
	}
	target, ok := table.Lookup(name)
	if !ok || target == "" {
		return "", false
	}
	return target, true
}

// root applies the platform rooting rules to a scrubbed, "/"-separated path.
func (r *Resolver) root(p string) string {
	sep := r.style.Separator()

	switch r.style {
	case Backslash:
		if len(p) > 1 && p[0] == '/' {
			p = p[1:]
		}
		if p != "" && p[0] != '/' && !hasDrive(p) {
			drive := strings.ToUpper(p[:1]) + ":"
			if i := strings.Index(p, "/"); i >= 0 {
				p = drive + p[i:]
			} else {
				p = drive
			}
		}
		p = strings.ReplaceAll(p, "/", sep)
	default:
		p = "/" + strings.TrimLeft(p, "/")
	}

	if len(p) > 3 && strings.HasSuffix(p, sep) {
		p = p[:len(p)-1]
	}
	return p
}

// ToVirtual converts a host path into its virtual form. With useWorkspaces
// the longest matching workspace target is replaced by its token; equal
// lengths go to the entry that comes first in the table. Drive-rooted paths
// without a workspace match become "/<LETTER>-drive/...".
func (r *Resolver) ToVirtual(osPath string, useWorkspaces bool) string {
	if osPath == "" {
		return ""
	}
	table := r.tables()

	resolved, ok := r.resolveWith(table, osPath)
	if !ok {
		return ""
	}
	p := toSlash(resolved)

	if useWorkspaces {
		if v, ok := r.tokenize(table, p); ok {
			return v
		}
	}

	if r.style == Backslash && hasDrive(p) {
		return "/" + strings.ToUpper(p[:1]) + "-drive" + p[2:]
	}
	return p
}

func (r *Resolver) tokenize(table Table, p string) (string, bool) {
	if table == nil {
		return "", false
	}

	var (
		bestName string
		bestLen  = -1
		bestRest string
	)
	table.Each(func(name, _ string) bool {
		target, ok := r.resolveWith(table, "["+name+"]")
		if !ok {
			return true
		}
		t := toSlash(target)
		rest, ok := r.trimTarget(p, t)
		if ok && len(t) > bestLen {
			bestName, bestLen, bestRest = name, len(t), rest
		}
		return true
	})

	if bestLen < 0 {
		return "", false
	}
	if bestRest == "" {
		return "[" + bestName + "]", true
	}
	return "[" + bestName + "]/" + bestRest, true
}

// trimTarget strips target from the front of p on a segment boundary.
func (r *Resolver) trimTarget(p, target string) (string, bool) {
	if len(p) < len(target) {
		return "", false
	}
	head := p[:len(target)]
	if r.style == Backslash {
		if !strings.EqualFold(head, target) {
			return "", false
		}
	} else if head != target {
		return "", false
	}

	rest := p[len(target):]
	if rest == "" {
		return "", true
	}
	if strings.HasSuffix(target, "/") {
		return rest, true
	}
	if rest[0] != '/' {
		return "", false
	}
	return rest[1:], true
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
