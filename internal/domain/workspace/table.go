package workspace

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one workspace name and its target directory.
type Entry struct {
	Name   string
	Target string
}

// Table is an ordered workspace mapping. Order is significant: it breaks ties
// when a host path matches several workspace targets.
type Table struct {
	entries []Entry
}

// NewTable creates a table from entries, keeping the last target for
// duplicate names at the position of the first.
func NewTable(entries ...Entry) *Table {
	t := &Table{}
	for _, e := range entries {
		t.Set(e.Name, e.Target)
	}
	return t
}

// Lookup returns the target for name.
func (t *Table) Lookup(name string) (string, bool) {
	if t == nil {
		return "", false
	}
	for _, e := range t.entries {
		if e.Name == name {
			return e.Target, true
		}
	}
	return "", false
}

// Each calls fn for every entry in insertion order until fn returns false.
func (t *Table) Each(fn func(name, target string) bool) {
	if t == nil {
		return
	}
	for _, e := range t.entries {
		if !fn(e.Name, e.Target) {
			return
		}
	}
}

// Set assigns target to name. Existing names keep their position; new names
// are appended.
func (t *Table) Set(name, target string) {
	for i := range t.entries {
		if t.entries[i].Name == name {
			t.entries[i].Target = target
			return
		}
	}
	t.entries = append(t.entries, Entry{Name: name, Target: target})
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns a copy of the entries in order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	return &Table{entries: t.Entries()}
}

// MarshalJSON encodes the table as an object in insertion order.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range t.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Target)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object, keeping key order. Non-string values are
// rejected.
func (t *Table) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		t.entries = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("workspaces: expected object, got %v", tok)
	}

	t.entries = nil
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("workspaces: invalid key %v", keyTok)
		}
		var target string
		if err := dec.Decode(&target); err != nil {
			return fmt.Errorf("workspaces: %s: %w", key, err)
		}
		t.Set(key, target)
	}

	_, err = dec.Token()
	return err
}
