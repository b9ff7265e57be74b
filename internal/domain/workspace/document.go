package workspace

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Document is the persisted bridge configuration.
type Document struct {
	AppsURL    string
	Workspaces *Table
	// Extra holds top-level keys other than appsUrl and workspaces.
	Extra map[string]json.RawMessage
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{Workspaces: &Table{}}
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		AppsURL:    d.AppsURL,
		Workspaces: d.Workspaces.Clone(),
	}
	if len(d.Extra) > 0 {
		out.Extra = make(map[string]json.RawMessage, len(d.Extra))
		for k, v := range d.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

// MarshalJSON writes appsUrl, workspaces, then extra keys sorted by name.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	write := func(key string, val []byte) {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
	}

	appsURL, err := json.Marshal(d.AppsURL)
	if err != nil {
		return nil, err
	}
	write("appsUrl", appsURL)

	table := d.Workspaces
	if table == nil {
		table = &Table{}
	}
	ws, err := table.MarshalJSON()
	if err != nil {
		return nil, err
	}
	write("workspaces", ws)

	keys := make([]string, 0, len(d.Extra))
	for k := range d.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		write(k, d.Extra[k])
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a document. A missing or null workspaces key yields an
// empty table.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.AppsURL = ""
	d.Workspaces = &Table{}
	d.Extra = nil

	if v, ok := raw["appsUrl"]; ok {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			d.AppsURL = s
		}
		delete(raw, "appsUrl")
	}
	if v, ok := raw["workspaces"]; ok {
		if err := d.Workspaces.UnmarshalJSON(v); err != nil {
			return err
		}
		delete(raw, "workspaces")
	}
	if len(raw) > 0 {
		d.Extra = raw
	}
	return nil
}
