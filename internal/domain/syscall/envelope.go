package syscall

import (
	"encoding/json"
	"time"

	"github.com/GriffinCanCode/hostbridge/internal/domain/workspace"
	"github.com/GriffinCanCode/hostbridge/internal/platform"
)

// Syscall names.
const (
	OpConfig = "config"
	OpProbe  = "probe"
	OpRead   = "read"
	OpWrite  = "write"
	OpDelete = "delete"
	OpRename = "rename"
	OpCopy   = "copy"
	OpRun    = "run"
	OpOpen   = "open"
)

// Result statuses.
const (
	StatusOK                 = "ok"
	StatusErr                = "err"
	StatusIllegalPath        = "illegal path"
	StatusIllegalDestination = "illegal destination"
	StatusIllegalCommand     = "illegal command"
	StatusUnknownCommand     = "unknown command"

	StatusFileRead      = "file read"
	StatusDirectoryRead = "directory read"
	StatusDirEmpty      = "directory empty"
	StatusDriveListRead = "drive list read"

	StatusFileCreated     = "file created"
	StatusFileOverwritten = "file overwritten"
	StatusDirCreated      = "directory created"
	StatusAlreadyCreated  = "already created"

	StatusFileDeleted     = "file deleted"
	StatusDirDeleted      = "directory deleted"
	StatusNothingToDelete = "nothing to delete"

	StatusFileCopied = "file copied"
	StatusDirCopied  = "directory copied"
)

// Envelope is one request.
type Envelope struct {
	Syscall     string          `json:"syscall,omitempty"`
	Intent      string          `json:"intent,omitempty"`
	Path        string          `json:"path,omitempty"`
	Destination string          `json:"destination,omitempty"`
	Encoding    string          `json:"encoding,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
	Config      json.RawMessage `json:"config,omitempty"`
	Command     json.RawMessage `json:"command,omitempty"`
	URL         string          `json:"url,omitempty"`
	Filter      string          `json:"filter,omitempty"`
}

// Properties describes one filesystem entry.
type Properties struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	IsFile   bool   `json:"isFile"`
	IsDir    bool   `json:"isDir"`
	IsLink   bool   `json:"isLink"`
	IsBinary *bool  `json:"isBinary,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Size     int64  `json:"size"`
	Mode     uint32 `json:"mode"`

	Mtime     time.Time  `json:"mtime"`
	Atime     *time.Time `json:"atime,omitempty"`
	Ctime     *time.Time `json:"ctime,omitempty"`
	Birthtime *time.Time `json:"birthtime,omitempty"`

	Dev     uint64  `json:"dev,omitempty"`
	Ino     uint64  `json:"ino,omitempty"`
	Nlink   uint64  `json:"nlink,omitempty"`
	UID     *uint32 `json:"uid,omitempty"`
	GID     *uint32 `json:"gid,omitempty"`
	Rdev    uint64  `json:"rdev,omitempty"`
	Blksize int64   `json:"blksize,omitempty"`
	Blocks  int64   `json:"blocks,omitempty"`
}

// Result is the outcome of one dispatch. Only the fields relevant to the
// operation are set.
type Result struct {
	Success         bool
	Status          string
	RealPath        string
	RealDestination string

	Properties *Properties
	// Entries is non-nil for directory and drive listings, even when empty.
	Entries []*Properties
	Data    *string
	Charset string
	Config  *workspace.Document
	Err     *ErrorInfo
	Output  *platform.Output
}

// Fields returns the response keys to merge over the request.
func (r *Result) Fields() map[string]any {
	f := map[string]any{
		"success": r.Success,
		"status":  r.Status,
	}
	if r.RealPath != "" {
		f["realPath"] = r.RealPath
	}
	if r.RealDestination != "" {
		f["realDestination"] = r.RealDestination
	}
	if r.Properties != nil {
		f["properties"] = r.Properties
	}
	if r.Entries != nil {
		f["entries"] = r.Entries
	}
	if r.Data != nil {
		f["data"] = *r.Data
	}
	if r.Charset != "" {
		f["charset"] = r.Charset
	}
	if r.Config != nil {
		f["config"] = r.Config
	}
	if r.Err != nil {
		f["err"] = r.Err
	}
	if r.Output != nil {
		f["stdout"] = r.Output.Stdout
		f["stderr"] = r.Output.Stderr
	}
	return f
}

// MarshalJSON encodes the result on its own, without the request.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields())
}

func ok(status string) *Result {
	return &Result{Success: true, Status: status}
}

func fail(status string) *Result {
	return &Result{Success: false, Status: status}
}

// failure converts a host error into an "err" result.
func failure(err error) *Result {
	return &Result{Success: false, Status: StatusErr, Err: describe(err)}
}

func (r *Result) withOutput(out platform.Output) *Result {
	r.Output = &out
	return r
}
