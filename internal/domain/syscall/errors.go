package syscall

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	gosyscall "syscall"
)

// ErrorInfo describes a host error the way the front-end inspects it.
type ErrorInfo struct {
	Message  string `json:"message"`
	Code     string `json:"code,omitempty"`
	Syscall  string `json:"syscall,omitempty"`
	Path     string `json:"path,omitempty"`
	Dest     string `json:"dest,omitempty"`
	ExitCode *int   `json:"exitCode,omitempty"`
	Killed   bool   `json:"killed,omitempty"`
}

func (e *ErrorInfo) Error() string {
	return e.Message
}

// Codes for failures that carry no errno.
const (
	CodeTimeout         = "ETIMEDOUT"
	CodeUnknownEncoding = "ERR_UNKNOWN_ENCODING"
	CodeInvalidData     = "ERR_INVALID_DATA"
	CodeBadPattern      = "ERR_BAD_PATTERN"
)

// codedError attaches a code to an error raised by the bridge itself.
type codedError struct {
	code string
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func withCode(code string, err error) error {
	return &codedError{code: code, err: err}
}

func describe(err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	info := &ErrorInfo{Message: err.Error()}

	var (
		pathErr *fs.PathError
		linkErr *os.LinkError
		exitErr *exec.ExitError
		coded   *codedError
		errno   gosyscall.Errno
	)
	if errors.As(err, &pathErr) {
		info.Syscall = pathErr.Op
		info.Path = pathErr.Path
	}
	if errors.As(err, &linkErr) {
		info.Syscall = linkErr.Op
		info.Path = linkErr.Old
		info.Dest = linkErr.New
	}
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		info.ExitCode = &code
		info.Syscall = "exec"
	}

	switch {
	case errors.As(err, &coded):
		info.Code = coded.code
	case errors.Is(err, context.DeadlineExceeded):
		info.Code = CodeTimeout
		info.Killed = true
	case errors.As(err, &errno):
		info.Code = errnoName(errno)
	}
	if info.Code == "" {
		info.Code = sentinelCode(err)
	}
	return info
}

func sentinelCode(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "ENOENT"
	case errors.Is(err, fs.ErrExist):
		return "EEXIST"
	case errors.Is(err, fs.ErrPermission):
		return "EACCES"
	default:
		return ""
	}
}
