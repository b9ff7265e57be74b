package syscall

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

func (d *Dispatcher) write(realPath string, data json.RawMessage, encoding string) *Result {
	if realPath == "" {
		return fail(StatusIllegalPath)
	}

	content, isFile, err := fileData(data)
	if err != nil {
		return failure(err)
	}
	if !isFile {
		return mkdir(realPath, true)
	}

	raw, err := encodeContent(content, encoding)
	if err != nil {
		return failure(err)
	}
	res := writeFile(realPath, raw, true)
	if res.Success && d.store != nil && filepath.Base(realPath) == d.store.ConfigBase() {
		d.store.Invalidate()
	}
	return res
}

// fileData reports whether data is a JSON string and returns it. Anything
// else, including absence, asks for a directory.
func fileData(data json.RawMessage) (string, bool, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false, withCode(CodeInvalidData, err)
	}
	return s, true, nil
}

func writeFile(realPath string, content []byte, retry bool) *Result {
	status := StatusFileCreated
	if _, err := os.Stat(realPath); err == nil {
		status = StatusFileOverwritten
	}

	err := os.WriteFile(realPath, content, 0o644)
	switch {
	case err == nil:
		return ok(status)
	case retry && errors.Is(err, fs.ErrNotExist):
		createParent(realPath)
		return writeFile(realPath, content, false)
	default:
		return failure(err)
	}
}

func mkdir(realPath string, retry bool) *Result {
	err := os.Mkdir(realPath, 0o755)
	switch {
	case err == nil:
		return ok(StatusDirCreated)
	case errors.Is(err, fs.ErrExist):
		if info, statErr := os.Stat(realPath); statErr == nil && info.IsDir() {
			return ok(StatusAlreadyCreated)
		}
		return failure(err)
	case retry && errors.Is(err, fs.ErrNotExist):
		createParent(realPath)
		return mkdir(realPath, false)
	default:
		return failure(err)
	}
}

// createParent makes the parent chain of p. Errors surface through the retry.
func createParent(p string) {
	_ = os.MkdirAll(filepath.Dir(p), 0o755)
}
