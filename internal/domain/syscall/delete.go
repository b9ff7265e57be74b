package syscall

import (
	"context"
	"errors"
	"io/fs"
	"os"
)

func (d *Dispatcher) delete(ctx context.Context, realPath string) *Result {
	if realPath == "" {
		return fail(StatusIllegalPath)
	}

	info, err := os.Lstat(realPath)
	if errors.Is(err, fs.ErrNotExist) {
		return ok(StatusNothingToDelete)
	}
	if err != nil {
		return failure(err)
	}

	if info.IsDir() {
		out, err := d.platform.RemoveTree(ctx, realPath)
		if err != nil {
			return failure(err).withOutput(out)
		}
		return ok(StatusDirDeleted).withOutput(out)
	}

	if err := os.Remove(realPath); err != nil {
		return failure(err)
	}
	return ok(StatusFileDeleted)
}
