package syscall

import (
	"context"
	"fmt"
	"io"
	"os"
)

// transferGuard rejects a missing destination or one equal to the source
// before any host call.
func transferGuard(realPath, realDest string) *Result {
	if realPath == "" {
		return fail(StatusIllegalPath)
	}
	if realDest == "" || realDest == realPath {
		return fail(StatusIllegalDestination)
	}
	return nil
}

func (d *Dispatcher) rename(realPath, realDest string) *Result {
	if res := transferGuard(realPath, realDest); res != nil {
		return res
	}
	if err := os.Rename(realPath, realDest); err != nil {
		return failure(err)
	}
	return ok(StatusOK)
}

func (d *Dispatcher) copy(ctx context.Context, realPath, realDest string) *Result {
	if res := transferGuard(realPath, realDest); res != nil {
		return res
	}

	info, err := os.Stat(realPath)
	if err != nil {
		return failure(err)
	}

	if info.IsDir() {
		out, err := d.platform.CopyTree(ctx, realPath, realDest)
		if err != nil {
			return failure(err).withOutput(out)
		}
		return ok(StatusDirCopied).withOutput(out)
	}

	if err := streamFile(realPath, realDest); err != nil {
		return failure(err)
	}
	return ok(StatusFileCopied)
}

func streamFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}
