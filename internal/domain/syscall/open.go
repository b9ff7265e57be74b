package syscall

import (
	"context"
)

// open hands a rooted or tokenized target to the default file handler and
// anything else to the default browser. url wins over path.
func (d *Dispatcher) open(ctx context.Context, url, virtual string) *Result {
	target := url
	if target == "" {
		target = virtual
	}
	if target == "" {
		return fail(StatusIllegalPath)
	}

	if !isRooted(target) {
		if err := d.platform.OpenURL(ctx, target); err != nil {
			return failure(err)
		}
		return ok(StatusOK)
	}

	hostPath, resolved := d.resolvePath(target)
	if !resolved {
		return fail(StatusIllegalPath)
	}
	if err := d.platform.OpenFile(ctx, hostPath); err != nil {
		return failure(err)
	}
	return ok(StatusOK)
}
