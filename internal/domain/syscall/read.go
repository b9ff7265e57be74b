package syscall

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

func (d *Dispatcher) read(ctx context.Context, realPath, encoding, filter string) *Result {
	if realPath == "" {
		return fail(StatusIllegalPath)
	}
	if root := d.platform.DriveRoot(); root != "" && realPath == root {
		return d.readDrives(ctx)
	}

	info, err := os.Stat(realPath)
	if err != nil {
		return failure(err)
	}
	if info.IsDir() {
		return d.readDir(realPath, filter)
	}

	data, err := os.ReadFile(realPath)
	if err != nil {
		return failure(err)
	}
	text, detected, err := decodeContent(data, encoding)
	if err != nil {
		return failure(err)
	}
	res := ok(StatusFileRead)
	res.Data = &text
	res.Charset = detected
	return res
}

func (d *Dispatcher) readDir(realPath, filter string) *Result {
	if filter != "" && !doublestar.ValidatePattern(filter) {
		return failure(withCode(CodeBadPattern, fmt.Errorf("invalid filter: %s", filter)))
	}

	dirents, err := os.ReadDir(realPath)
	if err != nil {
		return failure(err)
	}

	names := make([]string, 0, len(dirents))
	for _, e := range dirents {
		if filter != "" {
			if match, _ := doublestar.Match(filter, e.Name()); !match {
				continue
			}
		}
		names = append(names, e.Name())
	}

	if len(names) == 0 {
		res := ok(StatusDirEmpty)
		res.Entries = []*Properties{}
		return res
	}

	res := ok(StatusDirectoryRead)
	res.Entries = d.probeAll(names, func(name string) string {
		return filepath.Join(realPath, name)
	}, nil)
	return res
}

func (d *Dispatcher) readDrives(ctx context.Context) *Result {
	drives, out, err := d.platform.ListDrives(ctx)
	if err != nil {
		return failure(err).withOutput(out)
	}

	identity := func(drive string) string { return drive }
	res := ok(StatusDriveListRead)
	res.Entries = d.probeAll(drives, identity, driveName)
	return res
}

// probeAll probes every item concurrently and collects the successful
// results in completion order. Failed probes are left out. nameOf, when set,
// replaces the entry name.
func (d *Dispatcher) probeAll(items []string, pathOf, nameOf func(string) string) []*Properties {
	var (
		mu      sync.Mutex
		entries = make([]*Properties, 0, len(items))
		g       errgroup.Group
	)
	for _, item := range items {
		g.Go(func() error {
			props, err := d.probe(pathOf(item))
			if err != nil {
				return nil
			}
			if nameOf != nil {
				props.Name = nameOf(item)
			}
			mu.Lock()
			entries = append(entries, props)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return entries
}

// driveName turns a drive root such as `C:\` into "C-drive".
func driveName(drive string) string {
	if drive == "" {
		return ""
	}
	return strings.ToUpper(drive[:1]) + "-drive"
}
