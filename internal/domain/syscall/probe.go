package syscall

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

func (d *Dispatcher) probeResult(realPath string) *Result {
	if realPath == "" {
		return fail(StatusIllegalPath)
	}
	props, err := d.probe(realPath)
	if err != nil {
		return failure(err)
	}
	res := ok(StatusOK)
	res.Properties = props
	return res
}

// probe stats realPath. Symlinks are reported as links and described by
// their target; a dangling link is described by the link itself.
func (d *Dispatcher) probe(realPath string) (*Properties, error) {
	linfo, err := os.Lstat(realPath)
	if err != nil {
		return nil, err
	}

	info := linfo
	isLink := linfo.Mode()&fs.ModeSymlink != 0
	if isLink {
		if target, err := os.Stat(realPath); err == nil {
			info = target
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	props := &Properties{
		Name:   filepath.Base(realPath),
		URL:    "file://" + toSlash(realPath),
		IsFile: info.Mode().IsRegular(),
		IsDir:  info.IsDir(),
		IsLink: isLink,
		Size:   info.Size(),
		Mode:   fileMode(info.Mode()),
		Mtime:  info.ModTime(),
	}
	fillSys(props, info)

	if props.IsFile {
		d.classifyFile(realPath, props)
	}
	return props, nil
}

func (d *Dispatcher) classifyFile(realPath string, props *Properties) {
	binary, err := d.classifier.IsBinary(realPath, props.Size)
	if err != nil {
		d.logger.Debug("Binary classification skipped",
			zap.String("path", realPath), zap.Error(err))
	} else {
		props.IsBinary = &binary
	}

	if mtype, err := mimetype.DetectFile(realPath); err == nil {
		props.MimeType = mtype.String()
	}
}

// fileMode renders a FileMode with POSIX type bits, as stat(2) reports it.
func fileMode(m fs.FileMode) uint32 {
	mode := uint32(m.Perm())
	switch {
	case m.IsDir():
		mode |= 0o040000
	case m&fs.ModeSymlink != 0:
		mode |= 0o120000
	case m&fs.ModeNamedPipe != 0:
		mode |= 0o010000
	case m&fs.ModeSocket != 0:
		mode |= 0o140000
	case m&fs.ModeCharDevice != 0:
		mode |= 0o020000
	case m&fs.ModeDevice != 0:
		mode |= 0o060000
	default:
		mode |= 0o100000
	}
	if m&fs.ModeSetuid != 0 {
		mode |= 0o4000
	}
	if m&fs.ModeSetgid != 0 {
		mode |= 0o2000
	}
	if m&fs.ModeSticky != 0 {
		mode |= 0o1000
	}
	return mode
}
