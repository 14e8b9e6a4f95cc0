package clipboard

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/labi-le/clipdrop/pkg/clipboard/selection"
	"github.com/labi-le/clipdrop/pkg/ctxlog"
	"github.com/labi-le/clipdrop/pkg/id"
)

var ErrUnsupportedPlatform = errors.New("platform has no native file clipboard")

const (
	WindowsNT10 = "nt10"
	MacOS       = "nspasteboard"
	LinuxX11    = "linux"
)

// Writer places a validated selection on the system clipboard as files.
type Writer interface {
	WriteFiles(sel selection.Selection) error
	Name() string
}

// Route names the backend serving goos. The BSDs share the X11 path.
func Route(goos string) (string, error) {
	switch goos {
	case "windows":
		return WindowsNT10, nil
	case "darwin":
		return MacOS, nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return LinuxX11, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

// New builds the backend compiled for the running platform.
func New(opts ...Option) (Writer, error) {
	options, err := NewOptions(opts...)
	if err != nil {
		return nil, err
	}
	return newWriter(options)
}

// SetFiles validates paths and places them on the clipboard so that a
// paste in a file manager copies the files themselves.
func SetFiles(paths []string, opts ...Option) error {
	options, err := NewOptions(opts...)
	if err != nil {
		return err
	}

	options.Logger = ctxlog.Call(options.Logger, id.New())
	log := ctxlog.Op(options.Logger, "clipboard.SetFiles")

	sel, err := selection.New(paths)
	if err != nil {
		return err
	}

	if _, err := Route(runtime.GOOS); err != nil {
		return err
	}

	w, err := newWriter(options)
	if err != nil {
		return err
	}

	if err := w.WriteFiles(sel); err != nil {
		return fmt.Errorf("%s: %w", w.Name(), err)
	}

	log.Debug().
		Str("backend", w.Name()).
		Object("selection", sel).
		Msg("files on clipboard")

	return nil
}
