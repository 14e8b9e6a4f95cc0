//go:build !windows && !darwin && !linux && !freebsd && !openbsd && !netbsd && !dragonfly

package clipboard

import (
	"fmt"
	"runtime"
)

func newWriter(Options) (Writer, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, runtime.GOOS)
}
