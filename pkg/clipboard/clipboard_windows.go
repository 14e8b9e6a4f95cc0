//go:build windows

package clipboard

import "github.com/labi-le/clipdrop/pkg/clipboard/windows"

func newWriter(o Options) (Writer, error) {
	return windows.New(o.Logger), nil
}
