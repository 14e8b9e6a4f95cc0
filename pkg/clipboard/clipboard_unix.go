//go:build linux || freebsd || openbsd || netbsd || dragonfly

package clipboard

import "github.com/labi-le/clipdrop/pkg/clipboard/linux"

func newWriter(o Options) (Writer, error) {
	return linux.New(o.Logger, linux.Options{
		Window:     o.OwnerWindow,
		Settle:     o.SettleDelay,
		Foreground: o.Foreground,
		Tracker:    o.Tracker,
		Lookup:     o.Lookup,
	}), nil
}
