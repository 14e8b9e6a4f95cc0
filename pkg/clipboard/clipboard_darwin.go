//go:build darwin

package clipboard

import "github.com/labi-le/clipdrop/pkg/clipboard/mac"

func newWriter(o Options) (Writer, error) {
	c, err := mac.New(o.Logger)
	if err != nil {
		return nil, err
	}
	return c, nil
}
