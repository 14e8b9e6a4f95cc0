// Package textclip places paths on the clipboard as plain text, for when
// the native file write is unavailable.
package textclip

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
)

var ErrUnsupported = errors.New("no text clipboard tool available")

// unsupported is true when atotto found no clipboard utility on the host.
var unsupported = func() bool { return clipboard.Unsupported }

// Join renders paths one per line, without a trailing newline.
func Join(paths []string) string {
	return strings.Join(paths, "\n")
}

func Write(paths []string) error {
	if unsupported() {
		return ErrUnsupported
	}
	return clipboard.WriteAll(Join(paths))
}
