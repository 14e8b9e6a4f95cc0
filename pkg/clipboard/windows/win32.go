//go:build windows

package windows

import (
	"errors"
	"fmt"
	"syscall"

	winsys "golang.org/x/sys/windows"
)

const (
	cFmtHDrop    = 15
	gmemMoveable = 0x0002

	preferredDropEffect = "Preferred DropEffect"
	dropEffectCopy      = 1
)

// Win32 API
var (
	user32   = winsys.NewLazySystemDLL("user32.dll")
	kernel32 = winsys.NewLazySystemDLL("kernel32.dll")

	openClipboard           = user32.NewProc("OpenClipboard")
	closeClipboard          = user32.NewProc("CloseClipboard")
	emptyClipboard          = user32.NewProc("EmptyClipboard")
	setClipboardData        = user32.NewProc("SetClipboardData")
	registerClipboardFormat = user32.NewProc("RegisterClipboardFormatW")

	gAlloc  = kernel32.NewProc("GlobalAlloc")
	gFree   = kernel32.NewProc("GlobalFree")
	gLock   = kernel32.NewProc("GlobalLock")
	gUnlock = kernel32.NewProc("GlobalUnlock")
)

// callErr attaches the thread's last error to sentinel when it carries a code.
func callErr(sentinel error, err error) error {
	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return sentinel
}

func noCheck(uintptr, uintptr, error) {}
