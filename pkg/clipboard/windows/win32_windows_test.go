//go:build windows

package windows

import winsys "golang.org/x/sys/windows"

// procs used only to read the clipboard back
var (
	shell32 = winsys.NewLazySystemDLL("shell32.dll")

	getClipboardData = user32.NewProc("GetClipboardData")
	dragQueryFileW   = shell32.NewProc("DragQueryFileW")
)
