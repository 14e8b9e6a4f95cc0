//go:build windows

package windows

import (
	"encoding/binary"
	"unsafe"

	winsys "golang.org/x/sys/windows"
)

// session is one OpenClipboard..CloseClipboard span. The caller must hold
// the OS thread locked for its whole life and defer Close right after open.
type session struct{}

func openSession() (*session, error) {
	r, _, err := openClipboard.Call(0)
	if r == 0 {
		return nil, callErr(ErrOpen, err)
	}
	return &session{}, nil
}

func (s *session) Close() {
	noCheck(closeClipboard.Call())
}

func (s *session) empty() error {
	r, _, err := emptyClipboard.Call()
	if r == 0 {
		return callErr(ErrEmpty, err)
	}
	return nil
}

// setGlobal copies data into movable global memory and hands the handle to
// the clipboard. The handle is freed here only if the clipboard refused it.
func (s *session) setGlobal(format uintptr, data []byte) error {
	hMem, _, err := gAlloc.Call(gmemMoveable, uintptr(len(data)))
	if hMem == 0 {
		return callErr(ErrAlloc, err)
	}

	p, _, err := gLock.Call(hMem)
	if p == 0 {
		noCheck(gFree.Call(hMem))
		return callErr(ErrLock, err)
	}

	copy(unsafe.Slice((*byte)(unsafe.Pointer(p)), len(data)), data)
	noCheck(gUnlock.Call(hMem))

	r, _, err := setClipboardData.Call(format, hMem)
	if r == 0 {
		noCheck(gFree.Call(hMem))
		return callErr(ErrSetData, err)
	}

	return nil
}

func (s *session) setPreferredDropEffect() error {
	name, err := winsys.UTF16PtrFromString(preferredDropEffect)
	if err != nil {
		return err
	}

	format, _, err := registerClipboardFormat.Call(uintptr(unsafe.Pointer(name)))
	if format == 0 {
		return callErr(ErrRegister, err)
	}

	return s.setGlobal(format, binary.LittleEndian.AppendUint32(nil, dropEffectCopy))
}
