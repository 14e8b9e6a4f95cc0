package windows

import "errors"

var (
	ErrOpen     = errors.New("failed to open clipboard")
	ErrEmpty    = errors.New("failed to empty clipboard")
	ErrAlloc    = errors.New("failed to alloc global memory")
	ErrLock     = errors.New("failed to lock global memory")
	ErrSetData  = errors.New("failed to set clipboard data")
	ErrRegister = errors.New("failed to register clipboard format")
)
