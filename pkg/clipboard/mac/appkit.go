//go:build darwin

package mac

import (
	"fmt"
	"sync"

	"github.com/ebitengine/purego"
	"github.com/ebitengine/purego/objc"
)

const appKitPath = "/System/Library/Frameworks/AppKit.framework/AppKit"

var (
	loadOnce sync.Once
	loadErr  error
)

func loadAppKit() error {
	loadOnce.Do(func() {
		if _, err := purego.Dlopen(appKitPath, purego.RTLD_GLOBAL|purego.RTLD_LAZY); err != nil {
			loadErr = fmt.Errorf("load AppKit: %w", err)
		}
	})
	return loadErr
}

var (
	selAlloc             = objc.RegisterName("alloc")
	selInit              = objc.RegisterName("init")
	selDrain             = objc.RegisterName("drain")
	selGeneralPasteboard = objc.RegisterName("generalPasteboard")
	selClearContents     = objc.RegisterName("clearContents")
	selWriteObjects      = objc.RegisterName("writeObjects:")
	selFileURLWithPath   = objc.RegisterName("fileURLWithPath:")
	selArrayWithCapacity = objc.RegisterName("arrayWithCapacity:")
	selAddObject         = objc.RegisterName("addObject:")
	selStringWithUTF8    = objc.RegisterName("stringWithUTF8String:")
)

func makeNSString(str string) objc.ID {
	return objc.ID(objc.GetClass("NSString")).Send(selStringWithUTF8, str)
}

// autoreleasePool scopes the temporaries created during one write.
func autoreleasePool() (drain func()) {
	pool := objc.ID(objc.GetClass("NSAutoreleasePool")).Send(selAlloc).Send(selInit)
	return func() { pool.Send(selDrain) }
}
