//go:build darwin

package mac

import (
	"errors"
	"runtime"

	"github.com/ebitengine/purego/objc"
	"github.com/labi-le/clipdrop/pkg/clipboard/selection"
	"github.com/labi-le/clipdrop/pkg/ctxlog"
	"github.com/rs/zerolog"
)

const Name = "nspasteboard"

var ErrWriteFailed = errors.New("pasteboard refused file urls")

type Clipboard struct {
	logger zerolog.Logger
}

// New loads AppKit on first use. A missing framework is reported here
// instead of panicking at package init.
func New(logger zerolog.Logger) (*Clipboard, error) {
	if err := loadAppKit(); err != nil {
		return nil, err
	}
	return &Clipboard{logger: ctxlog.Component(logger, Name)}, nil
}

func (c *Clipboard) Name() string { return Name }

// WriteFiles clears the general pasteboard and writes one file URL object
// per path, so Finder and chat apps see real files instead of text.
func (c *Clipboard) WriteFiles(sel selection.Selection) error {
	log := ctxlog.Op(c.logger, "nspasteboard.WriteFiles")

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	drain := autoreleasePool()
	defer drain()

	paths := sel.Paths()

	clsNSURL := objc.ID(objc.GetClass("NSURL"))
	urls := objc.ID(objc.GetClass("NSMutableArray")).Send(selArrayWithCapacity, uintptr(len(paths)))
	for _, p := range paths {
		urls.Send(selAddObject, clsNSURL.Send(selFileURLWithPath, makeNSString(p)))
	}

	pb := objc.ID(objc.GetClass("NSPasteboard")).Send(selGeneralPasteboard)
	pb.Send(selClearContents)

	if !objc.Send[bool](pb, selWriteObjects, urls) {
		return ErrWriteFailed
	}

	log.Trace().Object("selection", sel).Msg("file urls written")

	return nil
}
