//go:build windows

package windows

import (
	"runtime"

	"github.com/labi-le/clipdrop/pkg/clipboard/selection"
	"github.com/labi-le/clipdrop/pkg/ctxlog"
	"github.com/rs/zerolog"
)

const Name = "nt10"

type Clipboard struct {
	logger zerolog.Logger
}

func New(logger zerolog.Logger) *Clipboard {
	return &Clipboard{logger: ctxlog.Component(logger, Name)}
}

func (c *Clipboard) Name() string { return Name }

// WriteFiles replaces the clipboard with a CF_HDROP list of sel and marks
// the preferred drop effect as copy. The clipboard is opened exactly once
// and closed on every return path.
func (c *Clipboard) WriteFiles(sel selection.Selection) error {
	log := ctxlog.Op(c.logger, "nt10.WriteFiles")

	block := DropFiles(sel.Paths())

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.empty(); err != nil {
		return err
	}

	if err := s.setGlobal(cFmtHDrop, block); err != nil {
		return err
	}

	if err := s.setPreferredDropEffect(); err != nil {
		log.Debug().Err(err).Msg("preferred drop effect not set")
	}

	log.Trace().
		Object("selection", sel).
		Int("block", len(block)).
		Msg("hdrop written")

	return nil
}
