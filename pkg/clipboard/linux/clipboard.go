//go:build unix

package linux

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/labi-le/clipdrop/pkg/clipboard/selection"
	"github.com/labi-le/clipdrop/pkg/clipboard/wlr"
	"github.com/labi-le/clipdrop/pkg/clipboard/x11"
	"github.com/labi-le/clipdrop/pkg/ctxlog"
	"github.com/rs/zerolog"
)

const Name = "linux"

var ErrNoClipboardAvailable = errors.New("no clipboard available")

type Options struct {
	Window     time.Duration
	Settle     time.Duration
	Foreground bool
	Tracker    *sync.WaitGroup
	// Lookup reads the session environment, os.LookupEnv when nil.
	// It only decides which protocols are attempted: the Wayland and X11
	// clients still connect through the process environment.
	Lookup func(string) (string, bool)
}

type attempt func(selection.Selection) error

// Clipboard tries Wayland data-control first and X11 ownership second,
// limited to the protocols the session advertises.
type Clipboard struct {
	logger  zerolog.Logger
	session Session

	wayland attempt
	x11     attempt
}

func New(log zerolog.Logger, opts Options) *Clipboard {
	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	c := &Clipboard{
		logger:  ctxlog.Component(log, Name),
		session: Detect(lookup),
	}

	c.wayland = func(sel selection.Selection) error {
		wc, err := wlr.Dial(log)
		if err != nil {
			return err
		}
		return wc.Offer([]byte(sel.URIList()), "text/uri-list", wlr.ServeOptions{
			Window:     opts.Window,
			Settle:     opts.Settle,
			Foreground: opts.Foreground,
			Tracker:    opts.Tracker,
		})
	}

	xc := x11.New(log, x11.Options{
		Window:  opts.Window,
		Settle:  opts.Settle,
		Tracker: opts.Tracker,
	})
	c.x11 = xc.WriteFiles

	return c
}

func (c *Clipboard) Name() string { return Name }

func (c *Clipboard) WriteFiles(sel selection.Selection) error {
	log := ctxlog.Op(c.logger, "linux.WriteFiles")
	log.Trace().Object("session", c.session).Msg("session detected")

	if !c.session.Any() {
		return ErrNoClipboardAvailable
	}

	errs := []error{ErrNoClipboardAvailable}

	if c.session.Wayland {
		err := c.wayland(sel)
		if err == nil {
			log.Debug().Str("protocol", wlr.Name).Msg("files offered")
			return nil
		}
		log.Debug().Err(err).Bool("fallback", c.session.X11).Msg("wayland attempt failed")
		errs = append(errs, fmt.Errorf("wayland: %w", err))
	}

	if c.session.X11 {
		err := c.x11(sel)
		if err == nil {
			log.Debug().Str("protocol", x11.Name).Msg("files offered")
			return nil
		}
		log.Debug().Err(err).Msg("x11 attempt failed")
		errs = append(errs, fmt.Errorf("x11: %w", err))
	}

	return errors.Join(errs...)
}
