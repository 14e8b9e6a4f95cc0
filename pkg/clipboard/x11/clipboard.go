package x11

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/labi-le/clipdrop/pkg/clipboard/selection"
	"github.com/labi-le/clipdrop/pkg/ctxlog"
	"github.com/rs/zerolog"
)

const Name = "x11"

var ErrNotOwner = errors.New("clipboard ownership not acquired")

type Options struct {
	// Window bounds how long ownership is held.
	Window time.Duration
	// Settle is how long WriteFiles waits for the owner to report.
	Settle time.Duration
	// Tracker, when set, is held while the owner runs.
	Tracker *sync.WaitGroup
}

type Clipboard struct {
	logger zerolog.Logger
	opts   Options
}

func New(log zerolog.Logger, opts Options) *Clipboard {
	return &Clipboard{
		logger: ctxlog.Component(log, Name),
		opts:   opts,
	}
}

func (c *Clipboard) Name() string { return Name }

// Payloads maps each served target name to its bytes.
func Payloads(sel selection.Selection) map[string][]byte {
	uris := []byte(sel.URIList())
	return map[string][]byte{
		targetURIList:   uris,
		targetGnome:     []byte(sel.GnomeCopiedFiles()),
		targetUTF8:      uris,
		targetPlainUTF8: uris,
	}
}

// WriteFiles starts a detached owner for sel and waits at most the settle
// delay for it. Only a setup failure seen inside that delay is returned;
// later failures are logged by the owner.
func (c *Clipboard) WriteFiles(sel selection.Selection) error {
	log := ctxlog.Op(c.logger, "x11.WriteFiles")

	ready := c.own(Payloads(sel))

	settle := time.NewTimer(c.opts.Settle)
	defer settle.Stop()

	select {
	case err := <-ready:
		if err != nil {
			return err
		}
		log.Trace().Object("selection", sel).Msg("ownership verified")
	case <-settle.C:
		log.Trace().Object("selection", sel).Msg("owner still starting, assuming success")
	}

	return nil
}

// own spawns the owner goroutine. The returned channel yields the setup
// outcome exactly once.
func (c *Clipboard) own(payloads map[string][]byte) <-chan error {
	ready := make(chan error, 1)

	if c.opts.Tracker != nil {
		c.opts.Tracker.Add(1)
	}

	go func() {
		if c.opts.Tracker != nil {
			defer c.opts.Tracker.Done()
		}

		o, err := newOwner(payloads, c.logger)
		if err != nil {
			c.logger.Debug().Err(err).Msg("owner setup failed")
			ready <- err
			return
		}

		expire := time.AfterFunc(c.opts.Window, o.close)
		defer expire.Stop()
		defer o.close()

		if err := o.acquire(); err != nil {
			c.logger.Debug().Err(err).Msg("owner setup failed")
			ready <- fmt.Errorf("acquire: %w", err)
			return
		}
		ready <- nil

		o.serve()
	}()

	return ready
}
