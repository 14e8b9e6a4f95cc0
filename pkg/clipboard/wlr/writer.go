//go:build unix

package wlr

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	wl "deedles.dev/wl/client"
	"github.com/labi-le/clipdrop/pkg/ctxlog"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

const (
	Name = "wlr"

	writeTimeout = 5 * time.Second
)

// ServeOptions bounds how long an offer is kept alive.
type ServeOptions struct {
	// Window is the liveness window after which the source is withdrawn.
	Window time.Duration
	// Settle is how long a background offer waits for early failures.
	Settle time.Duration
	// Foreground blocks Offer until the first transfer is served, the
	// source is replaced, or Window expires.
	Foreground bool
	// Tracker, when set, is held for as long as the offer is served.
	Tracker *sync.WaitGroup
}

// Clipboard is a single-use data-control client: one Offer per connection.
type Clipboard struct {
	preset *preset
	logger zerolog.Logger
}

func Dial(log zerolog.Logger) (*Clipboard, error) {
	client, err := wl.Dial()
	if err != nil {
		return nil, fmt.Errorf("dial compositor: %w", err)
	}
	return New(client, log), nil
}

func New(client *wl.Client, log zerolog.Logger) *Clipboard {
	return &Clipboard{
		preset: newPreset(client, log),
		logger: ctxlog.Component(log, Name),
	}
}

// Offer sets the seat selection to data advertised as mimeType and serves
// paste requests until the source is cancelled or the window expires.
// Errors are returned only when nothing was ever served.
func (c *Clipboard) Offer(data []byte, mimeType string, opts ServeOptions) error {
	log := ctxlog.Op(c.logger, "wlr.Offer")
	client := c.preset.client

	if err := c.preset.Setup(); err != nil {
		_ = client.Close()
		return err
	}

	srv := newServer(data, mimeType, c.logger)
	srv.source = c.preset.manager.CreateDataSource()
	srv.source.Listener = srv
	srv.source.Offer(mimeType)

	c.preset.device.Listener = srv
	c.preset.device.SetSelection(srv.source)

	if err := client.RoundTrip(); err != nil {
		_ = client.Close()
		return fmt.Errorf("set selection: %w", err)
	}

	log.Debug().
		Str("mime", mimeType).
		Dur("window", opts.Window).
		Bool("foreground", opts.Foreground).
		Msg("selection offered")

	stop := sync.OnceFunc(func() {
		if err := client.Close(); err != nil {
			log.Trace().Err(err).Msg("close client")
		}
	})
	expire := time.AfterFunc(opts.Window, stop)

	finished := make(chan struct{})
	var loopErr error

	if opts.Tracker != nil {
		opts.Tracker.Add(1)
	}
	go func() {
		if opts.Tracker != nil {
			defer opts.Tracker.Done()
		}
		defer close(finished)
		defer expire.Stop()

		loopErr = c.run(srv.cancelled)
		srv.transfers.Wait()
		stop()

		log.Debug().Err(loopErr).Msg("offer withdrawn")
	}()

	return srv.outcome(finished, func() error { return loopErr }, opts.wait())
}

// wait is how long Offer blocks when nothing happens: the whole window in
// foreground mode, the settle delay otherwise.
func (o ServeOptions) wait() time.Duration {
	if o.Foreground {
		return o.Window
	}
	return o.Settle
}

// outcome reports the result of an offer that has been set. loopErr is read
// only after finished is closed. A failing event loop is an error only when
// nothing was served before it stopped.
func (s *server) outcome(finished <-chan struct{}, loopErr func() error, wait time.Duration) error {
	timeout := time.NewTimer(wait)
	defer timeout.Stop()

	select {
	case <-s.served:
		return nil
	case <-s.cancelled:
		return nil
	case <-timeout.C:
		return nil
	case <-finished:
		if err := loopErr(); err != nil && !s.wasServed() {
			return fmt.Errorf("serve selection: %w", err)
		}
		return nil
	}
}

func (c *Clipboard) run(done <-chan struct{}) error {
	events := c.preset.client.Events()
	for {
		select {
		case <-done:
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := ev(); err != nil {
				return err
			}
		}
	}
}

// server answers transfer requests for one source and tracks its device.
type server struct {
	data   []byte
	mime   string
	source *Source
	logger zerolog.Logger

	served    chan struct{}
	cancelled chan struct{}
	serveOnce sync.Once
	stopOnce  sync.Once
	transfers sync.WaitGroup
}

func newServer(data []byte, mimeType string, log zerolog.Logger) *server {
	return &server{
		data:      data,
		mime:      mimeType,
		logger:    log,
		served:    make(chan struct{}),
		cancelled: make(chan struct{}),
	}
}

func (s *server) wasServed() bool {
	select {
	case <-s.served:
		return true
	default:
		return false
	}
}

func (s *server) Send(mimeType string, f *os.File) {
	if mimeType != s.mime {
		s.logger.Trace().Str("mime", mimeType).Msg("unoffered mime requested")
		_ = f.Close()
		return
	}

	s.transfers.Add(1)
	go func() {
		defer s.transfers.Done()
		defer s.serveOnce.Do(func() { close(s.served) })

		s.write(f)
	}()
}

func (s *server) write(f *os.File) {
	defer f.Close()

	log := ctxlog.Op(s.logger, "wlr.Send")

	timer := time.AfterFunc(writeTimeout, func() { f.Close() })
	defer timer.Stop()

	var total int
	for total < len(s.data) {
		n, err := f.Write(s.data[total:])
		total += n
		if err != nil {
			if !isExpectedSocketError(err) {
				log.Debug().Err(err).Int("written", total).Msg("write failed")
			}
			return
		}
	}

	log.Trace().Int("written", total).Msg("transfer served")
}

func isExpectedSocketError(err error) bool {
	for _, target := range []error{unix.EPIPE, unix.ECONNRESET, unix.EDESTADDRREQ, unix.EBADF, os.ErrClosed} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s *server) stop() {
	s.stopOnce.Do(func() { close(s.cancelled) })
}

// Cancelled means another client took the selection.
func (s *server) Cancelled() {
	s.logger.Debug().Msg("selection replaced")
	if s.source != nil {
		s.source.Destroy()
	}
	s.stop()
}

func (s *server) DataOffer(*Offer) {}

func (s *server) Selection(id *Offer) {
	if id != nil {
		id.Destroy()
	}
}

func (s *server) PrimarySelection(id *Offer) {
	if id != nil {
		id.Destroy()
	}
}

// Finished means the device is no longer valid, usually because the seat
// went away.
func (s *server) Finished() {
	s.logger.Debug().Msg("data device finished")
	s.stop()
}
