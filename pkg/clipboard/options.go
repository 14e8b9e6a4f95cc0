package clipboard

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvOwnerWindow = "CLIPDROP_OWNER_WINDOW"
	EnvSettleDelay = "CLIPDROP_SETTLE_DELAY"
)

type Options struct {
	Logger zerolog.Logger
	// OwnerWindow bounds how long a background owner keeps serving.
	OwnerWindow time.Duration
	// SettleDelay is how long a call waits for a background owner to fail.
	SettleDelay time.Duration
	// Foreground makes a Wayland write block until first paste or expiry.
	Foreground bool
	// Tracker is Add-ed for every background owner and Done when it exits.
	Tracker *sync.WaitGroup
	// Lookup feeds the env overrides and session detection. Display
	// connections always use the process environment.
	Lookup func(string) (string, bool)
}

type Option func(*Options)

//nolint:mnd //shut up
var DefaultOptions = Options{
	Logger:      zerolog.Nop(),
	OwnerWindow: 30 * time.Second,
	SettleDelay: 100 * time.Millisecond,
	Foreground:  true,
	Lookup:      os.LookupEnv,
}

// NewOptions layers environment overrides over the defaults, then opts over
// both.
func NewOptions(opts ...Option) (Options, error) {
	probe := DefaultOptions
	for _, opt := range opts {
		opt(&probe)
	}

	options := DefaultOptions
	if err := options.fromEnv(probe.Lookup); err != nil {
		return Options{}, err
	}

	for _, opt := range opts {
		opt(&options)
	}

	return options, nil
}

func (o *Options) fromEnv(lookup func(string) (string, bool)) error {
	for key, dst := range map[string]*time.Duration{
		EnvOwnerWindow: &o.OwnerWindow,
		EnvSettleDelay: &o.SettleDelay,
	} {
		raw, exist := lookup(key)
		if !exist || raw == "" {
			continue
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return fmt.Errorf("failed value for %s, example: 5s: %q", key, raw)
		}
		*dst = d
	}
	o.Lookup = lookup
	return nil
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func WithOwnerWindow(d time.Duration) Option {
	return func(o *Options) {
		o.OwnerWindow = d
	}
}

func WithSettleDelay(d time.Duration) Option {
	return func(o *Options) {
		o.SettleDelay = d
	}
}

func WithForeground(foreground bool) Option {
	return func(o *Options) {
		o.Foreground = foreground
	}
}

func WithTracker(wg *sync.WaitGroup) Option {
	return func(o *Options) {
		o.Tracker = wg
	}
}

// WithEnv replaces the environment used for overrides and session detection.
func WithEnv(lookup func(string) (string, bool)) Option {
	return func(o *Options) {
		o.Lookup = lookup
	}
}
