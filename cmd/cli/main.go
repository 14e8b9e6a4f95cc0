package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/labi-le/clipdrop/internal/filemanager"
	"github.com/labi-le/clipdrop/internal/metadata"
	"github.com/labi-le/clipdrop/internal/notification"
	"github.com/labi-le/clipdrop/internal/textclip"
	"github.com/labi-le/clipdrop/pkg/clipboard"
	"github.com/labi-le/clipdrop/pkg/clipboard/selection"
	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"
)

type action struct {
	verbose          bool
	showVersion      bool
	showHelp         bool
	notify           bool
	textFallback     bool
	background       bool
	printFileManager bool

	ownerWindow time.Duration
	settleDelay time.Duration
}

func parseFlags() action {
	var act action

	flag.BoolVar(&act.verbose, "verbose", false, "Verbose logs")
	flag.BoolVarP(&act.showVersion, "version", "v", false, "Show version")
	flag.BoolVarP(&act.showHelp, "help", "h", false, "Show help")
	flag.BoolVar(&act.notify, "notify", false, "Show a desktop notification after copying")
	flag.BoolVar(&act.textFallback, "text-fallback", true, "Copy the paths as text when files cannot be placed on the clipboard")
	flag.BoolVar(&act.background, "background", false, "Return right after offering on Wayland instead of waiting for the first paste")
	flag.BoolVar(&act.printFileManager, "print-file-manager", false, "Print the name of the file manager to paste into and exit")
	flag.DurationVar(&act.ownerWindow, "owner-window", clipboard.DefaultOptions.OwnerWindow, "How long the clipboard is served in the background (env "+clipboard.EnvOwnerWindow+")")
	flag.DurationVar(&act.settleDelay, "settle-delay", clipboard.DefaultOptions.SettleDelay, "How long to wait for a background owner to fail (env "+clipboard.EnvSettleDelay+")")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage: clipdrop [flags] PATH...\n\nPlace files on the system clipboard so a paste in the file manager copies them.\n\nFlags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	return act
}

// options passes duration flags only when given so the environment can
// still override the defaults.
func (a action) options(logger zerolog.Logger, tracker *sync.WaitGroup) []clipboard.Option {
	opts := []clipboard.Option{
		clipboard.WithLogger(logger),
		clipboard.WithTracker(tracker),
		clipboard.WithForeground(!a.background),
	}
	if flag.CommandLine.Changed("owner-window") {
		opts = append(opts, clipboard.WithOwnerWindow(a.ownerWindow))
	}
	if flag.CommandLine.Changed("settle-delay") {
		opts = append(opts, clipboard.WithSettleDelay(a.settleDelay))
	}
	return opts
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg := parseFlags()

	if cfg.showHelp {
		flag.Usage()
		return
	}

	if cfg.showVersion {
		fmt.Println(metadata.String())
		return
	}

	applyTagsOverrides(&cfg)
	logger := initLogger(cfg.verbose)

	logger.Trace().
		Str("v", metadata.Version).
		Str("commit_hash", metadata.CommitHash).
		Str("build_time", metadata.BuildTime).
		Send()

	if cfg.printFileManager {
		fmt.Println(filemanager.Name(os.LookupEnv, logger))
		return
	}

	code := run(ctx, cfg, flag.Args(), logger)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, cfg action, args []string, logger zerolog.Logger) int {
	paths := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			logger.Error().Err(err).Str("path", arg).Msg("resolve path")
			return 1
		}
		paths = append(paths, abs)
	}

	sel, err := selection.New(paths)
	if err != nil {
		logger.Error().Err(err).Msg("nothing copied")
		if errors.Is(err, selection.ErrNoInput) {
			flag.Usage()
		}
		return 2
	}

	var tracker sync.WaitGroup
	asText := false

	if err := clipboard.SetFiles(sel.Paths(), cfg.options(logger, &tracker)...); err != nil {
		if !cfg.textFallback {
			logger.Error().Err(err).Msg("files not copied")
			return 1
		}

		logger.Warn().Err(err).Msg("files not copied, falling back to paths as text")
		if err := textclip.Write(sel.Paths()); err != nil {
			if errors.Is(err, textclip.ErrUnsupported) {
				logger.Error().Err(err).Msg("nothing copied, install xclip, xsel or wl-clipboard for the text fallback")
				return 1
			}
			logger.Error().Err(err).Msg("paths not copied")
			return 1
		}
		asText = true
	}

	msg := notification.Copied(sel.Len(), asText)
	logger.Info().Str("size", humanize.Bytes(sel.Size())).Msg(msg)

	notifier := notification.New(cfg.notify)
	notifier.Notify("%s Paste it in %s.", msg, filemanager.Name(os.LookupEnv, logger))

	wait(ctx, &tracker, logger)
	return 0
}

// wait keeps the process alive while background owners serve pastes.
func wait(ctx context.Context, tracker *sync.WaitGroup, logger zerolog.Logger) {
	done := make(chan struct{})
	go func() {
		tracker.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	default:
	}

	logger.Debug().Msg("serving clipboard until pasted over or expired")

	select {
	case <-done:
	case <-ctx.Done():
		logger.Debug().Msg("interrupted, clipboard released")
	}
}

func initLogger(verbose bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	if verbose {
		zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
			return fmt.Sprintf("%s:%d", filepath.Base(file), line)
		}
		return zerolog.New(output).
			Level(zerolog.TraceLevel).
			With().
			Timestamp().
			Caller().
			Logger()
	}

	return zerolog.New(output).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()
}
