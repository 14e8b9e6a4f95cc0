package ctxlog

import (
	"github.com/labi-le/clipdrop/pkg/id"
	"github.com/rs/zerolog"
)

func Op(logger zerolog.Logger, op string) zerolog.Logger {
	return logger.With().Str("op", op).Logger()
}

func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

// Call attaches the call id carried across goroutines spawned by one write.
func Call(logger zerolog.Logger, call id.Call) zerolog.Logger {
	return logger.With().Str("call", call.String()).Logger()
}
