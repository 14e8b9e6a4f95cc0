//go:build !darwin && !windows

package filemanager

import "github.com/rs/zerolog"

func Name(lookup func(string) (string, bool), log zerolog.Logger) string {
	return freedesktop(lookup, log)
}
