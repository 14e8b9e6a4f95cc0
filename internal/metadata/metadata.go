package metadata

import (
	"fmt"
	"runtime"
)

var (
	Version    = "freshest"
	CommitHash = "n/a"
	BuildTime  = "n/a"
)

// String is the --version line.
func String() string {
	return fmt.Sprintf("clipdrop %s (commit %s, built %s, %s/%s)",
		Version, CommitHash, BuildTime, runtime.GOOS, runtime.GOARCH)
}
