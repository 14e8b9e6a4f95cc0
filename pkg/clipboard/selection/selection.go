package selection

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/cespare/xxhash"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

// Selection is an ordered list of absolute paths to regular files.
// Paste order follows the order given to New.
type Selection struct {
	paths []string
	size  uint64
}

// New validates paths and returns them as a Selection.
// Validation is all-or-nothing: the first bad entry aborts with a *PathError.
// Each path is checked once, nothing is re-checked at write time.
func New(paths []string) (Selection, error) {
	if len(paths) == 0 {
		return Selection{}, ErrNoInput
	}

	sel := Selection{paths: make([]string, 0, len(paths))}

	for i, path := range paths {
		if !filepath.IsAbs(path) {
			return Selection{}, &PathError{Index: i, Path: path, Kind: ErrInvalidPath}
		}

		info, err := os.Stat(path)
		if err != nil {
			return Selection{}, &PathError{Index: i, Path: path, Kind: ErrNotFound, Cause: err}
		}

		if !info.Mode().IsRegular() {
			return Selection{}, &PathError{Index: i, Path: path, Kind: ErrNotAFile}
		}

		sel.paths = append(sel.paths, path)
		sel.size += uint64(info.Size())
	}

	return sel, nil
}

func (s Selection) Paths() []string { return slices.Clone(s.paths) }
func (s Selection) Len() int        { return len(s.paths) }

// Size is the total size in bytes observed during validation.
func (s Selection) Size() uint64 { return s.size }

// Hash fingerprints the ordered path list for log correlation.
func (s Selection) Hash() uint64 {
	d := xxhash.New()
	for _, p := range s.paths {
		_, _ = d.Write([]byte(p))
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}

func (s Selection) URIList() string          { return URIList(s.paths) }
func (s Selection) GnomeCopiedFiles() string { return GnomeCopiedFiles(s.paths) }

func (s Selection) MarshalZerologObject(e *zerolog.Event) {
	e.Int("files", len(s.paths))
	e.Str("size", humanize.Bytes(s.size))
	e.Uint64("hash", s.Hash())
}
