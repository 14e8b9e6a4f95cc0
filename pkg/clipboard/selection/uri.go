package selection

import (
	"net/url"
	"path/filepath"
	"strings"
)

const gnomeCopy = "copy\n"

// FileURI converts an absolute path into a file:// URI with the path
// segments percent-encoded.
func FileURI(path string) string {
	u := url.URL{Scheme: "file"}

	vol := filepath.VolumeName(path)
	if host, ok := strings.CutPrefix(vol, `\\`); ok {
		// UNC volume \\server\share becomes the URI host plus first segment
		server, share, _ := strings.Cut(host, `\`)
		u.Host = server
		u.Path = "/" + share + filepath.ToSlash(path[len(vol):])
		return u.String()
	}

	slashed := filepath.ToSlash(path)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	u.Path = slashed

	return u.String()
}

// URIList renders paths as a text/uri-list body: one URI per line,
// every line terminated by '\n' including the last one.
func URIList(paths []string) string {
	var b strings.Builder
	for _, p := range paths {
		b.WriteString(FileURI(p))
		b.WriteByte('\n')
	}
	return b.String()
}

// GnomeCopiedFiles renders the x-special/gnome-copied-files body.
// The leading "copy" line tells GNOME-family file managers it is not a cut.
func GnomeCopiedFiles(paths []string) string {
	return gnomeCopy + URIList(paths)
}
