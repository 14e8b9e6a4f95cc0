package linux

import "github.com/rs/zerolog"

// Session tells which display protocols the environment advertises.
// Both may be set under XWayland.
type Session struct {
	Wayland bool
	X11     bool
}

// Detect reads the session environment through lookup. Variables that
// are set but empty count as absent.
func Detect(lookup func(string) (string, bool)) Session {
	has := func(key string) bool {
		v, ok := lookup(key)
		return ok && v != ""
	}

	typ, _ := lookup("XDG_SESSION_TYPE")

	return Session{
		Wayland: typ == "wayland" || has("WAYLAND_DISPLAY") || has("WAYLAND_SOCKET"),
		X11:     has("DISPLAY"),
	}
}

func (s Session) Any() bool { return s.Wayland || s.X11 }

func (s Session) MarshalZerologObject(e *zerolog.Event) {
	e.Bool("wayland", s.Wayland)
	e.Bool("x11", s.X11)
}
