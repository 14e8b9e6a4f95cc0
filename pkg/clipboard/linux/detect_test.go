package linux_test

import (
	"testing"

	"github.com/labi-le/clipdrop/pkg/clipboard/linux"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want linux.Session
	}{
		{name: "nothing", vars: nil, want: linux.Session{}},
		{name: "x11 only", vars: map[string]string{"DISPLAY": ":0"}, want: linux.Session{X11: true}},
		{name: "session type wayland", vars: map[string]string{"XDG_SESSION_TYPE": "wayland"}, want: linux.Session{Wayland: true}},
		{name: "session type x11 is not a display", vars: map[string]string{"XDG_SESSION_TYPE": "x11"}, want: linux.Session{}},
		{name: "wayland display", vars: map[string]string{"WAYLAND_DISPLAY": "wayland-0"}, want: linux.Session{Wayland: true}},
		{name: "wayland socket", vars: map[string]string{"WAYLAND_SOCKET": "3"}, want: linux.Session{Wayland: true}},
		{
			name: "xwayland",
			vars: map[string]string{"WAYLAND_DISPLAY": "wayland-1", "DISPLAY": ":1"},
			want: linux.Session{Wayland: true, X11: true},
		},
		{
			name: "empty values are absent",
			vars: map[string]string{"WAYLAND_DISPLAY": "", "WAYLAND_SOCKET": "", "DISPLAY": ""},
			want: linux.Session{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := linux.Detect(env(tt.vars))
			if got != tt.want {
				t.Errorf("Detect() = %+v, want %+v", got, tt.want)
			}
			if got.Any() != (tt.want.Wayland || tt.want.X11) {
				t.Errorf("Any() = %v", got.Any())
			}
		})
	}
}
