//go:build unix

package linux

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/labi-le/clipdrop/pkg/clipboard/selection"
	"github.com/rs/zerolog"
)

var (
	errCompositor = errors.New("compositor gone")
	errXServer    = errors.New("x server gone")
)

type recorder struct {
	calls []string
}

func (r *recorder) attempt(name string, err error) attempt {
	return func(selection.Selection) error {
		r.calls = append(r.calls, name)
		return err
	}
}

func testSelection(t *testing.T) selection.Selection {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pic.png")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	sel, err := selection.New([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	return sel
}

func TestClipboard_WriteFiles(t *testing.T) {
	tests := []struct {
		name       string
		session    Session
		waylandErr error
		x11Err     error
		wantCalls  []string
		wantErrs   []error
	}{
		{
			name:      "no session attempts nothing",
			session:   Session{},
			wantCalls: nil,
			wantErrs:  []error{ErrNoClipboardAvailable},
		},
		{
			name:      "x11 only never tries wayland",
			session:   Session{X11: true},
			wantCalls: []string{"x11"},
		},
		{
			name:      "wayland success stops there",
			session:   Session{Wayland: true, X11: true},
			wantCalls: []string{"wayland"},
		},
		{
			name:       "wayland failure falls back to x11",
			session:    Session{Wayland: true, X11: true},
			waylandErr: errCompositor,
			wantCalls:  []string{"wayland", "x11"},
		},
		{
			name:       "wayland only failure",
			session:    Session{Wayland: true},
			waylandErr: errCompositor,
			wantCalls:  []string{"wayland"},
			wantErrs:   []error{ErrNoClipboardAvailable, errCompositor},
		},
		{
			name:       "both fail",
			session:    Session{Wayland: true, X11: true},
			waylandErr: errCompositor,
			x11Err:     errXServer,
			wantCalls:  []string{"wayland", "x11"},
			wantErrs:   []error{ErrNoClipboardAvailable, errCompositor, errXServer},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			c := &Clipboard{
				logger:  zerolog.Nop(),
				session: tt.session,
				wayland: rec.attempt("wayland", tt.waylandErr),
				x11:     rec.attempt("x11", tt.x11Err),
			}

			err := c.WriteFiles(testSelection(t))

			if diff := cmp.Diff(tt.wantCalls, rec.calls); diff != "" {
				t.Errorf("attempts mismatch (-want +got):\n%s", diff)
			}
			if len(tt.wantErrs) == 0 && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tt.wantErrs {
				if !errors.Is(err, want) {
					t.Errorf("error %v does not wrap %v", err, want)
				}
			}
		})
	}
}

func TestNew_UsesLookup(t *testing.T) {
	c := New(zerolog.Nop(), Options{Lookup: func(key string) (string, bool) {
		if key == "DISPLAY" {
			return ":7", true
		}
		return "", false
	}})

	if c.session != (Session{X11: true}) {
		t.Errorf("session = %+v, want x11 only", c.session)
	}
}

func TestClipboard_LookupGatesAttempts(t *testing.T) {
	c := New(zerolog.Nop(), Options{Lookup: func(string) (string, bool) { return "", false }})

	err := c.WriteFiles(testSelection(t))
	if !errors.Is(err, ErrNoClipboardAvailable) {
		t.Fatalf("WriteFiles() error = %v, want ErrNoClipboardAvailable", err)
	}
	if errors.Unwrap(err) != nil {
		t.Errorf("no attempt errors expected without a session, got %v", err)
	}
}
