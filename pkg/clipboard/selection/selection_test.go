package selection_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/labi-le/clipdrop/pkg/clipboard/selection"
)

func touch(t *testing.T, dir, name string, size int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew_Errors(t *testing.T) {
	dir := t.TempDir()
	file := touch(t, dir, "pic.png", 10)
	sub := filepath.Join(dir, "album")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		paths     []string
		want      error
		wantIndex int
	}{
		{name: "nil input", paths: nil, want: selection.ErrNoInput},
		{name: "empty input", paths: []string{}, want: selection.ErrNoInput},
		{name: "relative path", paths: []string{"pic.png"}, want: selection.ErrInvalidPath},
		{name: "relative after valid", paths: []string{file, "./pic.png"}, want: selection.ErrInvalidPath, wantIndex: 1},
		{name: "empty string", paths: []string{""}, want: selection.ErrInvalidPath},
		{name: "missing file", paths: []string{filepath.Join(dir, "nope.png")}, want: selection.ErrNotFound},
		{name: "directory only", paths: []string{sub}, want: selection.ErrNotAFile},
		{name: "directory first", paths: []string{sub, file}, want: selection.ErrNotAFile},
		{name: "directory last", paths: []string{file, file, sub}, want: selection.ErrNotAFile, wantIndex: 2},
		{name: "relative wins over later directory", paths: []string{"a", sub}, want: selection.ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := selection.New(tt.paths)
			if !errors.Is(err, tt.want) {
				t.Fatalf("New() error = %v, want %v", err, tt.want)
			}
			if sel.Len() != 0 {
				t.Errorf("New() returned %d paths alongside an error", sel.Len())
			}

			var pathErr *selection.PathError
			if tt.want == selection.ErrNoInput {
				if errors.As(err, &pathErr) {
					t.Errorf("ErrNoInput must not carry a path, got %v", pathErr)
				}
				return
			}
			if !errors.As(err, &pathErr) {
				t.Fatalf("error %T is not *PathError", err)
			}
			if pathErr.Index != tt.wantIndex {
				t.Errorf("PathError.Index = %d, want %d", pathErr.Index, tt.wantIndex)
			}
			if pathErr.Path != tt.paths[tt.wantIndex] {
				t.Errorf("PathError.Path = %q, want %q", pathErr.Path, tt.paths[tt.wantIndex])
			}
		})
	}
}

func TestNew_NotFoundKeepsCause(t *testing.T) {
	_, err := selection.New([]string{filepath.Join(t.TempDir(), "gone.jpg")})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestNew_PreservesOrder(t *testing.T) {
	dir := t.TempDir()
	want := []string{
		touch(t, dir, "c.png", 3),
		touch(t, dir, "a.png", 1),
		touch(t, dir, "b.mp4", 2),
	}
	// duplicates are kept, pasting twice is the caller's business
	want = append(want, want[0])

	sel, err := selection.New(want)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(want, sel.Paths()); diff != "" {
		t.Errorf("Paths() mismatch (-want +got):\n%s", diff)
	}
	if sel.Size() != 9 {
		t.Errorf("Size() = %d, want 9", sel.Size())
	}
}

func TestNew_FollowsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := touch(t, dir, "real.png", 4)
	link := filepath.Join(dir, "link.png")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlink not supported: %v", err)
	}

	if _, err := selection.New([]string{link}); err != nil {
		t.Errorf("symlink to regular file rejected: %v", err)
	}
}

func TestSelection_PathsIsCopy(t *testing.T) {
	dir := t.TempDir()
	file := touch(t, dir, "x.png", 1)

	sel, err := selection.New([]string{file})
	if err != nil {
		t.Fatal(err)
	}

	got := sel.Paths()
	got[0] = "/tampered"

	if sel.Paths()[0] != file {
		t.Errorf("Selection mutated through Paths(): %q", sel.Paths()[0])
	}
}

func TestSelection_Hash(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a", 1)
	b := touch(t, dir, "b", 1)

	ab, _ := selection.New([]string{a, b})
	ba, _ := selection.New([]string{b, a})
	ab2, _ := selection.New([]string{a, b})

	if ab.Hash() != ab2.Hash() {
		t.Error("same selection hashed differently")
	}
	if ab.Hash() == ba.Hash() {
		t.Error("order must change the hash")
	}
}
