package windows_test

import (
	"encoding/binary"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/google/go-cmp/cmp"
	"github.com/labi-le/clipdrop/pkg/clipboard/windows"
)

// parseDropFiles walks a CF_HDROP block the way the shell does.
func parseDropFiles(t *testing.T, block []byte) []string {
	t.Helper()

	if len(block) < windows.HeaderSize {
		t.Fatalf("block shorter than header: %d", len(block))
	}

	pFiles := binary.LittleEndian.Uint32(block[0:4])
	if fWide := binary.LittleEndian.Uint32(block[16:20]); fWide != 1 {
		t.Fatalf("fWide = %d, want 1", fWide)
	}

	raw := block[pFiles:]
	if len(raw)%2 != 0 {
		t.Fatalf("odd path area length %d", len(raw))
	}
	units := make([]uint16, len(raw)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(raw[2*i:])
	}

	var (
		paths []string
		start int
	)
	for i, u := range units {
		if u != 0 {
			continue
		}
		if i == start {
			if i != len(units)-1 {
				t.Fatalf("list terminator at %d, block continues to %d", i, len(units)-1)
			}
			return paths
		}
		paths = append(paths, string(utf16.Decode(units[start:i])))
		start = i + 1
	}

	t.Fatal("block lacks the double null terminator")
	return nil
}

func TestDropFiles_Header(t *testing.T) {
	block := windows.DropFiles([]string{`C:\a.png`})

	want := []uint32{windows.HeaderSize, 0, 0, 0, 1}
	for i, w := range want {
		if got := binary.LittleEndian.Uint32(block[i*4:]); got != w {
			t.Errorf("header dword %d = %d, want %d", i, got, w)
		}
	}
}

func TestDropFiles_Length(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
	}{
		{name: "no paths", paths: nil},
		{name: "single ascii", paths: []string{`C:\Users\u\pic.png`}},
		{name: "several", paths: []string{`C:\a.png`, `D:\media\b.mov`, `\\nas\share\c.jpg`}},
		{name: "cyrillic", paths: []string{`C:\Фото\кот.png`}},
		{name: "astral plane", paths: []string{`C:\emoji\🐈‍⬛.png`}},
		{name: "long", paths: []string{`C:\` + strings.Repeat("x", 4000) + `.png`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := windows.HeaderSize + 2
			for _, p := range tt.paths {
				want += 2 * (len(utf16.Encode([]rune(p))) + 1)
			}

			block := windows.DropFiles(tt.paths)
			if len(block) != want {
				t.Errorf("len(DropFiles) = %d, want %d", len(block), want)
			}
			if got := windows.DropFilesSize(tt.paths); got != want {
				t.Errorf("DropFilesSize = %d, want %d", got, want)
			}
			if block[len(block)-1] != 0 || block[len(block)-2] != 0 {
				t.Error("block does not end with a null unit")
			}
		})
	}
}

func TestDropFiles_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
	}{
		{name: "single", paths: []string{`C:\Users\u\pic.png`}},
		{name: "order kept", paths: []string{`C:\z.png`, `C:\a.png`, `C:\m.png`}},
		{name: "surrogate pairs", paths: []string{`C:\😀\😀.gif`, `C:\ok.png`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDropFiles(t, windows.DropFiles(tt.paths))
			if diff := cmp.Diff(tt.paths, got); diff != "" {
				t.Errorf("decoded paths mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDropFiles_SingleEntryScenario(t *testing.T) {
	const path = `C:\Users\u\pic.png`
	block := windows.DropFiles([]string{path})

	units := utf16.Encode([]rune(path))
	area := block[windows.HeaderSize:]

	for i, u := range units {
		if got := binary.LittleEndian.Uint16(area[2*i:]); got != u {
			t.Fatalf("unit %d = %#x, want %#x", i, got, u)
		}
	}
	tail := area[2*len(units):]
	if len(tail) != 4 || binary.LittleEndian.Uint32(tail) != 0 {
		t.Errorf("expected path null + list null, got %v", tail)
	}
}
