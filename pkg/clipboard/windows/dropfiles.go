package windows

import (
	"encoding/binary"
	"unicode/utf16"
)

// HeaderSize is sizeof(DROPFILES): pFiles, pt.x, pt.y, fNC, fWide, all 32-bit.
const HeaderSize = 20

const fWide = 1

// DropFilesSize is the exact length of the CF_HDROP block for paths.
func DropFilesSize(paths []string) int {
	n := HeaderSize
	for _, p := range paths {
		n += 2 * (utf16Len(p) + 1)
	}
	return n + 2
}

// DropFiles lays out a CF_HDROP block: the DROPFILES header with wide
// paths and no non-client drop point, then every path as UTF-16LE with
// its own null, then the null that ends the list.
func DropFiles(paths []string) []byte {
	buf := make([]byte, 0, DropFilesSize(paths))

	buf = binary.LittleEndian.AppendUint32(buf, HeaderSize) // pFiles
	buf = binary.LittleEndian.AppendUint32(buf, 0)          // pt.x
	buf = binary.LittleEndian.AppendUint32(buf, 0)          // pt.y
	buf = binary.LittleEndian.AppendUint32(buf, 0)          // fNC
	buf = binary.LittleEndian.AppendUint32(buf, fWide)

	for _, p := range paths {
		for _, u := range utf16.Encode([]rune(p)) {
			buf = binary.LittleEndian.AppendUint16(buf, u)
		}
		buf = binary.LittleEndian.AppendUint16(buf, 0)
	}

	return binary.LittleEndian.AppendUint16(buf, 0)
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
