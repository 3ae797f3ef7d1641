package image

import (
	"bytes"
	"fmt"
	"io"
)

const dumpRowLen = 16

// Hexdump writes a canonical hex-plus-ASCII dump of every section, 16
// bytes per row. Consecutive identical rows are collapsed to a single "*"
// marker to keep dumps of large images readable.
func (img *Image) Hexdump(w io.Writer) {
	for i, s := range img.sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "section %d: 0x%08x..0x%08x (%d bytes)\n",
			i, s.StartAddress, s.End(), len(s.Data))
		s.Hexdump(w)
	}
}

// Hexdump writes the section's bytes as canonical 16-byte rows.
func (s *Section) Hexdump(w io.Writer) {
	var prev []byte
	elided := false
	for off := 0; off < len(s.Data); off += dumpRowLen {
		end := off + dumpRowLen
		last := end >= len(s.Data)
		if last {
			end = len(s.Data)
		}
		row := s.Data[off:end]
		// The final row always prints, so a trailing "*" can't swallow
		// the image end.
		if !last && bytes.Equal(row, prev) {
			if !elided {
				fmt.Fprintln(w, "*")
				elided = true
			}
			continue
		}
		elided = false
		prev = row
		dumpRow(w, s.StartAddress+uint32(off), row)
	}
}

func dumpRow(w io.Writer, addr uint32, row []byte) {
	fmt.Fprintf(w, "%08x  ", addr)
	for i := 0; i < dumpRowLen; i++ {
		if i == dumpRowLen/2 {
			fmt.Fprint(w, " ")
		}
		if i < len(row) {
			fmt.Fprintf(w, "%02x ", row[i])
		} else {
			fmt.Fprint(w, "   ")
		}
	}
	fmt.Fprint(w, " |")
	for _, b := range row {
		if b > 0x1f && b < 0x80 {
			fmt.Fprintf(w, "%c", b)
		} else {
			fmt.Fprint(w, ".")
		}
	}
	fmt.Fprintln(w, "|")
}
