package hexrec

import (
	"fmt"
	"io"
	"strings"

	"objkit/internal/image"
)

// Intel HEX record types.
const (
	ihexData                   = 0
	ihexEOF                    = 1
	ihexExtendedSegmentAddress = 2
	ihexStartSegmentAddress    = 3
	ihexExtendedLinearAddress  = 4
	ihexStartLinearAddress     = 5
)

// Intel HEX. A single record layout; the type field selects the record
// meaning. 16-bit record addresses are extended by segment (<<4) or
// linear (<<16) base records. Checksums are the twos complement of the
// sum over length, address, type and payload bytes.
type ihexCodec struct {
	layout *Layout
}

func newIHexCodec() *ihexCodec {
	return &ihexCodec{layout: mustLayout(":LLAAAATTDDCC", "")}
}

func (c *ihexCodec) Name() string        { return "ihex" }
func (c *ihexCodec) Description() string { return "Intel HEX" }

func (c *ihexCodec) Probe(data []byte) bool {
	return probeLines(data, []*Layout{c.layout})
}

func ihexKind(typ int) (RecordKind, bool) {
	switch typ {
	case ihexData:
		return KindData, true
	case ihexEOF:
		return KindEOF, true
	case ihexExtendedSegmentAddress:
		return KindExtendedSegmentAddress, true
	case ihexStartSegmentAddress:
		return KindStartSegmentAddress, true
	case ihexExtendedLinearAddress:
		return KindExtendedLinearAddress, true
	case ihexStartLinearAddress:
		return KindStartLinearAddress, true
	default:
		return 0, false
	}
}

func ihexChecksum(length int, addr uint32, typ int, data []byte) byte {
	covered := []byte{byte(length), byte(addr >> 8), byte(addr), byte(typ)}
	covered = append(covered, data...)
	return byte(LRC(covered, 8, ComplementTwos))
}

func (c *ihexCodec) decodeLine(line string) (*Record, error) {
	r, matched, err := c.layout.Match(line)
	if !matched {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	kind, ok := ihexKind(r.typ)
	if !ok {
		return nil, fmt.Errorf("%w: %02X", ErrUnknownType, r.typ)
	}
	if want := ihexChecksum(r.length, r.address, r.typ, r.data); want != byte(r.checksum) {
		return nil, fmt.Errorf("%w: computed %02X, declared %02X", ErrChecksum, want, byte(r.checksum))
	}
	if r.length != len(r.data) {
		return nil, fmt.Errorf("%w: declared %d payload bytes, got %d", ErrRecordLength, r.length, len(r.data))
	}
	return &Record{Kind: kind, Type: r.typ, Address: r.address, Data: r.data, Checksum: r.checksum}, nil
}

func (c *ihexCodec) Decode(r io.Reader, opts DecodeOptions) (*Result, error) {
	img, _ := image.New(nil, opts.Join)
	res := &Result{Image: img}
	var diags Diags

	var base uint32 // current extended segment/linear contribution
	eofSeen := false

	ls := newLineScanner(r)
	for ls.Scan() {
		line := strings.TrimSpace(ls.Text())
		if line == "" {
			continue
		}
		if eofSeen {
			// Benign trailing garbage after the EOF record.
			diags.Addf(ls.Line(), DiagGarbage, "line after end-of-file record")
			continue
		}
		rec, err := c.decodeLine(line)
		if err != nil {
			if opts.Policy == PolicyWarn {
				diags.Addf(ls.Line(), diagKindFor(err), "%v", err)
				continue
			}
			return nil, lineErr(ls.Line(), err)
		}
		if rec == nil {
			if opts.Policy == PolicyWarn {
				diags.Addf(ls.Line(), DiagGarbage, "ignoring unrecognized line")
				continue
			}
			return nil, lineErrf(ls.Line(), ErrRecordFormat, "unrecognized line %q", line)
		}

		switch rec.Kind {
		case KindData:
			if len(rec.Data) == 0 {
				continue
			}
			if err := img.Insert(image.NewSection(base+rec.Address, rec.Data), opts.Join); err != nil {
				return nil, lineErr(ls.Line(), err)
			}
		case KindEOF:
			eofSeen = true
		case KindExtendedSegmentAddress:
			if len(rec.Data) != 2 {
				return nil, lineErrf(ls.Line(), ErrRecordFormat, "extended segment address needs 2 bytes, got %d", len(rec.Data))
			}
			base = (uint32(rec.Data[0])<<8 | uint32(rec.Data[1])) << 4
		case KindExtendedLinearAddress:
			if len(rec.Data) != 2 {
				return nil, lineErrf(ls.Line(), ErrRecordFormat, "extended linear address needs 2 bytes, got %d", len(rec.Data))
			}
			base = (uint32(rec.Data[0])<<8 | uint32(rec.Data[1])) << 16
		case KindStartSegmentAddress:
			if len(rec.Data) != 4 {
				return nil, lineErrf(ls.Line(), ErrRecordFormat, "start segment address needs 4 bytes, got %d", len(rec.Data))
			}
			cs := uint32(rec.Data[0])<<8 | uint32(rec.Data[1])
			ip := uint32(rec.Data[2])<<8 | uint32(rec.Data[3])
			img.SetStartAddress(cs<<4 + ip)
		case KindStartLinearAddress:
			if len(rec.Data) != 4 {
				return nil, lineErrf(ls.Line(), ErrRecordFormat, "start linear address needs 4 bytes, got %d", len(rec.Data))
			}
			img.SetStartAddress(uint32(rec.Data[0])<<24 | uint32(rec.Data[1])<<16 |
				uint32(rec.Data[2])<<8 | uint32(rec.Data[3]))
		}
	}
	if err := ls.Err(); err != nil {
		return nil, fmt.Errorf("hexrec: read: %w", err)
	}

	if !eofSeen {
		if opts.Policy == PolicyStrict {
			return nil, fmt.Errorf("%w", ErrMissingEOF)
		}
		diags.Addf(ls.Line(), DiagGarbage, "missing end-of-file record")
	}

	res.Diags = diags.Items()
	return res, nil
}

func ihexLine(length int, addr uint32, typ int, data []byte) string {
	return fmt.Sprintf(":%02X%04X%02X%s%02X",
		length, addr&0xffff, typ, hexUpper(data), ihexChecksum(length, addr&0xffff, typ, data))
}

func (c *ihexCodec) Encode(w io.Writer, img *image.Image, opts EncodeOptions) error {
	var lines []string

	if addr, ok := img.StartAddress(); ok {
		data := []byte{byte(addr >> 24), byte(addr >> 16), byte(addr >> 8), byte(addr)}
		lines = append(lines, ihexLine(4, 0, ihexStartLinearAddress, data))
	}

	rowLen := opts.rowLength()
	var base uint32 // current extended linear address (upper 16 bits)
	baseSet := false
	for _, sec := range img.Sections() {
		for off := 0; off < len(sec.Data); {
			addr := sec.StartAddress + uint32(off)
			if hi := addr & 0xffff0000; hi != base || !baseSet {
				if hi != 0 || baseSet {
					seg := []byte{byte(hi >> 24), byte(hi >> 16)}
					lines = append(lines, ihexLine(2, 0, ihexExtendedLinearAddress, seg))
				}
				base, baseSet = hi, true
			}
			n := min(rowLen, len(sec.Data)-off)
			// Rows never cross a 64 KiB boundary.
			if left := int(0x10000 - (addr & 0xffff)); n > left {
				n = left
			}
			lines = append(lines, ihexLine(n, addr, ihexData, sec.Data[off:off+n]))
			off += n
		}
	}
	lines = append(lines, ihexLine(0, 0, ihexEOF, nil))

	if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return fmt.Errorf("hexrec: write: %w", err)
	}
	return nil
}
