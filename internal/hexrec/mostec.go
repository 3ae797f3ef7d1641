package hexrec

import (
	"fmt"
	"io"
	"strings"

	"objkit/internal/image"
)

// MOS Technology format. 16-bit addresses, a 16-bit plain-sum checksum
// over length, address and payload bytes, and a bare ";00" end-of-file
// line.
type mostecCodec struct {
	data *Layout
	eof  *Layout
}

func newMosTecCodec() *mostecCodec {
	return &mostecCodec{
		data: mustLayout(";LLAAAADDCCCC", ""),
		eof:  mustLayout(";00", ""),
	}
}

func (c *mostecCodec) Name() string        { return "mostec" }
func (c *mostecCodec) Description() string { return "MOS Technology" }

func (c *mostecCodec) Probe(data []byte) bool {
	return probeLines(data, []*Layout{c.data, c.eof})
}

func mostecChecksum(length int, addr uint32, data []byte) uint16 {
	covered := append(addrBytes(addr, 2), byte(length))
	covered = append(covered, data...)
	return LRC(covered, 16, ComplementNone)
}

func (c *mostecCodec) decodeLine(line string) (*Record, error) {
	if _, matched, _ := c.eof.Match(line); matched {
		return &Record{Kind: KindEOF}, nil
	}
	r, matched, err := c.data.Match(line)
	if !matched {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if r.length != len(r.data) {
		return nil, fmt.Errorf("%w: declared %d payload bytes, got %d", ErrRecordLength, r.length, len(r.data))
	}
	if want := mostecChecksum(r.length, r.address, r.data); want != r.checksum {
		return nil, fmt.Errorf("%w: computed %04X, declared %04X", ErrChecksum, want, r.checksum)
	}
	return &Record{Kind: KindData, Address: r.address, Data: r.data, Checksum: r.checksum}, nil
}

func (c *mostecCodec) Decode(r io.Reader, opts DecodeOptions) (*Result, error) {
	img, _ := image.New(nil, opts.Join)
	res := &Result{Image: img}
	var diags Diags

	ls := newLineScanner(r)
	for ls.Scan() {
		line := strings.TrimSpace(ls.Text())
		if line == "" {
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
		if rec.Kind == KindData && len(rec.Data) > 0 {
			if err := img.Insert(image.NewSection(rec.Address, rec.Data), opts.Join); err != nil {
				return nil, lineErr(ls.Line(), err)
			}
		}
	}
	if err := ls.Err(); err != nil {
		return nil, fmt.Errorf("hexrec: read: %w", err)
	}
	res.Diags = diags.Items()
	return res, nil
}

func (c *mostecCodec) Encode(w io.Writer, img *image.Image, opts EncodeOptions) error {
	if err := checkAddressBits(img, 16); err != nil {
		return err
	}
	var lines []string
	rowLen := opts.rowLength()
	for _, sec := range img.Sections() {
		for off := 0; off < len(sec.Data); off += rowLen {
			end := min(off+rowLen, len(sec.Data))
			row := sec.Data[off:end]
			addr := sec.StartAddress + uint32(off)
			lines = append(lines, fmt.Sprintf(";%02X%04X%s%04X",
				len(row), addr, hexUpper(row), mostecChecksum(len(row), addr, row)))
		}
	}
	lines = append(lines, ";00")

	if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return fmt.Errorf("hexrec: write: %w", err)
	}
	return nil
}

// checkAddressBits rejects images whose last byte is not addressable
// within the format's address width.
func checkAddressBits(img *image.Image, bits int) error {
	secs := img.Sections()
	if len(secs) == 0 {
		return nil
	}
	high := uint64(secs[len(secs)-1].End()) - 1
	if high >= uint64(1)<<bits {
		return fmt.Errorf("%w: highest address 0x%x exceeds %d bits", ErrAddressRange, high, bits)
	}
	return nil
}
