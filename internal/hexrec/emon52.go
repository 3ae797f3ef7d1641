package hexrec

import (
	"fmt"
	"io"
	"strings"

	"objkit/internal/image"
)

// Elektor Monitor (EMON52) format. Data bytes are space-separated pairs;
// the 16-bit checksum is the plain sum over the payload bytes only.
// Every record is a data record; there is no terminator.
type emon52Codec struct {
	layout *Layout
}

func newEmon52Codec() *emon52Codec {
	return &emon52Codec{layout: mustLayout("LL AAAA:DD CCCC", " ")}
}

func (c *emon52Codec) Name() string        { return "emon52" }
func (c *emon52Codec) Description() string { return "Elektor Monitor (EMON52)" }

func (c *emon52Codec) Probe(data []byte) bool {
	return probeLines(data, []*Layout{c.layout})
}

func (c *emon52Codec) decodeLine(line string) (*Record, error) {
	r, matched, err := c.layout.Match(line)
	if !matched {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if r.length != len(r.data) {
		return nil, fmt.Errorf("%w: declared %d payload bytes, got %d", ErrRecordLength, r.length, len(r.data))
	}
	if want := LRC(r.data, 16, ComplementNone); want != r.checksum {
		return nil, fmt.Errorf("%w: computed %04X, declared %04X", ErrChecksum, want, r.checksum)
	}
	return &Record{Kind: KindData, Address: r.address, Data: r.data, Checksum: r.checksum}, nil
}

func (c *emon52Codec) Decode(r io.Reader, opts DecodeOptions) (*Result, error) {
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
		if len(rec.Data) == 0 {
			continue
		}
		if err := img.Insert(image.NewSection(rec.Address, rec.Data), opts.Join); err != nil {
			return nil, lineErr(ls.Line(), err)
		}
	}
	if err := ls.Err(); err != nil {
		return nil, fmt.Errorf("hexrec: read: %w", err)
	}
	res.Diags = diags.Items()
	return res, nil
}

func spacedHex(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}

func (c *emon52Codec) Encode(w io.Writer, img *image.Image, opts EncodeOptions) error {
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
			lines = append(lines, fmt.Sprintf("%02X %04X:%s %04X",
				len(row), addr, spacedHex(row), LRC(row, 16, ComplementNone)))
		}
	}

	if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return fmt.Errorf("hexrec: write: %w", err)
	}
	return nil
}
