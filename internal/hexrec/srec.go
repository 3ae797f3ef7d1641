package hexrec

import (
	"fmt"
	"io"
	"strings"

	"objkit/internal/image"
)

// Motorola S-records. S0 carries a module header, S1/S2/S3 carry data at
// 16/24/32-bit addresses, S5 a running record count, and S9/S8/S7 the
// start (execution) address at the matching width. Checksums are the
// ones complement of the sum over length, address and payload bytes.
type srecCodec struct {
	defs []srecDef
}

type srecDef struct {
	kind      RecordKind
	typ       int
	layout    *Layout
	addrBytes int
}

func newSRecCodec() *srecCodec {
	return &srecCodec{defs: []srecDef{
		{KindHeader, 0, mustLayout("S0LLAAAADDCC", ""), 2},
		{KindData, 1, mustLayout("S1LLAAAADDCC", ""), 2},
		{KindData, 2, mustLayout("S2LLAAAAAADDCC", ""), 3},
		{KindData, 3, mustLayout("S3LLAAAAAAAADDCC", ""), 4},
		{KindRecordCount, 5, mustLayout("S5LLAAAACC", ""), 2},
		{KindStartAddress, 7, mustLayout("S7LLAAAAAAAACC", ""), 4},
		{KindStartAddress, 8, mustLayout("S8LLAAAAAACC", ""), 3},
		{KindStartAddress, 9, mustLayout("S9LLAAAACC", ""), 2},
	}}
}

func (c *srecCodec) Name() string        { return "srec" }
func (c *srecCodec) Description() string { return "Motorola S-records (S19)" }

func (c *srecCodec) Probe(data []byte) bool {
	layouts := make([]*Layout, len(c.defs))
	for i, d := range c.defs {
		layouts[i] = d.layout
	}
	return probeLines(data, layouts)
}

// decodeLine matches one line against the record definitions and
// validates checksum and declared length.
func (c *srecCodec) decodeLine(line string) (*Record, error) {
	for _, d := range c.defs {
		r, matched, err := d.layout.Match(line)
		if !matched {
			continue
		}
		if err != nil {
			return nil, err
		}
		covered := append([]byte{byte(r.length)}, addrBytes(r.address, d.addrBytes)...)
		covered = append(covered, r.data...)
		if want := byte(LRC(covered, 8, ComplementOnes)); want != byte(r.checksum) {
			return nil, fmt.Errorf("%w: computed %02X, declared %02X", ErrChecksum, want, byte(r.checksum))
		}
		// The length field counts address, payload and checksum pairs.
		payload := r.length - d.addrBytes - 1
		if payload < 0 || payload != len(r.data) {
			return nil, fmt.Errorf("%w: declared %d payload bytes, got %d",
				ErrRecordLength, payload, len(r.data))
		}
		return &Record{
			Kind:     d.kind,
			Type:     d.typ,
			Address:  r.address,
			Data:     r.data,
			Checksum: r.checksum,
		}, nil
	}
	return nil, nil
}

func (c *srecCodec) Decode(r io.Reader, opts DecodeOptions) (*Result, error) {
	img, _ := image.New(nil, opts.Join)
	res := &Result{Image: img}
	var diags Diags

	dataRecords := 0
	declaredCount := -1
	countLine := 0

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

		switch rec.Kind {
		case KindData:
			dataRecords++
			if len(rec.Data) == 0 {
				continue
			}
			if err := img.Insert(image.NewSection(rec.Address, rec.Data), opts.Join); err != nil {
				return nil, lineErr(ls.Line(), err)
			}
		case KindHeader:
			res.Header = rec.Data
		case KindRecordCount:
			declaredCount = int(rec.Address)
			countLine = ls.Line()
		case KindStartAddress:
			img.SetStartAddress(rec.Address)
		}
	}
	if err := ls.Err(); err != nil {
		return nil, fmt.Errorf("hexrec: read: %w", err)
	}

	if declaredCount >= 0 && declaredCount != dataRecords {
		if opts.Policy == PolicyStrict {
			return nil, lineErrf(countLine, ErrRecordCount, "S5 declares %d data records, counted %d",
				declaredCount, dataRecords)
		}
		diags.Addf(countLine, DiagCount, "S5 declares %d data records, counted %d",
			declaredCount, dataRecords)
	}

	res.Diags = diags.Items()
	return res, nil
}

// srecAddrBytes picks the narrowest data record family that can address
// the image's last byte.
func srecAddrBytes(img *image.Image) int {
	var high uint32
	if secs := img.Sections(); len(secs) > 0 {
		high = secs[len(secs)-1].End() - 1
	}
	if addr, ok := img.StartAddress(); ok && addr > high {
		high = addr
	}
	switch {
	case high <= 0xffff:
		return 2
	case high <= 0xffffff:
		return 3
	default:
		return 4
	}
}

func srecLine(rtype, width int, addr uint32, data []byte) string {
	length := width + len(data) + 1
	covered := append([]byte{byte(length)}, addrBytes(addr, width)...)
	covered = append(covered, data...)
	sum := LRC(covered, 8, ComplementOnes)
	return fmt.Sprintf("S%d%02X%0*X%s%02X", rtype, length, width*2, addr, hexUpper(data), sum)
}

func (c *srecCodec) Encode(w io.Writer, img *image.Image, opts EncodeOptions) error {
	width := srecAddrBytes(img)
	dataType := width - 1   // S1/S2/S3
	startType := 11 - width // S9/S8/S7

	var lines []string
	if opts.Header != nil {
		lines = append(lines, srecLine(0, 2, 0, opts.Header))
	}
	rowLen := opts.rowLength()
	count := 0
	for _, sec := range img.Sections() {
		for off := 0; off < len(sec.Data); off += rowLen {
			end := min(off+rowLen, len(sec.Data))
			lines = append(lines, srecLine(dataType, width, sec.StartAddress+uint32(off), sec.Data[off:end]))
			count++
		}
	}
	if opts.Count {
		lines = append(lines, srecLine(5, 2, uint32(count), nil))
	}
	// The termination record is always present; it doubles as the start
	// address carrier when one is set.
	start, _ := img.StartAddress()
	lines = append(lines, srecLine(startType, width, start, nil))

	if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return fmt.Errorf("hexrec: write: %w", err)
	}
	return nil
}
