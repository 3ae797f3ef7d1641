package hexrec

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"objkit/internal/image"
)

// RecordKind classifies a decoded record across format families.
type RecordKind int

const (
	KindData RecordKind = iota
	KindHeader
	KindRecordCount
	KindStartAddress
	KindEOF
	KindExtendedSegmentAddress
	KindStartSegmentAddress
	KindExtendedLinearAddress
	KindStartLinearAddress
)

func (k RecordKind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindHeader:
		return "header"
	case KindRecordCount:
		return "record-count"
	case KindStartAddress:
		return "start-address"
	case KindEOF:
		return "eof"
	case KindExtendedSegmentAddress:
		return "extended-segment-address"
	case KindStartSegmentAddress:
		return "start-segment-address"
	case KindExtendedLinearAddress:
		return "extended-linear-address"
	case KindStartLinearAddress:
		return "start-linear-address"
	default:
		return fmt.Sprintf("RecordKind(%d)", int(k))
	}
}

// Record is one decoded line. It exists only during decode/encode of a
// single line and is never persisted.
type Record struct {
	Kind     RecordKind
	Type     int // format-specific raw type code
	Address  uint32
	Data     []byte
	Checksum uint16
}

// DecodeOptions controls a decode run.
type DecodeOptions struct {
	Policy Policy
	Join   bool // merge address-adjacent sections on insert
}

// EncodeOptions controls an encode run.
type EncodeOptions struct {
	RowLength int    // payload bytes per data record; 0 means 16
	Header    []byte // header record payload, for formats that carry one
	Count     bool   // emit a record-count record, for formats that have one
}

func (o EncodeOptions) rowLength() int {
	if o.RowLength <= 0 {
		return 16
	}
	return o.RowLength
}

// Result carries the outcome of a decode: the populated image plus any
// non-fatal diagnostics.
type Result struct {
	Image  *image.Image
	Header []byte // payload of the header record, if the format has one
	Diags  []Diag
}

// Codec reads and writes one line-record format family.
type Codec interface {
	Name() string
	Description() string
	Decode(r io.Reader, opts DecodeOptions) (*Result, error)
	Encode(w io.Writer, img *image.Image, opts EncodeOptions) error
	// Probe reports whether data looks like this format.
	Probe(data []byte) bool
}

// lineScanner feeds successive text lines and tracks the 1-based line
// counter used for diagnostics. The counter is owned here, not by any
// process-wide state.
type lineScanner struct {
	sc   *bufio.Scanner
	line int
}

func newLineScanner(r io.Reader) *lineScanner {
	return &lineScanner{sc: bufio.NewScanner(r)}
}

func (ls *lineScanner) Scan() bool {
	if ls.sc.Scan() {
		ls.line++
		return true
	}
	return false
}

func (ls *lineScanner) Text() string { return ls.sc.Text() }
func (ls *lineScanner) Line() int    { return ls.line }
func (ls *lineScanner) Err() error   { return ls.sc.Err() }

func parseHex(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad hex field %q", ErrRecordFormat, s)
	}
	return v, nil
}

func decodeHexPairs(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd-length data field", ErrRecordFormat)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: bad data field: %v", ErrRecordFormat, err)
	}
	return b, nil
}

func hexUpper(data []byte) string {
	return strings.ToUpper(hex.EncodeToString(data))
}

// probeLines reports whether one of the first few lines matches any of
// the given layouts.
func probeLines(data []byte, layouts []*Layout) bool {
	ls := newLineScanner(strings.NewReader(string(data)))
	for ls.Scan() && ls.Line() <= 3 {
		line := strings.TrimSpace(ls.Text())
		if line == "" {
			continue
		}
		for _, l := range layouts {
			if _, ok, _ := l.Match(line); ok {
				return true
			}
		}
	}
	return false
}

func mustLayout(spec, dataSep string) *Layout {
	l, err := CompileLayout(spec, dataSep)
	if err != nil {
		panic(err)
	}
	return l
}
