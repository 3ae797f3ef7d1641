package hexrec

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldKind identifies one field of a record layout.
type FieldKind int

const (
	FieldLiteral FieldKind = iota
	FieldLength
	FieldType
	FieldAddress
	FieldData
	FieldUnparsed
	FieldChecksum
	FieldAddrChecksum
)

func (k FieldKind) String() string {
	switch k {
	case FieldLiteral:
		return "literal"
	case FieldLength:
		return "length"
	case FieldType:
		return "type"
	case FieldAddress:
		return "address"
	case FieldData:
		return "data"
	case FieldUnparsed:
		return "unparsed"
	case FieldChecksum:
		return "checksum"
	case FieldAddrChecksum:
		return "addrchecksum"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

var fieldLetters = map[byte]FieldKind{
	'L': FieldLength,
	'T': FieldType,
	'A': FieldAddress,
	'D': FieldData,
	'U': FieldUnparsed,
	'C': FieldChecksum,
	'B': FieldAddrChecksum,
}

// Field is one token of a compiled layout: a fixed-width hex field, the
// variable-width data field, or a literal character run.
type Field struct {
	Kind    FieldKind
	Width   int    // hex digits; 0 for variable-width fields
	Literal string // only for FieldLiteral
}

// Layout is a compiled record layout. Compilation happens once per
// format; the layout is reused across every decode and encode call.
type Layout struct {
	Spec   string
	Fields []Field

	re        *regexp.Regexp
	groupIdx  map[string]int
	dataSep   string
	addrWidth int // hex digits of the address field
	sumWidth  int // bits of the checksum field
}

// AddressBytes returns the width of the address field in bytes.
func (l *Layout) AddressBytes() int { return l.addrWidth / 2 }

// ChecksumBits returns the width of the checksum field in bits.
func (l *Layout) ChecksumBits() int { return l.sumWidth }

// CompileLayout translates a layout specification into field tokens and a
// single matching pattern. The spec is a sequence of field-type letters
// (L length, T type, A address, D data, U unparsed, C checksum, B
// address-checksum) and literal characters; consecutive identical letters
// form one fixed-width field, any other run a literal match. The data
// field is always variable-width. dataSep optionally names a separator
// character allowed between data bytes (e.g. " " for EMON52).
func CompileLayout(spec, dataSep string) (*Layout, error) {
	if spec == "" {
		return nil, fmt.Errorf("%w: empty spec", ErrMalformedSpec)
	}
	l := &Layout{Spec: spec, dataSep: dataSep}

	var pattern strings.Builder
	pattern.WriteString("^")
	for i := 0; i < len(spec); {
		j := i
		for j < len(spec) && spec[j] == spec[i] {
			j++
		}
		group := spec[i:j]
		if err := l.translate(&pattern, group); err != nil {
			return nil, err
		}
		i = j
	}
	pattern.WriteString(`\s*$`)

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformedSpec, spec, err)
	}
	l.re = re
	l.groupIdx = make(map[string]int)
	for i, name := range re.SubexpNames() {
		if name != "" {
			l.groupIdx[name] = i
		}
	}
	return l, nil
}

func (l *Layout) translate(pattern *strings.Builder, group string) error {
	kind, ok := fieldLetters[group[0]]
	if !ok {
		// Literal run: spaces match any whitespace, everything else
		// matches exactly.
		if group[0] == ' ' {
			fmt.Fprintf(pattern, `\s{%d}`, len(group))
		} else {
			pattern.WriteString(regexp.QuoteMeta(group))
		}
		l.Fields = append(l.Fields, Field{Kind: FieldLiteral, Width: len(group), Literal: group})
		return nil
	}

	width := len(group)
	switch kind {
	case FieldLength:
		fmt.Fprintf(pattern, `(?P<length>[0-9a-fA-F]{%d})`, width)
	case FieldType:
		fmt.Fprintf(pattern, `(?P<type>\d{%d})`, width)
	case FieldAddress:
		fmt.Fprintf(pattern, `(?P<address>[0-9a-fA-F]{%d})`, width)
		l.addrWidth = width
	case FieldData:
		width = 0
		if l.dataSep != "" {
			fmt.Fprintf(pattern, `(?P<data>[0-9a-fA-F%s]*)`, regexp.QuoteMeta(l.dataSep))
		} else {
			pattern.WriteString(`(?P<data>[0-9a-fA-F]*)`)
		}
	case FieldUnparsed:
		width = 0
		pattern.WriteString(`(?P<unparsed>.*)`)
	case FieldChecksum:
		fmt.Fprintf(pattern, `(?P<checksum>[0-9a-fA-F]{%d})`, width)
		l.sumWidth = width * 4
	case FieldAddrChecksum:
		fmt.Fprintf(pattern, `(?P<addrchecksum>[0-9a-fA-F]{%d})`, width)
		l.sumWidth = width * 4
	}
	l.Fields = append(l.Fields, Field{Kind: kind, Width: width})
	return nil
}

// raw carries the hex-decoded fields of one matched line.
type raw struct {
	length   int
	typ      int
	address  uint32
	checksum uint16
	data     []byte
	unparsed string

	hasLength   bool
	hasType     bool
	hasAddress  bool
	hasChecksum bool
	hasData     bool
}

// Match applies the layout to one line. A structural mismatch returns
// ok=false; field extraction errors (non-hex data) are reported.
func (l *Layout) Match(line string) (*raw, bool, error) {
	m := l.re.FindStringSubmatch(line)
	if m == nil {
		return nil, false, nil
	}
	r := &raw{}
	for name, idx := range l.groupIdx {
		val := m[idx]
		switch name {
		case "length":
			n, err := parseHex(val)
			if err != nil {
				return nil, true, err
			}
			r.length, r.hasLength = int(n), true
		case "type":
			n, err := parseHex(val)
			if err != nil {
				return nil, true, err
			}
			r.typ, r.hasType = int(n), true
		case "address":
			n, err := parseHex(val)
			if err != nil {
				return nil, true, err
			}
			r.address, r.hasAddress = uint32(n), true
		case "checksum", "addrchecksum":
			n, err := parseHex(val)
			if err != nil {
				return nil, true, err
			}
			r.checksum, r.hasChecksum = uint16(n), true
		case "data":
			if l.dataSep != "" {
				val = strings.ReplaceAll(val, l.dataSep, "")
			}
			b, err := decodeHexPairs(val)
			if err != nil {
				return nil, true, err
			}
			r.data, r.hasData = b, true
		case "unparsed":
			r.unparsed = val
		}
	}
	return r, true, nil
}
