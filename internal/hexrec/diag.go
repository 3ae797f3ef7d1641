// Package hexrec decodes and encodes checksummed line-record firmware
// formats (Motorola S-records, Intel HEX and a family of historical
// 16-bit formats) from a compact per-format layout specification.
package hexrec

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedSpec = errors.New("hexrec: malformed layout spec")
	ErrRecordFormat  = errors.New("hexrec: invalid record format")
	ErrUnknownType   = errors.New("hexrec: unknown record type")
	ErrChecksum      = errors.New("hexrec: checksum mismatch")
	ErrRecordLength  = errors.New("hexrec: record length mismatch")
	ErrRecordCount   = errors.New("hexrec: record count mismatch")
	ErrMissingEOF    = errors.New("hexrec: missing end-of-file record")
	ErrAddressRange  = errors.New("hexrec: address range too large for format")
)

// ParseError ties a decode failure to its 1-based input line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func lineErr(line int, err error) error {
	return &ParseError{Line: line, Err: err}
}

func lineErrf(line int, sentinel error, format string, args ...any) error {
	return &ParseError{Line: line, Err: fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))}
}

// DiagKind classifies a non-fatal finding.
type DiagKind string

const (
	DiagChecksum    DiagKind = "checksum"
	DiagGarbage     DiagKind = "garbage"
	DiagUnknownType DiagKind = "unknown_type"
	DiagCount       DiagKind = "record_count"
)

// Diag records a non-fatal issue found while decoding.
type Diag struct {
	Line int
	Kind DiagKind
	Msg  string
}

func (d Diag) String() string {
	return fmt.Sprintf("[%s] line %d: %s", d.Kind, d.Line, d.Msg)
}

// Diags accumulates diagnostics.
type Diags struct {
	items []Diag
}

func (d *Diags) Addf(line int, kind DiagKind, format string, args ...any) {
	d.items = append(d.items, Diag{Line: line, Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

func (d *Diags) Items() []Diag { return d.items }
func (d *Diags) Len() int      { return len(d.items) }

func diagKindFor(err error) DiagKind {
	switch {
	case errors.Is(err, ErrChecksum):
		return DiagChecksum
	case errors.Is(err, ErrUnknownType):
		return DiagUnknownType
	default:
		return DiagGarbage
	}
}

// Policy selects how checksum mismatches and garbage lines are handled.
// Firmware files occasionally contain benign trailing garbage, so the
// choice belongs to the caller.
type Policy int

const (
	// PolicyStrict fails the decode on the first bad record.
	PolicyStrict Policy = iota
	// PolicyWarn records a diagnostic and keeps scanning.
	PolicyWarn
)
