// Package image models firmware address spaces as ordered, non-overlapping
// sections of bytes with explicit start addresses.
package image

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	ErrOutOfRange   = errors.New("image: access out of range")
	ErrUnterminated = errors.New("image: unterminated string")
	ErrOverlap      = errors.New("image: sections overlap")
	ErrNoSection    = errors.New("image: address not mapped")
)

// Section is a contiguous block of bytes located at a start address.
type Section struct {
	StartAddress uint32
	Data         []byte
}

// NewSection creates a section over a copy of data.
func NewSection(addr uint32, data []byte) *Section {
	return &Section{StartAddress: addr, Data: bytes.Clone(data)}
}

// Len returns the number of bytes in the section.
func (s *Section) Len() int { return len(s.Data) }

// End returns the first address past the section.
func (s *Section) End() uint32 { return s.StartAddress + uint32(len(s.Data)) }

// Contains reports whether addr falls inside the section's address range.
func (s *Section) Contains(addr uint32) bool {
	return addr >= s.StartAddress && addr < s.End()
}

// Overlaps reports whether the two sections share any address. Exact
// adjacency is not an overlap.
func (s *Section) Overlaps(o *Section) bool {
	return s.StartAddress < o.End() && o.StartAddress < s.End()
}

func (s *Section) checkRange(off uint32, n int) error {
	if n < 0 || uint64(off)+uint64(n) > uint64(len(s.Data)) {
		return fmt.Errorf("%w: offset 0x%x length %d in section of %d bytes",
			ErrOutOfRange, off, n, len(s.Data))
	}
	return nil
}

// Read returns n bytes starting at the section-relative offset.
func (s *Section) Read(off uint32, n int) ([]byte, error) {
	if err := s.checkRange(off, n); err != nil {
		return nil, err
	}
	return bytes.Clone(s.Data[off : off+uint32(n)]), nil
}

// Write stores data at the section-relative offset.
func (s *Section) Write(off uint32, data []byte) error {
	if err := s.checkRange(off, len(data)); err != nil {
		return err
	}
	copy(s.Data[off:], data)
	return nil
}

// ReadString returns the null-terminated string at the section-relative
// offset. The terminator must occur before the section end.
func (s *Section) ReadString(off uint32) (string, error) {
	if off >= uint32(len(s.Data)) {
		return "", fmt.Errorf("%w: offset 0x%x in section of %d bytes",
			ErrOutOfRange, off, len(s.Data))
	}
	rest := s.Data[off:]
	i := bytes.IndexByte(rest, 0)
	if i < 0 {
		return "", fmt.Errorf("%w: no terminator after offset 0x%x", ErrUnterminated, off)
	}
	return string(rest[:i]), nil
}

// WriteString stores value plus a null terminator at the section-relative
// offset.
func (s *Section) WriteString(off uint32, value string) error {
	if err := s.checkRange(off, len(value)+1); err != nil {
		return err
	}
	copy(s.Data[off:], value)
	s.Data[off+uint32(len(value))] = 0
	return nil
}

func (s *Section) String() string {
	return fmt.Sprintf("Section(address=0x%08X, length=%d)", s.StartAddress, len(s.Data))
}
