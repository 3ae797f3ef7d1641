package image

import (
	"bytes"
	"fmt"
	"sort"
)

// Image is an ordered collection of non-overlapping sections, plus the
// optional start (entry point) address carried by some formats.
type Image struct {
	sections []*Section

	startAddress uint32
	hasStart     bool
}

// New builds an image from sections, applying the join policy on
// construction. Overlapping sections are rejected.
func New(sections []*Section, join bool) (*Image, error) {
	img := &Image{}
	for _, s := range sections {
		if err := img.Insert(s, join); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// Sections returns the sections in ascending address order.
func (img *Image) Sections() []*Section { return img.sections }

// Len returns the total number of data bytes across all sections.
func (img *Image) Len() int {
	var n int
	for _, s := range img.sections {
		n += len(s.Data)
	}
	return n
}

// StartAddress returns the image's start (entry point) address, if any
// record supplied one.
func (img *Image) StartAddress() (uint32, bool) {
	return img.startAddress, img.hasStart
}

// SetStartAddress records the start (entry point) address.
func (img *Image) SetStartAddress(addr uint32) {
	img.startAddress = addr
	img.hasStart = true
}

// Insert adds a section, keeping ascending address order. With join
// enabled, sections that are exactly adjacent to the new one are merged,
// repeatedly, until no adjacency remains. A true overlap fails with
// ErrOverlap and leaves the image unchanged; overlap is never silently
// resolved.
func (img *Image) Insert(sec *Section, join bool) error {
	if len(sec.Data) == 0 {
		return nil
	}
	for _, s := range img.sections {
		if s.Overlaps(sec) {
			return fmt.Errorf("%w: [0x%08x,0x%08x) collides with [0x%08x,0x%08x)",
				ErrOverlap, sec.StartAddress, sec.End(), s.StartAddress, s.End())
		}
	}

	if join {
		var before, after *Section
		afterIdx := -1
		for i, s := range img.sections {
			if s.End() == sec.StartAddress {
				before = s
			}
			if sec.End() == s.StartAddress {
				after, afterIdx = s, i
			}
		}
		switch {
		case before != nil && after != nil:
			before.Data = append(before.Data, sec.Data...)
			before.Data = append(before.Data, after.Data...)
			img.sections = append(img.sections[:afterIdx], img.sections[afterIdx+1:]...)
			return nil
		case before != nil:
			before.Data = append(before.Data, sec.Data...)
			return nil
		case after != nil:
			after.StartAddress = sec.StartAddress
			after.Data = append(bytes.Clone(sec.Data), after.Data...)
			return nil
		}
	}

	img.sections = append(img.sections, sec)
	sort.Slice(img.sections, func(i, j int) bool {
		return img.sections[i].StartAddress < img.sections[j].StartAddress
	})
	return nil
}

// FindSection returns the section containing addr.
func (img *Image) FindSection(addr uint32) (*Section, bool) {
	for _, s := range img.sections {
		if s.Contains(addr) {
			return s, true
		}
	}
	return nil, false
}

// Read returns n bytes starting at the absolute address. The range must
// fall within a single section.
func (img *Image) Read(addr uint32, n int) ([]byte, error) {
	s, ok := img.FindSection(addr)
	if !ok {
		return nil, fmt.Errorf("%w: 0x%08x", ErrNoSection, addr)
	}
	return s.Read(addr-s.StartAddress, n)
}

// Write stores data at the absolute address. The range must fall within a
// single section.
func (img *Image) Write(addr uint32, data []byte) error {
	s, ok := img.FindSection(addr)
	if !ok {
		return fmt.Errorf("%w: 0x%08x", ErrNoSection, addr)
	}
	return s.Write(addr-s.StartAddress, data)
}

// Extract flattens the address range [addr, addr+size) into a byte slice,
// filling unmapped gaps with pad.
func (img *Image) Extract(addr uint32, size int, pad byte) []byte {
	out := make([]byte, size)
	for i := range out {
		if s, ok := img.FindSection(addr + uint32(i)); ok {
			out[i] = s.Data[addr+uint32(i)-s.StartAddress]
		} else {
			out[i] = pad
		}
	}
	return out
}

// Equal reports whether two images carry identical sections.
func (img *Image) Equal(other *Image) bool {
	if len(img.sections) != len(other.sections) {
		return false
	}
	for i, s := range img.sections {
		o := other.sections[i]
		if s.StartAddress != o.StartAddress || !bytes.Equal(s.Data, o.Data) {
			return false
		}
	}
	return true
}
