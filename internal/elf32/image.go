package elf32

import (
	"fmt"

	"objkit/internal/image"
)

// Image builds an address-space image from the allocatable PROGBITS
// sections. With join set, sections that touch in the address space are
// merged. Valid in the sections-loaded state.
func (r *Reader) Image(join bool) (*image.Image, error) {
	if r.st != stateSectionsLoaded {
		return nil, fmt.Errorf("%w: image in %s", ErrState, r.st)
	}
	var secs []*image.Section
	for i, sh := range r.sects {
		if sh.Type != SectProgBits || sh.Flags&SectFlagAlloc == 0 || sh.Size == 0 {
			continue
		}
		secs = append(secs, image.NewSection(sh.Addr, r.data[i]))
	}
	img, err := image.New(secs, join)
	if err != nil {
		return nil, err
	}
	if r.hdr.Entry != 0 {
		img.SetStartAddress(r.hdr.Entry)
	}
	return img, nil
}
