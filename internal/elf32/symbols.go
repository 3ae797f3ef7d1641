package elf32

import "fmt"

// Symbols decodes the symbol table held in section i. Every multi-byte
// field is corrected to host byte order. Valid in the sections-loaded
// state.
func (r *Reader) Symbols(i int) ([]Sym, error) {
	if r.st != stateSectionsLoaded {
		return nil, fmt.Errorf("%w: symbols in %s", ErrState, r.st)
	}
	if i < 0 || i >= len(r.sects) {
		return nil, fmt.Errorf("%w: section %d of %d", ErrBadIndex, i, len(r.sects))
	}
	sh := r.sects[i]
	if sh.Type != SectSymTab && sh.Type != SectDynSym {
		return nil, fmt.Errorf("%w: section %d is %s", ErrNotSymTab, i, sh.Type)
	}
	if sh.EntSize != SymSize {
		return nil, fmt.Errorf("%w: symbol entry size %d, want %d", ErrEntrySize, sh.EntSize, SymSize)
	}

	data := r.data[i]
	syms := make([]Sym, len(data)/SymSize)
	for n := range syms {
		e := data[n*SymSize:]
		syms[n] = Sym{
			Name:  r.u32(e[0:]),
			Value: r.u32(e[4:]),
			Size:  r.u32(e[8:]),
			Info:  e[12],
			Other: e[13],
			Shndx: r.u16(e[14:]),
		}
	}
	return syms, nil
}

// SymTabs returns the indexes of all symbol table sections, in file
// order.
func (r *Reader) SymTabs() []int {
	var out []int
	for i, sh := range r.sects {
		if sh.Type == SectSymTab || sh.Type == SectDynSym {
			out = append(out, i)
		}
	}
	return out
}
