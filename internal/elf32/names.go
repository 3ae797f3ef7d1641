package elf32

import (
	"bytes"
	"fmt"
)

// stringAt resolves a NUL-terminated string at off inside the string
// table section table. Offsets at or past the end of the table, and
// strings missing their terminator, are rejected rather than read past
// the buffer.
func (r *Reader) stringAt(table int, off uint32) (string, error) {
	if r.st != stateSectionsLoaded {
		return "", fmt.Errorf("%w: string lookup in %s", ErrState, r.st)
	}
	if table < 0 || table >= len(r.sects) {
		return "", fmt.Errorf("%w: string table %d of %d", ErrBadIndex, table, len(r.sects))
	}
	if r.sects[table].Type != SectStrTab {
		return "", fmt.Errorf("%w: section %d is %s, not STRTAB", ErrBadIndex, table, r.sects[table].Type)
	}
	data := r.data[table]
	if off >= uint32(len(data)) {
		return "", fmt.Errorf("%w: offset 0x%x in %d-byte table", ErrBadNameOffset, off, len(data))
	}
	end := bytes.IndexByte(data[off:], 0)
	if end < 0 {
		return "", fmt.Errorf("%w: unterminated string at 0x%x", ErrBadNameOffset, off)
	}
	return string(data[off : int(off)+end]), nil
}

// SectionName resolves the name of section i from the section name
// string table. Valid in the sections-loaded state.
func (r *Reader) SectionName(i int) (string, error) {
	if r.st != stateSectionsLoaded {
		return "", fmt.Errorf("%w: section name in %s", ErrState, r.st)
	}
	if i < 0 || i >= len(r.sects) {
		return "", fmt.Errorf("%w: section %d of %d", ErrBadIndex, i, len(r.sects))
	}
	return r.stringAt(int(r.hdr.ShStrNdx), r.sects[i].Name)
}

// SymbolName resolves the name of a symbol taken from symbol table
// section symtab, via that table's linked string table.
func (r *Reader) SymbolName(symtab int, sym *Sym) (string, error) {
	if symtab < 0 || symtab >= len(r.sects) {
		return "", fmt.Errorf("%w: section %d of %d", ErrBadIndex, symtab, len(r.sects))
	}
	sh := r.sects[symtab]
	if sh.Type != SectSymTab && sh.Type != SectDynSym {
		return "", fmt.Errorf("%w: section %d is %s", ErrNotSymTab, symtab, sh.Type)
	}
	if sym.Name == 0 {
		return "", nil
	}
	return r.stringAt(int(sh.Link), sym.Name)
}
