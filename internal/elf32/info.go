package elf32

import (
	"fmt"
	"io"
)

// WriteInfo writes a human-readable listing of the file header, program
// and section tables, and every symbol table. Valid in the
// sections-loaded state.
func (r *Reader) WriteInfo(w io.Writer) error {
	if r.st != stateSectionsLoaded {
		return fmt.Errorf("%w: info in %s", ErrState, r.st)
	}

	h := r.hdr
	fmt.Fprintf(w, "File:      %s\n", r.path)
	fmt.Fprintf(w, "Class:     %s\n", h.Class())
	fmt.Fprintf(w, "Encoding:  %s\n", h.Encoding())
	fmt.Fprintf(w, "Type:      %s\n", h.Type)
	fmt.Fprintf(w, "Machine:   %s\n", machineName(h.Machine))
	fmt.Fprintf(w, "Entry:     0x%08x\n", h.Entry)
	fmt.Fprintf(w, "Flags:     0x%08x\n", h.Flags)
	fmt.Fprintln(w)

	if len(r.progs) > 0 {
		fmt.Fprintf(w, "Program headers (%d):\n", len(r.progs))
		fmt.Fprintf(w, "  %-3s %-10s %-10s %-10s %-10s %-8s %-8s\n",
			"Nr", "Type", "Offset", "Vaddr", "Paddr", "FileSz", "MemSz")
		for i, ph := range r.progs {
			fmt.Fprintf(w, "  %-3d %-10s 0x%08x 0x%08x 0x%08x %8d %8d\n",
				i, ph.Type, ph.Offset, ph.Vaddr, ph.Paddr, ph.FileSz, ph.MemSz)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Sections (%d):\n", len(r.sects))
	fmt.Fprintf(w, "  %-3s %-20s %-10s %-10s %-8s %-4s\n",
		"Nr", "Name", "Type", "Addr", "Size", "Link")
	for i, sh := range r.sects {
		name, err := r.SectionName(i)
		if err != nil {
			name = fmt.Sprintf("<%v>", err)
		}
		fmt.Fprintf(w, "  %-3d %-20s %-10s 0x%08x %8d %4d\n",
			i, name, sh.Type, sh.Addr, sh.Size, sh.Link)
	}

	for _, tab := range r.SymTabs() {
		syms, err := r.Symbols(tab)
		if err != nil {
			return err
		}
		tabName, _ := r.SectionName(tab)
		fmt.Fprintf(w, "\nSymbol table %q (%d entries):\n", tabName, len(syms))
		fmt.Fprintf(w, "  %-4s %-10s %-8s %-7s %-8s %-4s %s\n",
			"Nr", "Value", "Size", "Bind", "Type", "Sect", "Name")
		for n := range syms {
			s := &syms[n]
			name, err := r.SymbolName(tab, s)
			if err != nil {
				name = fmt.Sprintf("<%v>", err)
			}
			fmt.Fprintf(w, "  %-4d 0x%08x %8d %-7s %-8s %-4s %s\n",
				n, s.Value, s.Size, s.Bind(), s.Type(), s.SectionRef(), name)
		}
	}
	return nil
}
