package elf32

import (
	"fmt"

	"github.com/zboralski/lattice"
)

// LinkGraph builds a graph of the cross-section references declared in
// the section header table: a symbol or relocation table links to its
// string table via sh_link, and relocation tables point at the section
// they patch via sh_info. Valid in the sections-loaded state.
func (r *Reader) LinkGraph() (*lattice.Graph, error) {
	if r.st != stateSectionsLoaded {
		return nil, fmt.Errorf("%w: link graph in %s", ErrState, r.st)
	}

	label := func(i int) string {
		name, err := r.SectionName(i)
		if err != nil || name == "" {
			return fmt.Sprintf("section %d", i)
		}
		return name
	}

	g := &lattice.Graph{}
	for i, sh := range r.sects {
		if sh.Type == SectNull {
			continue
		}
		g.Nodes = append(g.Nodes, label(i))
		if sh.Link != 0 && int(sh.Link) < len(r.sects) {
			g.Edges = append(g.Edges, lattice.Edge{
				Caller: label(i),
				Callee: label(int(sh.Link)),
			})
		}
		switch sh.Type {
		case SectRel, SectRela:
			if sh.Info != 0 && int(sh.Info) < len(r.sects) {
				g.Edges = append(g.Edges, lattice.Edge{
					Caller: label(i),
					Callee: label(int(sh.Info)),
				})
			}
		}
	}
	g.Dedup()
	return g, nil
}
