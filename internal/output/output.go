// Package output writes objkit extraction results to files.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"objkit/internal/elf32"
)

// SymbolEntry is one exported symbol table row.
type SymbolEntry struct {
	Address uint32 `json:"address"`
	Name    string `json:"name"`
	Size    uint32 `json:"size,omitempty"`
	Bind    string `json:"bind"`
	Type    string `json:"type"`
	Section string `json:"section"`
	Table   string `json:"table,omitempty"`
}

// Symbols collects every symbol table of a loaded reader into export
// rows. Unresolvable names are exported empty rather than failing the
// whole export.
func Symbols(r *elf32.Reader) ([]SymbolEntry, error) {
	var out []SymbolEntry
	for _, tab := range r.SymTabs() {
		tabName, _ := r.SectionName(tab)
		syms, err := r.Symbols(tab)
		if err != nil {
			return nil, err
		}
		for i := range syms {
			s := &syms[i]
			name, _ := r.SymbolName(tab, s)
			out = append(out, SymbolEntry{
				Address: s.Value,
				Name:    name,
				Size:    s.Size,
				Bind:    s.Bind().String(),
				Type:    s.Type().String(),
				Section: s.SectionRef(),
				Table:   tabName,
			})
		}
	}
	return out, nil
}

// WriteSymbolsJSON writes symbol entries as indented JSON.
func WriteSymbolsJSON(w io.Writer, symbols []SymbolEntry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(symbols); err != nil {
		return fmt.Errorf("output: encode symbols: %w", err)
	}
	return nil
}

// WriteJSONFile writes v as indented JSON to path.
func WriteJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("output: encode %s: %w", path, err)
	}
	return nil
}
