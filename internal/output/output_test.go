package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteSymbolsJSON(t *testing.T) {
	var b strings.Builder
	syms := []SymbolEntry{
		{Address: 0x1000, Name: "main", Size: 16, Bind: "GLOBAL", Type: "FUNC", Section: "1"},
	}
	if err := WriteSymbolsJSON(&b, syms); err != nil {
		t.Fatal(err)
	}
	var back []SymbolEntry
	if err := json.Unmarshal([]byte(b.String()), &back); err != nil {
		t.Fatal(err)
	}
	if len(back) != 1 || back[0] != syms[0] {
		t.Errorf("round trip = %+v", back)
	}
}

func TestWriteJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbols.json")
	if err := WriteJSONFile(path, []SymbolEntry{{Name: "x"}}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"name": "x"`) {
		t.Errorf("file content:\n%s", data)
	}
}
