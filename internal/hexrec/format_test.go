package hexrec

import (
	"bytes"
	"errors"
	"testing"
)

func TestCompileLayoutFields(t *testing.T) {
	l, err := CompileLayout("S1LLAAAADDCC", "")
	if err != nil {
		t.Fatal(err)
	}
	want := []Field{
		{Kind: FieldLiteral, Width: 1, Literal: "S"},
		{Kind: FieldLiteral, Width: 1, Literal: "1"},
		{Kind: FieldLength, Width: 2},
		{Kind: FieldAddress, Width: 4},
		{Kind: FieldData},
		{Kind: FieldChecksum, Width: 2},
	}
	if len(l.Fields) != len(want) {
		t.Fatalf("got %d fields: %+v", len(l.Fields), l.Fields)
	}
	for i, f := range want {
		if l.Fields[i] != f {
			t.Errorf("field %d = %+v, want %+v", i, l.Fields[i], f)
		}
	}
	if l.AddressBytes() != 2 {
		t.Errorf("AddressBytes = %d", l.AddressBytes())
	}
	if l.ChecksumBits() != 8 {
		t.Errorf("ChecksumBits = %d", l.ChecksumBits())
	}
}

func TestCompileLayoutEmptySpec(t *testing.T) {
	if _, err := CompileLayout("", ""); !errors.Is(err, ErrMalformedSpec) {
		t.Errorf("empty spec: %v", err)
	}
}

func TestLayoutMatch(t *testing.T) {
	l, err := CompileLayout("S1LLAAAADDCC", "")
	if err != nil {
		t.Fatal(err)
	}
	r, ok, err := l.Match("S1130010616263640A")
	if !ok || err != nil {
		t.Fatalf("Match: ok=%v err=%v", ok, err)
	}
	if r.length != 0x13 || r.address != 0x0010 || r.checksum != 0x0A {
		t.Errorf("raw = %+v", r)
	}
	if !bytes.Equal(r.data, []byte{0x61, 0x62, 0x63, 0x64}) {
		t.Errorf("data = % x", r.data)
	}
}

func TestLayoutMatchRejectsForeignLines(t *testing.T) {
	l, err := CompileLayout("S1LLAAAADDCC", "")
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{
		":0300300002337A1E",
		"S2130010616263640A", // wrong type literal
		"S1 hello",
	} {
		if _, ok, _ := l.Match(line); ok {
			t.Errorf("layout matched %q", line)
		}
	}
}

func TestLayoutDataSeparator(t *testing.T) {
	l, err := CompileLayout("LL AAAA:DD CCCC", " ")
	if err != nil {
		t.Fatal(err)
	}
	r, ok, err := l.Match("02 0010:AA BB 0165")
	if !ok || err != nil {
		t.Fatalf("Match: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(r.data, []byte{0xaa, 0xbb}) {
		t.Errorf("data = % x", r.data)
	}
	if r.address != 0x0010 || r.checksum != 0x0165 {
		t.Errorf("raw = %+v", r)
	}
}

func TestLayoutOddDataField(t *testing.T) {
	l, err := CompileLayout("S1LLAAAADDCC", "")
	if err != nil {
		t.Fatal(err)
	}
	// Odd number of data digits decodes the trailing pair boundary wrong;
	// the layout reports it rather than guessing.
	_, ok, err := l.Match("S113001061626364A")
	if !ok {
		t.Fatal("line should match structurally")
	}
	if !errors.Is(err, ErrRecordFormat) {
		t.Errorf("want ErrRecordFormat, got %v", err)
	}
}
