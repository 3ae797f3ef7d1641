package hexrec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"objkit/internal/image"
)

const helloS1 = "S113100048656C6C6F2048455820776F726C64217A"

func decodeWith(t *testing.T, name, text string, opts DecodeOptions) *Result {
	t.Helper()
	c, err := Lookup(name)
	if err != nil {
		t.Fatal(err)
	}
	res, err := c.Decode(strings.NewReader(text), opts)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestSRecDecodeHello(t *testing.T) {
	res := decodeWith(t, "srec", helloS1+"\n", DecodeOptions{Join: true})
	got, err := res.Image.Read(0x1000, 16)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "Hello HEX world!" {
		t.Errorf("payload = %q", got)
	}
}

func TestSRecEncodeHello(t *testing.T) {
	img, err := image.New([]*image.Section{
		image.NewSection(0x1000, []byte("Hello HEX world!")),
	}, true)
	if err != nil {
		t.Fatal(err)
	}
	c, _ := Lookup("srec")
	var b bytes.Buffer
	if err := c.Encode(&b, img, EncodeOptions{}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), b.String())
	}
	if lines[0] != helloS1 {
		t.Errorf("data record = %q, want %q", lines[0], helloS1)
	}
	if lines[1] != "S9030000FC" {
		t.Errorf("termination record = %q", lines[1])
	}
}

func TestSRecChecksumMismatchStrict(t *testing.T) {
	bad := helloS1[:len(helloS1)-2] + "7B"
	c, _ := Lookup("srec")
	_, err := c.Decode(strings.NewReader(bad+"\n"), DecodeOptions{Policy: PolicyStrict})
	if !errors.Is(err, ErrChecksum) {
		t.Fatalf("want ErrChecksum, got %v", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Line != 1 {
		t.Errorf("error not tied to line 1: %v", err)
	}
}

func TestSRecChecksumMismatchWarn(t *testing.T) {
	bad := helloS1[:len(helloS1)-2] + "7B"
	text := bad + "\n" + helloS1[:8] + "41414141414141414141414141414141" // garbage second line
	res := decodeWith(t, "srec", text+"\n", DecodeOptions{Policy: PolicyWarn})
	if len(res.Diags) == 0 {
		t.Fatal("no diagnostics recorded")
	}
	if res.Diags[0].Kind != DiagChecksum || res.Diags[0].Line != 1 {
		t.Errorf("diag[0] = %+v", res.Diags[0])
	}
	// Nothing decoded, but the decode itself succeeds.
	if res.Image.Len() != 0 {
		t.Errorf("image has %d bytes", res.Image.Len())
	}
}

func TestSRecHeaderRecord(t *testing.T) {
	// S0 with payload "HDR": length = 2+3+1 = 6, addr 0000.
	covered := append([]byte{6, 0, 0}, []byte("HDR")...)
	sum := byte(LRC(covered, 8, ComplementOnes))
	line := "S0060000" + hexUpper([]byte("HDR")) + hexUpper([]byte{sum})
	res := decodeWith(t, "srec", line+"\n"+helloS1+"\n", DecodeOptions{})
	if string(res.Header) != "HDR" {
		t.Errorf("header = %q", res.Header)
	}
}

func TestSRecRecordCountMismatch(t *testing.T) {
	// S5 declaring 2 data records when only 1 is present.
	covered := []byte{3, 0, 2}
	sum := byte(LRC(covered, 8, ComplementOnes))
	s5 := "S5030002" + hexUpper([]byte{sum})
	text := helloS1 + "\n" + s5 + "\n"

	c, _ := Lookup("srec")
	if _, err := c.Decode(strings.NewReader(text), DecodeOptions{Policy: PolicyStrict}); !errors.Is(err, ErrRecordCount) {
		t.Errorf("strict: %v", err)
	}

	res := decodeWith(t, "srec", text, DecodeOptions{Policy: PolicyWarn})
	found := false
	for _, d := range res.Diags {
		if d.Kind == DiagCount {
			found = true
		}
	}
	if !found {
		t.Errorf("no record-count diagnostic: %+v", res.Diags)
	}
}

func TestSRecStartAddress(t *testing.T) {
	// S9 carrying start address 0x1000.
	covered := []byte{3, 0x10, 0x00}
	sum := byte(LRC(covered, 8, ComplementOnes))
	s9 := "S9031000" + hexUpper([]byte{sum})
	res := decodeWith(t, "srec", helloS1+"\n"+s9+"\n", DecodeOptions{})
	addr, ok := res.Image.StartAddress()
	if !ok || addr != 0x1000 {
		t.Errorf("start address = 0x%x, %v", addr, ok)
	}
}

func TestSRecWideAddressRoundTrip(t *testing.T) {
	img, err := image.New([]*image.Section{
		image.NewSection(0x123456, []byte{1, 2, 3}),
	}, true)
	if err != nil {
		t.Fatal(err)
	}
	c, _ := Lookup("srec")
	var b bytes.Buffer
	if err := c.Encode(&b, img, EncodeOptions{Count: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(b.String(), "S2") {
		t.Errorf("24-bit image should use S2 records:\n%s", b.String())
	}
	res := decodeWith(t, "srec", b.String(), DecodeOptions{Join: true})
	if !res.Image.Equal(img) {
		t.Error("round trip lost data")
	}
}

func TestSRecRowLength(t *testing.T) {
	img, err := image.New([]*image.Section{
		image.NewSection(0, make([]byte, 40)),
	}, true)
	if err != nil {
		t.Fatal(err)
	}
	c, _ := Lookup("srec")
	var b bytes.Buffer
	if err := c.Encode(&b, img, EncodeOptions{RowLength: 32}); err != nil {
		t.Fatal(err)
	}
	var dataLines int
	for _, l := range strings.Split(b.String(), "\n") {
		if strings.HasPrefix(l, "S1") {
			dataLines++
		}
	}
	if dataLines != 2 {
		t.Errorf("got %d data records, want 2:\n%s", dataLines, b.String())
	}
}
