package hexrec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"objkit/internal/image"
)

func TestMosTecDecode(t *testing.T) {
	// Checksum covers address bytes, length and payload: 00+10+03+01+02+03.
	text := ";0300100102030019\n;00\n"
	res := decodeWith(t, "mostec", text, DecodeOptions{Join: true})
	got, err := res.Image.Read(0x10, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Errorf("payload = % x", got)
	}
}

func TestMosTecChecksumMismatch(t *testing.T) {
	c, _ := Lookup("mostec")
	_, err := c.Decode(strings.NewReader(";030010010203001A\n;00\n"),
		DecodeOptions{Policy: PolicyStrict})
	if !errors.Is(err, ErrChecksum) {
		t.Fatalf("want ErrChecksum, got %v", err)
	}
}

func TestMosTecRoundTrip(t *testing.T) {
	img, err := image.New([]*image.Section{
		image.NewSection(0x0010, []byte("MOS technology data")),
	}, true)
	if err != nil {
		t.Fatal(err)
	}
	c, _ := Lookup("mostec")
	var b bytes.Buffer
	if err := c.Encode(&b, img, EncodeOptions{}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimRight(b.String(), "\n"), ";00") {
		t.Errorf("missing EOF line:\n%s", b.String())
	}
	res := decodeWith(t, "mostec", b.String(), DecodeOptions{Join: true})
	if !res.Image.Equal(img) {
		t.Error("round trip lost data")
	}
}

func TestMosTecRejectsWideAddresses(t *testing.T) {
	img, err := image.New([]*image.Section{
		image.NewSection(0xfffe, []byte{1, 2, 3, 4}),
	}, true)
	if err != nil {
		t.Fatal(err)
	}
	c, _ := Lookup("mostec")
	var b bytes.Buffer
	if err := c.Encode(&b, img, EncodeOptions{}); !errors.Is(err, ErrAddressRange) {
		t.Errorf("want ErrAddressRange, got %v", err)
	}
}
