package image

import (
	"bytes"
	"errors"
	"testing"
)

func mustImage(t *testing.T, join bool, secs ...*Section) *Image {
	t.Helper()
	img, err := New(secs, join)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestInsertKeepsAddressOrder(t *testing.T) {
	img := mustImage(t, false,
		NewSection(0x2000, []byte{3}),
		NewSection(0x1000, []byte{1}),
		NewSection(0x1800, []byte{2}),
	)
	var addrs []uint32
	for _, s := range img.Sections() {
		addrs = append(addrs, s.StartAddress)
	}
	want := []uint32{0x1000, 0x1800, 0x2000}
	for i := range want {
		if addrs[i] != want[i] {
			t.Fatalf("section order %#v, want %#v", addrs, want)
		}
	}
}

func TestInsertJoinsAdjacent(t *testing.T) {
	img := mustImage(t, true,
		NewSection(0x1000, []byte{1, 2}),
		NewSection(0x1002, []byte{3, 4}),
	)
	if n := len(img.Sections()); n != 1 {
		t.Fatalf("got %d sections, want 1", n)
	}
	s := img.Sections()[0]
	if s.StartAddress != 0x1000 || !bytes.Equal(s.Data, []byte{1, 2, 3, 4}) {
		t.Errorf("joined section = %v % x", s.StartAddress, s.Data)
	}
}

func TestInsertJoinsBothSides(t *testing.T) {
	// The middle insert bridges two existing sections.
	img := mustImage(t, true,
		NewSection(0x1000, []byte{1}),
		NewSection(0x1002, []byte{3}),
		NewSection(0x1001, []byte{2}),
	)
	if n := len(img.Sections()); n != 1 {
		t.Fatalf("got %d sections, want 1", n)
	}
	if !bytes.Equal(img.Sections()[0].Data, []byte{1, 2, 3}) {
		t.Errorf("bridged data = % x", img.Sections()[0].Data)
	}
}

func TestInsertNoJoinKeepsAdjacentApart(t *testing.T) {
	img := mustImage(t, false,
		NewSection(0x1000, []byte{1, 2}),
		NewSection(0x1002, []byte{3, 4}),
	)
	if n := len(img.Sections()); n != 2 {
		t.Fatalf("got %d sections, want 2", n)
	}
}

func TestInsertRejectsOverlap(t *testing.T) {
	img := mustImage(t, true, NewSection(0x1000, []byte{1, 2, 3, 4}))
	err := img.Insert(NewSection(0x1002, []byte{9, 9}), true)
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("want ErrOverlap, got %v", err)
	}
	// The failed insert must not disturb existing content.
	got, _ := img.Read(0x1000, 4)
	if !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("image modified by failed insert: % x", got)
	}
	if len(img.Sections()) != 1 {
		t.Errorf("section count changed to %d", len(img.Sections()))
	}
}

func TestInsertIgnoresEmptySection(t *testing.T) {
	img := mustImage(t, true, NewSection(0x1000, nil))
	if len(img.Sections()) != 0 {
		t.Error("empty section was inserted")
	}
}

func TestImageReadWrite(t *testing.T) {
	img := mustImage(t, false, NewSection(0x1000, make([]byte, 8)))
	if err := img.Write(0x1004, []byte{0xde, 0xad}); err != nil {
		t.Fatal(err)
	}
	got, err := img.Read(0x1004, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{0xde, 0xad}) {
		t.Errorf("Read = % x", got)
	}
	if _, err := img.Read(0x2000, 1); !errors.Is(err, ErrNoSection) {
		t.Errorf("unmapped read: %v", err)
	}
}

func TestExtractPadsGaps(t *testing.T) {
	img := mustImage(t, false,
		NewSection(0x1000, []byte{1, 2}),
		NewSection(0x1004, []byte{5, 6}),
	)
	got := img.Extract(0x1000, 6, 0xff)
	want := []byte{1, 2, 0xff, 0xff, 5, 6}
	if !bytes.Equal(got, want) {
		t.Errorf("Extract = % x, want % x", got, want)
	}
}

func TestStartAddress(t *testing.T) {
	img := mustImage(t, false)
	if _, ok := img.StartAddress(); ok {
		t.Error("fresh image claims a start address")
	}
	img.SetStartAddress(0x8000)
	addr, ok := img.StartAddress()
	if !ok || addr != 0x8000 {
		t.Errorf("StartAddress = 0x%x, %v", addr, ok)
	}
}

func TestEqual(t *testing.T) {
	a := mustImage(t, true, NewSection(0x1000, []byte{1, 2, 3}))
	b := mustImage(t, true,
		NewSection(0x1000, []byte{1, 2}),
		NewSection(0x1002, []byte{3}),
	)
	if !a.Equal(b) {
		t.Error("joined equivalents not Equal")
	}
	c := mustImage(t, true, NewSection(0x1000, []byte{1, 2, 9}))
	if a.Equal(c) {
		t.Error("different content reported Equal")
	}
}
