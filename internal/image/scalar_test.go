package image

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestScalarEndiannessPerCall(t *testing.T) {
	// A value written big-endian must read back byte-swapped when read
	// little-endian from the same location.
	s := NewSection(0, make([]byte, 8))
	if err := WriteScalar[uint32](s, 0, 0x10203040, binary.BigEndian); err != nil {
		t.Fatal(err)
	}
	be, err := ReadScalar[uint32](s, 0, binary.BigEndian)
	if err != nil {
		t.Fatal(err)
	}
	if be != 0x10203040 {
		t.Errorf("big-endian read = 0x%08x", be)
	}
	le, err := ReadScalar[uint32](s, 0, binary.LittleEndian)
	if err != nil {
		t.Fatal(err)
	}
	if le != 0x40302010 {
		t.Errorf("little-endian read = 0x%08x, want 0x40302010", le)
	}
}

func TestScalarBytesLaidOutPerOrder(t *testing.T) {
	s := NewSection(0, make([]byte, 4))
	if err := WriteScalar[uint16](s, 0, 0x1234, binary.LittleEndian); err != nil {
		t.Fatal(err)
	}
	if err := WriteScalar[uint16](s, 2, 0x1234, binary.BigEndian); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(s.Data, []byte{0x34, 0x12, 0x12, 0x34}) {
		t.Errorf("layout = % x", s.Data)
	}
}

func TestScalarSignedAndFloat(t *testing.T) {
	s := NewSection(0, make([]byte, 16))
	if err := WriteScalar[int16](s, 0, -2, binary.LittleEndian); err != nil {
		t.Fatal(err)
	}
	v16, err := ReadScalar[int16](s, 0, binary.LittleEndian)
	if err != nil {
		t.Fatal(err)
	}
	if v16 != -2 {
		t.Errorf("int16 = %d", v16)
	}

	if err := WriteScalar[float64](s, 8, math.Pi, binary.BigEndian); err != nil {
		t.Fatal(err)
	}
	f, err := ReadScalar[float64](s, 8, binary.BigEndian)
	if err != nil {
		t.Fatal(err)
	}
	if f != math.Pi {
		t.Errorf("float64 = %v", f)
	}
}

func TestScalarArray(t *testing.T) {
	s := NewSection(0, make([]byte, 8))
	want := []uint16{0x1122, 0x3344, 0x5566, 0x7788}
	if err := WriteScalars(s, 0, want, binary.BigEndian); err != nil {
		t.Fatal(err)
	}
	got, err := ReadScalars[uint16](s, 0, 4, binary.BigEndian)
	if err != nil {
		t.Fatal(err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ReadScalars = %#v", got)
		}
	}
	// Same bytes, other order.
	swapped, err := ReadScalars[uint16](s, 0, 4, binary.LittleEndian)
	if err != nil {
		t.Fatal(err)
	}
	if swapped[0] != 0x2211 || swapped[3] != 0x8877 {
		t.Errorf("swapped = %#v", swapped)
	}
}

func TestScalarBounds(t *testing.T) {
	s := NewSection(0, make([]byte, 3))
	if _, err := ReadScalar[uint32](s, 0, binary.LittleEndian); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("short read: %v", err)
	}
	if err := WriteScalar[uint64](s, 0, 1, binary.LittleEndian); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("short write: %v", err)
	}
	if _, err := ReadScalars[uint16](s, 2, 1, binary.LittleEndian); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("array read past end: %v", err)
	}
}
