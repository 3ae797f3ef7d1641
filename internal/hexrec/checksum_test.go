package hexrec

import (
	"bytes"
	"testing"
)

func TestLRC(t *testing.T) {
	data := []byte{0x10, 0x20, 0xf0}
	tests := []struct {
		width int
		comp  Complement
		want  uint16
	}{
		{8, ComplementNone, 0x20},
		{8, ComplementOnes, 0xdf},
		{8, ComplementTwos, 0xe0},
		{16, ComplementNone, 0x0120},
		{16, ComplementOnes, 0xfedf},
		{16, ComplementTwos, 0xfee0},
	}
	for _, tt := range tests {
		if got := LRC(data, tt.width, tt.comp); got != tt.want {
			t.Errorf("LRC(width=%d, comp=%d) = 0x%04x, want 0x%04x",
				tt.width, tt.comp, got, tt.want)
		}
	}
}

func TestLRCEmpty(t *testing.T) {
	if got := LRC(nil, 8, ComplementNone); got != 0 {
		t.Errorf("LRC(nil) = 0x%x", got)
	}
	if got := LRC(nil, 8, ComplementTwos); got != 0 {
		t.Errorf("twos complement of zero sum = 0x%x", got)
	}
}

func TestLRCSingleBitSensitivity(t *testing.T) {
	base := LRC([]byte{0x01, 0x02, 0x03}, 8, ComplementOnes)
	flipped := LRC([]byte{0x01, 0x02, 0x02}, 8, ComplementOnes)
	if base == flipped {
		t.Error("single-bit change left checksum unchanged")
	}
}

func TestAddrBytes(t *testing.T) {
	if got := addrBytes(0x123456, 3); !bytes.Equal(got, []byte{0x12, 0x34, 0x56}) {
		t.Errorf("addrBytes(0x123456, 3) = % x", got)
	}
	if got := addrBytes(0x1000, 2); !bytes.Equal(got, []byte{0x10, 0x00}) {
		t.Errorf("addrBytes(0x1000, 2) = % x", got)
	}
}
