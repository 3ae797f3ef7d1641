package hexrec

// Complement selects the final transformation of a longitudinal
// redundancy check.
type Complement int

const (
	ComplementNone Complement = iota
	ComplementOnes
	ComplementTwos
)

// LRC computes a longitudinal redundancy check over data: the plain sum
// modulo 2^width, optionally ones- or twos-complemented. Width is 8 or 16.
func LRC(data []byte, width int, comp Complement) uint16 {
	mask := uint32(1) << width
	var sum uint32
	for _, b := range data {
		sum += uint32(b)
	}
	cs := sum % mask
	switch comp {
	case ComplementOnes:
		cs ^= mask - 1
	case ComplementTwos:
		cs = ((cs ^ (mask - 1)) + 1) % mask
	}
	return uint16(cs)
}

// addrBytes splits an address into width big-endian bytes for checksum
// computation.
func addrBytes(addr uint32, width int) []byte {
	out := make([]byte, width)
	for i := 0; i < width; i++ {
		out[i] = byte(addr >> uint(8*(width-1-i)))
	}
	return out
}
