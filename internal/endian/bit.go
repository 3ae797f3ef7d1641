package endian

import "golang.org/x/exp/constraints"

// Bit reports whether bit n of v is set.
func Bit[U constraints.Unsigned](v U, n uint) bool {
	return v&(1<<n) != 0
}

// SetBit returns v with bit n set.
func SetBit[U constraints.Unsigned](v U, n uint) U {
	return v | (1 << n)
}

// ClearBit returns v with bit n cleared.
func ClearBit[U constraints.Unsigned](v U, n uint) U {
	return v &^ (1 << n)
}

// ToggleBit returns v with bit n inverted.
func ToggleBit[U constraints.Unsigned](v U, n uint) U {
	return v ^ (1 << n)
}

// HighestBit returns the highest set bit of v, or 0 if v is 0.
func HighestBit[U constraints.Unsigned](v U) U {
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	return v ^ (v >> 1)
}

// LowestBit returns the lowest set bit of v, or 0 if v is 0.
func LowestBit[U constraints.Unsigned](v U) U {
	return (^v + 1) & v
}

// Log2 returns the position of the highest set bit of v.
func Log2[U constraints.Unsigned](v U) uint {
	var r uint
	for v >>= 1; v != 0; v >>= 1 {
		r++
	}
	return r
}
