// Package endian provides host byte-order detection and byte-swap
// primitives for object-file endianness correction.
package endian

import (
	"encoding/binary"
	"math/bits"
)

// Order identifies a byte order.
type Order int

const (
	Little Order = iota
	Big
)

func (o Order) String() string {
	if o == Big {
		return "big-endian"
	}
	return "little-endian"
}

// ByteOrder returns the matching encoding/binary order.
func (o Order) ByteOrder() binary.ByteOrder {
	if o == Big {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// HostOrder reports the native byte order by inspecting the in-memory
// representation of a known 16-bit pattern.
func HostOrder() Order {
	var probe [2]byte
	binary.NativeEndian.PutUint16(probe[:], 0xaa55)
	if probe[0] == 0xaa {
		return Big
	}
	return Little
}

// Swap16 reverses the byte order of a 16-bit value.
func Swap16(v uint16) uint16 {
	return bits.ReverseBytes16(v)
}

// Swap32 reverses the byte order of a 32-bit value.
func Swap32(v uint32) uint32 {
	return bits.ReverseBytes32(v)
}

// Swap64 reverses the byte order of a 64-bit value.
func Swap64(v uint64) uint64 {
	return bits.ReverseBytes64(v)
}
