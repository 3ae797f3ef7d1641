package image

import (
	"encoding/binary"
	"math"
)

// Scalar enumerates the fixed-width numeric types a section can hold.
type Scalar interface {
	uint8 | int8 | uint16 | int16 | uint32 | int32 | uint64 | int64 | float32 | float64
}

func scalarSize[T Scalar]() int {
	var v T
	switch any(v).(type) {
	case uint8, int8:
		return 1
	case uint16, int16:
		return 2
	case uint32, int32, float32:
		return 4
	default:
		return 8
	}
}

func putScalar[T Scalar](b []byte, v T, order binary.ByteOrder) {
	switch x := any(v).(type) {
	case uint8:
		b[0] = x
	case int8:
		b[0] = byte(x)
	case uint16:
		order.PutUint16(b, x)
	case int16:
		order.PutUint16(b, uint16(x))
	case uint32:
		order.PutUint32(b, x)
	case int32:
		order.PutUint32(b, uint32(x))
	case uint64:
		order.PutUint64(b, x)
	case int64:
		order.PutUint64(b, uint64(x))
	case float32:
		order.PutUint32(b, math.Float32bits(x))
	case float64:
		order.PutUint64(b, math.Float64bits(x))
	}
}

func getScalar[T Scalar](b []byte, order binary.ByteOrder) T {
	var v T
	switch p := any(&v).(type) {
	case *uint8:
		*p = b[0]
	case *int8:
		*p = int8(b[0])
	case *uint16:
		*p = order.Uint16(b)
	case *int16:
		*p = int16(order.Uint16(b))
	case *uint32:
		*p = order.Uint32(b)
	case *int32:
		*p = int32(order.Uint32(b))
	case *uint64:
		*p = order.Uint64(b)
	case *int64:
		*p = int64(order.Uint64(b))
	case *float32:
		*p = math.Float32frombits(order.Uint32(b))
	case *float64:
		*p = math.Float64frombits(order.Uint64(b))
	}
	return v
}

// ReadScalar interprets the bytes at the section-relative offset as a
// fixed-width scalar in the given byte order. The byte order is always
// explicit; firmware and host endianness frequently differ.
func ReadScalar[T Scalar](s *Section, off uint32, order binary.ByteOrder) (T, error) {
	size := scalarSize[T]()
	if err := s.checkRange(off, size); err != nil {
		var zero T
		return zero, err
	}
	return getScalar[T](s.Data[off:], order), nil
}

// WriteScalar stores a fixed-width scalar at the section-relative offset in
// the given byte order.
func WriteScalar[T Scalar](s *Section, off uint32, v T, order binary.ByteOrder) error {
	size := scalarSize[T]()
	if err := s.checkRange(off, size); err != nil {
		return err
	}
	putScalar(s.Data[off:], v, order)
	return nil
}

// ReadScalars reads n scalars at consecutive offsets.
func ReadScalars[T Scalar](s *Section, off uint32, n int, order binary.ByteOrder) ([]T, error) {
	size := scalarSize[T]()
	if err := s.checkRange(off, n*size); err != nil {
		return nil, err
	}
	out := make([]T, n)
	for i := range out {
		out[i] = getScalar[T](s.Data[off+uint32(i*size):], order)
	}
	return out, nil
}

// WriteScalars stores the scalars at consecutive offsets.
func WriteScalars[T Scalar](s *Section, off uint32, vals []T, order binary.ByteOrder) error {
	size := scalarSize[T]()
	if err := s.checkRange(off, len(vals)*size); err != nil {
		return err
	}
	for i, v := range vals {
		putScalar(s.Data[off+uint32(i*size):], v, order)
	}
	return nil
}
