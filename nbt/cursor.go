package nbt

import (
	"encoding/binary"
	"math"
)

// cursor consumes an in-memory NBT stream front to back. Every read
// advances the position by exactly the fixed width of the frame and
// fails with ErrTruncated once the data runs out.
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) take(n int) ([]byte, error) {
	if n < 0 || len(c.data)-c.pos < n {
		return nil, ErrTruncated
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) u8() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, ErrTruncated
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

func (c *cursor) i8() (int8, error) {
	b, err := c.u8()
	return int8(b), err
}

func (c *cursor) u16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (c *cursor) i16() (int16, error) {
	v, err := c.u16()
	return int16(v), err
}

func (c *cursor) i32() (int32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (c *cursor) i64() (int64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// Floats are bit-cast through the unsigned integer of the same width so
// the raw pattern, signalling NaNs included, survives the trip.

func (c *cursor) f32() (float32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

func (c *cursor) f64() (float64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// sink accumulates the big-endian output stream.
type sink struct {
	buf []byte
}

func (s *sink) u8(v byte) { s.buf = append(s.buf, v) }
func (s *sink) i8(v int8) { s.buf = append(s.buf, byte(v)) }
func (s *sink) u16(v uint16) { s.buf = binary.BigEndian.AppendUint16(s.buf, v) }
func (s *sink) i16(v int16) { s.u16(uint16(v)) }
func (s *sink) i32(v int32) { s.buf = binary.BigEndian.AppendUint32(s.buf, uint32(v)) }
func (s *sink) i64(v int64) { s.buf = binary.BigEndian.AppendUint64(s.buf, uint64(v)) }
func (s *sink) f32(v float32) { s.buf = binary.BigEndian.AppendUint32(s.buf, math.Float32bits(v)) }
func (s *sink) f64(v float64) { s.buf = binary.BigEndian.AppendUint64(s.buf, math.Float64bits(v)) }
func (s *sink) raw(b []byte) { s.buf = append(s.buf, b...) }
