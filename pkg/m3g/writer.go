package m3g

import (
	"bytes"
	"encoding/binary"
	"math"
)

// writer accumulates little-endian primitive values for one object body
// or section payload.
type writer struct {
	buf bytes.Buffer
}

func (w *writer) byte(v uint8) {
	w.buf.WriteByte(v)
}

func (w *writer) bool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

func (w *writer) u16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) i32(v int32) {
	w.u32(uint32(v))
}

func (w *writer) i16(v int16) {
	w.u16(uint16(v))
}

func (w *writer) f32(v float32) {
	w.u32(math.Float32bits(v))
}

// str writes UTF-8 bytes followed by a NUL terminator.
func (w *writer) str(s string) {
	w.buf.WriteString(s)
	w.buf.WriteByte(0)
}

func (w *writer) raw(b []byte) {
	w.buf.Write(b)
}

func (w *writer) bytes() []byte {
	return w.buf.Bytes()
}

func (w *writer) len() int {
	return w.buf.Len()
}
