package m3g

import (
	"bytes"
	"fmt"
	"hash/adler32"
	stdmath "math"

	"github.com/klauspost/compress/zlib"
)

// frameSection wraps a payload of object blocks into one section:
// compression scheme, total section length, uncompressed length, the
// on-disk payload and the Adler-32 checksum over everything before it.
func frameSection(payload []byte, compress bool) ([]byte, error) {
	onDisk := payload
	scheme := CompressionNone
	if compress {
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		if _, err := zw.Write(payload); err != nil {
			zw.Close()
			return nil, fmt.Errorf("compress section: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("compress section: %w", err)
		}
		onDisk = buf.Bytes()
		scheme = CompressionZlib
	}

	total := uint64(sectionOverhead) + uint64(len(onDisk))
	if total > stdmath.MaxUint32 {
		return nil, ErrSectionTooLarge
	}

	w := &writer{}
	w.byte(scheme)
	w.u32(uint32(total))
	w.u32(uint32(len(payload)))
	w.raw(onDisk)
	w.u32(adler32.Checksum(w.bytes()))
	return w.bytes(), nil
}
