package m3g

import (
	"encoding/binary"
	"hash/adler32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameSectionUncompressed(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5}
	sec, err := frameSection(payload, false)
	require.NoError(t, err)

	require.Len(t, sec, sectionOverhead+len(payload))
	assert.Equal(t, CompressionNone, sec[0])
	assert.Equal(t, uint32(len(sec)), binary.LittleEndian.Uint32(sec[1:5]))
	assert.Equal(t, uint32(len(payload)), binary.LittleEndian.Uint32(sec[5:9]))
	assert.Equal(t, payload, sec[9:9+len(payload)])

	sum := binary.LittleEndian.Uint32(sec[len(sec)-4:])
	assert.Equal(t, adler32.Checksum(sec[:len(sec)-4]), sum)
}

func TestFrameSectionCompressedRoundTrip(t *testing.T) {
	payload := make([]byte, 4096) // zeros compress well
	sec, err := frameSection(payload, true)
	require.NoError(t, err)

	assert.Equal(t, CompressionZlib, sec[0])
	assert.Less(t, len(sec), len(payload))
	assert.Equal(t, uint32(len(payload)), binary.LittleEndian.Uint32(sec[5:9]))

	got, decoded, err := readSection(sec, 0)
	require.NoError(t, err)
	assert.True(t, got.ChecksumOK)
	assert.Equal(t, payload, decoded)
}

func TestReadSectionRejectsCorruption(t *testing.T) {
	sec, err := frameSection([]byte("hello"), false)
	require.NoError(t, err)
	sec[10] ^= 0xFF

	got, _, err := readSection(sec, 0)
	require.NoError(t, err)
	assert.False(t, got.ChecksumOK)
}

func TestReadSectionTruncated(t *testing.T) {
	sec, err := frameSection([]byte("hello"), false)
	require.NoError(t, err)

	_, _, err = readSection(sec[:8], 0)
	require.ErrorIs(t, err, ErrTruncatedSection)
}

func TestInspectRejectsBadIdentifier(t *testing.T) {
	_, err := Inspect([]byte("not an m3g file"))
	require.ErrorIs(t, err, ErrInvalidFileIdentifier)
}

func TestCountBlocks(t *testing.T) {
	block := func(tag byte, body []byte) []byte {
		b := []byte{tag, 0, 0, 0, 0}
		binary.LittleEndian.PutUint32(b[1:5], uint32(len(body)))
		return append(b, body...)
	}
	two := append(block(TypeGroup, []byte{1, 2, 3}), block(TypeCamera, nil)...)

	n, err := countBlocks(two)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = countBlocks(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// declared length runs past the payload
	_, err = countBlocks(block(TypeGroup, []byte{1, 2, 3})[:6])
	require.ErrorIs(t, err, ErrTruncatedBlock)

	// trailing bytes too short for another tag+length
	_, err = countBlocks(append(block(TypeGroup, nil), 9, 9))
	require.ErrorIs(t, err, ErrTruncatedBlock)
}
