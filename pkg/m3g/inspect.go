package m3g

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/adler32"
	"io"

	"github.com/klauspost/compress/zlib"
)

// SectionInfo describes one section of an inspected file.
type SectionInfo struct {
	Offset             int
	Compression        uint8
	TotalLength        uint32
	UncompressedLength uint32
	Checksum           uint32
	ChecksumOK         bool
	ObjectCount        int
}

// FileInfo is the section-level structure of a container.
type FileInfo struct {
	Version  Version
	Sections []SectionInfo
}

// Inspect parses the section framing of a container, recomputes every
// checksum and reads the format version from the header object. Object
// bodies beyond the header are not decoded.
func Inspect(data []byte) (*FileInfo, error) {
	if len(data) < len(FileIdentifier) || !bytes.Equal(data[:len(FileIdentifier)], FileIdentifier) {
		return nil, ErrInvalidFileIdentifier
	}
	info := &FileInfo{}
	offset := len(FileIdentifier)
	for offset < len(data) {
		sec, payload, err := readSection(data, offset)
		if err != nil {
			return nil, fmt.Errorf("section at offset %d: %w", offset, err)
		}
		if len(info.Sections) == 0 {
			v, err := headerVersion(payload)
			if err != nil {
				return nil, err
			}
			info.Version = v
		}
		sec.ObjectCount, err = countBlocks(payload)
		if err != nil {
			return nil, fmt.Errorf("section at offset %d: %w", offset, err)
		}
		info.Sections = append(info.Sections, sec)
		offset += int(sec.TotalLength)
	}
	return info, nil
}

func readSection(data []byte, offset int) (SectionInfo, []byte, error) {
	rest := data[offset:]
	if len(rest) < sectionOverhead {
		return SectionInfo{}, nil, ErrTruncatedSection
	}
	sec := SectionInfo{
		Offset:             offset,
		Compression:        rest[0],
		TotalLength:        binary.LittleEndian.Uint32(rest[1:5]),
		UncompressedLength: binary.LittleEndian.Uint32(rest[5:9]),
	}
	if sec.TotalLength < sectionOverhead || int(sec.TotalLength) > len(rest) {
		return SectionInfo{}, nil, ErrTruncatedSection
	}
	body := rest[:sec.TotalLength]
	onDisk := body[9 : sec.TotalLength-4]
	sec.Checksum = binary.LittleEndian.Uint32(body[sec.TotalLength-4:])
	sec.ChecksumOK = adler32.Checksum(body[:sec.TotalLength-4]) == sec.Checksum

	var payload []byte
	switch sec.Compression {
	case CompressionNone:
		payload = onDisk
	case CompressionZlib:
		zr, err := zlib.NewReader(bytes.NewReader(onDisk))
		if err != nil {
			return SectionInfo{}, nil, fmt.Errorf("decompress: %w", err)
		}
		payload, err = io.ReadAll(zr)
		zr.Close()
		if err != nil {
			return SectionInfo{}, nil, fmt.Errorf("decompress: %w", err)
		}
	default:
		return SectionInfo{}, nil, ErrBadCompressionScheme
	}
	if len(payload) != int(sec.UncompressedLength) {
		return SectionInfo{}, nil, ErrTruncatedSection
	}
	return sec, payload, nil
}

// headerVersion reads the version bytes of the header object, which is
// the first block of the first section.
func headerVersion(payload []byte) (Version, error) {
	if len(payload) < 7 || payload[0] != TypeHeader {
		return Version{}, ErrTruncatedSection
	}
	return Version{Major: payload[5], Minor: payload[6]}, nil
}

// countBlocks walks the object blocks of a section payload. A payload
// that does not split into whole tag+length+body blocks is corrupt even
// when its section checksum holds.
func countBlocks(payload []byte) (int, error) {
	n := 0
	for len(payload) > 0 {
		if len(payload) < 5 {
			return n, ErrTruncatedBlock
		}
		length := binary.LittleEndian.Uint32(payload[1:5])
		if int(length) > len(payload)-5 {
			return n, ErrTruncatedBlock
		}
		payload = payload[5+length:]
		n++
	}
	return n, nil
}
