package m3g

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mobigfx/m3gexport/pkg/scene"
)

// Options controls container assembly.
type Options struct {
	// Version pins the format version. VersionAuto (the zero value)
	// selects the lowest version the scene content allows.
	Version Version
	// Compress enables zlib compression of the content sections. The
	// header section is always stored uncompressed so its size is
	// known while the total file size is being computed.
	Compress bool
}

// Encode serializes the scene graph rooted at world into a complete
// file image. Identical input produces identical bytes.
func Encode(world *scene.World, opts Options) ([]byte, error) {
	if world == nil {
		return nil, ErrNilWorld
	}
	tbl, err := buildTable(world)
	if err != nil {
		return nil, err
	}
	ver, err := selectVersion(opts.Version, tbl.objects)
	if err != nil {
		return nil, err
	}
	enc := &encoder{tbl: tbl, ver: ver}

	var extPayload writer
	for _, ref := range tbl.externals {
		extPayload.raw(encodeExternal(ref))
	}

	var scenePayload writer
	for _, obj := range tbl.objects {
		blk, err := enc.encodeObject(obj)
		if err != nil {
			return nil, err
		}
		scenePayload.raw(blk)
	}

	var sections [][]byte
	if extPayload.len() > 0 {
		s, err := frameSection(extPayload.bytes(), opts.Compress)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	sceneSection, err := frameSection(scenePayload.bytes(), opts.Compress)
	if err != nil {
		return nil, err
	}
	sections = append(sections, sceneSection)

	// The header section length is fixed, so the total file size is
	// known before the header object is built.
	headerSectionLen := sectionOverhead + 1 + 4 + headerBodySize
	totalSize := len(FileIdentifier) + headerSectionLen
	for _, s := range sections {
		totalSize += len(s)
	}

	var hdr writer
	hdr.byte(ver.Major)
	hdr.byte(ver.Minor)
	hdr.bool(len(tbl.externals) > 0)
	hdr.u32(uint32(totalSize))
	hdr.u32(uint32(totalSize))
	hdr.str(authoringField)
	headerSection, err := frameSection(block(TypeHeader, hdr.bytes()), false)
	if err != nil {
		return nil, err
	}

	out := &writer{}
	out.raw(FileIdentifier)
	out.raw(headerSection)
	for _, s := range sections {
		out.raw(s)
	}
	return out.bytes(), nil
}

// WriteFile encodes world and writes the result atomically: the bytes
// go to a temporary file in the target directory which is renamed over
// the destination only after a successful write.
func WriteFile(path string, world *scene.World, opts Options) error {
	data, err := Encode(world, opts)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
