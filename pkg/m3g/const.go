// Package m3g encodes a scene graph into the JSR-184 binary container
// format. Encoding is all-or-nothing: Encode returns the complete file
// image or an error, never a partial file.
package m3g

// FileIdentifier opens every file, before the first section.
var FileIdentifier = []byte{0xAB, 0x4A, 0x53, 0x52, 0x31, 0x38, 0x34, 0xBB, 0x0D, 0x0A, 0x1A, 0x0A}

// Section compression schemes.
const (
	CompressionNone uint8 = 0
	CompressionZlib uint8 = 1 // zlib, 32K window
)

// Object type tags.
const (
	TypeHeader              uint8 = 0
	TypeAnimationController uint8 = 1
	TypeAnimationTrack      uint8 = 2
	TypeAppearance          uint8 = 3
	TypeBackground          uint8 = 4
	TypeCamera              uint8 = 5
	TypeFog                 uint8 = 7
	TypePolygonMode         uint8 = 8
	TypeGroup               uint8 = 9
	TypeImage2D             uint8 = 10
	TypeTriangleStripArray  uint8 = 11
	TypeLight               uint8 = 12
	TypeMaterial            uint8 = 13
	TypeMesh                uint8 = 14
	TypeSkinnedMesh         uint8 = 16
	TypeTexture2D           uint8 = 17
	TypeKeyframeSequence    uint8 = 19
	TypeVertexArray         uint8 = 20
	TypeVertexBuffer        uint8 = 21
	TypeWorld               uint8 = 22
	TypeExternalReference   uint8 = 255
)

// Triangle strip index encoding: explicit uint32 indices.
const encodingExplicitUint32 uint8 = 128

// Keyframe value encoding: raw float32 components.
const encodingFloatKeyframes uint8 = 0

// authoringField is written into the header object. Fixed so identical
// scenes produce identical bytes.
const authoringField = "m3gexport"

// section and object block framing overhead, in bytes
const (
	sectionOverhead = 13 // scheme + total length + uncompressed length + checksum
	headerBodySize  = 1 + 1 + 1 + 4 + 4 + len(authoringField) + 1
)
