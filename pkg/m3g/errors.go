package m3g

import "errors"

// Encoding errors. Errors surfaced by Encode are wrapped with the
// offending object's kind and table index where one is known.
var (
	ErrNilWorld              = errors.New("nil world")
	ErrCyclicReference       = errors.New("cyclic reference in scene graph")
	ErrSectionTooLarge       = errors.New("section exceeds maximum encodable length")
	ErrVertexCountOverflow   = errors.New("vertex count exceeds uint16 range")
	ErrIncompatibleFeature   = errors.New("scene feature incompatible with pinned format version")
	ErrUnsupportedInVersion  = errors.New("object kind not encodable in selected format version")
	ErrMissingVertexBuffer   = errors.New("mesh has no vertex buffer")
	ErrNoSubmeshes           = errors.New("mesh has no submeshes")
	ErrMissingIndexBuffer    = errors.New("submesh has no index buffer")
	ErrBadStripLengths       = errors.New("strip lengths do not sum to index count")
	ErrShortStrip            = errors.New("triangle strip shorter than 3 indices")
	ErrIndexOutOfRange       = errors.New("strip index exceeds vertex count")
	ErrMissingSequence       = errors.New("animation track has no keyframe sequence")
	ErrBadKeyframeData       = errors.New("keyframe data does not match declared counts")
	ErrBadValidRange         = errors.New("keyframe valid range outside keyframe count")
	ErrConflictingTrackUse   = errors.New("keyframe sequence shared by tracks with conflicting spatial targets")
	ErrBadImageData          = errors.New("image pixel data does not match format and dimensions")
	ErrUnknownObjectKind     = errors.New("unknown scene object kind")
	ErrInvalidFileIdentifier = errors.New("invalid file identifier")
	ErrTruncatedSection      = errors.New("truncated section data")
	ErrTruncatedBlock        = errors.New("truncated object block")
	ErrChecksumMismatch      = errors.New("section checksum mismatch")
	ErrBadCompressionScheme  = errors.New("unknown section compression scheme")
)
