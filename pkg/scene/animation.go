package scene

// KeyframeSequence interpolation constants.
const (
	InterpLinear uint8 = 176
	InterpSlerp  uint8 = 177
	InterpSpline uint8 = 178
	InterpSquad  uint8 = 179
	InterpStep   uint8 = 180
)

// KeyframeSequence repeat constants.
const (
	RepeatConstant uint8 = 192
	RepeatLoop     uint8 = 193
)

// AnimationTrack target properties.
const (
	PropAlpha         uint32 = 256
	PropAmbientColor  uint32 = 257
	PropColor         uint32 = 258
	PropCrop          uint32 = 259
	PropDensity       uint32 = 260
	PropDiffuseColor  uint32 = 261
	PropEmissiveColor uint32 = 262
	PropFarDistance   uint32 = 263
	PropFieldOfView   uint32 = 264
	PropIntensity     uint32 = 265
	PropMorphWeights  uint32 = 266
	PropNearDistance  uint32 = 267
	PropOrientation   uint32 = 268
	PropPickability   uint32 = 269
	PropScale         uint32 = 270
	PropShininess     uint32 = 271
	PropSpecularColor uint32 = 272
	PropSpotAngle     uint32 = 273
	PropSpotExponent  uint32 = 274
	PropTranslation   uint32 = 275
	PropVisibility    uint32 = 276
)

// Keyframe is one sample of an animated property: a time in sequence
// ticks and a value with the sequence's component count.
type Keyframe struct {
	Time  int32
	Value []float32
}

// KeyframeSequence holds the raw sampled curve for one animated
// property. Spatial values are stored in the producer's Z-up
// convention; the encoder converts them based on the property of the
// referencing track.
type KeyframeSequence struct {
	Object3D
	Interpolation   uint8
	RepeatMode      uint8
	Duration        uint32
	ValidRangeFirst uint32
	ValidRangeLast  uint32
	ComponentCount  uint32
	Keyframes       []Keyframe
}

// NewKeyframeSequence returns a linear, constant-extrapolation sequence
// with the given component count.
func NewKeyframeSequence(componentCount uint32) *KeyframeSequence {
	return &KeyframeSequence{
		Interpolation:  InterpLinear,
		RepeatMode:     RepeatConstant,
		ComponentCount: componentCount,
	}
}

// AnimationController groups tracks under shared playback state.
type AnimationController struct {
	Object3D
	Speed               float32
	Weight              float32
	ActiveIntervalStart int32
	ActiveIntervalEnd   int32
	ReferenceSeqTime    float32
	ReferenceWorldTime  int32
}

// NewAnimationController returns an always-active controller at unit
// speed and weight.
func NewAnimationController() *AnimationController {
	return &AnimationController{Speed: 1, Weight: 1}
}

// AnimationTrack binds a keyframe sequence to one animatable property
// of the object holding the track. The controller may be nil.
type AnimationTrack struct {
	Object3D
	Sequence   *KeyframeSequence
	Controller *AnimationController
	Property   uint32
}
