package m3g

import (
	"github.com/mobigfx/m3gexport/pkg/math"
	"github.com/mobigfx/m3gexport/pkg/scene"
)

// This file is the only place the Z-up to Y-up change of basis is
// applied. Scene input stays in the producer's convention everywhere
// else; encoded output is always in the format's convention.

// nodeMatrix composes a node's TRS components into the general
// transform matrix the format stores, already converted to the target
// convention. Zero-value rotation and scale read as identity.
func nodeMatrix(tr *scene.Transform) math.Mat4 {
	rot := tr.Rotation
	if rot == (math.Quat{}) {
		rot = math.QuatIdentity()
	}
	scl := tr.Scale
	if scl == (math.Vec3{}) {
		scl = math.One()
	}
	local := math.Compose(tr.Translation, rot, scl)
	return math.ConvertZUpMatrix(local)
}

// conversion kinds for keyframe channels
const (
	convertNone uint32 = iota
	convertPoint
	convertScale
	convertOrientation
)

func conversionKind(property uint32) uint32 {
	switch property {
	case scene.PropTranslation:
		return convertPoint
	case scene.PropScale:
		return convertScale
	case scene.PropOrientation:
		return convertOrientation
	default:
		return convertNone
	}
}

// convertKeyframe returns the keyframe value converted for the target
// property. Non-spatial properties pass through untouched. The input
// slice is never modified.
func convertKeyframe(property uint32, value []float32) []float32 {
	switch conversionKind(property) {
	case convertPoint:
		if len(value) < 3 {
			break
		}
		out := append([]float32(nil), value...)
		p := math.ConvertZUpPoint(math.Vec3{X: value[0], Y: value[1], Z: value[2]})
		out[0], out[1], out[2] = p.X, p.Y, p.Z
		return out
	case convertScale:
		if len(value) < 3 {
			break
		}
		out := append([]float32(nil), value...)
		s := math.ConvertZUpScale(math.Vec3{X: value[0], Y: value[1], Z: value[2]})
		out[0], out[1], out[2] = s.X, s.Y, s.Z
		return out
	case convertOrientation:
		if len(value) < 4 {
			break
		}
		// the orientation channel stores axis-angle, not raw quaternion
		// components
		q := math.Quat{X: value[0], Y: value[1], Z: value[2], W: value[3]}
		angle, axis := math.ConvertZUpQuat(q).Normalize().ToAxisAngle()
		return []float32{angle, axis.X, axis.Y, axis.Z}
	}
	return value
}
