package math

// Mat4 is a 4x4 matrix in row-major order, the layout the M3G format
// serializes. For an affine transform the translation sits in the last
// column, at flat offsets 3 (tx), 7 (ty) and 11 (tz):
//
//	[m0  m1  m2  m3 ]   [r r r tx]
//	[m4  m5  m6  m7 ] = [r r r ty]
//	[m8  m9  m10 m11]   [r r r tz]
//	[m12 m13 m14 m15]   [0 0 0 1 ]
//
// Values of this type are always in the target (Y-up) convention; the
// producer's Z-up components only exist as TRS parts and are converted
// in exactly one place (pkg/m3g's composition step).
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

// ScaleMat returns a scale matrix.
func ScaleMat(x, y, z float32) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies this matrix by another (m * other), in row-major terms.
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[row*4+col] =
				m[row*4+0]*other[0*4+col] +
					m[row*4+1]*other[1*4+col] +
					m[row*4+2]*other[2*4+col] +
					m[row*4+3]*other[3*4+col]
		}
	}
	return result
}

// TransformPoint transforms a 3D point (w=1) by this matrix.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3]
	y := m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7]
	z := m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11]
	w := m[12]*p.X + m[13]*p.Y + m[14]*p.Z + m[15]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// Compose builds the affine matrix T * R * S from translation, rotation
// and scale components.
func Compose(translation Vec3, rotation Quat, scale Vec3) Mat4 {
	m := rotation.ToMat4()
	m[0] *= scale.X
	m[4] *= scale.X
	m[8] *= scale.X
	m[1] *= scale.Y
	m[5] *= scale.Y
	m[9] *= scale.Y
	m[2] *= scale.Z
	m[6] *= scale.Z
	m[10] *= scale.Z
	m[3] = translation.X
	m[7] = translation.Y
	m[11] = translation.Z
	return m
}

// ZUpToYUp is the fixed change-of-basis from a Z-up source convention
// to the format's Y-up, -Z-forward convention: a -90 degree rotation
// about X, mapping (x, y, z) to (x, z, -y).
var ZUpToYUp = Mat4{
	1, 0, 0, 0,
	0, 0, 1, 0,
	0, -1, 0, 0,
	0, 0, 0, 1,
}

// zUpToYUpQuat is ZUpToYUp as a quaternion, for converting orientation
// keyframes.
var zUpToYUpQuat = Quat{X: -0.7071068, W: 0.7071068}

// ConvertZUpMatrix premultiplies m by the Z-up to Y-up change-of-basis.
// pkg/m3g's transform composition is the only intended caller; applying
// it twice corrupts every transform in the file.
func ConvertZUpMatrix(m Mat4) Mat4 {
	return ZUpToYUp.Mul(m)
}

// ConvertZUpPoint maps a Z-up point or translation to the Y-up
// convention: (x, y, z) -> (x, z, -y).
func ConvertZUpPoint(p Vec3) Vec3 {
	return Vec3{p.X, p.Z, -p.Y}
}

// ConvertZUpScale maps per-axis Z-up scale factors to Y-up axes:
// (sx, sy, sz) -> (sx, sz, sy). Scale has no sign to carry.
func ConvertZUpScale(s Vec3) Vec3 {
	return Vec3{s.X, s.Z, s.Y}
}

// ConvertZUpQuat maps a Z-up rotation to the Y-up convention.
func ConvertZUpQuat(q Quat) Quat {
	return zUpToYUpQuat.Mul(q)
}
