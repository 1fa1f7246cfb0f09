package math

import "math"

// Quat represents a rotation as a quaternion.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from an axis-angle rotation.
// angle is in radians, axis should be normalized.
func QuatFromAxisAngle(angle float32, axis Vec3) Quat {
	half := angle / 2
	s := float32(math.Sin(float64(half)))
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(float64(half))),
	}
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if length < 0.0001 {
		return QuatIdentity()
	}
	inv := 1.0 / length
	return Quat{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// Mul multiplies two quaternions, combining rotations: q first, then the
// receiver. The product q.Mul(p) rotates by p, then by q.
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// ToAxisAngle converts the quaternion to the (angle, x, y, z) form the
// M3G orientation keyframe channel stores. A near-identity rotation maps
// to a zero angle about the Z axis.
func (q Quat) ToAxisAngle() (angle float32, axis Vec3) {
	q = q.Normalize()
	angle = 2 * float32(math.Acos(math.Min(1, math.Abs(float64(q.W)))))

	if angle <= 0.0001 {
		return 0, Vec3{Z: 1}
	}

	s := float32(math.Sqrt(float64(1 - q.W*q.W)))
	if s < 0.001 {
		s = 1
	}
	return angle, Vec3{X: q.X / s, Y: q.Y / s, Z: q.Z / s}
}

// ToMat4 converts the quaternion to a row-major rotation matrix.
func (q Quat) ToMat4() Mat4 {
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy - zw), 2 * (xz + yw), 0,
		2 * (xy + zw), 1 - 2*(xx+zz), 2 * (yz - xw), 0,
		2 * (xz - yw), 2 * (yz + xw), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}
