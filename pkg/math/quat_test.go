package math

import (
	stdmath "math"
	"testing"
)

func TestQuatFromAxisAngleRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		angle float32
		axis  Vec3
	}{
		{"quarter turn z", stdmath.Pi / 2, Vec3{Z: 1}},
		{"half turn y", stdmath.Pi, Vec3{Y: 1}},
		{"third turn x", 2 * stdmath.Pi / 3, Vec3{X: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatFromAxisAngle(tt.angle, tt.axis)
			angle, axis := q.ToAxisAngle()
			if !approx(angle, tt.angle) {
				t.Errorf("angle = %v, want %v", angle, tt.angle)
			}
			if !approx(axis.X, tt.axis.X) || !approx(axis.Y, tt.axis.Y) || !approx(axis.Z, tt.axis.Z) {
				t.Errorf("axis = %v, want %v", axis, tt.axis)
			}
		})
	}
}

func TestQuatIdentityAxisAngle(t *testing.T) {
	angle, _ := QuatIdentity().ToAxisAngle()
	if angle != 0 {
		t.Errorf("identity angle = %v, want 0", angle)
	}
}

func TestQuatMulComposesRotations(t *testing.T) {
	// two quarter turns about Z make a half turn
	q := QuatFromAxisAngle(stdmath.Pi/2, Vec3{Z: 1})
	half := q.Mul(q)
	angle, axis := half.ToAxisAngle()
	if !approx(angle, stdmath.Pi) {
		t.Errorf("angle = %v, want pi", angle)
	}
	if !approx(axis.Z, 1) {
		t.Errorf("axis = %v, want +z", axis)
	}
}

func TestQuatToMat4RotatesPoint(t *testing.T) {
	// quarter turn about Z maps +x to +y
	q := QuatFromAxisAngle(stdmath.Pi/2, Vec3{Z: 1})
	p := q.ToMat4().TransformPoint(Vec3{X: 1})
	if !approx(p.X, 0) || !approx(p.Y, 1) || !approx(p.Z, 0) {
		t.Errorf("rotated point = %v, want (0, 1, 0)", p)
	}
}

func TestConvertZUpQuat(t *testing.T) {
	// converting the identity yields the fixed change-of-basis rotation
	q := ConvertZUpQuat(QuatIdentity())
	angle, axis := q.Normalize().ToAxisAngle()
	if !approx(angle, stdmath.Pi/2) {
		t.Errorf("angle = %v, want pi/2", angle)
	}
	if !approx(axis.X, -1) {
		t.Errorf("axis = %v, want -x", axis)
	}
}
