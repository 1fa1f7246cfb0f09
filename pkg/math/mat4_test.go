package math

import "testing"

func approx(a, b float32) bool {
	d := a - b
	return d < 1e-4 && d > -1e-4
}

func matApprox(a, b Mat4) bool {
	for i := range a {
		if !approx(a[i], b[i]) {
			return false
		}
	}
	return true
}

func TestIdentityMul(t *testing.T) {
	m := Translate(1, 2, 3).Mul(Identity())
	if !matApprox(m, Translate(1, 2, 3)) {
		t.Errorf("identity product changed matrix: %v", m)
	}
}

func TestComposeTranslationOffsets(t *testing.T) {
	m := Compose(Vec3{X: 5, Y: 6, Z: 7}, QuatIdentity(), One())

	if m[3] != 5 || m[7] != 6 || m[11] != 7 {
		t.Errorf("expected translation at offsets 3/7/11, got %v, %v, %v", m[3], m[7], m[11])
	}
	if m[12] != 0 || m[13] != 0 || m[14] != 0 || m[15] != 1 {
		t.Errorf("unexpected bottom row: %v", m[12:])
	}
}

func TestComposeScaleDiagonal(t *testing.T) {
	m := Compose(Vec3{}, QuatIdentity(), Vec3{X: 2, Y: 3, Z: 4})

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("expected scale on diagonal, got %v, %v, %v", m[0], m[5], m[10])
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"translate", Translate(1, 0, 0), Vec3{X: 1, Y: 2, Z: 3}, Vec3{X: 2, Y: 2, Z: 3}},
		{"scale", ScaleMat(2, 2, 2), Vec3{X: 1, Y: 2, Z: 3}, Vec3{X: 2, Y: 4, Z: 6}},
		{"identity", Identity(), Vec3{X: -1, Y: 5, Z: 0.5}, Vec3{X: -1, Y: 5, Z: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.in)
			if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) || !approx(got.Z, tt.want.Z) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertZUpPoint(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"up becomes y", Vec3{X: 0, Y: 0, Z: 1}, Vec3{X: 0, Y: 1, Z: 0}},
		{"forward flips", Vec3{X: 0, Y: 1, Z: 0}, Vec3{X: 0, Y: 0, Z: -1}},
		{"x unchanged", Vec3{X: 1, Y: 0, Z: 0}, Vec3{X: 1, Y: 0, Z: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertZUpPoint(tt.in)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertZUpMatrixMatchesPointConversion(t *testing.T) {
	m := Translate(2, 3, 4)
	c := ConvertZUpMatrix(m)

	if !approx(c[3], 2) || !approx(c[7], 4) || !approx(c[11], -3) {
		t.Errorf("converted translation = %v, %v, %v; want 2, 4, -3", c[3], c[7], c[11])
	}
}

func TestConvertZUpScale(t *testing.T) {
	got := ConvertZUpScale(Vec3{X: 1, Y: 2, Z: 3})
	want := Vec3{X: 1, Y: 3, Z: 2}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}
