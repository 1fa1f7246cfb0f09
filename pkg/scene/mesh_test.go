package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobigfx/m3gexport/pkg/math"
)

func TestNewPositionArrayMaxPrecision(t *testing.T) {
	points := []math.Vec3{
		{X: -2, Y: 0, Z: 1},
		{X: 4, Y: 2, Z: 1},
		{X: 1, Y: -2, Z: 3},
	}
	a := NewPositionArray(points, true)

	assert.Equal(t, uint8(2), a.ComponentSize)
	assert.Equal(t, uint8(3), a.ComponentCount)
	assert.Equal(t, 3, a.VertexCount())

	// Bias is the bounding-box center, scale spreads the widest axis.
	assert.InDelta(t, 1.0, float64(a.Bias[0]), 1e-6)
	assert.InDelta(t, 0.0, float64(a.Bias[1]), 1e-6)
	assert.InDelta(t, 2.0, float64(a.Bias[2]), 1e-6)
	assert.InDelta(t, 6.0/65533.0, float64(a.Scale), 1e-9)

	// Dequantizing recovers each coordinate within one scale step.
	for i, p := range points {
		for c, want := range []float32{p.X, p.Y, p.Z} {
			got := float32(a.Components[i*3+c])*a.Scale + a.Bias[c]
			assert.InDelta(t, float64(want), float64(got), float64(a.Scale),
				"point %d component %d", i, c)
		}
	}
}

func TestNewPositionArrayFixedScale(t *testing.T) {
	a := NewPositionArray([]math.Vec3{{X: 1.9, Y: -1.9, Z: 0}}, false)

	assert.Equal(t, float32(1), a.Scale)
	assert.Equal(t, [3]float32{}, a.Bias)
	// Conversion truncates toward zero.
	assert.Equal(t, []int16{1, -1, 0}, a.Components)
}

func TestNewPositionArrayClamps(t *testing.T) {
	a := NewPositionArray([]math.Vec3{{X: 1e6, Y: -1e6, Z: 0}}, false)
	assert.Equal(t, []int16{32767, -32767, 0}, a.Components)
}

func TestNewNormalArray(t *testing.T) {
	a := NewNormalArray([]math.Vec3{{X: 1}, {Y: -1}, {X: 0, Y: 0, Z: 1}})

	assert.Equal(t, uint8(1), a.ComponentSize)
	assert.Equal(t, []int16{127, 0, 0, 0, -127, 0, 0, 0, 127}, a.Components)
}

func TestNewTexCoordArrayFixedMapping(t *testing.T) {
	// T runs bottom-up in the format, so v is flipped before
	// quantization: (0,0) maps to the top of the unit square.
	a := NewTexCoordArray([][2]float32{{0, 0}, {1, 1}}, false)

	require.Equal(t, uint8(2), a.ComponentCount)
	assert.InDelta(t, 0.5, float64(a.Bias[0]), 1e-6)
	assert.InDelta(t, 0.5, float64(a.Bias[1]), 1e-6)
	assert.InDelta(t, 1.0/65535.0, float64(a.Scale), 1e-12)

	// uv (0,0) flips to (0,1): u quantizes to the low end, t to the high.
	assert.Equal(t, int16(-32767), a.Components[0])
	assert.Equal(t, int16(32767), a.Components[1])
	// uv (1,1) flips to (1,0).
	assert.Equal(t, int16(32767), a.Components[2])
	assert.Equal(t, int16(-32767), a.Components[3])
}

func TestNewTexCoordArrayAutoScaleDegenerate(t *testing.T) {
	// All UVs identical: the range collapses and the fallback scale
	// keeps dequantization finite.
	a := NewTexCoordArray([][2]float32{{0.25, 0.75}, {0.25, 0.75}}, true)

	assert.InDelta(t, 1.0/65534.0, float64(a.Scale), 1e-12)
	assert.Equal(t, []int16{0, 0, 0, 0}, a.Components)
}

func TestVertexBufferCopiesDequantization(t *testing.T) {
	b := NewVertexBuffer()
	assert.Equal(t, ColorRGBA{R: 255, G: 255, B: 255, A: 255}, b.DefaultColor)

	pos := NewPositionArray([]math.Vec3{{X: -1}, {X: 1}}, true)
	b.SetPositions(pos)
	assert.Equal(t, pos.Bias, b.PositionBias)
	assert.Equal(t, pos.Scale, b.PositionScale)

	uv := NewTexCoordArray([][2]float32{{0, 0}, {1, 1}}, true)
	b.AddTexCoords(uv)
	require.Len(t, b.TexCoords, 1)
	assert.Same(t, uv, b.TexCoords[0].Array)
	assert.Equal(t, uv.Bias, b.TexCoords[0].Bias)
	assert.Equal(t, uv.Scale, b.TexCoords[0].Scale)
}

func TestTriangleStripArrayAddStrip(t *testing.T) {
	var tsa TriangleStripArray
	tsa.AddStrip(0, 1, 2)
	tsa.AddStrip(1, 2, 0, 3)

	assert.Equal(t, []uint32{0, 1, 2, 1, 2, 0, 3}, tsa.Indices)
	assert.Equal(t, []uint32{3, 4}, tsa.StripLengths)
}
