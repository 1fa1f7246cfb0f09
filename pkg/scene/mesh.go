package scene

import "github.com/mobigfx/m3gexport/pkg/math"

// VertexArray holds quantized per-vertex components. Components are
// stored as int16 regardless of ComponentSize; byte-sized arrays keep
// their values within int8 range. The Bias/Scale dequantization
// parameters ride along so VertexBuffer can pick them up.
type VertexArray struct {
	Object3D
	ComponentSize  uint8 // bytes per component, 1 or 2
	ComponentCount uint8
	Components     []int16
	Bias           [3]float32
	Scale          float32
}

// VertexCount returns the number of vertices in the array.
func (a *VertexArray) VertexCount() int {
	if a.ComponentCount == 0 {
		return 0
	}
	return len(a.Components) / int(a.ComponentCount)
}

// NewPositionArray quantizes points to a 16-bit position array. With
// maxPrecision the bias is set to the bounding-box center and the scale
// spreads the largest extent across the full 16-bit range; otherwise
// the coordinates are truncated as-is with unit scale.
func NewPositionArray(points []math.Vec3, maxPrecision bool) *VertexArray {
	a := &VertexArray{ComponentSize: 2, ComponentCount: 3, Scale: 1}
	if len(points) == 0 {
		return a
	}
	if maxPrecision {
		minV, maxV := points[0], points[0]
		for _, p := range points[1:] {
			minV.X = min32(minV.X, p.X)
			minV.Y = min32(minV.Y, p.Y)
			minV.Z = min32(minV.Z, p.Z)
			maxV.X = max32(maxV.X, p.X)
			maxV.Y = max32(maxV.Y, p.Y)
			maxV.Z = max32(maxV.Z, p.Z)
		}
		a.Bias = [3]float32{
			minV.X*0.5 + maxV.X*0.5,
			minV.Y*0.5 + maxV.Y*0.5,
			minV.Z*0.5 + maxV.Z*0.5,
		}
		maxRange := max32(maxV.X-minV.X, max32(maxV.Y-minV.Y, maxV.Z-minV.Z))
		if maxRange > 0 {
			a.Scale = maxRange / 65533.0
		}
	}
	a.Components = make([]int16, 0, len(points)*3)
	for _, p := range points {
		a.Components = append(a.Components,
			quantize16(p.X, a.Bias[0], a.Scale),
			quantize16(p.Y, a.Bias[1], a.Scale),
			quantize16(p.Z, a.Bias[2], a.Scale))
	}
	return a
}

// NewNormalArray packs unit normals into a byte array scaled by 127.
func NewNormalArray(normals []math.Vec3) *VertexArray {
	a := &VertexArray{ComponentSize: 1, ComponentCount: 3, Scale: 1}
	a.Components = make([]int16, 0, len(normals)*3)
	for _, n := range normals {
		a.Components = append(a.Components,
			int16(n.X*127), int16(n.Y*127), int16(n.Z*127))
	}
	return a
}

// NewTexCoordArray quantizes UV pairs to a 16-bit array. The T
// coordinate is flipped first; texture images and T run in opposite
// directions between the source convention and the format. With
// autoScale the bias/scale fit the data range; otherwise the fixed
// bias 0.5, scale 1/65535 mapping of the unit square is used.
func NewTexCoordArray(uvs [][2]float32, autoScale bool) *VertexArray {
	a := &VertexArray{ComponentSize: 2, ComponentCount: 2, Scale: 1}
	if len(uvs) == 0 {
		return a
	}
	flipped := make([][2]float32, len(uvs))
	for i, uv := range uvs {
		flipped[i] = [2]float32{uv[0], 1 - uv[1]}
	}
	if autoScale {
		minU, maxU := flipped[0][0], flipped[0][0]
		minT, maxT := flipped[0][1], flipped[0][1]
		for _, uv := range flipped[1:] {
			minU, maxU = min32(minU, uv[0]), max32(maxU, uv[0])
			minT, maxT = min32(minT, uv[1]), max32(maxT, uv[1])
		}
		a.Bias = [3]float32{minU*0.5 + maxU*0.5, minT*0.5 + maxT*0.5, 0}
		maxRange := max32(maxU-minU, maxT-minT)
		if maxRange < 1e-10 {
			a.Scale = 1.0 / 65534.0
		} else {
			a.Scale = maxRange / 65534.0
		}
	} else {
		a.Bias = [3]float32{0.5, 0.5, 0.5}
		a.Scale = 1.0 / 65535.0
	}
	a.Components = make([]int16, 0, len(flipped)*2)
	for _, uv := range flipped {
		a.Components = append(a.Components,
			quantize16(uv[0], a.Bias[0], a.Scale),
			quantize16(uv[1], a.Bias[1], a.Scale))
	}
	return a
}

func quantize16(v, bias, scale float32) int16 {
	q := int((v - bias) / scale)
	if q > 32767 {
		q = 32767
	} else if q < -32767 {
		q = -32767
	}
	return int16(q)
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// TexCoordSet pairs a texture-coordinate array with its dequantization
// parameters as referenced from a VertexBuffer.
type TexCoordSet struct {
	Array *VertexArray
	Bias  [3]float32
	Scale float32
}

// VertexBuffer aggregates the vertex arrays of a mesh.
type VertexBuffer struct {
	Object3D
	DefaultColor  ColorRGBA
	Positions     *VertexArray
	PositionBias  [3]float32
	PositionScale float32
	Normals       *VertexArray
	Colors        *VertexArray
	TexCoords     []TexCoordSet
}

// NewVertexBuffer returns an empty buffer with an opaque white default
// color.
func NewVertexBuffer() *VertexBuffer {
	return &VertexBuffer{
		DefaultColor:  ColorRGBA{R: 255, G: 255, B: 255, A: 255},
		PositionScale: 1,
	}
}

// SetPositions attaches the position array and copies its
// dequantization parameters into the buffer.
func (b *VertexBuffer) SetPositions(a *VertexArray) {
	b.Positions = a
	b.PositionBias = a.Bias
	b.PositionScale = a.Scale
}

// AddTexCoords attaches a texture-coordinate array, copying its
// dequantization parameters.
func (b *VertexBuffer) AddTexCoords(a *VertexArray) {
	b.TexCoords = append(b.TexCoords, TexCoordSet{Array: a, Bias: a.Bias, Scale: a.Scale})
}

// TriangleStripArray is an explicit-length triangle strip index buffer.
// Indices are global vertex indices; StripLengths slices them into
// strips, each of length >= 3.
type TriangleStripArray struct {
	Object3D
	Indices      []uint32
	StripLengths []uint32
}

// AddStrip appends one strip's indices.
func (t *TriangleStripArray) AddStrip(indices ...uint32) {
	t.Indices = append(t.Indices, indices...)
	t.StripLengths = append(t.StripLengths, uint32(len(indices)))
}

// Submesh pairs an index buffer with the appearance it is drawn with.
type Submesh struct {
	IndexBuffer *TriangleStripArray
	Appearance  *Appearance
}

// Mesh is a renderable node: a vertex buffer drawn as one or more
// submeshes.
type Mesh struct {
	Node
	VertexBuffer *VertexBuffer
	Submeshes    []Submesh
}

// NewMesh returns a mesh with default node attributes.
func NewMesh() *Mesh {
	return &Mesh{Node: newNode()}
}

// BoneReference assigns a contiguous run of vertices to a skeleton node
// with the given weight.
type BoneReference struct {
	Bone        NodeObject
	FirstVertex uint32
	VertexCount uint32
	Weight      int32
}

// SkinnedMesh is a mesh deformed by a skeleton group.
type SkinnedMesh struct {
	Mesh
	Skeleton *Group
	Bones    []BoneReference
}

// NewSkinnedMesh returns a skinned mesh with default node attributes.
func NewSkinnedMesh() *SkinnedMesh {
	return &SkinnedMesh{Mesh: Mesh{Node: newNode()}}
}
