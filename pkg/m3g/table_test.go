package m3g

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobigfx/m3gexport/pkg/scene"
)

func TestTableDependenciesBeforeReferents(t *testing.T) {
	world := triangleWorld()
	tbl, err := buildTable(world)
	require.NoError(t, err)

	mesh := world.Children[2].(*scene.Mesh)
	meshID := tbl.id(mesh)
	require.NotZero(t, meshID)

	for _, dep := range []any{
		mesh.VertexBuffer,
		mesh.VertexBuffer.Positions,
		mesh.Submeshes[0].IndexBuffer,
		mesh.Submeshes[0].Appearance,
		mesh.Submeshes[0].Appearance.Material,
	} {
		depID := tbl.id(dep)
		require.NotZero(t, depID)
		assert.Less(t, depID, meshID)
	}

	// the world is registered last
	assert.Equal(t, tbl.id(world), uint32(1+len(tbl.objects)))
}

func TestTableSharedObjectRegisteredOnce(t *testing.T) {
	world := triangleWorld()
	mesh := world.Children[2].(*scene.Mesh)
	shared := mesh.Submeshes[0].Appearance.Material

	second := scene.NewAppearance()
	second.Material = shared
	strips := &scene.TriangleStripArray{}
	strips.AddStrip(0, 1, 2)
	mesh.Submeshes = append(mesh.Submeshes, scene.Submesh{IndexBuffer: strips, Appearance: second})

	tbl, err := buildTable(world)
	require.NoError(t, err)

	count := 0
	for _, obj := range tbl.objects {
		if obj == scene.Object(shared) {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestTableCyclicGraph(t *testing.T) {
	g1 := scene.NewGroup()
	g2 := scene.NewGroup()
	g1.Add(g2)
	g2.Add(g1)

	world := scene.NewWorld()
	world.Add(g1)

	_, err := buildTable(world)
	require.ErrorIs(t, err, ErrCyclicReference)
}

func TestTableExternalReferencesFirst(t *testing.T) {
	world := triangleWorld()
	mesh := world.Children[2].(*scene.Mesh)
	ext := &scene.ExternalReference{URI: "albedo.png"}
	mesh.Submeshes[0].Appearance.Textures = []*scene.Texture2D{scene.NewTexture2D(ext)}

	tbl, err := buildTable(world)
	require.NoError(t, err)

	require.Equal(t, uint32(2), tbl.id(ext))
	for _, obj := range tbl.objects {
		assert.Greater(t, tbl.id(obj), uint32(2))
	}
}

func TestTableAlignmentRefsBeforeNode(t *testing.T) {
	target := scene.NewGroup()
	aligned := scene.NewGroup()
	aligned.Alignment = &scene.Alignment{
		ZTarget: scene.AlignOrigin,
		ZRef:    target,
	}

	world := scene.NewWorld()
	world.Add(target)
	world.Add(aligned)

	tbl, err := buildTable(world)
	require.NoError(t, err)
	assert.Less(t, tbl.id(target), tbl.id(aligned))
}

func TestTableConflictingSequenceUse(t *testing.T) {
	seq := scene.NewKeyframeSequence(3)
	seq.Keyframes = []scene.Keyframe{{Time: 0, Value: []float32{0, 0, 0}}}

	world := scene.NewWorld()
	world.AnimationTracks = []*scene.AnimationTrack{
		{Sequence: seq, Property: scene.PropTranslation},
		{Sequence: seq, Property: scene.PropScale},
	}

	_, err := buildTable(world)
	require.ErrorIs(t, err, ErrConflictingTrackUse)
}

func TestTableSharedSequenceCompatibleUse(t *testing.T) {
	seq := scene.NewKeyframeSequence(1)
	seq.Keyframes = []scene.Keyframe{{Time: 0, Value: []float32{1}}}

	world := scene.NewWorld()
	world.AnimationTracks = []*scene.AnimationTrack{
		{Sequence: seq, Property: scene.PropIntensity},
		{Sequence: seq, Property: scene.PropShininess},
	}

	_, err := buildTable(world)
	require.NoError(t, err)
}
