package m3g

import (
	"fmt"

	"github.com/mobigfx/m3gexport/pkg/scene"
)

// encoder serializes registered objects against a completed table and
// a selected format version.
type encoder struct {
	tbl *table
	ver Version
}

// block frames an object body with its type tag and length.
func block(tag uint8, body []byte) []byte {
	w := &writer{}
	w.byte(tag)
	w.u32(uint32(len(body)))
	w.raw(body)
	return w.bytes()
}

func (e *encoder) encodeObject(obj scene.Object) ([]byte, error) {
	w := &writer{}
	var tag uint8
	var err error

	switch o := obj.(type) {
	case *scene.World:
		tag, err = TypeWorld, e.world(w, o)
	case *scene.Group:
		tag, err = TypeGroup, e.group(w, o)
	case *scene.SkinnedMesh:
		tag, err = TypeSkinnedMesh, e.skinnedMesh(w, o)
	case *scene.Mesh:
		tag, err = TypeMesh, e.meshBody(w, o)
	case *scene.Camera:
		tag, err = TypeCamera, e.camera(w, o)
	case *scene.Light:
		tag = TypeLight
		e.light(w, o)
	case *scene.Background:
		tag = TypeBackground
		e.background(w, o)
	case *scene.Fog:
		tag, err = TypeFog, e.fog(w, o)
	case *scene.Appearance:
		tag = TypeAppearance
		e.appearance(w, o)
	case *scene.PolygonMode:
		tag = TypePolygonMode
		e.polygonMode(w, o)
	case *scene.Material:
		tag = TypeMaterial
		e.material(w, o)
	case *scene.Texture2D:
		tag = TypeTexture2D
		e.texture(w, o)
	case *scene.Image2D:
		tag, err = TypeImage2D, e.image(w, o)
	case *scene.VertexArray:
		tag, err = TypeVertexArray, e.vertexArray(w, o)
	case *scene.VertexBuffer:
		tag = TypeVertexBuffer
		e.vertexBuffer(w, o)
	case *scene.TriangleStripArray:
		tag, err = TypeTriangleStripArray, e.triangleStrips(w, o)
	case *scene.AnimationController:
		tag = TypeAnimationController
		e.controller(w, o)
	case *scene.AnimationTrack:
		tag, err = TypeAnimationTrack, e.track(w, o)
	case *scene.KeyframeSequence:
		tag, err = TypeKeyframeSequence, e.keyframes(w, o)
	default:
		err = fmt.Errorf("%w: %T", ErrUnknownObjectKind, obj)
	}
	if err != nil {
		return nil, fmt.Errorf("object %d (%T): %w", e.tbl.id(obj), obj, err)
	}
	return block(tag, w.bytes()), nil
}

func encodeExternal(ref *scene.ExternalReference) []byte {
	w := &writer{}
	w.str(ref.URI)
	return block(TypeExternalReference, w.bytes())
}

// object3D writes the prefix common to all scene objects.
func (e *encoder) object3D(w *writer, o *scene.Object3D) {
	w.u32(o.UserID)
	tracks := o.AnimationTracks[:0:0]
	for _, tr := range o.AnimationTracks {
		if tr != nil {
			tracks = append(tracks, tr)
		}
	}
	w.u32(uint32(len(tracks)))
	for _, tr := range tracks {
		w.u32(e.tbl.id(tr))
	}
	w.u32(0) // user parameters
}

// transformable writes the component/general transform flags. Produced
// files always use the general matrix form.
func (e *encoder) transformable(w *writer, tr *scene.Transform) {
	w.byte(0) // no component transform
	if tr == nil {
		w.byte(0)
		return
	}
	w.byte(1)
	m := nodeMatrix(tr)
	for _, v := range m {
		w.f32(v)
	}
}

func (e *encoder) node(w *writer, n *scene.Node) {
	e.object3D(w, &n.Object3D)
	e.transformable(w, n.Transform)
	w.bool(n.EnableRendering)
	w.bool(n.EnablePicking)
	w.byte(n.AlphaFactor)
	w.u32(n.Scope)
	if a := n.Alignment; a != nil {
		w.byte(1)
		w.byte(a.ZTarget)
		w.byte(a.YTarget)
		w.u32(e.tbl.id(a.ZRef))
		w.u32(e.tbl.id(a.YRef))
	} else {
		w.byte(0)
	}
}

func (e *encoder) group(w *writer, g *scene.Group) error {
	e.node(w, &g.Node)
	w.u32(uint32(len(g.Children)))
	for _, c := range g.Children {
		w.u32(e.tbl.id(c))
	}
	return nil
}

func (e *encoder) world(w *writer, o *scene.World) error {
	if err := e.group(w, &o.Group); err != nil {
		return err
	}
	w.u32(e.tbl.id(refOrNil(o.ActiveCamera)))
	w.u32(e.tbl.id(refOrNil(o.Background)))
	return nil
}

func (e *encoder) camera(w *writer, o *scene.Camera) error {
	e.node(w, &o.Node)
	w.byte(o.Projection)
	if o.Projection == scene.CameraGeneric {
		for _, v := range o.ProjectionMatrix {
			w.f32(v)
		}
		return nil
	}
	w.f32(o.Fovy)
	w.f32(o.AspectRatio)
	w.f32(o.Near)
	w.f32(o.Far)
	return nil
}

func (e *encoder) light(w *writer, o *scene.Light) {
	e.node(w, &o.Node)
	w.f32(o.AttenuationConstant)
	w.f32(o.AttenuationLinear)
	w.f32(o.AttenuationQuadratic)
	rgb(w, o.Color)
	w.byte(o.Mode)
	w.f32(o.Intensity)
	w.f32(o.SpotAngle)
	w.f32(o.SpotExponent)
}

func (e *encoder) meshBody(w *writer, o *scene.Mesh) error {
	if o.VertexBuffer == nil {
		return ErrMissingVertexBuffer
	}
	if len(o.Submeshes) == 0 {
		return ErrNoSubmeshes
	}
	vertexCount := 0
	if o.VertexBuffer.Positions != nil {
		vertexCount = o.VertexBuffer.Positions.VertexCount()
	}
	e.node(w, &o.Node)
	w.u32(e.tbl.id(o.VertexBuffer))
	w.u32(uint32(len(o.Submeshes)))
	for i, s := range o.Submeshes {
		if s.IndexBuffer == nil {
			return fmt.Errorf("submesh %d: %w", i, ErrMissingIndexBuffer)
		}
		for _, idx := range s.IndexBuffer.Indices {
			if int(idx) >= vertexCount {
				return fmt.Errorf("submesh %d: index %d: %w", i, idx, ErrIndexOutOfRange)
			}
		}
		w.u32(e.tbl.id(s.IndexBuffer))
		w.u32(e.tbl.id(refOrNil(s.Appearance)))
	}
	return nil
}

func (e *encoder) skinnedMesh(w *writer, o *scene.SkinnedMesh) error {
	if err := e.meshBody(w, &o.Mesh); err != nil {
		return err
	}
	w.u32(e.tbl.id(refOrNil(o.Skeleton)))
	w.u32(uint32(len(o.Bones)))
	for _, b := range o.Bones {
		w.u32(e.tbl.id(b.Bone))
		w.u32(b.FirstVertex)
		w.u32(b.VertexCount)
		w.i32(b.Weight)
	}
	return nil
}

func (e *encoder) vertexArray(w *writer, o *scene.VertexArray) error {
	count := o.VertexCount()
	if count > 0xFFFF {
		return ErrVertexCountOverflow
	}
	e.object3D(w, &o.Object3D)
	w.byte(o.ComponentSize)
	w.byte(o.ComponentCount)
	w.byte(0) // no delta encoding
	w.u16(uint16(count))
	for _, c := range o.Components {
		if o.ComponentSize == 1 {
			w.byte(uint8(int8(c)))
		} else {
			w.i16(c)
		}
	}
	return nil
}

func (e *encoder) vertexBuffer(w *writer, o *scene.VertexBuffer) {
	e.object3D(w, &o.Object3D)
	rgba(w, o.DefaultColor)
	w.u32(e.tbl.id(refOrNil(o.Positions)))
	for _, b := range o.PositionBias {
		w.f32(b)
	}
	w.f32(o.PositionScale)
	w.u32(e.tbl.id(refOrNil(o.Normals)))
	w.u32(e.tbl.id(refOrNil(o.Colors)))
	w.u32(uint32(len(o.TexCoords)))
	for _, tc := range o.TexCoords {
		w.u32(e.tbl.id(refOrNil(tc.Array)))
		for _, b := range tc.Bias {
			w.f32(b)
		}
		w.f32(tc.Scale)
	}
}

func (e *encoder) triangleStrips(w *writer, o *scene.TriangleStripArray) error {
	var total uint64
	for _, l := range o.StripLengths {
		if l < 3 {
			return ErrShortStrip
		}
		total += uint64(l)
	}
	if total != uint64(len(o.Indices)) {
		return ErrBadStripLengths
	}
	e.object3D(w, &o.Object3D)
	w.byte(encodingExplicitUint32)
	w.u32(uint32(len(o.Indices)))
	for _, idx := range o.Indices {
		w.u32(idx)
	}
	w.u32(uint32(len(o.StripLengths)))
	for _, l := range o.StripLengths {
		w.u32(l)
	}
	return nil
}

func (e *encoder) appearance(w *writer, o *scene.Appearance) {
	e.object3D(w, &o.Object3D)
	w.byte(uint8(o.Layer))
	w.u32(0) // compositing mode, never produced
	w.u32(e.tbl.id(refOrNil(o.Fog)))
	w.u32(e.tbl.id(refOrNil(o.PolygonMode)))
	w.u32(e.tbl.id(refOrNil(o.Material)))
	w.u32(uint32(len(o.Textures)))
	for _, tex := range o.Textures {
		w.u32(e.tbl.id(refOrNil(tex)))
	}
}

func (e *encoder) polygonMode(w *writer, o *scene.PolygonMode) {
	e.object3D(w, &o.Object3D)
	w.byte(o.Culling)
	w.byte(o.Shading)
	w.byte(o.Winding)
	w.bool(o.TwoSidedLighting)
	w.bool(o.LocalCameraLighting)
	w.bool(o.PerspectiveCorrection)
}

func (e *encoder) material(w *writer, o *scene.Material) {
	e.object3D(w, &o.Object3D)
	rgb(w, o.Ambient)
	rgba(w, o.Diffuse)
	rgb(w, o.Emissive)
	rgb(w, o.Specular)
	w.f32(o.Shininess)
	w.bool(o.VertexColorTracking)
}

func (e *encoder) texture(w *writer, o *scene.Texture2D) {
	e.object3D(w, &o.Object3D)
	e.transformable(w, nil) // texture transforms not produced
	w.u32(e.tbl.id(o.Image))
	rgb(w, o.BlendColor)
	w.byte(o.Blending)
	w.byte(o.WrapS)
	w.byte(o.WrapT)
	w.byte(o.LevelFilter)
	w.byte(o.ImageFilter)
}

func (e *encoder) image(w *writer, o *scene.Image2D) error {
	channels, ok := imageChannels(o.Format)
	if !ok {
		return fmt.Errorf("%w: format %d", ErrBadImageData, o.Format)
	}
	if uint64(len(o.Pixels)) != uint64(o.Width)*uint64(o.Height)*uint64(channels) {
		return ErrBadImageData
	}
	e.object3D(w, &o.Object3D)
	w.byte(o.Format)
	w.byte(0) // immutable
	w.u32(o.Width)
	w.u32(o.Height)
	w.u32(0) // no palette
	w.u32(uint32(len(o.Pixels)))
	w.raw(o.Pixels)
	return nil
}

func imageChannels(format uint8) (int, bool) {
	switch format {
	case scene.ImageAlpha, scene.ImageLuminance:
		return 1, true
	case scene.ImageLuminanceAlpha:
		return 2, true
	case scene.ImageRGB:
		return 3, true
	case scene.ImageRGBA:
		return 4, true
	}
	return 0, false
}

func (e *encoder) background(w *writer, o *scene.Background) {
	e.object3D(w, &o.Object3D)
	rgba(w, o.Color)
	w.u32(e.tbl.id(refOrNil(o.Image)))
	w.byte(o.ImageModeX)
	w.byte(o.ImageModeY)
	w.i32(o.CropX)
	w.i32(o.CropY)
	w.i32(o.CropWidth)
	w.i32(o.CropHeight)
	w.bool(o.DepthClear)
	w.bool(o.ColorClear)
}

func (e *encoder) fog(w *writer, o *scene.Fog) error {
	if !e.ver.AtLeast(1, 1) {
		return ErrUnsupportedInVersion
	}
	e.object3D(w, &o.Object3D)
	rgb(w, o.Color)
	w.byte(o.Mode)
	if o.Mode == scene.FogExponential {
		w.f32(o.Density)
		return nil
	}
	w.f32(o.Near)
	w.f32(o.Far)
	return nil
}

func (e *encoder) controller(w *writer, o *scene.AnimationController) {
	e.object3D(w, &o.Object3D)
	w.f32(o.Speed)
	w.f32(o.Weight)
	w.i32(o.ActiveIntervalStart)
	w.i32(o.ActiveIntervalEnd)
	w.f32(o.ReferenceSeqTime)
	w.i32(o.ReferenceWorldTime)
}

func (e *encoder) track(w *writer, o *scene.AnimationTrack) error {
	if o.Sequence == nil {
		return ErrMissingSequence
	}
	e.object3D(w, &o.Object3D)
	w.u32(e.tbl.id(o.Sequence))
	w.u32(e.tbl.id(refOrNil(o.Controller)))
	w.u32(o.Property)
	return nil
}

func (e *encoder) keyframes(w *writer, o *scene.KeyframeSequence) error {
	count := uint32(len(o.Keyframes))
	for _, kf := range o.Keyframes {
		if uint32(len(kf.Value)) != o.ComponentCount {
			return ErrBadKeyframeData
		}
	}
	if count > 0 && (o.ValidRangeFirst > o.ValidRangeLast || o.ValidRangeLast >= count) {
		return ErrBadValidRange
	}
	property := e.tbl.seqUse[o]
	e.object3D(w, &o.Object3D)
	w.byte(o.Interpolation)
	w.byte(o.RepeatMode)
	w.byte(encodingFloatKeyframes)
	w.u32(o.Duration)
	w.u32(o.ValidRangeFirst)
	w.u32(o.ValidRangeLast)
	w.u32(o.ComponentCount)
	w.u32(count)
	for _, kf := range o.Keyframes {
		w.i32(kf.Time)
		for _, v := range convertKeyframe(property, kf.Value) {
			w.f32(v)
		}
	}
	return nil
}

func rgb(w *writer, c scene.ColorRGB) {
	w.byte(c.R)
	w.byte(c.G)
	w.byte(c.B)
}

func rgba(w *writer, c scene.ColorRGBA) {
	w.byte(c.R)
	w.byte(c.G)
	w.byte(c.B)
	w.byte(c.A)
}
