// Package scene defines the authoring-tool-agnostic scene graph consumed
// by the M3G encoder: a transform hierarchy of nodes with meshes,
// materials, lights, cameras and animation tracks attached.
//
// The graph is a DAG; shared material, buffer and controller objects may
// be referenced from several places and are serialized once. All spatial
// data is supplied in the producer's Z-up convention; the encoder applies
// the single change-of-basis to the format's Y-up convention when it
// composes node transforms.
//
// Zero values are not ready for use. Constructors (NewGroup, NewWorld,
// NewLight, ...) fill in the format's documented defaults.
package scene

import "github.com/mobigfx/m3gexport/pkg/math"

// Object is implemented by every encodable scene entity. Implementations
// embed Object3D; the variant set is the fixed list of kinds in this
// package.
type Object interface {
	Base() *Object3D
}

// NodeObject is an Object that participates in the transform hierarchy.
type NodeObject interface {
	Object
	NodeAttrs() *Node
}

// ColorRGB is an 8-bit-per-channel opaque color.
type ColorRGB struct {
	R, G, B uint8
}

// ColorRGBA is an 8-bit-per-channel color with alpha.
type ColorRGBA struct {
	R, G, B, A uint8
}

// Object3D carries the attributes common to every scene object: a
// caller-chosen user ID and the animation tracks targeting the object.
type Object3D struct {
	UserID          uint32
	AnimationTracks []*AnimationTrack
}

// Base returns the common Object3D attributes.
func (o *Object3D) Base() *Object3D { return o }

// Transform holds a node's local transform as translation, rotation and
// scale components in the producer's Z-up convention. Rotation as a
// quaternion keeps interpolation free of the sign-flip discontinuities
// the format forbids. A zero-value Rotation and a zero-value Scale are
// read as identity.
type Transform struct {
	Translation math.Vec3
	Rotation    math.Quat
	Scale       math.Vec3
}

// Node carries the renderable-node attributes shared by groups, meshes,
// cameras and lights.
type Node struct {
	Object3D
	Transform       *Transform
	EnableRendering bool
	EnablePicking   bool
	AlphaFactor     uint8
	Scope           uint32
	Alignment       *Alignment
}

// Node alignment targets.
const (
	AlignNone   uint8 = 144
	AlignOrigin uint8 = 145
	AlignXAxis  uint8 = 146
	AlignYAxis  uint8 = 147
	AlignZAxis  uint8 = 148
)

// Alignment configures the optional node auto-alignment. The reference
// nodes may be nil for world-space alignment.
type Alignment struct {
	ZTarget uint8
	YTarget uint8
	ZRef    NodeObject
	YRef    NodeObject
}

// NodeAttrs returns the common node attributes.
func (n *Node) NodeAttrs() *Node { return n }

func newNode() Node {
	return Node{
		EnableRendering: true,
		EnablePicking:   true,
		AlphaFactor:     255,
		Scope:           0xFFFFFFFF,
	}
}

// Group is an ordered container of child nodes.
type Group struct {
	Node
	Children []NodeObject
}

// NewGroup returns an empty group with default node attributes.
func NewGroup() *Group {
	return &Group{Node: newNode()}
}

// Add appends children to the group.
func (g *Group) Add(children ...NodeObject) {
	g.Children = append(g.Children, children...)
}

// World is the root of a scene: a group with an optional active camera
// and background.
type World struct {
	Group
	ActiveCamera *Camera
	Background   *Background
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{Group: Group{Node: newNode()}}
}

// Camera projection types.
const (
	CameraGeneric     uint8 = 48
	CameraParallel    uint8 = 49
	CameraPerspective uint8 = 50
)

// Camera is a viewpoint node. For the generic projection type the raw
// projection matrix is used; otherwise the fovy/aspect/near/far set.
type Camera struct {
	Node
	Projection       uint8
	Fovy             float32
	AspectRatio      float32
	Near, Far        float32
	ProjectionMatrix math.Mat4
}

// NewCamera returns a perspective camera with the format's defaults.
func NewCamera() *Camera {
	return &Camera{
		Node:        newNode(),
		Projection:  CameraPerspective,
		Fovy:        45,
		AspectRatio: 1,
		Near:        0.1,
		Far:         100,
	}
}

// Light modes.
const (
	LightAmbient     uint8 = 128
	LightDirectional uint8 = 129
	LightOmni        uint8 = 130
	LightSpot        uint8 = 131
)

// Light is a light-source node.
//
// The format itself does not require a light for materials to be
// visible at runtime; whether lit materials receive any light is a
// semantic of the consuming runtime, and the producer is responsible
// for supplying lights that make the scene legible.
type Light struct {
	Node
	AttenuationConstant  float32
	AttenuationLinear    float32
	AttenuationQuadratic float32
	Color                ColorRGB
	Mode                 uint8
	Intensity            float32
	SpotAngle            float32
	SpotExponent         float32
}

// NewLight returns a white directional light with default attenuation.
func NewLight() *Light {
	return &Light{
		Node:                newNode(),
		AttenuationConstant: 1,
		Color:               ColorRGB{R: 255, G: 255, B: 255},
		Mode:                LightDirectional,
		Intensity:           1,
		SpotAngle:           45,
	}
}

// Background clears the viewport before rendering. Image modes are the
// format's BORDER (32) / REPEAT (33) constants.
type Background struct {
	Object3D
	Color      ColorRGBA
	Image      *Image2D
	ImageModeX uint8
	ImageModeY uint8
	CropX      int32
	CropY      int32
	CropWidth  int32
	CropHeight int32
	DepthClear bool
	ColorClear bool
}

// Background image repeat modes.
const (
	BackgroundBorder uint8 = 32
	BackgroundRepeat uint8 = 33
)

// NewBackground returns a white, clearing background.
func NewBackground() *Background {
	return &Background{
		Color:      ColorRGBA{R: 255, G: 255, B: 255, A: 255},
		ImageModeX: BackgroundBorder,
		ImageModeY: BackgroundBorder,
		DepthClear: true,
		ColorClear: true,
	}
}

// Fog modes, JSR-184 section 11.7.
const (
	FogExponential uint8 = 80
	FogLinear      uint8 = 81
)

// Fog is the atmospheric fade-out effect referenced from appearances.
// It is the one object kind gated on file version 1.1.
type Fog struct {
	Object3D
	Color   ColorRGB
	Mode    uint8
	Density float32 // exponential mode only
	Near    float32 // linear mode only
	Far     float32 // linear mode only
}

// NewFog returns a grey linear fog over the default distance range.
func NewFog() *Fog {
	return &Fog{
		Color: ColorRGB{R: 128, G: 128, B: 128},
		Mode:  FogLinear,
		Far:   100,
	}
}
