// Package sceneyaml loads a YAML scene description into a scene graph.
// It stands in for an authoring tool: geometry arrives as indexed faces
// in the Z-up convention and is turned into the vertex buffers, strips
// and appearances the encoder consumes.
package sceneyaml

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	stdmath "math"

	"github.com/mobigfx/m3gexport/pkg/math"
	"github.com/mobigfx/m3gexport/pkg/scene"
)

// Scene description errors.
var (
	ErrNoVertices      = errors.New("mesh has no vertices")
	ErrNoFaces         = errors.New("mesh has no faces")
	ErrFaceIndex       = errors.New("face index out of range")
	ErrShortFace       = errors.New("face has fewer than 3 vertices")
	ErrAttributeCount  = errors.New("per-vertex attribute count does not match vertex count")
	ErrBadColor        = errors.New("color needs 3 or 4 components")
	ErrUnknownLight    = errors.New("unknown light type")
	ErrUnknownFogMode  = errors.New("unknown fog mode")
	ErrMissingTexture  = errors.New("texture has neither file nor uri")
)

// Options controls how a description is turned into a scene.
type Options struct {
	// Lighting enables normal generation and the lit material path.
	Lighting bool
	// AmbientLight synthesizes a fill light when lighting is on.
	AmbientLight bool
	// AutoScale fits quantization ranges to the data instead of using
	// fixed unit-range mappings.
	AutoScale bool
	// Fog attaches the document's fog block to every appearance.
	Fog bool
}

type document struct {
	Name       string          `yaml:"name"`
	Background *backgroundDoc  `yaml:"background"`
	Camera     *cameraDoc      `yaml:"camera"`
	Lights     []lightDoc      `yaml:"lights"`
	Fog        *fogDoc         `yaml:"fog"`
	Nodes      []nodeDoc       `yaml:"nodes"`
}

type backgroundDoc struct {
	Color []float64 `yaml:"color"`
}

type transformDoc struct {
	Position []float32    `yaml:"position"`
	Rotation *rotationDoc `yaml:"rotation"`
	Scale    []float32    `yaml:"scale"`
}

type rotationDoc struct {
	Angle float32   `yaml:"angle"` // degrees
	Axis  []float32 `yaml:"axis"`
}

type cameraDoc struct {
	transformDoc `yaml:",inline"`
	Fovy         float32 `yaml:"fovy"`
	Aspect       float32 `yaml:"aspect"`
	Near         float32 `yaml:"near"`
	Far          float32 `yaml:"far"`
}

type lightDoc struct {
	transformDoc `yaml:",inline"`
	Type         string    `yaml:"type"`
	Color        []float64 `yaml:"color"`
	Intensity    float32   `yaml:"intensity"`
	SpotAngle    float32   `yaml:"spot_angle"`
}

type fogDoc struct {
	Mode    string    `yaml:"mode"`
	Color   []float64 `yaml:"color"`
	Density float32   `yaml:"density"`
	Near    float32   `yaml:"near"`
	Far     float32   `yaml:"far"`
}

type materialDoc struct {
	Diffuse   []float64 `yaml:"diffuse"`
	Ambient   []float64 `yaml:"ambient"`
	Emissive  []float64 `yaml:"emissive"`
	Specular  []float64 `yaml:"specular"`
	Shininess float32   `yaml:"shininess"`
}

type textureDoc struct {
	File     string `yaml:"file"`
	URI      string `yaml:"uri"`
	External bool   `yaml:"external"`
}

type meshDoc struct {
	Vertices [][]float32  `yaml:"vertices"`
	Faces    [][]uint32   `yaml:"faces"`
	Normals  [][]float32  `yaml:"normals"`
	UVs      [][]float32  `yaml:"uvs"`
	Material *materialDoc `yaml:"material"`
	Texture  *textureDoc  `yaml:"texture"`
}

type nodeDoc struct {
	Name         string    `yaml:"name"`
	transformDoc `yaml:",inline"`
	Mesh         *meshDoc  `yaml:"mesh"`
	Children     []nodeDoc `yaml:"children"`
}

// Load parses a YAML scene description and builds the world.
func Load(data []byte, opts Options) (*scene.World, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return build(&doc, opts)
}

// LoadFile is Load over the contents of path.
func LoadFile(path string, opts Options) (*scene.World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return Load(data, opts)
}

func build(doc *document, opts Options) (*scene.World, error) {
	world := scene.NewWorld()

	if doc.Background != nil {
		bg := scene.NewBackground()
		c, err := rgba(doc.Background.Color)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		bg.Color = c
		world.Background = bg
	}

	if doc.Camera != nil {
		cam := scene.NewCamera()
		cam.Transform = transform(&doc.Camera.transformDoc)
		if doc.Camera.Fovy > 0 {
			cam.Fovy = doc.Camera.Fovy
		}
		if doc.Camera.Aspect > 0 {
			cam.AspectRatio = doc.Camera.Aspect
		}
		if doc.Camera.Near > 0 {
			cam.Near = doc.Camera.Near
		}
		if doc.Camera.Far > 0 {
			cam.Far = doc.Camera.Far
		}
		world.ActiveCamera = cam
		world.Add(cam)
	}

	for i := range doc.Lights {
		light, err := buildLight(&doc.Lights[i])
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		world.Add(light)
	}
	if opts.Lighting && opts.AmbientLight {
		world.Add(ambientFill())
	}

	var fog *scene.Fog
	if opts.Fog && doc.Fog != nil {
		var err error
		if fog, err = buildFog(doc.Fog); err != nil {
			return nil, err
		}
	}

	for i := range doc.Nodes {
		node, err := buildNode(&doc.Nodes[i], fog, opts)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", doc.Nodes[i].Name, err)
		}
		world.Add(node)
	}
	return world, nil
}

func buildNode(doc *nodeDoc, fog *scene.Fog, opts Options) (scene.NodeObject, error) {
	var children []scene.NodeObject
	for i := range doc.Children {
		c, err := buildNode(&doc.Children[i], fog, opts)
		if err != nil {
			return nil, fmt.Errorf("child %q: %w", doc.Children[i].Name, err)
		}
		children = append(children, c)
	}

	if doc.Mesh == nil {
		g := scene.NewGroup()
		g.Transform = transform(&doc.transformDoc)
		g.Children = children
		return g, nil
	}

	mesh, err := buildMesh(doc.Mesh, fog, opts)
	if err != nil {
		return nil, err
	}
	mesh.Transform = transform(&doc.transformDoc)
	if len(children) == 0 {
		return mesh, nil
	}
	// a mesh with children becomes a group holding the mesh
	g := scene.NewGroup()
	g.Transform = mesh.Transform
	mesh.Transform = nil
	g.Children = append([]scene.NodeObject{mesh}, children...)
	return g, nil
}

func buildLight(doc *lightDoc) (*scene.Light, error) {
	light := scene.NewLight()
	light.Transform = transform(&doc.transformDoc)
	switch doc.Type {
	case "", "directional":
		light.Mode = scene.LightDirectional
	case "ambient":
		light.Mode = scene.LightAmbient
	case "omni":
		light.Mode = scene.LightOmni
	case "spot":
		light.Mode = scene.LightSpot
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLight, doc.Type)
	}
	if len(doc.Color) > 0 {
		c, err := rgb(doc.Color)
		if err != nil {
			return nil, err
		}
		light.Color = c
	}
	if doc.Intensity > 0 {
		light.Intensity = doc.Intensity
	}
	if doc.SpotAngle > 0 {
		light.SpotAngle = doc.SpotAngle
	}
	return light, nil
}

// ambientFill is the synthesized fill light added when no authored
// light would otherwise reach lit materials.
func ambientFill() *scene.Light {
	light := scene.NewLight()
	light.Mode = scene.LightAmbient
	light.Color = scene.ColorRGB{R: 128, G: 128, B: 128}
	light.Intensity = 0.8
	return light
}

func buildFog(doc *fogDoc) (*scene.Fog, error) {
	fog := scene.NewFog()
	switch doc.Mode {
	case "", "linear":
		fog.Mode = scene.FogLinear
		if doc.Near != 0 {
			fog.Near = doc.Near
		}
		if doc.Far != 0 {
			fog.Far = doc.Far
		}
	case "exponential":
		fog.Mode = scene.FogExponential
		fog.Density = doc.Density
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFogMode, doc.Mode)
	}
	if len(doc.Color) > 0 {
		c, err := rgb(doc.Color)
		if err != nil {
			return nil, err
		}
		fog.Color = c
	}
	return fog, nil
}

func transform(doc *transformDoc) *scene.Transform {
	if len(doc.Position) == 0 && doc.Rotation == nil && len(doc.Scale) == 0 {
		return nil
	}
	tr := &scene.Transform{Scale: math.One()}
	if len(doc.Position) >= 3 {
		tr.Translation = math.Vec3{X: doc.Position[0], Y: doc.Position[1], Z: doc.Position[2]}
	}
	if r := doc.Rotation; r != nil && len(r.Axis) >= 3 {
		rad := r.Angle * stdmath.Pi / 180
		tr.Rotation = math.QuatFromAxisAngle(rad, math.Vec3{X: r.Axis[0], Y: r.Axis[1], Z: r.Axis[2]})
	}
	if len(doc.Scale) >= 3 {
		tr.Scale = math.Vec3{X: doc.Scale[0], Y: doc.Scale[1], Z: doc.Scale[2]}
	}
	return tr
}

func rgb(v []float64) (scene.ColorRGB, error) {
	if len(v) < 3 {
		return scene.ColorRGB{}, ErrBadColor
	}
	return scene.ColorRGB{R: channel(v[0]), G: channel(v[1]), B: channel(v[2])}, nil
}

func rgba(v []float64) (scene.ColorRGBA, error) {
	if len(v) < 3 || len(v) > 4 {
		return scene.ColorRGBA{}, ErrBadColor
	}
	c := scene.ColorRGBA{R: channel(v[0]), G: channel(v[1]), B: channel(v[2]), A: 255}
	if len(v) == 4 {
		c.A = channel(v[3])
	}
	return c, nil
}

// channel accepts either a 0..1 float or a 0..255 byte value.
func channel(v float64) uint8 {
	if v <= 1 {
		v *= 255
	}
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
