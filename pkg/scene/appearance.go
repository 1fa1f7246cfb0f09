package scene

// PolygonMode culling constants.
const (
	CullBack  uint8 = 160
	CullFront uint8 = 161
	CullNone  uint8 = 162
)

// PolygonMode shading constants.
const (
	ShadeFlat   uint8 = 164
	ShadeSmooth uint8 = 165
)

// PolygonMode winding constants.
const (
	WindingCCW uint8 = 168
	WindingCW  uint8 = 169
)

// PolygonMode controls per-polygon rasterization state.
type PolygonMode struct {
	Object3D
	Culling               uint8
	Shading               uint8
	Winding               uint8
	TwoSidedLighting      bool
	LocalCameraLighting   bool
	PerspectiveCorrection bool
}

// NewPolygonMode returns the format's default polygon state: back-face
// culling, smooth shading, counter-clockwise winding.
func NewPolygonMode() *PolygonMode {
	return &PolygonMode{
		Culling: CullBack,
		Shading: ShadeSmooth,
		Winding: WindingCCW,
	}
}

// Material holds the lighting coefficients of a lit surface.
type Material struct {
	Object3D
	Ambient             ColorRGB
	Diffuse             ColorRGBA
	Emissive            ColorRGB
	Specular            ColorRGB
	Shininess           float32
	VertexColorTracking bool
}

// NewMaterial returns a material with the format's default colors.
func NewMaterial() *Material {
	return &Material{
		Ambient:  ColorRGB{R: 51, G: 51, B: 51},
		Diffuse:  ColorRGBA{R: 204, G: 204, B: 204, A: 255},
		Specular: ColorRGB{R: 0, G: 0, B: 0},
	}
}

// Image2D pixel formats.
const (
	ImageAlpha          uint8 = 96
	ImageLuminance      uint8 = 97
	ImageLuminanceAlpha uint8 = 98
	ImageRGB            uint8 = 99
	ImageRGBA           uint8 = 100
)

// Image2D is an immutable embedded image. Pixels hold the raw
// row-major data for the declared format; palettized encodings are not
// produced.
type Image2D struct {
	Object3D
	Format uint8
	Width  uint32
	Height uint32
	Pixels []byte
}

func (i *Image2D) imageSource() {}

// ExternalReference points at an image stored outside the file, by URI.
// Encoded as its own object kind and flagged in the file header.
type ExternalReference struct {
	URI string
}

func (e *ExternalReference) imageSource() {}

// ImageSource is either an embedded Image2D or an ExternalReference.
type ImageSource interface {
	imageSource()
}

// Texture2D blending constants.
const (
	TexFuncAdd      uint8 = 224
	TexFuncBlend    uint8 = 225
	TexFuncDecal    uint8 = 226
	TexFuncModulate uint8 = 227
	TexFuncReplace  uint8 = 228
)

// Texture2D wrap constants.
const (
	TexWrapClamp  uint8 = 240
	TexWrapRepeat uint8 = 241
)

// Texture2D filter constants.
const (
	TexFilterBaseLevel uint8 = 208
	TexFilterLinear    uint8 = 209
	TexFilterNearest   uint8 = 210
)

// Texture2D maps an image onto a submesh. The image may be embedded or
// an external reference.
type Texture2D struct {
	Object3D
	Image       ImageSource
	BlendColor  ColorRGB
	Blending    uint8
	WrapS       uint8
	WrapT       uint8
	LevelFilter uint8
	ImageFilter uint8
}

// NewTexture2D returns a modulating, repeating texture over the given
// image.
func NewTexture2D(image ImageSource) *Texture2D {
	return &Texture2D{
		Image:       image,
		Blending:    TexFuncModulate,
		WrapS:       TexWrapRepeat,
		WrapT:       TexWrapRepeat,
		LevelFilter: TexFilterBaseLevel,
		ImageFilter: TexFilterNearest,
	}
}

// Appearance bundles the rendering state of a submesh. Any reference
// may be nil; nil references encode as null. The compositing mode
// reference is always null in produced files.
type Appearance struct {
	Object3D
	Layer       int8
	Fog         *Fog
	PolygonMode *PolygonMode
	Material    *Material
	Textures    []*Texture2D
}

// NewAppearance returns an appearance with default polygon state and no
// material.
func NewAppearance() *Appearance {
	return &Appearance{PolygonMode: NewPolygonMode()}
}
