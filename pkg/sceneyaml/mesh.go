package sceneyaml

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"github.com/mobigfx/m3gexport/pkg/math"
	"github.com/mobigfx/m3gexport/pkg/scene"
)

// defaultMaterial is the fallback applied to meshes that declare no
// material of their own.
func defaultMaterial() *scene.Material {
	m := scene.NewMaterial()
	m.Diffuse = scene.ColorRGBA{R: 44, G: 156, B: 184, A: 255}
	m.Ambient = scene.ColorRGB{R: 8, G: 31, B: 36}
	m.Specular = scene.ColorRGB{R: 128, G: 128, B: 128}
	return m
}

func buildMesh(doc *meshDoc, fog *scene.Fog, opts Options) (*scene.Mesh, error) {
	if len(doc.Vertices) == 0 {
		return nil, ErrNoVertices
	}
	if len(doc.Faces) == 0 {
		return nil, ErrNoFaces
	}
	if len(doc.Normals) > 0 && len(doc.Normals) != len(doc.Vertices) {
		return nil, fmt.Errorf("normals: %w", ErrAttributeCount)
	}
	if len(doc.UVs) > 0 && len(doc.UVs) != len(doc.Vertices) {
		return nil, fmt.Errorf("uvs: %w", ErrAttributeCount)
	}

	points := make([]math.Vec3, len(doc.Vertices))
	for i, v := range doc.Vertices {
		if len(v) < 3 {
			return nil, fmt.Errorf("vertex %d: needs 3 components", i)
		}
		points[i] = math.Vec3{X: v[0], Y: v[1], Z: v[2]}
	}

	vb := scene.NewVertexBuffer()
	vb.SetPositions(scene.NewPositionArray(points, opts.AutoScale))

	if opts.Lighting {
		normals := make([]math.Vec3, len(points))
		if len(doc.Normals) > 0 {
			for i, n := range doc.Normals {
				if len(n) < 3 {
					return nil, fmt.Errorf("normal %d: needs 3 components", i)
				}
				normals[i] = math.Vec3{X: n[0], Y: n[1], Z: n[2]}
			}
		} else {
			faceNormals(points, doc.Faces, normals)
		}
		vb.Normals = scene.NewNormalArray(normals)
	}

	hasTexture := doc.Texture != nil
	if hasTexture && len(doc.UVs) > 0 {
		uvs := make([][2]float32, len(doc.UVs))
		for i, uv := range doc.UVs {
			if len(uv) < 2 {
				return nil, fmt.Errorf("uv %d: needs 2 components", i)
			}
			uvs[i] = [2]float32{uv[0], uv[1]}
		}
		vb.AddTexCoords(scene.NewTexCoordArray(uvs, opts.AutoScale))
	}

	strips, err := buildStrips(doc.Faces, uint32(len(points)))
	if err != nil {
		return nil, err
	}

	app := scene.NewAppearance()
	app.Fog = fog
	if opts.Lighting {
		if doc.Material != nil {
			if app.Material, err = buildMaterial(doc.Material); err != nil {
				return nil, err
			}
		} else {
			app.Material = defaultMaterial()
		}
	}
	if hasTexture {
		tex, err := buildTexture(doc.Texture)
		if err != nil {
			return nil, err
		}
		app.Textures = []*scene.Texture2D{tex}
	}

	mesh := scene.NewMesh()
	mesh.VertexBuffer = vb
	mesh.Submeshes = []scene.Submesh{{IndexBuffer: strips, Appearance: app}}
	return mesh, nil
}

// buildStrips converts indexed faces into triangle strips: a triangle
// maps directly, a quad reorders into one 4-index strip and larger
// polygons fan out from their first vertex.
func buildStrips(faces [][]uint32, vertexCount uint32) (*scene.TriangleStripArray, error) {
	strips := &scene.TriangleStripArray{}
	for fi, face := range faces {
		if len(face) < 3 {
			return nil, fmt.Errorf("face %d: %w", fi, ErrShortFace)
		}
		for _, idx := range face {
			if idx >= vertexCount {
				return nil, fmt.Errorf("face %d: index %d: %w", fi, idx, ErrFaceIndex)
			}
		}
		switch len(face) {
		case 3:
			strips.AddStrip(face[0], face[1], face[2])
		case 4:
			strips.AddStrip(face[1], face[2], face[0], face[3])
		default:
			for i := 1; i < len(face)-1; i++ {
				strips.AddStrip(face[0], face[i], face[i+1])
			}
		}
	}
	return strips, nil
}

// faceNormals fills in per-vertex normals averaged from the faces each
// vertex participates in.
func faceNormals(points []math.Vec3, faces [][]uint32, out []math.Vec3) {
	for _, face := range faces {
		if len(face) < 3 {
			continue
		}
		ok := true
		for _, idx := range face {
			if int(idx) >= len(points) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		a, b, c := points[face[0]], points[face[1]], points[face[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		for _, idx := range face {
			out[idx] = out[idx].Add(n)
		}
	}
	for i := range out {
		if out[i].Length() > 0 {
			out[i] = out[i].Normalize()
		} else {
			out[i] = math.Vec3{Z: 1}
		}
	}
}

func buildMaterial(doc *materialDoc) (*scene.Material, error) {
	m := scene.NewMaterial()
	if len(doc.Diffuse) > 0 {
		c, err := rgba(doc.Diffuse)
		if err != nil {
			return nil, fmt.Errorf("diffuse: %w", err)
		}
		m.Diffuse = c
		// shadow depth follows diffuse at roughly 20% unless authored
		if len(doc.Ambient) == 0 {
			m.Ambient = scene.ColorRGB{R: c.R / 5, G: c.G / 5, B: c.B / 5}
		}
	}
	for _, f := range []struct {
		src []float64
		dst *scene.ColorRGB
	}{
		{doc.Ambient, &m.Ambient},
		{doc.Emissive, &m.Emissive},
		{doc.Specular, &m.Specular},
	} {
		if len(f.src) > 0 {
			c, err := rgb(f.src)
			if err != nil {
				return nil, err
			}
			*f.dst = c
		}
	}
	m.Shininess = doc.Shininess
	return m, nil
}

func buildTexture(doc *textureDoc) (*scene.Texture2D, error) {
	if doc.External {
		uri := doc.URI
		if uri == "" {
			uri = doc.File
		}
		if uri == "" {
			return nil, ErrMissingTexture
		}
		return scene.NewTexture2D(&scene.ExternalReference{URI: uri}), nil
	}
	if doc.File == "" {
		return nil, ErrMissingTexture
	}
	img, err := loadImage(doc.File)
	if err != nil {
		return nil, err
	}
	return scene.NewTexture2D(img), nil
}

// loadImage reads a PNG into an embedded RGBA image object.
func loadImage(path string) (*scene.Image2D, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", path, err)
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", path, err)
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	rgbaImg := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgbaImg, rgbaImg.Bounds(), src, bounds.Min, draw.Src)

	pixels := make([]byte, 0, w*h*4)
	for y := 0; y < h; y++ {
		row := rgbaImg.Pix[y*rgbaImg.Stride : y*rgbaImg.Stride+w*4]
		pixels = append(pixels, row...)
	}
	return &scene.Image2D{
		Format: scene.ImageRGBA,
		Width:  uint32(w),
		Height: uint32(h),
		Pixels: pixels,
	}, nil
}
