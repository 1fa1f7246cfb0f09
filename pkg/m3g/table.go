package m3g

import (
	"fmt"

	"github.com/mobigfx/m3gexport/pkg/scene"
)

// table assigns file indices to every reachable object. Index 0 is the
// null reference and index 1 the file header; external references come
// next in discovery order, then scene objects in discovery order.
//
// Discovery is a depth-first walk that registers every dependency
// before its referent, so each encoded reference is strictly smaller
// than the index of the object holding it.
type table struct {
	index     map[any]uint32
	objects   []scene.Object
	externals []*scene.ExternalReference
	extSeen   map[*scene.ExternalReference]bool
	seen      map[any]bool
	visiting  map[any]bool

	// conversion target of each keyframe sequence, recorded from the
	// tracks that reference it
	seqUse map[*scene.KeyframeSequence]uint32
}

func buildTable(root *scene.World) (*table, error) {
	t := &table{
		index:    make(map[any]uint32),
		extSeen:  make(map[*scene.ExternalReference]bool),
		seen:     make(map[any]bool),
		visiting: make(map[any]bool),
		seqUse:   make(map[*scene.KeyframeSequence]uint32),
	}
	if err := t.walk(root); err != nil {
		return nil, err
	}
	for i, e := range t.externals {
		t.index[e] = uint32(2 + i)
	}
	base := uint32(2 + len(t.externals))
	for i, o := range t.objects {
		t.index[o] = base + uint32(i)
	}
	return t, nil
}

// id resolves a reference to its file index. Nil resolves to the null
// reference. The key may be any registered scene object or external
// reference.
func (t *table) id(obj any) uint32 {
	if obj == nil {
		return 0
	}
	return t.index[obj]
}

// refOrNil boxes a concrete reference for table lookup, mapping a nil
// pointer to the null reference instead of a non-nil interface holding
// a nil pointer.
func refOrNil[T any](p *T) any {
	if p == nil {
		return nil
	}
	return p
}

func (t *table) walk(obj scene.Object) error {
	if obj == nil {
		return nil
	}
	if t.seen[obj] {
		return nil
	}
	if t.visiting[obj] {
		return ErrCyclicReference
	}
	t.visiting[obj] = true

	if err := t.walkRefs(obj); err != nil {
		return err
	}
	for _, track := range obj.Base().AnimationTracks {
		if track != nil {
			if err := t.walk(track); err != nil {
				return err
			}
		}
	}

	delete(t.visiting, obj)
	t.seen[obj] = true
	t.objects = append(t.objects, obj)
	return nil
}

// walkRefs visits an object's direct references in the fixed order the
// format serializes them.
func (t *table) walkRefs(obj scene.Object) error {
	if n, ok := obj.(scene.NodeObject); ok {
		a := n.NodeAttrs().Alignment
		if a != nil {
			if err := t.walkNode(a.ZRef); err != nil {
				return err
			}
			if err := t.walkNode(a.YRef); err != nil {
				return err
			}
		}
	}

	switch o := obj.(type) {
	case *scene.World:
		if o.ActiveCamera != nil {
			if err := t.walk(o.ActiveCamera); err != nil {
				return err
			}
		}
		if o.Background != nil {
			if err := t.walk(o.Background); err != nil {
				return err
			}
		}
		return t.walkChildren(o.Children)

	case *scene.Group:
		return t.walkChildren(o.Children)

	case *scene.SkinnedMesh:
		if o.Skeleton != nil {
			if err := t.walk(o.Skeleton); err != nil {
				return err
			}
		}
		for _, b := range o.Bones {
			if err := t.walkNode(b.Bone); err != nil {
				return err
			}
		}
		return t.walkMeshRefs(&o.Mesh)

	case *scene.Mesh:
		return t.walkMeshRefs(o)

	case *scene.VertexBuffer:
		for _, a := range []*scene.VertexArray{o.Positions, o.Normals, o.Colors} {
			if a != nil {
				if err := t.walk(a); err != nil {
					return err
				}
			}
		}
		for _, tc := range o.TexCoords {
			if tc.Array != nil {
				if err := t.walk(tc.Array); err != nil {
					return err
				}
			}
		}
		return nil

	case *scene.Appearance:
		if o.Fog != nil {
			if err := t.walk(o.Fog); err != nil {
				return err
			}
		}
		if o.PolygonMode != nil {
			if err := t.walk(o.PolygonMode); err != nil {
				return err
			}
		}
		if o.Material != nil {
			if err := t.walk(o.Material); err != nil {
				return err
			}
		}
		for _, tex := range o.Textures {
			if tex != nil {
				if err := t.walk(tex); err != nil {
					return err
				}
			}
		}
		return nil

	case *scene.Texture2D:
		return t.walkImage(o.Image)

	case *scene.Background:
		if o.Image != nil {
			return t.walk(o.Image)
		}
		return nil

	case *scene.AnimationTrack:
		if o.Sequence == nil {
			return ErrMissingSequence
		}
		if err := t.recordSequenceUse(o.Sequence, o.Property); err != nil {
			return err
		}
		if err := t.walk(o.Sequence); err != nil {
			return err
		}
		if o.Controller != nil {
			return t.walk(o.Controller)
		}
		return nil
	}
	return nil
}

func (t *table) walkChildren(children []scene.NodeObject) error {
	for _, c := range children {
		if err := t.walkNode(c); err != nil {
			return err
		}
	}
	return nil
}

func (t *table) walkNode(n scene.NodeObject) error {
	if n == nil {
		return nil
	}
	return t.walk(n)
}

func (t *table) walkMeshRefs(m *scene.Mesh) error {
	if m.VertexBuffer != nil {
		if err := t.walk(m.VertexBuffer); err != nil {
			return err
		}
	}
	for _, s := range m.Submeshes {
		if s.IndexBuffer != nil {
			if err := t.walk(s.IndexBuffer); err != nil {
				return err
			}
		}
	}
	for _, s := range m.Submeshes {
		if s.Appearance != nil {
			if err := t.walk(s.Appearance); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *table) walkImage(src scene.ImageSource) error {
	switch img := src.(type) {
	case nil:
		return nil
	case *scene.Image2D:
		if img == nil {
			return nil
		}
		return t.walk(img)
	case *scene.ExternalReference:
		if img == nil || t.extSeen[img] {
			return nil
		}
		t.extSeen[img] = true
		t.externals = append(t.externals, img)
		return nil
	default:
		return fmt.Errorf("%w: image source %T", ErrUnknownObjectKind, src)
	}
}

// recordSequenceUse tracks how a shared keyframe sequence is targeted.
// Two tracks may share a sequence only if their properties demand the
// same axis conversion.
func (t *table) recordSequenceUse(seq *scene.KeyframeSequence, property uint32) error {
	prev, ok := t.seqUse[seq]
	if !ok {
		t.seqUse[seq] = property
		return nil
	}
	if conversionKind(prev) != conversionKind(property) {
		return fmt.Errorf("%w: properties %d and %d", ErrConflictingTrackUse, prev, property)
	}
	return nil
}
