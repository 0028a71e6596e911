package scene

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/skinbaker/pkg/math"
)

// Scene interchange document structure. Importers dump their parsed node
// tree into this YAML form; transforms are TRS with quaternion rotations.

type document struct {
	Root *docNode `yaml:"root"`
}

type docNode struct {
	Name        string      `yaml:"name"`
	Translation [3]float32  `yaml:"translation"`
	Rotation    *[4]float32 `yaml:"rotation"` // quaternion x y z w
	Scale       *[3]float32 `yaml:"scale"`
	Mesh        *docMesh    `yaml:"mesh"`
	Bone        *docBone    `yaml:"bone"`
	Children    []*docNode  `yaml:"children"`
}

type docMesh struct {
	Geometries []*docGeometry `yaml:"geometries"`
}

type docGeometry struct {
	Positions [][3]float32  `yaml:"positions"`
	Normals   [][3]float32  `yaml:"normals"`
	Weights   [][]docWeight `yaml:"weights"`
	Material  docMaterial   `yaml:"material"`
}

type docWeight struct {
	Bone   string  `yaml:"bone"`
	Weight float32 `yaml:"weight"`
}

type docMaterial struct {
	Kind    string `yaml:"kind"`
	Texture string `yaml:"texture"`
}

type docBone struct {
	Animations map[string]*docAnimation `yaml:"animations"`
}

type docAnimation struct {
	Duration int64         `yaml:"duration_ms"`
	Channels []*docChannel `yaml:"channels"`
}

type docChannel struct {
	Bone string    `yaml:"bone"`
	Keys []*docKey `yaml:"keys"`
}

type docKey struct {
	Time        int64       `yaml:"time_ms"`
	Translation [3]float32  `yaml:"translation"`
	Rotation    *[4]float32 `yaml:"rotation"`
	Scale       *[3]float32 `yaml:"scale"`
}

// Load reads a scene interchange document from disk.
func Load(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open %s: %w", path, err)
	}
	defer f.Close()

	root, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	return root, nil
}

// Parse decodes a scene interchange document into a node tree. Bone
// absolute transforms are accumulated from the root while building, so the
// importer only has to supply local TRS values.
func Parse(r io.Reader) (*Node, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("document has no root node")
	}
	return buildNode(doc.Root, nil, math.Identity())
}

func buildNode(d *docNode, parent *Node, parentWorld math.Mat4) (*Node, error) {
	if d.Mesh != nil && d.Bone != nil {
		return nil, fmt.Errorf("node %q is both mesh and bone", d.Name)
	}

	node := NewNode(d.Name)
	node.Transform = trsMatrix(d.Translation, d.Rotation, d.Scale)
	world := parentWorld.Mul(node.Transform)

	if d.Mesh != nil {
		mesh, err := buildMesh(d)
		if err != nil {
			return nil, err
		}
		node.Mesh = mesh
	}

	if d.Bone != nil {
		bone := &Bone{AbsoluteTransform: world}
		if len(d.Bone.Animations) > 0 {
			bone.Animations = make(map[string]*Animation, len(d.Bone.Animations))
			for name, da := range d.Bone.Animations {
				anim, err := buildAnimation(name, da)
				if err != nil {
					return nil, fmt.Errorf("node %q: %w", d.Name, err)
				}
				bone.Animations[name] = anim
			}
		}
		node.Bone = bone
	}

	if parent != nil {
		parent.AddChild(node)
	}
	for _, dc := range d.Children {
		if _, err := buildNode(dc, node, world); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func buildMesh(d *docNode) (*Mesh, error) {
	mesh := &Mesh{}
	for gi, dg := range d.Mesh.Geometries {
		if len(dg.Normals) > 0 && len(dg.Normals) != len(dg.Positions) {
			return nil, fmt.Errorf("node %q geometry %d: %d normals for %d positions",
				d.Name, gi, len(dg.Normals), len(dg.Positions))
		}
		if dg.Weights != nil && len(dg.Weights) != len(dg.Positions) {
			return nil, fmt.Errorf("node %q geometry %d: %d weight entries for %d positions",
				d.Name, gi, len(dg.Weights), len(dg.Positions))
		}

		geom := &Geometry{
			Positions: dg.Positions,
			Normals:   dg.Normals,
			Material: Material{
				Kind:    dg.Material.Kind,
				Texture: dg.Material.Texture,
			},
		}
		if geom.Material.Kind == "" {
			geom.Material.Kind = MaterialBasic
		}
		if dg.Weights != nil {
			geom.Weights = make([][]BoneWeight, len(dg.Weights))
			for vi, dw := range dg.Weights {
				weights := make([]BoneWeight, len(dw))
				for wi, w := range dw {
					weights[wi] = BoneWeight{Bone: w.Bone, Weight: w.Weight}
				}
				geom.Weights[vi] = weights
			}
		}
		mesh.Geometries = append(mesh.Geometries, geom)
	}
	return mesh, nil
}

func buildAnimation(name string, d *docAnimation) (*Animation, error) {
	anim := &Animation{Name: name, Duration: d.Duration}
	for _, dc := range d.Channels {
		if dc.Bone == "" {
			return nil, fmt.Errorf("animation %q has a channel without a bone name", name)
		}
		ch := Channel{Bone: dc.Bone}
		for _, k := range dc.Keys {
			ch.Samples = append(ch.Samples, Sample{
				Time:      k.Time,
				Transform: trsMatrix(k.Translation, k.Rotation, k.Scale),
			})
		}
		anim.Channels = append(anim.Channels, ch)
	}
	return anim, nil
}

// trsMatrix composes translation, rotation and scale into a local transform.
func trsMatrix(t [3]float32, r *[4]float32, s *[3]float32) math.Mat4 {
	m := math.Translate(t[0], t[1], t[2])
	if r != nil {
		q := math.Quat{X: r[0], Y: r[1], Z: r[2], W: r[3]}
		m = m.Mul(q.ToMat4())
	}
	if s != nil {
		m = m.Mul(math.Scale(s[0], s[1], s[2]))
	}
	return m
}
