// Package scene holds the intermediate model representation consumed by the
// skinning pipeline: a node hierarchy with mesh and bone payloads, plus a
// loader for the YAML interchange documents produced by asset importers.
package scene

import "github.com/Faultbox/skinbaker/pkg/math"

// Node is one element of the model hierarchy. A node optionally carries a
// Mesh or a Bone payload; nodes with neither are plain grouping transforms.
type Node struct {
	Name      string
	Transform math.Mat4
	Parent    *Node
	Children  []*Node
	Mesh      *Mesh
	Bone      *Bone
}

// NewNode returns a node with an identity transform.
func NewNode(name string) *Node {
	return &Node{Name: name, Transform: math.Identity()}
}

// IsMesh reports whether the node carries mesh geometry.
func (n *Node) IsMesh() bool { return n.Mesh != nil }

// IsBone reports whether the node is part of a skeleton.
func (n *Node) IsBone() bool { return n.Bone != nil }

// AddChild appends child and sets its parent reference.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// RemoveChild detaches child from the node. Returns false if child is not a
// direct child.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return true
		}
	}
	return false
}

// FindSkeleton returns the first bone node in document (preorder) order, or
// nil if the tree contains no bones. The returned node is the skeleton root.
func FindSkeleton(root *Node) *Node {
	if root == nil {
		return nil
	}
	if root.IsBone() {
		return root
	}
	for _, child := range root.Children {
		if found := FindSkeleton(child); found != nil {
			return found
		}
	}
	return nil
}

// Mesh is the geometry payload of a mesh node.
type Mesh struct {
	Geometries []*Geometry
}

// Geometry is one drawable batch of a mesh sharing a single material.
type Geometry struct {
	Positions [][3]float32
	Normals   [][3]float32
	// Weights is the per-vertex skin weights channel, index-parallel with
	// Positions. A nil slice means the geometry carries no skin weights.
	Weights  [][]BoneWeight
	Material Material
}

// HasWeights reports whether the geometry carries a skin weights channel.
func (g *Geometry) HasWeights() bool { return g.Weights != nil }

// BoneWeight is a single bone influence on a vertex.
type BoneWeight struct {
	Bone   string
	Weight float32
}

// Material kinds understood by the pipeline.
const (
	MaterialBasic   = "basic"
	MaterialSkinned = "skinned"
)

// Material describes how a geometry is shaded.
type Material struct {
	Kind    string
	Texture string
	// Effect is the resource path of the rendering effect. The pipeline
	// fills this in when it rewrites materials for skinned rendering.
	Effect string
}

// Bone is the skeleton payload of a bone node.
type Bone struct {
	// AbsoluteTransform is the bone's accumulated world transform in the
	// bind pose.
	AbsoluteTransform math.Mat4
	// Animations maps animation name to its authored content. By
	// convention the importer attaches animations to the skeleton root.
	Animations map[string]*Animation
}

// Animation is one named animation as authored: a shared duration and one
// channel per animated bone, in document order.
type Animation struct {
	Name     string
	Duration int64 // milliseconds
	Channels []Channel
}

// Channel is the keyframe track targeting one bone.
type Channel struct {
	Bone    string
	Samples []Sample
}

// Sample is a single authored keyframe: a local transform at a point in time.
type Sample struct {
	Time      int64 // milliseconds from animation start
	Transform math.Mat4
}
