package skinning

import (
	"errors"
	"fmt"

	"github.com/Faultbox/skinbaker/internal/scene"
	"github.com/Faultbox/skinbaker/pkg/math"
)

// ErrNoSkeleton is returned when the model contains no bone subtree.
var ErrNoSkeleton = errors.New("input model does not contain a skeleton")

// Skeleton is the flattened bone hierarchy. Bones are ordered parent before
// child, so a bone's parent always has a smaller index.
type Skeleton struct {
	Bones []*scene.Node
	// index resolves animation channel targets. Bone names may be empty or
	// duplicated, so it must never be used for structural lookups.
	index map[string]int
	pos   map[*scene.Node]int
}

// FlattenSkeleton converts the bone subtree rooted at skeletonRoot into an
// ordered bone list. maxBones is the bone palette limit of the runtime
// skinned effect; exceeding it fails before any animation processing.
func FlattenSkeleton(skeletonRoot *scene.Node, maxBones int) (*Skeleton, error) {
	if skeletonRoot == nil {
		return nil, ErrNoSkeleton
	}

	skel := &Skeleton{
		index: make(map[string]int),
		pos:   make(map[*scene.Node]int),
	}
	collectBones(skeletonRoot, skel)

	if len(skel.Bones) > maxBones {
		return nil, fmt.Errorf("skeleton has %d bones, but the maximum supported is %d",
			len(skel.Bones), maxBones)
	}

	return skel, nil
}

// collectBones appends the bone subtree in preorder, which guarantees
// parents appear before their children.
func collectBones(node *scene.Node, skel *Skeleton) {
	if !node.IsBone() {
		return
	}

	skel.index[node.Name] = len(skel.Bones)
	skel.pos[node] = len(skel.Bones)
	skel.Bones = append(skel.Bones, node)

	for _, child := range node.Children {
		collectBones(child, skel)
	}
}

// Len returns the number of bones.
func (s *Skeleton) Len() int { return len(s.Bones) }

// BoneIndex resolves a bone name to its flattened index.
func (s *Skeleton) BoneIndex(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// BindPoses returns each bone's local bind transform, in bone order.
func (s *Skeleton) BindPoses() []math.Mat4 {
	poses := make([]math.Mat4, len(s.Bones))
	for i, bone := range s.Bones {
		poses[i] = bone.Transform
	}
	return poses
}

// InverseBindPoses returns the inverse of each bone's absolute bind
// transform, in bone order.
func (s *Skeleton) InverseBindPoses() []math.Mat4 {
	poses := make([]math.Mat4, len(s.Bones))
	for i, bone := range s.Bones {
		poses[i] = bone.Bone.AbsoluteTransform.Inverse()
	}
	return poses
}

// ParentIndices returns each bone's parent position in the flattened list,
// or -1 for bones with no parent bone. Parents are resolved by node
// identity, so unnamed or same-named bones cannot cross-link.
func (s *Skeleton) ParentIndices() []int {
	parents := make([]int, len(s.Bones))
	for i, bone := range s.Bones {
		parents[i] = -1
		if bone.Parent != nil && bone.Parent.IsBone() {
			if pi, ok := s.pos[bone.Parent]; ok {
				parents[i] = pi
			}
		}
	}
	return parents
}
