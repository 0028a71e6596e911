package skinning

import (
	"github.com/Faultbox/skinbaker/internal/scene"
	"github.com/Faultbox/skinbaker/pkg/math"
)

// FlattenTransforms bakes every node's local transform into its geometry
// and resets the node to identity, so all geometry ends up in a single
// unified coordinate space. The skeleton subtree is skipped entirely: bone
// transforms must survive verbatim for bind-pose extraction.
func FlattenTransforms(node, skeleton *scene.Node) {
	for _, child := range node.Children {
		if child == skeleton {
			continue
		}

		// Descendants first, so an ancestor transform is applied after the
		// locals beneath it and the composition order is preserved.
		FlattenTransforms(child, skeleton)

		bakeTransform(child, child.Transform)
		child.Transform = math.Identity()
	}
}

// bakeTransform applies m to every vertex and normal in the subtree.
func bakeTransform(node *scene.Node, m math.Mat4) {
	if m.IsIdentity() {
		return
	}

	if node.IsMesh() {
		for _, geom := range node.Mesh.Geometries {
			for i := range geom.Positions {
				geom.Positions[i] = m.TransformPoint(geom.Positions[i])
			}
			for i := range geom.Normals {
				geom.Normals[i] = m.TransformDirection(geom.Normals[i])
			}
		}
	}

	for _, child := range node.Children {
		bakeTransform(child, m)
	}
}
