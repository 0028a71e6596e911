package skinning

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/skinbaker/internal/scene"
	"github.com/Faultbox/skinbaker/pkg/math"
)

func TestFlattenTransformsBakesGeometry(t *testing.T) {
	root := scene.NewNode("root")
	group := scene.NewNode("group")
	group.Transform = math.Translate(1, 0, 0)
	mesh := skinnedMeshNode("body", "Root")
	mesh.Transform = math.Translate(0, 0, 2)
	group.AddChild(mesh)
	root.AddChild(group)

	skeleton := testSkeleton()
	root.AddChild(skeleton)

	FlattenTransforms(root, skeleton)

	// Both the group and mesh transforms end up in the vertices
	got := mesh.Mesh.Geometries[0].Positions[0]
	want := [3]float32{1, 0, 2}
	if got != want {
		t.Errorf("baked position: got %v, want %v", got, want)
	}

	if !group.Transform.IsIdentity() {
		t.Error("group transform should be reset to identity")
	}
	if !mesh.Transform.IsIdentity() {
		t.Error("mesh transform should be reset to identity")
	}
}

func TestFlattenTransformsCompositionOrder(t *testing.T) {
	root := scene.NewNode("root")
	group := scene.NewNode("group")
	group.Transform = math.RotateY(gomath.Pi / 2)
	mesh := skinnedMeshNode("body", "Root")
	mesh.Transform = math.Translate(1, 0, 0)
	group.AddChild(mesh)
	root.AddChild(group)

	skeleton := testSkeleton()
	root.AddChild(skeleton)

	FlattenTransforms(root, skeleton)

	// World = group rotation applied after the mesh translation, so the
	// origin vertex lands at (0, 0, -1), not (1, 0, 0).
	got := mesh.Mesh.Geometries[0].Positions[0]
	want := [3]float32{0, 0, -1}
	for i := range want {
		if d := got[i] - want[i]; d > 1e-5 || d < -1e-5 {
			t.Fatalf("baked position: got %v, want %v", got, want)
		}
	}
}

func TestFlattenTransformsNormals(t *testing.T) {
	root := scene.NewNode("root")
	mesh := skinnedMeshNode("body", "Root")
	mesh.Transform = math.Translate(5, 5, 5)
	root.AddChild(mesh)
	skeleton := testSkeleton()
	root.AddChild(skeleton)

	FlattenTransforms(root, skeleton)

	// Translation must not disturb normals
	got := mesh.Mesh.Geometries[0].Normals[0]
	if got != [3]float32{0, 0, 1} {
		t.Errorf("normal after translation bake: got %v, want (0, 0, 1)", got)
	}
}

func TestFlattenTransformsSkipsSkeleton(t *testing.T) {
	root := scene.NewNode("root")
	skeleton := testSkeleton()
	root.AddChild(skeleton)
	root.AddChild(skinnedMeshNode("body", "Root"))

	FlattenTransforms(root, skeleton)

	// Bone transforms survive verbatim for bind-pose extraction
	matNear(t, skeleton.Transform, math.Translate(0, 1, 0), "skeleton root transform")
	matNear(t, skeleton.Children[0].Transform, math.Translate(0, 2, 0), "spine transform")
}
