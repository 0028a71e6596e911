package skinning

import (
	"strings"
	"testing"

	"github.com/Faultbox/skinbaker/internal/scene"
)

func TestValidateMeshRemovesUnskinned(t *testing.T) {
	root := scene.NewNode("root")
	mesh := unskinnedMeshNode("crate")
	root.AddChild(mesh)
	root.AddChild(skinnedMeshNode("body", "Root"))

	log := &recordingReporter{}
	ValidateMesh(root, "", log)

	if len(root.Children) != 1 || root.Children[0].Name != "body" {
		t.Error("unskinned mesh should be detached, skinned mesh kept")
	}
	if len(log.warnings) != 1 {
		t.Fatalf("expected exactly 1 warning, got %d: %v", len(log.warnings), log.warnings)
	}
	if !strings.Contains(log.warnings[0], "crate") {
		t.Errorf("warning should name the removed mesh, got: %s", log.warnings[0])
	}
}

func TestValidateMeshPartialWeightsRemoved(t *testing.T) {
	// A mesh counts as skinned only if every geometry carries weights.
	root := scene.NewNode("root")
	mesh := skinnedMeshNode("body", "Root")
	mesh.Mesh.Geometries = append(mesh.Mesh.Geometries, &scene.Geometry{
		Positions: [][3]float32{{0, 0, 0}},
		Material:  scene.Material{Kind: scene.MaterialBasic},
	})
	root.AddChild(mesh)

	log := &recordingReporter{}
	ValidateMesh(root, "", log)

	if len(root.Children) != 0 {
		t.Error("mesh with a weightless geometry should be detached")
	}
}

func TestValidateMeshUnderBoneWarns(t *testing.T) {
	root := scene.NewNode("root")
	skeleton := testSkeleton()
	root.AddChild(skeleton)
	attached := skinnedMeshNode("sword", "Head")
	skeleton.Children[0].AddChild(attached) // under Spine

	log := &recordingReporter{}
	ValidateMesh(root, "", log)

	if len(log.warnings) != 1 {
		t.Fatalf("expected exactly 1 warning, got %d: %v", len(log.warnings), log.warnings)
	}
	if !strings.Contains(log.warnings[0], "sword") || !strings.Contains(log.warnings[0], "Spine") {
		t.Errorf("warning should name the mesh and its bone parent, got: %s", log.warnings[0])
	}

	// Warned but not removed
	if attached.Parent == nil {
		t.Error("mesh under bone should stay in the tree")
	}
}

func TestValidateMeshRemovesSiblings(t *testing.T) {
	// Removal mutates the child list mid-walk; all weightless siblings
	// must still be visited and removed.
	root := scene.NewNode("root")
	root.AddChild(unskinnedMeshNode("a"))
	root.AddChild(unskinnedMeshNode("b"))
	root.AddChild(unskinnedMeshNode("c"))

	log := &recordingReporter{}
	ValidateMesh(root, "", log)

	if len(root.Children) != 0 {
		t.Errorf("expected all weightless meshes removed, %d left", len(root.Children))
	}
	if len(log.warnings) != 3 {
		t.Errorf("expected 3 warnings, got %d", len(log.warnings))
	}
}

func TestValidateMeshSkipsRemovedSubtree(t *testing.T) {
	// Children of a removed mesh are not visited.
	root := scene.NewNode("root")
	mesh := unskinnedMeshNode("parent")
	child := unskinnedMeshNode("child")
	mesh.AddChild(child)
	root.AddChild(mesh)

	log := &recordingReporter{}
	ValidateMesh(root, "", log)

	if len(log.warnings) != 1 {
		t.Errorf("expected 1 warning for the parent mesh only, got %d: %v", len(log.warnings), log.warnings)
	}
}

func TestValidateMeshNilReporter(t *testing.T) {
	root := scene.NewNode("root")
	root.AddChild(unskinnedMeshNode("crate"))

	// Must not panic without a reporter
	ValidateMesh(root, "", nil)

	if len(root.Children) != 0 {
		t.Error("mesh should be removed even without a reporter")
	}
}
