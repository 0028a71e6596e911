package skinning

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/Faultbox/skinbaker/internal/scene"
	"github.com/Faultbox/skinbaker/pkg/math"
)

// recordingReporter captures warnings for assertions.
type recordingReporter struct {
	warnings []string
}

func (r *recordingReporter) Warnf(template string, args ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf(template, args...))
}

// stringClipSource serves clip definitions from an in-memory string.
type stringClipSource string

func (s stringClipSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(s))), nil
}

// boneNode builds a bone node with the given local and absolute transforms.
func boneNode(name string, local, absolute math.Mat4) *scene.Node {
	n := scene.NewNode(name)
	n.Transform = local
	n.Bone = &scene.Bone{AbsoluteTransform: absolute}
	return n
}

// skinnedMeshNode builds a one-triangle mesh with full weights on bone.
func skinnedMeshNode(name, bone string) *scene.Node {
	n := scene.NewNode(name)
	n.Mesh = &scene.Mesh{
		Geometries: []*scene.Geometry{{
			Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			Normals:   [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
			Weights: [][]scene.BoneWeight{
				{{Bone: bone, Weight: 1}},
				{{Bone: bone, Weight: 1}},
				{{Bone: bone, Weight: 1}},
			},
			Material: scene.Material{Kind: scene.MaterialBasic},
		}},
	}
	return n
}

// unskinnedMeshNode builds a mesh with no weights channel.
func unskinnedMeshNode(name string) *scene.Node {
	n := scene.NewNode(name)
	n.Mesh = &scene.Mesh{
		Geometries: []*scene.Geometry{{
			Positions: [][3]float32{{0, 0, 0}},
			Material:  scene.Material{Kind: scene.MaterialBasic},
		}},
	}
	return n
}

// testSkeleton builds Root -> Spine -> Head with unit translations and
// consistent absolute transforms.
func testSkeleton() *scene.Node {
	root := boneNode("Root", math.Translate(0, 1, 0), math.Translate(0, 1, 0))
	spine := boneNode("Spine", math.Translate(0, 2, 0), math.Translate(0, 3, 0))
	head := boneNode("Head", math.Translate(0, 3, 0), math.Translate(0, 6, 0))
	root.AddChild(spine)
	spine.AddChild(head)
	return root
}

// keyframeTimes extracts the time sequence of a clip.
func keyframeTimes(clip *AnimationClip) []int64 {
	times := make([]int64, len(clip.Keyframes))
	for i, kf := range clip.Keyframes {
		times[i] = kf.Time
	}
	return times
}

func equalTimes(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func matNear(t *testing.T, got, want math.Mat4, context string) {
	t.Helper()
	for i := 0; i < 16; i++ {
		d := got[i] - want[i]
		if d < 0 {
			d = -d
		}
		if d > 0.0001 {
			t.Fatalf("%s: element %d: got %f, want %f", context, i, got[i], want[i])
		}
	}
}
