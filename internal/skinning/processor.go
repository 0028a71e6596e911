package skinning

import (
	"fmt"
	"sort"

	"github.com/Faultbox/skinbaker/internal/scene"
)

// Processor runs the full skinned-model pipeline over a scene tree.
type Processor struct {
	// MaxBones is the largest skeleton the runtime skinned effect can
	// address.
	MaxBones int
	// Effect is the resource path materials are redirected to.
	Effect string
	// Log receives non-fatal warnings. May be nil.
	Log Reporter
}

// Process converts the model rooted at root into runtime skinning data.
// definitions supplies the frame ranges used to split the authored master
// animations into named clips. Any returned error aborts the whole asset;
// there is no partial output.
func (p *Processor) Process(root *scene.Node, definitions ClipSource) (*SkinningData, error) {
	ValidateMesh(root, "", p.Log)

	skeletonRoot := scene.FindSkeleton(root)
	if skeletonRoot == nil {
		return nil, ErrNoSkeleton
	}

	skel, err := FlattenSkeleton(skeletonRoot, p.MaxBones)
	if err != nil {
		return nil, err
	}

	FlattenTransforms(root, skeletonRoot)

	masters, err := MergeAnimations(skeletonRoot.Bone.Animations, skel)
	if err != nil {
		return nil, err
	}

	defs, err := p.readDefinitions(definitions)
	if err != nil {
		return nil, err
	}

	// Every master animation contributes its split clips to one result
	// set; later animations overwrite on name collision.
	clips := make(map[string]*AnimationClip)
	masterNames := make([]string, 0, len(masters))
	for name := range masters {
		masterNames = append(masterNames, name)
	}
	sort.Strings(masterNames)
	for _, name := range masterNames {
		for clipName, clip := range SplitClip(masters[name], defs) {
			clips[clipName] = clip
		}
	}

	if err := RewriteMaterials(root, p.Effect); err != nil {
		return nil, err
	}

	return &SkinningData{
		BindPose:          skel.BindPoses(),
		InverseBindPose:   skel.InverseBindPoses(),
		SkeletonHierarchy: skel.ParentIndices(),
		Clips:             clips,
	}, nil
}

// readDefinitions parses the whole definitions source eagerly, releasing
// the handle on every path.
func (p *Processor) readDefinitions(src ClipSource) ([]ClipDefinition, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("opening clip definitions: %w", err)
	}
	defer rc.Close()

	return ParseClipDefinitions(rc)
}
