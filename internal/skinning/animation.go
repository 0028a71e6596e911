package skinning

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Faultbox/skinbaker/internal/scene"
	"github.com/Faultbox/skinbaker/pkg/math"
)

// Keyframe is a timestamped local transform for one bone.
type Keyframe struct {
	Bone      int       `yaml:"bone"`
	Time      int64     `yaml:"time_ms"`
	Transform math.Mat4 `yaml:"transform"`
}

// AnimationClip is a run of keyframes sorted ascending by time. Keyframes
// with equal times keep their channel emission order.
type AnimationClip struct {
	Duration  int64      `yaml:"duration_ms"`
	Keyframes []Keyframe `yaml:"keyframes"`
}

// MergeAnimations converts each authored animation into a single merged,
// time-ordered keyframe stream, resolving channel targets against the
// flattened skeleton. Animation names are processed in sorted order so the
// output is reproducible run to run.
func MergeAnimations(animations map[string]*scene.Animation, skel *Skeleton) (map[string]*AnimationClip, error) {
	if len(animations) == 0 {
		return nil, errors.New("input model does not contain any animations")
	}

	names := make([]string, 0, len(animations))
	for name := range animations {
		names = append(names, name)
	}
	sort.Strings(names)

	clips := make(map[string]*AnimationClip, len(animations))
	for _, name := range names {
		clip, err := mergeAnimation(animations[name], skel)
		if err != nil {
			return nil, fmt.Errorf("animation %s: %w", name, err)
		}
		clips[name] = clip
	}
	return clips, nil
}

// mergeAnimation builds the union of an animation's per-bone channels.
func mergeAnimation(anim *scene.Animation, skel *Skeleton) (*AnimationClip, error) {
	var keyframes []Keyframe

	for _, channel := range anim.Channels {
		boneIndex, ok := skel.BoneIndex(channel.Bone)
		if !ok {
			return nil, fmt.Errorf("found animation for bone %q, which is not part of the skeleton", channel.Bone)
		}

		for _, sample := range channel.Samples {
			keyframes = append(keyframes, Keyframe{
				Bone:      boneIndex,
				Time:      sample.Time,
				Transform: sample.Transform,
			})
		}
	}

	// Stable sort keeps the per-channel emission order for equal times;
	// clip splitting relies on this ordering.
	sort.SliceStable(keyframes, func(i, j int) bool {
		return keyframes[i].Time < keyframes[j].Time
	})

	if len(keyframes) == 0 {
		return nil, errors.New("animation has no keyframes")
	}
	if anim.Duration <= 0 {
		return nil, errors.New("animation has a zero duration")
	}

	return &AnimationClip{Duration: anim.Duration, Keyframes: keyframes}, nil
}
