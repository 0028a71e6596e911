// Package skinning converts an intermediate model hierarchy into a compact
// runtime skeletal animation dataset: a flattened bone list with bind and
// inverse bind poses, and named keyframe clips carved out of the authored
// master animations.
package skinning

import (
	"github.com/Faultbox/skinbaker/pkg/math"
)

// Reporter receives non-fatal validation warnings. *zap.SugaredLogger
// satisfies it.
type Reporter interface {
	Warnf(template string, args ...interface{})
}

type nopReporter struct{}

func (nopReporter) Warnf(string, ...interface{}) {}

// SkinningData is the runtime-ready payload attached to a processed model.
// BindPose, InverseBindPose and SkeletonHierarchy are index-parallel with
// the flattened bone list.
type SkinningData struct {
	BindPose          []math.Mat4               `yaml:"bind_pose"`
	InverseBindPose   []math.Mat4               `yaml:"inverse_bind_pose"`
	SkeletonHierarchy []int                     `yaml:"skeleton_hierarchy"`
	Clips             map[string]*AnimationClip `yaml:"clips"`
}
