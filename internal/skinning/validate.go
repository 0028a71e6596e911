package skinning

import "github.com/Faultbox/skinbaker/internal/scene"

// ValidateMesh walks the tree making sure every mesh can be skinned.
// Meshes without skin weights are detached (with a warning); meshes
// parented under a bone are warned about but left in place. parentBone is
// the name of the nearest ancestor bone, empty at the root.
func ValidateMesh(node *scene.Node, parentBone string, log Reporter) {
	if log == nil {
		log = nopReporter{}
	}

	if node.IsMesh() {
		if parentBone != "" {
			log.Warnf("mesh %s is a child of bone %s: meshes parented under bones are not supported", node.Name, parentBone)
		}

		if !meshHasSkinning(node.Mesh) {
			log.Warnf("mesh %s has no skin weights, removing it from the model", node.Name)
			if node.Parent != nil {
				node.Parent.RemoveChild(node)
			}
			return
		}
	} else if node.IsBone() {
		parentBone = node.Name
	}

	// Validation can detach children mid-walk, so iterate over a snapshot.
	children := make([]*scene.Node, len(node.Children))
	copy(children, node.Children)

	for _, child := range children {
		ValidateMesh(child, parentBone, log)
	}
}

// meshHasSkinning reports whether every geometry of the mesh carries a skin
// weights channel.
func meshHasSkinning(mesh *scene.Mesh) bool {
	for _, geom := range mesh.Geometries {
		if !geom.HasWeights() {
			return false
		}
	}
	return true
}
