package skinning

import (
	"fmt"

	"github.com/Faultbox/skinbaker/internal/scene"
)

// RewriteMaterials redirects every geometry material in the tree to the
// skinned rendering effect at effectPath. Only basic materials can be
// converted; any other kind is an authoring error.
func RewriteMaterials(node *scene.Node, effectPath string) error {
	if node.IsMesh() {
		for _, geom := range node.Mesh.Geometries {
			if geom.Material.Kind != scene.MaterialBasic {
				return fmt.Errorf("mesh %s: only %s materials are supported, found %q",
					node.Name, scene.MaterialBasic, geom.Material.Kind)
			}
			geom.Material.Kind = scene.MaterialSkinned
			geom.Material.Effect = effectPath
		}
	}

	for _, child := range node.Children {
		if err := RewriteMaterials(child, effectPath); err != nil {
			return err
		}
	}
	return nil
}
