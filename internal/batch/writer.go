package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/skinbaker/internal/skinning"
)

// YAMLWriter dumps processed datasets as YAML files. Packing into the
// engine's binary model container happens downstream in the engine
// importer; this output is for the build pipeline and for inspection.
type YAMLWriter struct {
	Dir string
}

// Write saves data as <name>.skin.yaml under the writer's directory.
func (w YAMLWriter) Write(name string, data *skinning.SkinningData) error {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return fmt.Errorf("batch: creating %s: %w", w.Dir, err)
	}

	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("batch: encoding %s: %w", name, err)
	}

	return os.WriteFile(filepath.Join(w.Dir, name+".skin.yaml"), out, 0644)
}
