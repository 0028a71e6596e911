package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Manifest records a whole batch run for later auditing.
type Manifest struct {
	RunID     string    `yaml:"run_id"`
	StartedAt time.Time `yaml:"started_at"`
	ElapsedMs int64     `yaml:"elapsed_ms"`
	Total     int       `yaml:"total"`
	Failed    int       `yaml:"failed"`
	Results   []Result  `yaml:"results"`
}

// NewManifest assembles a manifest from a finished run.
func NewManifest(started time.Time, results []Result) *Manifest {
	m := &Manifest{
		RunID:     uuid.NewString(),
		StartedAt: started,
		ElapsedMs: time.Since(started).Milliseconds(),
		Total:     len(results),
		Results:   results,
	}
	for _, r := range results {
		if !r.Success {
			m.Failed++
		}
	}
	return m
}

// WriteTo saves the manifest as YAML under dir.
func (m *Manifest) WriteTo(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("batch: creating %s: %w", dir, err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("batch: encoding manifest: %w", err)
	}

	return os.WriteFile(filepath.Join(dir, "manifest.yaml"), data, 0644)
}
