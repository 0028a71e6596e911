// Package config handles pipeline configuration loading and management.
package config

// Config holds all pipeline settings.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Batch    BatchConfig    `yaml:"batch"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PipelineConfig holds skinned-model processing settings.
type PipelineConfig struct {
	// MaxBones is the largest skeleton the runtime can address. It mirrors
	// the bone matrix palette size in the skinned effect, so raising it here
	// without updating the effect will break rendering.
	MaxBones int `yaml:"max_bones"`
	// EffectPath is the resource path of the skinned rendering effect that
	// every processed material is redirected to.
	EffectPath string `yaml:"effect_path"`
	// ClipsExt is the file extension of the clip definitions file expected
	// next to each scene document.
	ClipsExt string `yaml:"clips_ext"`
}

// BatchConfig holds batch conversion settings.
type BatchConfig struct {
	Workers   int    `yaml:"workers"`
	OutputDir string `yaml:"output_dir"`
	// WriteManifest controls whether a run manifest is written to the
	// output directory after a batch run.
	WriteManifest bool `yaml:"write_manifest"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			MaxBones:   59,
			EffectPath: "effects/skinned.fx",
			ClipsExt:   ".clips",
		},
		Batch: BatchConfig{
			Workers:       4,
			OutputDir:     "out",
			WriteManifest: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
