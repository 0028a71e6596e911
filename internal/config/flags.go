package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagMaxBones = flag.Int("max-bones", 0, "Maximum supported bone count")
	flagEffect   = flag.String("effect", "", "Skinned effect resource path")
	flagWorkers  = flag.Int("workers", 0, "Batch worker count")
	flagOutput   = flag.String("out", "", "Batch output directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMaxBones > 0 {
		cfg.Pipeline.MaxBones = *flagMaxBones
	}
	if *flagEffect != "" {
		cfg.Pipeline.EffectPath = *flagEffect
	}
	if *flagWorkers > 0 {
		cfg.Batch.Workers = *flagWorkers
	}
	if *flagOutput != "" {
		cfg.Batch.OutputDir = *flagOutput
	}
}
