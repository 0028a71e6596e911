// skinbaker converts intermediate scene documents into runtime-ready
// skeletal animation datasets.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Faultbox/skinbaker/internal/batch"
	"github.com/Faultbox/skinbaker/internal/config"
	"github.com/Faultbox/skinbaker/internal/logger"
	"github.com/Faultbox/skinbaker/internal/scene"
	"github.com/Faultbox/skinbaker/internal/skinning"
)

func main() {
	config.ParseFlags()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := args[0]
	rest := args[1:]

	switch command {
	case "process":
		cmdProcess(cfg, rest)
	case "batch":
		cmdBatch(cfg, rest)
	case "clips":
		cmdClips(rest)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`skinbaker - skinned model content pipeline

Usage:
  skinbaker [flags] <command> [args]

Commands:
  process <file.scene.yaml> [clips]  Process one scene document
  batch <input-dir>                  Process every scene document in a directory
  clips <file>                       Validate and list a clip definitions file

Flags:
  -config <path>     Config file path
  -max-bones <n>     Maximum supported bone count
  -effect <path>     Skinned effect resource path
  -workers <n>       Batch worker count
  -out <dir>         Output directory
  -debug             Enable debug logging

Examples:
  skinbaker process models/hero.scene.yaml
  skinbaker -workers 8 -out build/models batch models/
  skinbaker clips models/hero.clips`)
}

func newProcessor(cfg *config.Config) *skinning.Processor {
	return &skinning.Processor{
		MaxBones: cfg.Pipeline.MaxBones,
		Effect:   cfg.Pipeline.EffectPath,
		Log:      logger.Sugar,
	}
}

func cmdProcess(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: skinbaker process <file.scene.yaml> [clips]")
		os.Exit(1)
	}

	scenePath := args[0]
	clipsPath := strings.TrimSuffix(scenePath, batch.SceneExt) + cfg.Pipeline.ClipsExt
	if len(args) > 1 {
		clipsPath = args[1]
	}

	root, err := scene.Load(scenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := newProcessor(cfg).Process(root, skinning.FileClipSource(clipsPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	name := strings.TrimSuffix(filepath.Base(scenePath), batch.SceneExt)
	writer := batch.YAMLWriter{Dir: cfg.Batch.OutputDir}
	if err := writer.Write(name, data); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Processed: %s (%d bones, %d clips)\n", name, len(data.BindPose), len(data.Clips))
	for clipName, clip := range data.Clips {
		fmt.Printf("  %-20s %dms, %d keyframes\n", clipName, clip.Duration, len(clip.Keyframes))
	}
}

func cmdBatch(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: skinbaker batch <input-dir>")
		os.Exit(1)
	}

	scenes, err := batch.FindScenes(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(scenes) == 0 {
		fmt.Fprintf(os.Stderr, "No %s files found in %s\n", batch.SceneExt, args[0])
		os.Exit(1)
	}

	started := time.Now()
	results := batch.Run(batch.Config{
		ClipsExt:  cfg.Pipeline.ClipsExt,
		Workers:   cfg.Batch.Workers,
		Processor: newProcessor(cfg),
		Writer:    batch.YAMLWriter{Dir: cfg.Batch.OutputDir},
		Log:       logger.Sugar,
	}, scenes)

	manifest := batch.NewManifest(started, results)
	if cfg.Batch.WriteManifest {
		if err := manifest.WriteTo(cfg.Batch.OutputDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	for _, r := range results {
		if !r.Success {
			fmt.Fprintf(os.Stderr, "Failed: %s: %s\n", r.Asset, r.Error)
		}
	}
	fmt.Printf("Processed %d scenes, %d failed (%.1fs)\n",
		manifest.Total, manifest.Failed, time.Since(started).Seconds())

	if manifest.Failed > 0 {
		os.Exit(1)
	}
}

func cmdClips(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: skinbaker clips <file>")
		os.Exit(1)
	}

	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	defs, err := skinning.ParseClipDefinitions(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, def := range defs {
		fmt.Printf("%-20s frames %d-%d (%dms-%dms)\n",
			def.Name, def.StartFrame, def.EndFrame,
			skinning.FrameToTime(def.StartFrame), skinning.FrameToTime(def.EndFrame))
	}
	fmt.Fprintf(os.Stderr, "\n(%d clip definitions)\n", len(defs))
}
