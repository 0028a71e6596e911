// Package batch runs the skinning pipeline over whole directories of scene
// documents using a fixed worker pool. Items are independent, so workers
// never share mutable state.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/skinbaker/internal/scene"
	"github.com/Faultbox/skinbaker/internal/skinning"
)

// SceneExt is the file extension of scene interchange documents.
const SceneExt = ".scene.yaml"

// Config holds the shared resources for a batch run.
type Config struct {
	ClipsExt  string
	Workers   int
	Processor *skinning.Processor
	Writer    Writer
	Log       *zap.SugaredLogger
}

// Writer persists one processed dataset.
type Writer interface {
	Write(name string, data *skinning.SkinningData) error
}

// Result holds the outcome of processing one scene document.
type Result struct {
	Asset   string `yaml:"asset"`
	Success bool   `yaml:"success"`
	Error   string `yaml:"error,omitempty"`
	Bones   int    `yaml:"bones,omitempty"`
	Clips   int    `yaml:"clips,omitempty"`
}

// FindScenes returns all scene documents directly under dir, sorted by name
// so runs are reproducible.
func FindScenes(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: reading %s: %w", dir, err)
	}

	var scenes []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), SceneExt) {
			continue
		}
		scenes = append(scenes, filepath.Join(dir, e.Name()))
	}
	sort.Strings(scenes)
	return scenes, nil
}

// Run processes all scenes using a worker pool and returns one result per
// scene, in input order.
func Run(cfg Config, scenes []string) []Result {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	total := len(scenes)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.Infof("processed %d/%d scenes (%.1f/sec)", p, total, float64(p)/elapsed)
				}
			}
		}
	}()

	// Worker pool
	sceneChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range sceneChan {
				results[idx] = processScene(cfg, scenes[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range scenes {
		sceneChan <- i
	}
	close(sceneChan)

	wg.Wait()
	close(done)

	return results
}

func processScene(cfg Config, path string) Result {
	name := strings.TrimSuffix(filepath.Base(path), SceneExt)

	root, err := scene.Load(path)
	if err != nil {
		return Result{Asset: name, Error: err.Error()}
	}

	clipsPath := strings.TrimSuffix(path, SceneExt) + cfg.ClipsExt
	data, err := cfg.Processor.Process(root, skinning.FileClipSource(clipsPath))
	if err != nil {
		return Result{Asset: name, Error: err.Error()}
	}

	if err := cfg.Writer.Write(name, data); err != nil {
		return Result{Asset: name, Error: err.Error()}
	}

	return Result{
		Asset:   name,
		Success: true,
		Bones:   len(data.BindPose),
		Clips:   len(data.Clips),
	}
}
