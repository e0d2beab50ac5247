package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/xlab/closer"

	"tileterrain/internal/config"
	"tileterrain/internal/profiling"
	"tileterrain/internal/terrain"
	"tileterrain/internal/tiles"
	"tileterrain/pkg/preset"
)

func main() {
	opts := parseFlags()

	closer.Bind(func() {
		if top := profiling.TopN(5); top != "" {
			log.Printf("profile: %s", top)
		}
	})
	closer.Checked(func() error { return run(opts) }, true)
	closer.Close()
}

func run(opts options) error {
	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}
	steps, err := terrain.ParseSteps(opts.steps)
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		steps = terrain.DefaultSteps
	}

	layout, err := tiles.NewLayout(opts.tilesX-1, opts.tilesY-1, opts.edge)
	if err != nil {
		return err
	}
	log.Printf("terrain: %dx%d tiles of %d samples, field %dx%d, steps %v",
		opts.tilesX, opts.tilesY, opts.edge, layout.W, layout.H, steps)

	store := tiles.NewFlatStore(layout.TilesX, layout.TilesY, layout.EdgeLen, 0)
	t := terrain.New(store)

	profiling.Reset()
	if err := t.Run(settings, steps...); err != nil {
		return err
	}

	if opts.savePreset != "" {
		if err := preset.Save(opts.savePreset, settings); err != nil {
			return err
		}
		log.Printf("saved settings to %s", opts.savePreset)
	}
	return writeOutputs(store, opts)
}

// loadSettings starts from Defaults or a preset and applies flag overrides.
func loadSettings(opts options) (config.Settings, error) {
	settings := config.Defaults()
	if opts.preset != "" {
		s, err := preset.NewLoader(opts.presetDir).Load(opts.preset)
		if err != nil {
			return config.Settings{}, fmt.Errorf("load preset: %w", err)
		}
		settings = s
	}
	if opts.seed >= 0 {
		settings.Seed = opts.seed
	}
	store := config.NewStore()
	store.Remember(settings)
	if opts.octaves > 0 {
		store.SetOctaves(opts.octaves)
	}
	if opts.blendWidth > 0 {
		store.SetBlendWidth(opts.blendWidth)
	}
	return store.Last(), nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: terraingen [flags]\n\n")
		flag.PrintDefaults()
	}
}
