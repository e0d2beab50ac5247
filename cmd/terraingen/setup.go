package main

import (
	"flag"
)

type options struct {
	tilesX, tilesY int
	edge           int

	presetDir  string
	preset     string
	savePreset string
	steps      string

	seed       int64
	octaves    int
	blendWidth int

	previewPath string
	previewSize int
	relief      bool
	objPath     string
	objSpacing  float64
}

func parseFlags() options {
	var o options
	flag.IntVar(&o.tilesX, "tiles-x", 2, "number of tiles along x")
	flag.IntVar(&o.tilesY, "tiles-y", 2, "number of tiles along y")
	flag.IntVar(&o.edge, "edge", 255, "samples per tile edge")

	flag.StringVar(&o.presetDir, "preset-dir", "presets", "directory holding preset JSON files")
	flag.StringVar(&o.preset, "preset", "", "preset name to start from instead of the defaults")
	flag.StringVar(&o.savePreset, "save-preset", "", "write the applied settings to this JSON file")
	flag.StringVar(&o.steps, "steps", "", "comma separated steps (base,noise,seafloor,offset,blend); empty runs base,noise,seafloor,offset")

	flag.Int64Var(&o.seed, "seed", -1, "override the preset seed when >= 0")
	flag.IntVar(&o.octaves, "octaves", 0, "override the octave count when > 0")
	flag.IntVar(&o.blendWidth, "blend-width", 0, "override the blend width when > 0")

	flag.StringVar(&o.previewPath, "preview", "terrain.png", "PNG preview path, empty to skip")
	flag.IntVar(&o.previewSize, "preview-size", 1024, "longest preview side in pixels")
	flag.BoolVar(&o.relief, "relief", true, "colour the preview by elevation instead of greyscale")
	flag.StringVar(&o.objPath, "obj", "", "Wavefront OBJ mesh path, empty to skip")
	flag.Float64Var(&o.objSpacing, "obj-spacing", 100, "distance between samples in the mesh")
	flag.Parse()

	if o.tilesX < 1 || o.tilesY < 1 {
		fatalf("tiles-x and tiles-y must be at least 1")
	}
	if flag.NArg() > 0 {
		fatalf("unexpected arguments: %v", flag.Args())
	}
	return o
}
