package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"tileterrain/internal/heightfield"
	"tileterrain/internal/preview"
	"tileterrain/internal/profiling"
	"tileterrain/internal/tiles"
)

func writeOutputs(store tiles.Storage, opts options) error {
	if opts.previewPath == "" && opts.objPath == "" {
		return nil
	}
	f, _, err := tiles.Gather(store)
	if err != nil {
		return err
	}
	if opts.previewPath != "" {
		mode := preview.Grey
		if opts.relief {
			mode = preview.Relief
		}
		if err := writeFile(opts.previewPath, func(w io.Writer) error {
			return preview.Encode(w, f, mode, opts.previewSize)
		}); err != nil {
			return err
		}
		log.Printf("wrote preview %s", opts.previewPath)
	}
	if opts.objPath != "" {
		if err := writeFile(opts.objPath, func(w io.Writer) error {
			return writeOBJ(w, f, float32(opts.objSpacing))
		}); err != nil {
			return err
		}
		log.Printf("wrote mesh %s", opts.objPath)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	bw := bufio.NewWriter(file)
	if err := write(bw); err != nil {
		file.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}

// writeOBJ emits the field as a grid of two triangles per cell.
func writeOBJ(w io.Writer, f *heightfield.Field, spacing float32) error {
	defer profiling.Track("export.OBJ")()
	for _, v := range f.Vertices(spacing) {
		if _, err := fmt.Fprintf(w, "v %g %g %g\n", v.X(), v.Y(), v.Z()); err != nil {
			return err
		}
	}
	// OBJ indices are 1-based.
	for y := 0; y+1 < f.H; y++ {
		for x := 0; x+1 < f.W; x++ {
			a := tiles.Index(x, y, f.W) + 1
			b := a + 1
			c := a + f.W
			d := c + 1
			if _, err := fmt.Fprintf(w, "f %d %d %d\nf %d %d %d\n", a, c, b, b, c, d); err != nil {
				return err
			}
		}
	}
	return nil
}
