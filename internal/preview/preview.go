package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"tileterrain/internal/heightfield"
)

// Mode selects how heights become pixels.
type Mode int

const (
	// Grey maps the field's own min..max to black..white.
	Grey Mode = iota
	// Relief colours water below sea level blue and land green to white.
	Relief
)

// Render rasterises f at one pixel per sample.
func Render(f *heightfield.Field, mode Mode) image.Image {
	lo, hi := f.MinMax()
	span := hi - lo
	if span == 0 {
		span = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, f.W, f.H))
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			h := f.At(x, y)
			var c color.RGBA
			switch mode {
			case Relief:
				c = reliefColor(h, lo, hi)
			default:
				g := uint8(255 * (h - lo) / span)
				c = color.RGBA{g, g, g, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// reliefColor shades depth below 0 in blues and elevation above 0 from
// green through brown to white.
func reliefColor(h, lo, hi float32) color.RGBA {
	if h < 0 {
		t := float32(1)
		if lo < 0 {
			t = 1 - h/lo
		}
		return color.RGBA{uint8(20 * t), uint8(40 + 80*t), uint8(90 + 120*t), 255}
	}
	t := float32(0)
	if hi > 0 {
		t = h / hi
	}
	switch {
	case t < 0.4:
		k := t / 0.4
		return color.RGBA{uint8(60 + 60*k), uint8(140 - 20*k), uint8(60), 255}
	case t < 0.8:
		k := (t - 0.4) / 0.4
		return color.RGBA{uint8(120 + 40*k), uint8(120 - 30*k), uint8(60 + 20*k), 255}
	default:
		k := (t - 0.8) / 0.2
		v := uint8(160 + 95*k)
		return color.RGBA{v, v, v, 255}
	}
}

// Fit scales img so its longer side is size pixels.
func Fit(img image.Image, size int) image.Image {
	b := img.Bounds()
	if size <= 0 || (b.Dx() <= size && b.Dy() <= size) {
		return img
	}
	w, h := size, size
	if b.Dx() > b.Dy() {
		h = max(1, b.Dy()*size/b.Dx())
	} else {
		w = max(1, b.Dx()*size/b.Dy())
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// Encode writes a PNG preview of f no larger than size pixels a side.
func Encode(w io.Writer, f *heightfield.Field, mode Mode, size int) error {
	if f.W == 0 || f.H == 0 {
		return fmt.Errorf("preview: empty field")
	}
	if err := png.Encode(w, Fit(Render(f, mode), size)); err != nil {
		return fmt.Errorf("preview: encode png: %w", err)
	}
	return nil
}
