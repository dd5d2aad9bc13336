package filmgrade

import (
	"image"
	"image/color"

	"github.com/filmgrade/filmgrade/internal/parallel"
)

// RenderImage runs the pixel pipeline over src and returns an 8-bit
// result. Rows are processed in parallel; workers <= 0 uses one worker
// per CPU. Alpha passes through untouched, with color values
// un-premultiplied before processing.
func (rn *Renderer) RenderImage(src image.Image, workers int) (*image.RGBA, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	bounds := src.Bounds()
	if bounds.Empty() {
		return nil, ErrEmptyImage
	}

	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	parallel.ForEachRow(bounds.Dy(), workers, func(y int) {
		sy := bounds.Min.Y + y
		for x := 0; x < bounds.Dx(); x++ {
			r, g, b, a := unmultiplied(src.At(bounds.Min.X+x, sy))
			or, og, ob := rn.ProcessPixel(uint8(r>>8), uint8(g>>8), uint8(b>>8))
			dst.SetRGBA(x, y, color.RGBA{R: or, G: og, B: ob, A: uint8(a >> 8)})
		}
	})
	return dst, nil
}

// RenderImage16 is the 16-bit variant, keeping full pipeline precision
// for batch export.
func (rn *Renderer) RenderImage16(src image.Image, workers int) (*image.RGBA64, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	bounds := src.Bounds()
	if bounds.Empty() {
		return nil, ErrEmptyImage
	}

	dst := image.NewRGBA64(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	parallel.ForEachRow(bounds.Dy(), workers, func(y int) {
		sy := bounds.Min.Y + y
		for x := 0; x < bounds.Dx(); x++ {
			r, g, b, a := unmultiplied(src.At(bounds.Min.X+x, sy))
			or, og, ob := rn.ProcessPixel16(uint16(r), uint16(g), uint16(b))
			dst.SetRGBA64(x, y, color.RGBA64{R: or, G: og, B: ob, A: uint16(a)})
		}
	})
	return dst, nil
}

// unmultiplied returns 16-bit channel values with alpha
// premultiplication undone, so transparent pixels do not darken
// through the pipeline.
func unmultiplied(c color.Color) (r, g, b, a uint32) {
	r, g, b, a = c.RGBA()
	if a == 0 {
		return 0, 0, 0, 0
	}
	if a != 0xffff {
		r = r * 0xffff / a
		g = g * 0xffff / a
		b = b * 0xffff / a
	}
	return r, g, b, a
}
