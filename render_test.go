package filmgrade

import (
	"image"
	"image/color"
	"testing"
)

func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x * 255 / max(w-1, 1))
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v / 2, B: 255 - v, A: 255})
		}
	}
	return img
}

func TestRenderImageMatchesPerPixel(t *testing.T) {
	rn := NewRenderer(nonTrivialParams())
	src := gradientImage(64, 16)

	out, err := rn.RenderImage(src, 4)
	if err != nil {
		t.Fatal(err)
	}

	for y := 0; y < 16; y += 5 {
		for x := 0; x < 64; x += 7 {
			px := src.NRGBAAt(x, y)
			wr, wg, wb8 := rn.ProcessPixel(px.R, px.G, px.B)
			got := out.RGBAAt(x, y)
			if got.R != wr || got.G != wg || got.B != wb8 {
				t.Fatalf("(%d,%d): got (%d, %d, %d), want (%d, %d, %d)",
					x, y, got.R, got.G, got.B, wr, wg, wb8)
			}
			if got.A != 255 {
				t.Fatalf("(%d,%d): alpha changed to %d", x, y, got.A)
			}
		}
	}
}

func TestRenderImageWorkerCountsAgree(t *testing.T) {
	rn := NewRenderer(nonTrivialParams())
	src := gradientImage(33, 21)

	serial, err := rn.RenderImage(src, 1)
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := rn.RenderImage(src, 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(serial.Pix) != len(parallel.Pix) {
		t.Fatal("buffer size mismatch")
	}
	for i := range serial.Pix {
		if serial.Pix[i] != parallel.Pix[i] {
			t.Fatalf("byte %d differs between worker counts", i)
		}
	}
}

func TestRenderImage16(t *testing.T) {
	rn := NewRenderer(nonTrivialParams())
	src := image.NewRGBA64(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			v := uint16(x * 65535 / 7)
			src.SetRGBA64(x, y, color.RGBA64{R: v, G: v, B: v, A: 65535})
		}
	}

	out, err := rn.RenderImage16(src, 2)
	if err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 8; x++ {
		v := uint16(x * 65535 / 7)
		wr, wg, wb16 := rn.ProcessPixel16(v, v, v)
		got := out.RGBA64At(x, 0)
		if got.R != wr || got.G != wg || got.B != wb16 {
			t.Fatalf("x=%d: got (%d, %d, %d), want (%d, %d, %d)",
				x, got.R, got.G, got.B, wr, wg, wb16)
		}
	}
}

func TestRenderImageErrors(t *testing.T) {
	rn := NewRenderer(DefaultParams())

	if _, err := rn.RenderImage(nil, 0); err != ErrNilImage {
		t.Errorf("nil image: err = %v, want ErrNilImage", err)
	}
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := rn.RenderImage(empty, 0); err != ErrEmptyImage {
		t.Errorf("empty image: err = %v, want ErrEmptyImage", err)
	}
	if _, err := rn.RenderImage16(nil, 0); err != ErrNilImage {
		t.Errorf("nil image 16: err = %v, want ErrNilImage", err)
	}
}

func TestRenderImageOffsetBounds(t *testing.T) {
	rn := NewRenderer(DefaultParams())
	src := image.NewRGBA(image.Rect(10, 20, 14, 23))
	for y := 20; y < 23; y++ {
		for x := 10; x < 14; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 100, G: 150, B: 200, A: 255})
		}
	}

	out, err := rn.RenderImage(src, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Bounds(); got != image.Rect(0, 0, 4, 3) {
		t.Fatalf("output bounds %v, want zero-origin 4x3", got)
	}
	if px := out.RGBAAt(0, 0); px.R != 100 || px.G != 150 || px.B != 200 {
		t.Errorf("offset source pixel lost: %v", px)
	}
}
