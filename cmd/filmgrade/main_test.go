package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"

	"github.com/filmgrade/filmgrade"
)

func TestIsTIFF(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"out.tiff", true},
		{"out.tif", true},
		{"OUT.TIF", true},
		{"scan.TIFF", true},
		{"out.png", false},
		{"out.jpg", false},
		{"tif", false},
	}
	for _, tc := range cases {
		if got := isTIFF(tc.path); got != tc.want {
			t.Errorf("isTIFF(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

// TestDeepPipelineTifExtension verifies a 16-bit TIFF input written to a
// .tif output stays 16-bit end to end, same as .tiff.
func TestDeepPipelineTifExtension(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.tiff")

	src := image.NewRGBA64(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			v := uint16((x + y*4) * 4000)
			src.SetRGBA64(x, y, color.RGBA64{R: v, G: v / 2, B: 65535 - v, A: 65535})
		}
	}
	f, err := os.Create(inPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := tiff.Encode(f, src, nil); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	for _, ext := range []string{".tif", ".tiff"} {
		outPath := filepath.Join(dir, "out"+ext)
		if err := run(inPath, outPath, filmgrade.DefaultParams(), nil, 0, 1); err != nil {
			t.Fatalf("run with %s output: %v", ext, err)
		}
		out, err := decode(outPath)
		if err != nil {
			t.Fatalf("decode %s output: %v", ext, err)
		}
		if !is16Bit(out) {
			t.Errorf("%s output dropped to 8-bit (%T)", ext, out)
		}
	}
}
