// Command filmgrade renders an image through the color pipeline.
//
// Usage:
//
//	filmgrade -in scan.tiff -out print.png -params look.json
//	filmgrade -in scan.png -out thumb.png -thumb 512 -exposure 20
//	filmgrade -shader modern
//
// Parameters come from a JSON file (-params) with individual flags
// layered on top. 16-bit TIFF input renders through the 16-bit path
// when the output is also TIFF; everything else goes through the 8-bit
// path.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/tiff"

	"github.com/filmgrade/filmgrade"
	"github.com/filmgrade/filmgrade/cubelut"
	"github.com/filmgrade/filmgrade/shader"
)

func main() {
	var (
		inPath     = flag.String("in", "", "input image (png, jpeg or tiff)")
		outPath    = flag.String("out", "", "output image (png or tiff, by extension)")
		paramsPath = flag.String("params", "", "adjustment parameters JSON file")
		lutPath    = flag.String("lut", "", "optional .cube 3D LUT applied as a final look")
		thumb      = flag.Uint("thumb", 0, "downscale so the longest edge is N pixels")
		workers    = flag.Int("workers", 0, "render workers (0 = all CPUs)")
		shaderFlag = flag.String("shader", "", "print GLSL source for a variant (modern or legacy) and exit")
		verbose    = flag.Bool("v", false, "log render diagnostics to stderr")

		invert   = flag.Bool("invert", false, "treat input as a film negative")
		exposure = flag.Float64("exposure", 0, "exposure slider, -100 to 100")
		contrast = flag.Float64("contrast", 0, "contrast slider, -100 to 100")
		temp     = flag.Float64("temp", 0, "white balance temperature slider, -100 to 100")
		tint     = flag.Float64("tint", 0, "white balance tint slider, -100 to 100")
	)
	flag.Parse()

	if *verbose {
		filmgrade.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if *shaderFlag != "" {
		if err := dumpShader(*shaderFlag); err != nil {
			fatal(err)
		}
		return
	}

	if *inPath == "" || *outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	params := filmgrade.DefaultParams()
	if *paramsPath != "" {
		var err error
		params, err = loadParams(*paramsPath)
		if err != nil {
			fatal(err)
		}
	}
	params.Inverted = params.Inverted || *invert
	params.Exposure += float32(*exposure)
	params.Contrast += float32(*contrast)
	params.WhiteBalance.Temp += *temp
	params.WhiteBalance.Tint += *tint

	var look *cubelut.LUT3D
	if *lutPath != "" {
		var err error
		look, err = loadCube(*lutPath)
		if err != nil {
			fatal(err)
		}
	}

	if err := run(*inPath, *outPath, params, look, *thumb, *workers); err != nil {
		fatal(err)
	}
}

func run(inPath, outPath string, params filmgrade.AdjustmentParams, look *cubelut.LUT3D, thumb uint, workers int) error {
	src, err := decode(inPath)
	if err != nil {
		return err
	}

	rn := filmgrade.NewRenderer(params)

	// Deep pipelines keep 16-bit precision end to end when both sides
	// support it.
	if is16Bit(src) && isTIFF(outPath) && thumb == 0 {
		out, err := rn.RenderImage16(src, workers)
		if err != nil {
			return err
		}
		if look != nil {
			applyLook16(out, look)
		}
		return encode(outPath, out)
	}

	if thumb > 0 {
		src = resize.Thumbnail(thumb, thumb, src, resize.Lanczos3)
	}
	out, err := rn.RenderImage(src, workers)
	if err != nil {
		return err
	}
	if look != nil {
		applyLook8(out, look)
	}
	return encode(outPath, out)
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		img, err = tiff.Decode(f)
	case ".png":
		img, err = png.Decode(f)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(f)
	default:
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func encode(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// isTIFF matches the extension set decode and encode treat as TIFF.
func isTIFF(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		return true
	}
	return false
}

func is16Bit(img image.Image) bool {
	switch img.(type) {
	case *image.RGBA64, *image.NRGBA64, *image.Gray16:
		return true
	}
	return false
}

func loadParams(path string) (filmgrade.AdjustmentParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return filmgrade.AdjustmentParams{}, err
	}
	p := filmgrade.DefaultParams()
	if err := json.Unmarshal(data, &p); err != nil {
		return filmgrade.AdjustmentParams{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return filmgrade.Migrate(p), nil
}

func loadCube(path string) (*cubelut.LUT3D, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	l, err := cubelut.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

func applyLook8(img *image.RGBA, look *cubelut.LUT3D) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := img.RGBAAt(x, y)
			r, g, bl := look.Sample(float32(px.R)/255, float32(px.G)/255, float32(px.B)/255)
			img.SetRGBA(x, y, color.RGBA{
				R: quant8(r), G: quant8(g), B: quant8(bl), A: px.A,
			})
		}
	}
}

func applyLook16(img *image.RGBA64, look *cubelut.LUT3D) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := img.RGBA64At(x, y)
			r, g, bl := look.Sample(float32(px.R)/65535, float32(px.G)/65535, float32(px.B)/65535)
			img.SetRGBA64(x, y, color.RGBA64{
				R: quant16(r), G: quant16(g), B: quant16(bl), A: px.A,
			})
		}
	}
}

func quant8(v float32) uint8 {
	v = clamp01(v)
	return uint8(v*255 + 0.5)
}

func quant16(v float32) uint16 {
	v = clamp01(v)
	return uint16(v*65535 + 0.5)
}

func clamp01(v float32) float32 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func dumpShader(variant string) error {
	switch strings.ToLower(variant) {
	case "modern":
		fmt.Print(shader.Build(shader.VariantModern).Code)
	case "legacy":
		fmt.Print(shader.Build(shader.VariantLegacy).Code)
	default:
		return fmt.Errorf("unknown shader variant %q (want modern or legacy)", variant)
	}
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "filmgrade:", err)
	os.Exit(1)
}
