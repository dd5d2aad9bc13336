// Package cubelut reads, writes, samples and inverts 3D color lookup
// tables in the Adobe/IRIDAS .cube text format.
//
// A LUT3D maps RGB input to RGB output over a size-cubed grid with the
// red index varying fastest, matching the .cube row order. The GPU
// preview path binds the grid as a sampler3D texture; the CPU side
// uses Sample for trilinear evaluation.
package cubelut

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
)

// Format limits. Sizes follow the common .cube producers; 2 is the
// minimal meaningful grid and 256 is far beyond any practical file.
const (
	MinSize = 2
	MaxSize = 256
)

var (
	// ErrMissingSize is returned when a file lacks LUT_3D_SIZE.
	ErrMissingSize = errors.New("cubelut: missing LUT_3D_SIZE")

	// ErrBadSize is returned for a size outside [MinSize, MaxSize].
	ErrBadSize = errors.New("cubelut: size out of range")

	// ErrTruncated is returned when the file ends before size cubed
	// data rows.
	ErrTruncated = errors.New("cubelut: truncated data")
)

// LUT3D is a 3D color lookup table. Data holds size cubed RGB triples
// with red varying fastest, then green, then blue.
type LUT3D struct {
	Title     string
	Size      int
	DomainMin [3]float32
	DomainMax [3]float32
	Data      []float32 // len = Size*Size*Size*3
}

// New returns an identity LUT of the given size over the [0,1] domain.
func New(size int) (*LUT3D, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}
	l := &LUT3D{
		Size:      size,
		DomainMax: [3]float32{1, 1, 1},
		Data:      make([]float32, size*size*size*3),
	}
	step := 1 / float32(size-1)
	i := 0
	for b := 0; b < size; b++ {
		for g := 0; g < size; g++ {
			for r := 0; r < size; r++ {
				l.Data[i] = float32(r) * step
				l.Data[i+1] = float32(g) * step
				l.Data[i+2] = float32(b) * step
				i += 3
			}
		}
	}
	return l, nil
}

// Parse reads a .cube file. Comment lines (#) and blank lines are
// skipped; TITLE, LUT_3D_SIZE, DOMAIN_MIN and DOMAIN_MAX keywords are
// honored; every remaining line must be an RGB data row.
func Parse(r io.Reader) (*LUT3D, error) {
	l := &LUT3D{DomainMax: [3]float32{1, 1, 1}}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "TITLE"):
			l.Title = strings.Trim(strings.TrimSpace(strings.TrimPrefix(line, "TITLE")), `"`)

		case strings.HasPrefix(line, "LUT_3D_SIZE"):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "LUT_3D_SIZE")))
			if err != nil {
				return nil, fmt.Errorf("cubelut: line %d: bad size: %w", lineNo, err)
			}
			if n < MinSize || n > MaxSize {
				return nil, fmt.Errorf("%w: %d", ErrBadSize, n)
			}
			l.Size = n
			l.Data = make([]float32, 0, n*n*n*3)

		case strings.HasPrefix(line, "DOMAIN_MIN"):
			v, err := parseTriple(strings.TrimPrefix(line, "DOMAIN_MIN"))
			if err != nil {
				return nil, fmt.Errorf("cubelut: line %d: %w", lineNo, err)
			}
			l.DomainMin = v

		case strings.HasPrefix(line, "DOMAIN_MAX"):
			v, err := parseTriple(strings.TrimPrefix(line, "DOMAIN_MAX"))
			if err != nil {
				return nil, fmt.Errorf("cubelut: line %d: %w", lineNo, err)
			}
			l.DomainMax = v

		case strings.HasPrefix(line, "LUT_1D_SIZE"):
			return nil, fmt.Errorf("cubelut: line %d: 1D LUTs are not supported", lineNo)

		default:
			if l.Size == 0 {
				return nil, ErrMissingSize
			}
			v, err := parseTriple(line)
			if err != nil {
				return nil, fmt.Errorf("cubelut: line %d: %w", lineNo, err)
			}
			l.Data = append(l.Data, v[0], v[1], v[2])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("cubelut: %w", err)
	}

	if l.Size == 0 {
		return nil, ErrMissingSize
	}
	if want := l.Size * l.Size * l.Size * 3; len(l.Data) != want {
		return nil, fmt.Errorf("%w: %d of %d values", ErrTruncated, len(l.Data), want)
	}
	return l, nil
}

func parseTriple(s string) ([3]float32, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return [3]float32{}, fmt.Errorf("expected 3 values, got %d", len(fields))
	}
	var out [3]float32
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return [3]float32{}, err
		}
		out[i] = float32(v)
	}
	return out, nil
}

// Write emits the LUT in .cube format. DOMAIN_MIN/MAX lines are
// omitted when the domain is the default [0,1].
func (l *LUT3D) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if l.Title != "" {
		fmt.Fprintf(bw, "TITLE %q\n", l.Title)
	}
	fmt.Fprintf(bw, "LUT_3D_SIZE %d\n", l.Size)
	if l.DomainMin != [3]float32{} {
		fmt.Fprintf(bw, "DOMAIN_MIN %g %g %g\n", l.DomainMin[0], l.DomainMin[1], l.DomainMin[2])
	}
	if l.DomainMax != [3]float32{1, 1, 1} {
		fmt.Fprintf(bw, "DOMAIN_MAX %g %g %g\n", l.DomainMax[0], l.DomainMax[1], l.DomainMax[2])
	}
	for i := 0; i < len(l.Data); i += 3 {
		fmt.Fprintf(bw, "%.6f %.6f %.6f\n", l.Data[i], l.Data[i+1], l.Data[i+2])
	}
	return bw.Flush()
}

// at returns the grid value at integer coordinates, clamped to the
// grid.
func (l *LUT3D) at(r, g, b int) (float32, float32, float32) {
	clampIdx := func(i int) int {
		if i < 0 {
			return 0
		}
		if i >= l.Size {
			return l.Size - 1
		}
		return i
	}
	r, g, b = clampIdx(r), clampIdx(g), clampIdx(b)
	i := ((b*l.Size+g)*l.Size + r) * 3
	return l.Data[i], l.Data[i+1], l.Data[i+2]
}

// Sample evaluates the LUT at an RGB point with trilinear
// interpolation. Input is clamped to the LUT domain.
func (l *LUT3D) Sample(r, g, b float32) (float32, float32, float32) {
	fr := l.gridCoord(r, 0)
	fg := l.gridCoord(g, 1)
	fb := l.gridCoord(b, 2)

	r0, g0, b0 := int(fr), int(fg), int(fb)
	tr, tg, tb := fr-float32(r0), fg-float32(g0), fb-float32(b0)

	var out [3]float32
	for corner := 0; corner < 8; corner++ {
		dr, dg, db := corner&1, corner>>1&1, corner>>2&1
		cr, cg, cb := l.at(r0+dr, g0+dg, b0+db)
		w := pick(tr, dr) * pick(tg, dg) * pick(tb, db)
		out[0] += w * cr
		out[1] += w * cg
		out[2] += w * cb
	}
	return out[0], out[1], out[2]
}

// gridCoord maps a channel value into fractional grid coordinates,
// clamped so the integer cell index and its +1 neighbor stay valid.
func (l *LUT3D) gridCoord(v float32, ch int) float32 {
	lo, hi := l.DomainMin[ch], l.DomainMax[ch]
	span := hi - lo
	if span <= 0 {
		return 0
	}
	t := (v - lo) / span
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	f := t * float32(l.Size-1)
	limit := float32(l.Size-1) - 1e-4
	return math32.Min(f, math32.Max(limit, 0))
}

func pick(t float32, hi int) float32 {
	if hi == 1 {
		return t
	}
	return 1 - t
}
