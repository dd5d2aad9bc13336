package cubelut

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCube = `# test fixture
TITLE "warm look"
LUT_3D_SIZE 2

# data rows, red fastest
0.0 0.0 0.0
1.0 0.1 0.0
0.0 0.9 0.1
1.0 1.0 0.1
0.1 0.0 1.0
1.0 0.1 1.0
0.1 1.0 1.0
1.0 1.0 1.0
`

func TestParse(t *testing.T) {
	l, err := Parse(strings.NewReader(sampleCube))
	require.NoError(t, err)

	assert.Equal(t, "warm look", l.Title)
	assert.Equal(t, 2, l.Size)
	assert.Equal(t, [3]float32{0, 0, 0}, l.DomainMin)
	assert.Equal(t, [3]float32{1, 1, 1}, l.DomainMax)
	require.Len(t, l.Data, 24)

	// Row order: red varies fastest. Index (r=1, g=0, b=0) is the
	// second triple.
	r, g, b := l.at(1, 0, 0)
	assert.Equal(t, float32(1.0), r)
	assert.Equal(t, float32(0.1), g)
	assert.Equal(t, float32(0.0), b)
}

func TestParseErrors(t *testing.T) {
	for _, tt := range []struct {
		name  string
		input string
		want  error
	}{
		{"no size", "0.0 0.0 0.0\n", ErrMissingSize},
		{"empty", "", ErrMissingSize},
		{"size too small", "LUT_3D_SIZE 1\n", ErrBadSize},
		{"size too large", "LUT_3D_SIZE 1000\n", ErrBadSize},
		{"truncated", "LUT_3D_SIZE 2\n0.0 0.0 0.0\n", ErrTruncated},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Parse(strings.NewReader("LUT_3D_SIZE 2\n0.0 zero 0.0\n"))
	assert.Error(t, err, "non-numeric data must fail")

	_, err = Parse(strings.NewReader("LUT_3D_SIZE 2\n0.0 0.0\n"))
	assert.Error(t, err, "two-value row must fail")
}

func TestWriteParseRoundTrip(t *testing.T) {
	orig, err := Parse(strings.NewReader(sampleCube))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, orig.Write(&buf))

	again, err := Parse(&buf)
	require.NoError(t, err)

	assert.Equal(t, orig.Title, again.Title)
	assert.Equal(t, orig.Size, again.Size)
	require.Len(t, again.Data, len(orig.Data))
	for i := range orig.Data {
		assert.InDelta(t, orig.Data[i], again.Data[i], 1e-6, "data[%d]", i)
	}
}

func TestWriteCustomDomain(t *testing.T) {
	l, err := New(2)
	require.NoError(t, err)
	l.DomainMin = [3]float32{-0.5, -0.5, -0.5}
	l.DomainMax = [3]float32{2, 2, 2}

	var buf bytes.Buffer
	require.NoError(t, l.Write(&buf))
	out := buf.String()
	assert.Contains(t, out, "DOMAIN_MIN -0.5 -0.5 -0.5")
	assert.Contains(t, out, "DOMAIN_MAX 2 2 2")

	again, err := Parse(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, l.DomainMin, again.DomainMin)
	assert.Equal(t, l.DomainMax, again.DomainMax)
}

func TestIdentitySampleIsIdentity(t *testing.T) {
	for _, size := range []int{2, 9, 17} {
		l, err := New(size)
		require.NoError(t, err)

		for _, c := range [][3]float32{
			{0, 0, 0}, {1, 1, 1}, {0.5, 0.5, 0.5},
			{0.25, 0.1, 0.9}, {0.33, 0.77, 0.01},
		} {
			r, g, b := l.Sample(c[0], c[1], c[2])
			assert.InDelta(t, c[0], r, 1e-4, "size %d red", size)
			assert.InDelta(t, c[1], g, 1e-4, "size %d green", size)
			assert.InDelta(t, c[2], b, 1e-4, "size %d blue", size)
		}
	}
}

func TestSampleClampsOutOfDomain(t *testing.T) {
	l, err := New(5)
	require.NoError(t, err)

	r, g, b := l.Sample(-1, 2, 0.5)
	assert.InDelta(t, 0.0, r, 1e-4)
	assert.InDelta(t, 1.0, g, 1e-4)
	assert.InDelta(t, 0.5, b, 1e-4)
}

// gammaLUT builds a per-channel power-law LUT, a smooth invertible
// transform.
func gammaLUT(t *testing.T, size int, gamma float32) *LUT3D {
	t.Helper()
	l, err := New(size)
	require.NoError(t, err)
	for i := range l.Data {
		l.Data[i] = math32.Pow(l.Data[i], gamma)
	}
	return l
}

func TestInvertGammaLUT(t *testing.T) {
	// gamma < 1 keeps the true inverse (t^(1/gamma)) gently curved
	// everywhere, so round-trip error is dominated by grid
	// interpolation and stays small. Steeper transforms degrade with
	// grid resolution, not with the solver.
	forward := gammaLUT(t, 17, 0.45)
	inverse := Invert(forward)

	maxErr, meanErr := RoundTripError(forward, inverse, 9)
	t.Logf("gamma 0.45 inversion: max=%.5f mean=%.5f", maxErr, meanErr)
	assert.Less(t, meanErr, float32(5e-3), "mean round-trip error")
	assert.Less(t, maxErr, float32(2e-2), "max round-trip error")
}

func TestInvertIdentityIsIdentity(t *testing.T) {
	forward, err := New(9)
	require.NoError(t, err)
	inverse := Invert(forward)

	maxErr, _ := RoundTripError(forward, inverse, 6)
	assert.Less(t, maxErr, float32(1e-3))
}
