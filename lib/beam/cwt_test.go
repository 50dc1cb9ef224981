package beam

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRicker(t *testing.T) {
	assert.InDeltaSlice(t, []float64{ 0.8673250705840776 }, ricker(1, 1), 1e-12)

	w := ricker(10, 1)
	assert.InDelta(t, 0.5740587662433106, w[4], 1e-12)
	for i := range w {
		assert.InDelta(t, w[i], w[len(w) - 1 - i], 1e-15, "%d", i)
	}
}

func TestConvolveSame(t *testing.T) {
	tests := []struct {
		x, k, out []float64
	} {
		{ []float64{ 1, 2, 3 }, []float64{ 0, 1, 0.5 }, []float64{ 1, 2.5, 4 } },
		{ []float64{ 1, 2, 3, 4 }, []float64{ 1, 1 }, []float64{ 1, 3, 5, 7 } },
		{ []float64{ 1, 2, 3 }, []float64{ 1, 1, 1 }, []float64{ 3, 6, 5 } },
		{ []float64{ 5 }, []float64{ 2 }, []float64{ 10 } },
	}

	for i := range tests {
		out := convolveSame(tests[i].x, tests[i].k)
		assert.InDeltaSlice(t, tests[i].out, out, 1e-12, "%d)", i)
	}
}

func TestRelativeMaxima(t *testing.T) {
	row := []float64{ 3, 1, 2, 1, 1, 4, 4, 0, 5 }
	expected := []bool{ false, false, true, false, false, false, false,
		false, false }
	assert.Equal(t, expected, relativeMaxima(row))
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		x []float64
		p, out float64
	} {
		{ []float64{ 4, 1, 3, 2 }, 10, 1.3 },
		{ []float64{ 4, 1, 3, 2 }, 50, 2.5 },
		{ []float64{ 4, 1, 3, 2 }, 100, 4 },
		{ []float64{ 7 }, 10, 7 },
	}

	for i := range tests {
		out := percentile(tests[i].x, tests[i].p)
		if math.Abs(out - tests[i].out) > 1e-12 {
			t.Errorf("%d) Expected percentile(%g, %g) = %g, got %g.", i,
				tests[i].x, tests[i].p, tests[i].out, out)
		}
	}
}

func gaussians(n int, centers, heights []float64, sigma float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		for j := range centers {
			d := float64(i) - centers[j]
			out[i] += heights[j]*math.Exp(-d*d/(2*sigma*sigma))
		}
	}
	return out
}

func TestFindPeaksCWT(t *testing.T) {
	widths := make([]float64, 9)
	for i := range widths { widths[i] = float64(i + 1) }

	peaks := findPeaksCWT(gaussians(121, []float64{ 60.3 },
		[]float64{ 1 }, 8), widths)
	require.Equal(t, 1, len(peaks))
	assert.InDelta(t, 60.3, float64(peaks[0]), 1.5)

	peaks = findPeaksCWT(gaussians(121, []float64{ 30.2, 90.4 },
		[]float64{ 1, 0.6 }, 5), widths)
	require.Equal(t, 2, len(peaks))
	assert.InDelta(t, 30.2, float64(peaks[0]), 1.5)
	assert.InDelta(t, 90.4, float64(peaks[1]), 1.5)

	assert.Equal(t, 0, len(findPeaksCWT(make([]float64, 50), widths)))
}

func TestFindPeaks(t *testing.T) {
	energy := make([]float64, 121)
	for i := range energy { energy[i] = 0.5*float64(i + 1) }
	dQdE := gaussians(121, []float64{ 60.3 }, []float64{ 2e-12 }, 8)

	p, err := FindPeaks(energy, dQdE, 5)
	require.NoError(t, err)
	require.Equal(t, 1, p.Len())
	assert.Equal(t, energy[p.Indices[0]], p.Energy[0])
	assert.Equal(t, dQdE[p.Indices[0]], p.DQdE[0])
	assert.InDelta(t, 30.65, p.Energy[0], 0.75)

	// The located peak feeds straight into the energy spread.
	deltaE, _, err := EnergySpread(energy, dQdE, FWHM, p, 0)
	require.NoError(t, err)
	fwhm := 2*math.Sqrt(2*math.Ln2)*8*0.5
	assert.InDelta(t, fwhm, deltaE, 0.1)
}

func TestFindPeaksFailure(t *testing.T) {
	energy := []float64{ 0.5, 1, 1.5, 2 }
	tests := []struct {
		energy, dQdE []float64
		width float64
		err error
	} {
		{ energy, []float64{ 1, 2 }, 5, ErrDegenerate },
		{ energy[:1], []float64{ 1 }, 5, ErrDegenerate },
		{ []float64{ 1, 1, 1 }, []float64{ 0, 1, 0 }, 5, ErrDegenerate },
		{ energy, []float64{ 0, 1, 1, 0 }, 0.5, ErrDegenerate },
		{ energy, []float64{ 0, 1, 1, 0 }, math.NaN(), ErrDegenerate },
		{ energy, []float64{ 0, 0, 0, 0 }, 5, ErrNoPeak },
	}

	for i := range tests {
		p, err := FindPeaks(tests[i].energy, tests[i].dQdE, tests[i].width)
		if !errors.Is(err, tests[i].err) {
			t.Errorf("%d) Expected error %v, got %v.", i, tests[i].err, err)
		}
		assert.Equal(t, 0, p.Len(), "%d)", i)
	}
}
