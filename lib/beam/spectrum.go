package beam

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/stat"

	"github.com/phil-mansfield/lpadiag/lib/units"
)

// Spectrum is a set of binned charge spectra. Energy[i] and DQdE[i] are
// co-indexed: Energy[i][j] is the upper edge, in MeV, of the bin holding
// DQdE[i][j] C/MeV. There is one entry per species followed by an aggregate
// entry which sums every species on the axis of the species with the widest
// energy range.
type Spectrum struct {
	Energy, DQdE [][]float64
}

// Len returns the number of series, including the aggregate.
func (s *Spectrum) Len() int { return len(s.Energy) }

// NumSpecies returns the number of species, excluding the aggregate.
func (s *Spectrum) NumSpecies() int {
	if len(s.Energy) == 0 { return 0 }
	return len(s.Energy) - 1
}

// Aggregate returns the summed spectrum of all species.
func (s *Spectrum) Aggregate() (energy, dQdE []float64) {
	if len(s.Energy) == 0 { return nil, nil }
	return s.Energy[len(s.Energy) - 1], s.DQdE[len(s.DQdE) - 1]
}

// SpectrumOptions controls how spectra are binned.
type SpectrumOptions struct {
	// BinSize is the target bin width in MeV.
	BinSize float64
	// Density normalizes each species' histogram to unit area before
	// converting it to charge.
	Density bool
}

// DefaultSpectrumOptions returns 0.5 MeV bins without normalization.
func DefaultSpectrumOptions() SpectrumOptions {
	return SpectrumOptions{ BinSize: 0.5, Density: false }
}

// NewSpectrum bins the energies of each species, gamma[i], weighted by the
// macro-particle weights w[i]. On failure an empty Spectrum is returned
// along with ErrEmptyInput or ErrDegenerate.
func NewSpectrum(
	gamma, w [][]float64, opt SpectrumOptions,
) (*Spectrum, error) {
	s, err := newSpectrum(gamma, w, opt)
	if err != nil { return &Spectrum{ }, warn("spectrum", err) }
	return s, nil
}

func newSpectrum(
	gamma, w [][]float64, opt SpectrumOptions,
) (*Spectrum, error) {
	if len(gamma) == 0 {
		return nil, fmt.Errorf("%w: no species were given.", ErrEmptyInput)
	} else if len(gamma) != len(w) {
		return nil, fmt.Errorf("%w: %d species have gamma arrays, but %d " +
			"have weight arrays.", ErrDegenerate, len(gamma), len(w))
	} else if !(opt.BinSize > 0) {
		return nil, fmt.Errorf("%w: the bin size, %g MeV, is not positive.",
			ErrDegenerate, opt.BinSize)
	}

	n := len(gamma)
	s := &Spectrum{
		Energy: make([][]float64, n, n + 1),
		DQdE: make([][]float64, n, n + 1),
	}

	for i := range gamma {
		if len(gamma[i]) == 0 {
			return nil, fmt.Errorf("%w: species %d has no particles. Check " +
				"if the particle arrays are empty.", ErrEmptyInput, i)
		} else if len(gamma[i]) != len(w[i]) {
			return nil, fmt.Errorf("%w: species %d has %d gamma values but " +
				"%d weights.", ErrDegenerate, i, len(gamma[i]), len(w[i]))
		}

		en := units.GammaToEnergy(gamma[i])
		bins := int((floats.Max(en) - floats.Min(en))/opt.BinSize)
		if bins <= 0 {
			return nil, fmt.Errorf("%w: species %d spans less than one " +
				"%g MeV bin.", ErrDegenerate, i, opt.BinSize)
		}

		counts, edges := histogram(en, w[i], bins, opt.Density)
		floats.Scale(units.ElementaryCharge, counts)

		s.Energy[i] = edges[1:]
		s.DQdE[i] = counts
	}

	ref := s.Energy[widestSpecies(s.Energy)]
	total := make([]float64, len(ref))
	for i := 0; i < n; i++ {
		floats.Add(total, resample(ref, s.Energy[i], s.DQdE[i]))
	}

	s.Energy = append(s.Energy, append([]float64{ }, ref...))
	s.DQdE = append(s.DQdE, total)
	return s, nil
}

// histogram returns the weighted histogram of x over [min(x), max(x)] with
// equal-width bins. As with most histogramming code, every bin is half-open
// except the last, which also includes max(x).
func histogram(
	x, w []float64, bins int, density bool,
) (counts, edges []float64) {
	lo, hi := floats.Min(x), floats.Max(x)
	edges = make([]float64, bins + 1)
	floats.Span(edges, lo, hi)

	xs := append([]float64{ }, x...)
	idx := make([]int, len(xs))
	floats.Argsort(xs, idx)
	ws := make([]float64, len(idx))
	for i := range idx { ws[i] = w[idx[i]] }

	dividers := append([]float64{ }, edges...)
	dividers[bins] = math.Nextafter(hi, math.Inf(+1))
	counts = stat.Histogram(nil, dividers, xs, ws)

	if density {
		sum := floats.Sum(counts)
		for i := range counts {
			counts[i] /= sum*(edges[i+1] - edges[i])
		}
	}

	return counts, edges
}

// widestSpecies returns the index of the axis with the largest range. Ties go
// to the first.
func widestSpecies(energy [][]float64) int {
	best, bestRange := 0, math.Inf(-1)
	for i := range energy {
		r := floats.Max(energy[i]) - floats.Min(energy[i])
		if r > bestRange { best, bestRange = i, r }
	}
	return best
}

// resample linearly interpolates (x, y) onto the points xRef. Points outside
// the range of x take the value of the nearest end of y.
func resample(xRef, x, y []float64) []float64 {
	out := make([]float64, len(xRef))
	if len(x) == 1 {
		for i := range out { out[i] = y[0] }
		return out
	}

	pl := &interp.PiecewiseLinear{ }
	if err := pl.Fit(x, y); err != nil {
		panic(fmt.Sprintf("Internal error: %s", err.Error()))
	}
	for i := range xRef { out[i] = pl.Predict(xRef[i]) }
	return out
}
