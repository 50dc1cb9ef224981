package beam

import (
	"fmt"
	"math"
)

// DefaultPeakWidth is the default expected peak width in MeV.
const DefaultPeakWidth = 50.0

// Peaks are the located peaks of a spectrum. Indices are bin indices into
// the spectrum, and Energy and DQdE are the spectrum's values at these bins.
type Peaks struct {
	Indices []int
	Energy, DQdE []float64
}

// Len returns the number of peaks.
func (p *Peaks) Len() int { return len(p.Indices) }

// FindPeaks locates the peaks of the spectrum (energy, dQdE) that are no
// wider than width MeV. The bins must be evenly spaced.
func FindPeaks(energy, dQdE []float64, width float64) (*Peaks, error) {
	p, err := findPeaks(energy, dQdE, width)
	if err != nil { return &Peaks{ }, warn("peak", err) }
	return p, nil
}

func findPeaks(energy, dQdE []float64, width float64) (*Peaks, error) {
	if len(energy) != len(dQdE) {
		return nil, fmt.Errorf("%w: the spectrum has %d energies but %d " +
			"dQ/dE values.", ErrDegenerate, len(energy), len(dQdE))
	} else if len(energy) < 2 {
		return nil, fmt.Errorf("%w: a spectrum with %d bins has no bin size.",
			ErrDegenerate, len(energy))
	}

	binSize := energy[1] - energy[0]
	if !(binSize > 0) {
		return nil, fmt.Errorf("%w: the bin size, %g MeV, is not positive.",
			ErrDegenerate, binSize)
	} else if math.IsNaN(width) || math.IsInf(width, 0) {
		return nil, fmt.Errorf("%w: the peak width is %g MeV.",
			ErrDegenerate, width)
	}

	nb := int(width/binSize)
	if nb < 2 {
		return nil, fmt.Errorf("%w: a %g MeV peak spans fewer than two " +
			"%g MeV bins.", ErrDegenerate, width, binSize)
	}

	widths := make([]float64, nb - 1)
	for i := range widths { widths[i] = float64(i + 1) }

	idx := findPeaksCWT(dQdE, widths)
	if len(idx) == 0 {
		return nil, fmt.Errorf("%w: no ridge line in the %d-bin spectrum " +
			"passed the length and signal-to-noise cuts.", ErrNoPeak,
			len(dQdE))
	}

	p := &Peaks{
		Indices: idx,
		Energy: make([]float64, len(idx)),
		DQdE: make([]float64, len(idx)),
	}
	for i, j := range idx {
		p.Energy[i], p.DQdE[i] = energy[j], dQdE[j]
	}
	return p, nil
}
