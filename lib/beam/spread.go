package beam

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/phil-mansfield/lpadiag/lib/units"
)

// SpreadMode selects the level at which the width of a peak is measured.
type SpreadMode int

const (
	// FWHM measures the width at half of the peak's height.
	FWHM SpreadMode = iota
	// RMS measures the width at the standard deviation of the heights of
	// all located peaks.
	RMS
)

func (m SpreadMode) String() string {
	switch m {
	case FWHM: return "fwhm"
	case RMS: return "rms"
	}
	return fmt.Sprintf("SpreadMode(%d)", int(m))
}

// ParseSpreadMode converts "fwhm" or "rms" to a SpreadMode.
func ParseSpreadMode(s string) (SpreadMode, error) {
	switch s {
	case "fwhm", "FWHM": return FWHM, nil
	case "rms", "RMS": return RMS, nil
	}
	return FWHM, fmt.Errorf("'%s' is not an energy spread mode. The " +
		"recognized modes are 'fwhm' and 'rms'.", s)
}

// EnergySpread returns the absolute energy spread, deltaE in MeV, and the
// relative energy spread, deltaEE, of a spectrum.
//
// If peaks is nil, the spread is the dQ/dE-weighted standard deviation of
// energy over the whole spectrum and deltaEE is relative to the weighted
// mean energy. Otherwise the spread is the width of the k-th peak measured
// at the level chosen by mode, and deltaEE is relative to the peak energy.
//
// On failure (0, 0) is returned alongside ErrDegenerate or ErrEmptyInput.
func EnergySpread(
	energy, dQdE []float64, mode SpreadMode, peaks *Peaks, k int,
) (deltaE, deltaEE float64, err error) {
	if peaks == nil {
		deltaE, deltaEE, err = spectrumSpread(energy, dQdE)
	} else {
		deltaE, deltaEE, err = peakSpread(energy, dQdE, mode, peaks, k)
	}

	if err != nil { return 0, 0, warn("energy spread", err) }
	return deltaE, deltaEE, nil
}

func checkSpectrum(energy, dQdE []float64) error {
	if len(energy) == 0 {
		return fmt.Errorf("%w: the spectrum has no bins.", ErrEmptyInput)
	} else if len(energy) != len(dQdE) {
		return fmt.Errorf("%w: the spectrum has %d energies but %d " +
			"dQ/dE values.", ErrDegenerate, len(energy), len(dQdE))
	}
	return nil
}

func spectrumSpread(energy, dQdE []float64) (float64, float64, error) {
	if err := checkSpectrum(energy, dQdE); err != nil { return 0, 0, err }

	if sum := floats.Sum(dQdE); sum == 0 || math.IsNaN(sum) {
		return 0, 0, fmt.Errorf("%w: the spectrum's total charge is %g.",
			ErrDegenerate, sum)
	}

	mean, variance := stat.PopMeanVariance(energy, dQdE)
	if mean == 0 {
		return 0, 0, fmt.Errorf("%w: the spectrum's mean energy is zero.",
			ErrDegenerate)
	}

	deltaE := math.Sqrt(variance)
	return deltaE, deltaE/mean, nil
}

func peakSpread(
	energy, dQdE []float64, mode SpreadMode, peaks *Peaks, k int,
) (float64, float64, error) {
	if err := checkSpectrum(energy, dQdE); err != nil { return 0, 0, err }
	if k < 0 || k >= peaks.Len() {
		return 0, 0, fmt.Errorf("%w: peak %d was requested, but only %d " +
			"peaks were located.", ErrDegenerate, k, peaks.Len())
	}

	idx, ePeak, yPeak := peaks.Indices[k], peaks.Energy[k], peaks.DQdE[k]
	if ePeak == 0 {
		return 0, 0, fmt.Errorf("%w: the peak is at zero energy.",
			ErrDegenerate)
	}

	var level float64
	switch mode {
	case FWHM:
		level = 0.5*yPeak
	case RMS:
		level = stat.PopStdDev(peaks.DQdE, nil)
	default:
		return 0, 0, fmt.Errorf("%w: unrecognized mode %s.",
			ErrDegenerate, mode)
	}

	left, right, err := units.HalfHeightBrackets(dQdE, idx, level)
	if err != nil { return 0, 0, fmt.Errorf("%w: %s", ErrDegenerate, err) }

	xLeft, err := units.LinearCrossing(dQdE[left.Lo], dQdE[left.Hi],
		energy[left.Lo], energy[left.Hi], level)
	if err != nil { return 0, 0, fmt.Errorf("%w: %s", ErrDegenerate, err) }

	xRight, err := units.LinearCrossing(dQdE[right.Lo], dQdE[right.Hi],
		energy[right.Lo], energy[right.Hi], level)
	if err != nil { return 0, 0, fmt.Errorf("%w: %s", ErrDegenerate, err) }

	deltaE := math.Abs(xLeft - xRight)
	return deltaE, deltaE/ePeak, nil
}
