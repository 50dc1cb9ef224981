package lib

/* analyze.go contains the per-frame work of the "spectrum" and "analyze"
modes. */

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/phil-mansfield/lpadiag/lib/beam"
	"github.com/phil-mansfield/lpadiag/lib/config"
	"github.com/phil-mansfield/lpadiag/lib/logger"
	"github.com/phil-mansfield/lpadiag/lib/results"
)

// SpectrumFrame computes the energy spectrum of a frame and saves it to
// path. The returned report only has its Frame, Particles, and Charge fields
// set.
func SpectrumFrame(
	args *config.Args, path results.Path, frame int,
) (results.FrameReport, error) {
	rep, _, _, err := frameSpectrum(args, path, frame)
	return rep, err
}

// AnalyzeFrame computes the spectrum of a frame, saves it to path, and
// measures its peak energy, energy spread, and emittance.
func AnalyzeFrame(
	args *config.Args, path results.Path, frame int,
) (results.FrameReport, error) {
	log := logger.WithFrame(logger.WithComponent("analyze"), frame)

	rep, f, s, err := frameSpectrum(args, path, frame)
	if err != nil { return rep, err }

	if s != nil {
		measureSpectrum(args, log, s, &rep)
	}

	if args.EmittanceX != "" {
		x, err := f.Combined(args.EmittanceX)
		if err != nil { return rep, err }
		ux, err := f.Combined(args.EmittanceU)
		if err != nil { return rep, err }
		w, err := f.Combined("w")
		if err != nil { return rep, err }
		if args.EmittanceWeighted {
			rep.Emittance = beam.WeightedEmittance(x, ux, w)
		} else {
			rep.Emittance = beam.Emittance(x, ux, w)
		}
	}

	log.Info("Analyzed frame.", "peaks", rep.Peaks,
		"peak_energy", rep.PeakEnergy, "delta_E", rep.DeltaE,
		"delta_E_over_E", rep.DeltaEE, "emittance", rep.Emittance)
	return rep, nil
}

// measureSpectrum fills in the peak and energy spread fields of rep.
func measureSpectrum(
	args *config.Args, log *slog.Logger, s *beam.Spectrum,
	rep *results.FrameReport,
) {
	energy, dQdE := s.Aggregate()
	peaks, err := beam.FindPeaks(energy, dQdE, args.PeakWidth)
	if err != nil {
		log.Info("No peak was found in the spectrum.", "error", err.Error())
	}

	rep.Peaks = peaks.Len()
	k := highestPeak(peaks)
	if k >= 0 { rep.PeakEnergy = peaks.Energy[k] }

	if args.UsePeak && k >= 0 {
		rep.DeltaE, rep.DeltaEE, err = beam.EnergySpread(
			energy, dQdE, args.Spread, peaks, k,
		)
	} else {
		rep.DeltaE, rep.DeltaEE, err = beam.EnergySpread(
			energy, dQdE, args.Spread, nil, 0,
		)
	}
	if err != nil {
		log.Warn("The energy spread could not be measured.",
			"error", err.Error())
	}
}

func frameSpectrum(
	args *config.Args, path results.Path, frame int,
) (results.FrameReport, *Frame, *beam.Spectrum, error) {
	rep := results.FrameReport{ Frame: frame }

	f, err := CollectParticles(args, frame)
	if err != nil { return rep, nil, nil, err }
	rep.Particles = f.Len()

	gamma, err := f.PerSpecies("gamma")
	if err != nil { return rep, nil, nil, err }
	w, err := f.PerSpecies("w")
	if err != nil { return rep, nil, nil, err }

	for i := range w { rep.Charge += beam.Charge(w[i]) }

	s, err := beam.NewSpectrum(gamma, w, args.Spectrum)
	switch {
	case err == nil:
	case errors.Is(err, beam.ErrEmptyInput), errors.Is(err, beam.ErrDegenerate):
		logger.WithFrame(logger.WithComponent("analyze"), frame).Info(
			"No spectrum was computed for this frame.", "error", err.Error())
		return rep, f, nil, nil
	default:
		return rep, nil, nil, err
	}

	cfg := results.DefaultPlotConfig()
	cfg.Title = fmt.Sprintf("Frame %d", frame)
	cfg.Legend = args.Legend
	_, err = results.SaveSpectrum(path, frame, s, results.SaveOptions{
		Write: args.Write, Figure: args.Figure, Plot: cfg,
	})
	if err != nil { return rep, nil, nil, err }

	return rep, f, s, nil
}

// highestPeak returns the index of the peak with the largest dQ/dE, or -1
// if there are no peaks.
func highestPeak(peaks *beam.Peaks) int {
	if peaks == nil { return -1 }
	k := -1
	for i := range peaks.DQdE {
		if k < 0 || peaks.DQdE[i] > peaks.DQdE[k] { k = i }
	}
	return k
}
