package results

import (
	"os"

	"github.com/phil-mansfield/lpadiag/lib/particles"
)

// FrameReport summarizes the diagnostics of a single frame.
type FrameReport struct {
	Frame int
	Particles int
	Charge float64
	Peaks int
	PeakEnergy float64
	DeltaE, DeltaEE float64
	Emittance float64
}

// Table returns the reports as a Particles-style column table with one row
// per report.
func Table(reports []FrameReport) *particles.Particles {
	n := len(reports)
	frame, num, peaks := make([]int64, n), make([]int64, n), make([]int64, n)
	charge, energy := make([]float64, n), make([]float64, n)
	dE, dEE, emit := make([]float64, n), make([]float64, n), make([]float64, n)

	for i, r := range reports {
		frame[i], num[i], peaks[i] =
			int64(r.Frame), int64(r.Particles), int64(r.Peaks)
		charge[i], energy[i] = r.Charge, r.PeakEnergy
		dE[i], dEE[i], emit[i] = r.DeltaE, r.DeltaEE, r.Emittance
	}

	t := particles.New()
	for _, f := range []particles.Field{
		particles.NewInt64("frame", frame),
		particles.NewInt64("particles", num),
		particles.NewFloat64("charge_C", charge),
		particles.NewInt64("peaks", peaks),
		particles.NewFloat64("peak_energy_MeV", energy),
		particles.NewFloat64("delta_E_MeV", dE),
		particles.NewFloat64("delta_E_over_E", dEE),
		particles.NewFloat64("emittance", emit),
	} {
		if err := t.Add(f); err != nil { panic(err.Error()) }
	}
	return t
}

// WriteDiagnostics writes the reports to fileName as CSV.
func WriteDiagnostics(fileName string, reports []FrameReport) error {
	f, err := os.Create(fileName)
	if err != nil { return err }
	if err = particles.WriteCSV(f, Table(reports)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
