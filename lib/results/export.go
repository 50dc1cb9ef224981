package results

import (
	"encoding/binary"
	"fmt"

	"github.com/phil-mansfield/lpadiag/lib/beam"
	"github.com/phil-mansfield/lpadiag/lib/compress"
	"github.com/phil-mansfield/lpadiag/lib/snapio"
)

const (
	EnergyUnit = "MeV"
	ChargeUnit = "C"
)

func energyName(i int) string { return fmt.Sprintf("%d/energy", i) }
func dQdEName(i int) string { return fmt.Sprintf("%d/dQdE", i) }

// WriteSpectrum writes every series of s to a bundle. Series i is stored as
// the arrays "i/energy" and "i/dQdE"; the last series is the aggregate.
func WriteSpectrum(fileName string, s *beam.Spectrum) error {
	if s.Len() == 0 {
		return fmt.Errorf("Cannot write an empty spectrum to %s.", fileName)
	}

	wr := snapio.NewWriter(binary.LittleEndian, compress.ZStd)
	for i := 0; i < s.Len(); i++ {
		err := wr.AddFloat64(energyName(i), EnergyUnit, s.Energy[i])
		if err != nil { return err }
		err = wr.AddFloat64(dQdEName(i), ChargeUnit, s.DQdE[i])
		if err != nil { return err }
	}

	return wr.Flush(fileName)
}

// ReadSpectrum reads a spectrum written by WriteSpectrum.
func ReadSpectrum(fileName string) (*beam.Spectrum, error) {
	f, err := snapio.Open(fileName)
	if err != nil { return nil, err }

	s := &beam.Spectrum{ }
	for i := 0; f.Has(energyName(i)); i++ {
		energy, err := f.Float64s(energyName(i))
		if err != nil { return nil, err }
		dQdE, err := f.Float64s(dQdEName(i))
		if err != nil { return nil, err }

		if len(energy) != len(dQdE) {
			return nil, fmt.Errorf("Series %d of %s has %d energies but %d " +
				"dQ/dE values.", i, fileName, len(energy), len(dQdE))
		}

		s.Energy = append(s.Energy, energy)
		s.DQdE = append(s.DQdE, dQdE)
	}

	if s.Len() == 0 {
		return nil, fmt.Errorf("%s does not contain a spectrum.", fileName)
	}
	return s, nil
}
