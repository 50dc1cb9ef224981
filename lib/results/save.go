package results

import (
	"bufio"
	"os"

	"github.com/phil-mansfield/lpadiag/lib/beam"
)

// SaveOptions selects which spectrum outputs SaveSpectrum writes.
type SaveOptions struct {
	Write bool
	Figure bool
	Plot PlotConfig
}

// SaveSpectrum writes beam_spectrum_<frame>.bundle and/or
// beam_spectrum_<frame>.png to p. It returns the names of the files that
// were written.
func SaveSpectrum(
	p Path, frame int, s *beam.Spectrum, opt SaveOptions,
) ([]string, error) {
	written := []string{ }
	base := SpectrumName(frame)

	if opt.Write {
		name := p.File(base + ".bundle")
		if err := WriteSpectrum(name, s); err != nil { return written, err }
		written = append(written, name)
	}

	if opt.Figure {
		name := p.File(base + ".png")
		if err := writeFigure(name, s, opt.Plot); err != nil {
			return written, err
		}
		written = append(written, name)
	}

	return written, nil
}

func writeFigure(fileName string, s *beam.Spectrum, cfg PlotConfig) error {
	f, err := os.Create(fileName)
	if err != nil { return err }

	bw := bufio.NewWriter(f)
	if err = PlotSpectrum(bw, s, cfg); err != nil {
		f.Close()
		os.Remove(fileName)
		return err
	}
	if err = bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
