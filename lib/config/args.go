package config

import (
	"fmt"
	"strings"

	"github.com/phil-mansfield/lpadiag/lib/beam"
	"github.com/phil-mansfield/lpadiag/lib/format"
	"github.com/phil-mansfield/lpadiag/lib/logger"
	"github.com/phil-mansfield/lpadiag/lib/snapshot"
)

// Args stores configuration information. It is a post-processed version of
// RawArgs.
type Args struct {
	Input *format.Pattern
	Species []string
	Frames []int
	Groups []snapshot.Group

	Gamma, ROI *snapshot.Range

	Spectrum beam.SpectrumOptions
	PeakWidth float64
	// UsePeak is false if the spread is measured over the whole spectrum.
	UsePeak bool
	Spread beam.SpreadMode
	// EmittanceX and EmittanceU name the position and momentum columns used
	// for the emittance. Both are empty if it isn't computed.
	EmittanceX, EmittanceU string
	EmittanceWeighted bool

	ResultDir string
	Write, Figure bool
	Legend []string

	Threads int
	LogLevel, LogFormat string
}

// Process converts the raw user input to a format which is more useful for
// internal functions. This is also where validation happens, but nothing
// which requires interacting with external files.
func (raw *RawArgs) Process() (*Args, error) {
	args := &Args{
		Species: append([]string{ }, raw.Species...),
		Spectrum: beam.SpectrumOptions{
			BinSize: raw.BinSize, Density: raw.Density,
		},
		PeakWidth: raw.PeakWidth,
		EmittanceWeighted: raw.EmittanceWeighted,
		ResultDir: raw.ResultDir,
		Write: raw.Write, Figure: raw.Figure,
		Threads: raw.Threads,
		LogLevel: raw.LogLevel, LogFormat: raw.LogFormat,
	}
	if raw.Legend != nil { args.Legend = append([]string{ }, raw.Legend...) }

	var err error
	if raw.Input == "" {
		return nil, fmt.Errorf("The input variable has not been set.")
	} else if args.Input, err = format.ParsePattern(raw.Input); err != nil {
		return nil, err
	}

	if len(args.Species) == 0 {
		return nil, fmt.Errorf("No species were given.")
	} else if len(args.Species) > 1 && !args.Input.Uses(format.SpeciesVar) {
		return nil, fmt.Errorf("%d species were given, but the input " +
			"pattern '%s' doesn't have a {%%s,%s} variable.",
			len(args.Species), raw.Input, format.SpeciesVar)
	}

	if args.Frames, err = format.ExpandSequence(raw.Frames); err != nil {
		return nil, fmt.Errorf("The frames variable, '%s', is not valid. %s",
			raw.Frames, err.Error())
	} else if len(args.Frames) > 1 && !args.Input.Uses(format.FrameVar) {
		return nil, fmt.Errorf("%d frames were given, but the input " +
			"pattern '%s' doesn't have a {%%d,%s} variable.",
			len(args.Frames), raw.Input, format.FrameVar)
	}

	if args.Groups, err = snapshot.ParseGroups(raw.Quantities); err != nil {
		return nil, err
	}
	if !hasGroups(args.Groups, snapshot.Weight, snapshot.Momentum) {
		return nil, fmt.Errorf("The quantities %v must include Weight and " +
			"Momentum to compute spectra.", raw.Quantities)
	}

	if args.Gamma, err = parseRange("gamma", raw.Gamma); err != nil {
		return nil, err
	}
	if args.ROI, err = parseRange("roi", raw.ROI); err != nil {
		return nil, err
	} else if args.ROI != nil && !hasGroups(args.Groups, snapshot.Position) {
		return nil, fmt.Errorf("The quantities %v must include Position " +
			"to filter on roi.", raw.Quantities)
	}

	if !(args.Spectrum.BinSize > 0) {
		return nil, fmt.Errorf("binSize must be positive, but is %g.",
			args.Spectrum.BinSize)
	} else if !(args.PeakWidth > 0) {
		return nil, fmt.Errorf("peakWidth must be positive, but is %g.",
			args.PeakWidth)
	}

	if strings.ToLower(raw.Spread) != "none" {
		args.UsePeak = true
		if args.Spread, err = beam.ParseSpreadMode(raw.Spread); err != nil {
			return nil, err
		}
	}

	switch raw.EmittanceAxis {
	case "":
	case "x", "y":
		args.EmittanceX, args.EmittanceU =
			raw.EmittanceAxis, "u" + raw.EmittanceAxis
		if !hasGroups(args.Groups, snapshot.Position) {
			return nil, fmt.Errorf("The quantities %v must include " +
				"Position to compute the emittance.", raw.Quantities)
		}
	default:
		return nil, fmt.Errorf("emittanceAxis must be 'x', 'y', or empty, " +
			"but is '%s'.", raw.EmittanceAxis)
	}

	if (args.Write || args.Figure) && args.ResultDir == "" {
		return nil, fmt.Errorf("resultDir must be set to write results.")
	} else if args.Legend != nil && len(args.Legend) != len(args.Species) + 1 {
		return nil, fmt.Errorf("legend must have one label per species " +
			"plus one for their sum (%d labels), but has %d.",
			len(args.Species) + 1, len(args.Legend))
	}

	if args.Threads < 1 {
		return nil, fmt.Errorf("threads must be at least 1, but is %d.",
			args.Threads)
	} else if !logger.ValidLevel(args.LogLevel) {
		return nil, fmt.Errorf("'%s' is not a log level.", args.LogLevel)
	} else if !logger.ValidFormat(args.LogFormat) {
		return nil, fmt.Errorf("'%s' is not a log format.", args.LogFormat)
	}

	return args, nil
}

func hasGroups(groups []snapshot.Group, required ...snapshot.Group) bool {
	for _, r := range required {
		found := false
		for _, g := range groups {
			if g == r { found = true }
		}
		if !found { return false }
	}
	return true
}

func parseRange(name string, x []float64) (*snapshot.Range, error) {
	switch len(x) {
	case 0:
		return nil, nil
	case 1:
		return snapshot.Above(x[0]), nil
	case 2:
		if !(x[0] < x[1]) {
			return nil, fmt.Errorf("The %s range %v must have its lower " +
				"bound first.", name, x)
		}
		return snapshot.Between(x[0], x[1]), nil
	}
	return nil, fmt.Errorf("The %s range %v must have one or two elements.",
		name, x)
}
