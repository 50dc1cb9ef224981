package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/phil-mansfield/lpadiag/lib"
	"github.com/phil-mansfield/lpadiag/lib/config"
	"github.com/phil-mansfield/lpadiag/lib/error"
	"github.com/phil-mansfield/lpadiag/lib/logger"
)

func main() {
	// Parse arguments.
	mode, configFile, overrides, err := config.ParseCommandLine(os.Args[1:])
	if err != nil { error.External("%s\n\n%s", err.Error(), usage()) }

	if lib.Mode(mode) == lib.HelpMode {
		fmt.Println(usage())
		return
	}

	rawArgs, err := config.Load(configFile)
	if err != nil { error.External("%s", err.Error()) }
	if err = rawArgs.Overwrite(overrides); err != nil {
		error.External("%s", err.Error())
	}

	// Do processing that doesn't need external validation.
	args, err := rawArgs.Process()
	if err != nil { error.External("%s", err.Error()) }
	logger.Setup(args.LogLevel, args.LogFormat)

	// Run the chosen mode.
	switch m := lib.Mode(mode); m {
	case lib.CheckMode:
		Check(args)
	case lib.SpectrumMode, lib.AnalyzeMode:
		Analyze(args, m)
	default:
		error.External("You attempted to run lpadiag in the mode '%s', but " +
			"the only valid modes are %s.", mode, modeList())
	}
}

// Check runs lpadiag's "check" mode, which tests every input file for
// errors without analyzing it.
func Check(args *config.Args) {
	if err := lib.Check(args, lib.WarnOnError); err != nil {
		error.External("%s", err.Error())
	}
	fmt.Println("No errors detected.")
}

// Analyze runs lpadiag's "spectrum" and "analyze" modes, which write the
// spectrum of every frame and, for "analyze", its beam diagnostics.
// Unreadable input files are reported by Run, so they are not checked first.
func Analyze(args *config.Args, mode lib.Mode) {
	reports, err := lib.Run(context.Background(), args, mode)
	if err != nil { error.External("%s", err.Error()) }

	for _, r := range reports {
		if mode == lib.AnalyzeMode {
			fmt.Printf("frame %d: %d particles, Q = %.4g C, E = %.4g MeV, " +
				"dE/E = %.4g\n", r.Frame, r.Particles, r.Charge,
				r.PeakEnergy, r.DeltaEE)
		} else {
			fmt.Printf("frame %d: %d particles, Q = %.4g C\n",
				r.Frame, r.Particles, r.Charge)
		}
	}
}

func modeList() string {
	names := []string{ }
	for _, m := range lib.Modes() { names = append(names, "'" + string(m) + "'") }
	return strings.Join(names, ", ")
}

func usage() string {
	return fmt.Sprintf(`lpadiag %s

Usage: lpadiag <mode> [<config file>] [--<key> <value> ...]

Modes: %s

Configuration keys (also read from %s<KEY> environment variables):
  %s`, lib.Version, modeList(), config.EnvPrefix,
		strings.Join(config.Keys(), "\n  "))
}
