package lib

/* run.go contains the frame loop shared by the "spectrum" and "analyze"
modes. Frames are independent and each writes only its own files, so they are
processed concurrently. */

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/phil-mansfield/lpadiag/lib/config"
	"github.com/phil-mansfield/lpadiag/lib/logger"
	"github.com/phil-mansfield/lpadiag/lib/results"
)

// DiagnosticsFile is the name of the per-frame summary table written by the
// "analyze" mode.
const DiagnosticsFile = "diagnostics.csv"

// Threads returns the number of frames to process at once: n, limited to the
// number of available cores.
func Threads(n int) int {
	if n > runtime.NumCPU() {
		logger.WithComponent("run").Warn(fmt.Sprintf("%d threads requested, " +
			"but the system only has %d cores.", n, runtime.NumCPU()))
		return runtime.NumCPU()
	}
	if n < 1 { return 1 }
	return n
}

// Run processes every frame in args with the given mode and returns the
// report for each frame, in frame order. In AnalyzeMode the reports are also
// written to the results directory.
func Run(
	ctx context.Context, args *config.Args, mode Mode,
) ([]results.FrameReport, error) {
	if mode != SpectrumMode && mode != AnalyzeMode {
		return nil, fmt.Errorf("Frames cannot be processed in the '%s' mode.",
			mode)
	}

	var path results.Path
	if args.Write || args.Figure || mode == AnalyzeMode {
		var err error
		if path, err = results.NewPath(args.ResultDir); err != nil {
			return nil, err
		}
	}

	reports := make([]results.FrameReport, len(args.Frames))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(Threads(args.Threads))

	for i, frame := range args.Frames {
		i, frame := i, frame
		g.Go(func() error {
			if err := ctx.Err(); err != nil { return err }

			var err error
			if mode == SpectrumMode {
				reports[i], err = SpectrumFrame(args, path, frame)
			} else {
				reports[i], err = AnalyzeFrame(args, path, frame)
			}
			if err != nil {
				return fmt.Errorf("Frame %d could not be processed: %w",
					frame, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil { return nil, err }

	if mode == AnalyzeMode {
		err := results.WriteDiagnostics(path.File(DiagnosticsFile), reports)
		if err != nil { return nil, err }
	}
	return reports, nil
}
