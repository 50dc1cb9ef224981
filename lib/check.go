package lib

/* check.go contains the core functions of lpadiag's "check" mode. */

import (
	"errors"
	"fmt"

	"github.com/phil-mansfield/lpadiag/lib/config"
	"github.com/phil-mansfield/lpadiag/lib/logger"
	"github.com/phil-mansfield/lpadiag/lib/snapio"
	"github.com/phil-mansfield/lpadiag/lib/snapshot"
)

// Check confirms that every input file named by args exists, can be decoded,
// and contains the requested quantity groups. With CrashOnError, the first
// problem is returned. With WarnOnError, every problem is logged and they
// are returned together.
func Check(args *config.Args, strict CheckStrictness) error {
	log := logger.WithComponent("check")
	errs := []error{ }

	for _, frame := range args.Frames {
		for _, species := range args.Species {
			file := args.Input.Expand(frame, species)
			if err := checkFile(file, args.Groups); err != nil {
				if strict == CrashOnError { return err }
				log.Warn(err.Error(), "frame", frame, "species", species)
				errs = append(errs, err)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d input files have problems: %w",
			len(errs), len(args.Frames)*len(args.Species), errors.Join(errs...))
	}
	return nil
}

func checkFile(file string, groups []snapshot.Group) error {
	f, err := snapio.Open(file)
	if err != nil { return err }
	_, err = snapshot.FromFile(f, groups...)
	return err
}
