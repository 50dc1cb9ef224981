/*package snapshot loads the particles of a single simulation timestep and
selects subsets of them by energy and position.*/
package snapshot

import (
	"errors"
	"fmt"
	"math"

	g_error "github.com/phil-mansfield/lpadiag/lib/error"
	"github.com/phil-mansfield/lpadiag/lib/logger"
	"github.com/phil-mansfield/lpadiag/lib/particles"
	"github.com/phil-mansfield/lpadiag/lib/snapio"
)

// ErrNotLoaded is returned when an operation needs a quantity group that the
// snapshot was not loaded with.
var ErrNotLoaded = errors.New("quantity group not loaded")

// Snapshot holds the requested quantity groups of one snapshot file. Every
// column has one entry per particle. A Snapshot is never modified after
// Load returns.
type Snapshot struct {
	fileName string
	groups []Group
	loaded []bool
	n int

	names []string
	qdict map[string]int
	pid []int64
	cols map[string][]float64
}

// Load reads the given quantity groups from the snapshot file at path. If no
// groups are given, all of them are loaded. Columns are laid out in the order
// the groups are requested.
func Load(path string, groups ...Group) (*Snapshot, error) {
	if len(groups) == 0 { groups = AllGroups() }
	if err := checkGroups(groups); err != nil { return nil, err }

	log := logger.WithComponent("snapshot")
	log.Info(fmt.Sprintf("Processing particles: initialisation of %s", path))

	f, err := snapio.Open(path)
	if err != nil { return nil, err }
	return FromFile(f, groups...)
}

// FromFile is Load for an already-decoded bundle.
func FromFile(f *snapio.File, groups ...Group) (*Snapshot, error) {
	if len(groups) == 0 { groups = AllGroups() }
	if err := checkGroups(groups); err != nil { return nil, err }

	s := &Snapshot{
		fileName: f.FileName(),
		groups: append([]Group{ }, groups...),
		loaded: make([]bool, numGroups),
		n: -1,
		qdict: map[string]int{ },
		cols: map[string][]float64{ },
	}

	for _, g := range groups {
		var err error
		switch g {
		case Identity:
			err = s.readIdentity(f)
		case Momentum:
			err = s.readMomentum(f)
		default:
			for _, col := range groupColumns[g] {
				if err = s.readColumn(f, col); err != nil { break }
			}
		}
		if err != nil { return nil, err }

		s.loaded[g] = true
	}

	return s, nil
}

func (s *Snapshot) register(col string, n int) error {
	if s.n == -1 {
		s.n = n
	} else if s.n != n {
		return fmt.Errorf("The array '%s' in %s has %d entries, but the " +
			"arrays read before it have %d.", rawField(col), s.fileName, n, s.n)
	}

	s.qdict[col] = len(s.names)
	s.names = append(s.names, col)
	return nil
}

func (s *Snapshot) readIdentity(f *snapio.File) error {
	pid, err := f.Int64s(rawField("PID"))
	if err != nil { return err }
	if err = s.register("PID", len(pid)); err != nil { return err }
	s.pid = pid
	return nil
}

func (s *Snapshot) readColumn(f *snapio.File, col string) error {
	x, err := f.Float64s(rawField(col))
	if err != nil { return err }
	if err = s.register(col, len(x)); err != nil { return err }
	s.cols[col] = x
	return nil
}

func (s *Snapshot) readMomentum(f *snapio.File) error {
	for _, col := range []string{ "ux", "uy", "uz" } {
		if err := s.readColumn(f, col); err != nil { return err }
	}

	ux, uy, uz := s.cols["ux"], s.cols["uy"], s.cols["uz"]
	gamma := make([]float64, len(ux))
	for i := range gamma {
		gamma[i] = math.Sqrt(1 + ux[i]*ux[i] + uy[i]*uy[i] + uz[i]*uz[i])
	}

	if err := s.register("gamma", len(gamma)); err != nil { return err }
	s.cols["gamma"] = gamma
	return nil
}

// FileName returns the file the snapshot was loaded from.
func (s *Snapshot) FileName() string { return s.fileName }

// Len returns the number of particles.
func (s *Snapshot) Len() int {
	if s.n < 0 { return 0 }
	return s.n
}

// Groups returns the loaded quantity groups in the order they were
// requested.
func (s *Snapshot) Groups() []Group { return append([]Group{ }, s.groups...) }

// Loaded returns true if g was loaded.
func (s *Snapshot) Loaded(g Group) bool {
	return g >= 0 && g < numGroups && s.loaded[g]
}

// QDict returns a copy of the mapping from column name to column offset.
func (s *Snapshot) QDict() map[string]int {
	out := make(map[string]int, len(s.qdict))
	for k, v := range s.qdict { out[k] = v }
	return out
}

// Columns returns the column names in column order.
func (s *Snapshot) Columns() []string { return append([]string{ }, s.names...) }

// Float64s returns a copy of a float column, such as "gamma" or "z".
func (s *Snapshot) Float64s(name string) ([]float64, bool) {
	x, ok := s.cols[name]
	if !ok { return nil, false }
	return append([]float64{ }, x...), true
}

// PID returns a copy of the particle identity column.
func (s *Snapshot) PID() ([]int64, bool) {
	if !s.loaded[Identity] { return nil, false }
	return append([]int64{ }, s.pid...), true
}

// Table returns the loaded columns as a Particles collection in column
// order. The collection shares memory with the Snapshot and must not be
// modified; use FilterByIndices or Select for an independent copy.
func (s *Snapshot) Table() *particles.Particles {
	p := particles.New()
	for _, name := range s.names {
		var err error
		if name == "PID" {
			err = p.Add(particles.NewInt64(name, s.pid))
		} else {
			err = p.Add(particles.NewFloat64(name, s.cols[name]))
		}
		if err != nil {
			g_error.Internal("Column '%s' of %s could not be tabulated: %s",
				name, s.fileName, err.Error())
		}
	}
	return p
}

// FilterByIndices returns every loaded column projected onto the particles
// at idx, in the order of idx.
func (s *Snapshot) FilterByIndices(idx []int) (*particles.Particles, error) {
	p, err := s.Table().Take(idx)
	if err != nil {
		return nil, fmt.Errorf("Cannot filter %s: %w", s.fileName, err)
	}
	return p, nil
}
