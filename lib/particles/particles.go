/*package particles contains functions for manipulating named per-particle
fields and projecting them onto subsets of particles.*/
package particles

import (
	"fmt"
)

// Particles is an ordered collection of named fields (e.g. 'PID', 'x',
// 'gamma') which all have one entry per particle. The order in which fields
// are added is the column order used when the collection is exported.
type Particles struct {
	fields []Field
	index map[string]int
}

// Field is a generic interface around a named per-particle array.
type Field interface {
	// Name returns the name of the field.
	Name() string
	// Len returns the length of the underlying array.
	Len() int
	// Data returns the underlying array as an interface{}.
	Data() interface{}
	// Transfer transfers data from the Field to the appropriately named field
	// in dest. Particles are transfer from the indices 'from' to the indices
	// 'to'. These indices are passed as arrays to amortize the cost of error
	// handling and type conversion.
	Transfer(dest *Particles, from, to []int) error
	// CreateDestination adds an output field to p with the specified size
	// that has the correct name and type.
	CreateDestination(p *Particles, n int) error
}

// Type assertions
var (
	_ Field = &Int64{ }
	_ Field = &Float64{ }
)

// New creates an empty Particles collection.
func New() *Particles {
	return &Particles{ index: map[string]int{ } }
}

// Add appends a field. Every field must have a unique name and the same
// length as the fields already present.
func (p *Particles) Add(f Field) error {
	if _, ok := p.index[f.Name()]; ok {
		return fmt.Errorf("The field '%s' has already been added.", f.Name())
	} else if len(p.fields) > 0 && f.Len() != p.Len() {
		return fmt.Errorf("The field '%s' has %d particles, but the other " +
			"fields have %d.", f.Name(), f.Len(), p.Len())
	}

	p.index[f.Name()] = len(p.fields)
	p.fields = append(p.fields, f)
	return nil
}

// Len returns the number of particles. A collection without fields has
// zero particles.
func (p *Particles) Len() int {
	if len(p.fields) == 0 { return 0 }
	return p.fields[0].Len()
}

// NumFields returns the number of fields (columns).
func (p *Particles) NumFields() int { return len(p.fields) }

// Column returns the i-th field in column order.
func (p *Particles) Column(i int) Field { return p.fields[i] }

// Names returns the field names in column order.
func (p *Particles) Names() []string {
	names := make([]string, len(p.fields))
	for i := range p.fields { names[i] = p.fields[i].Name() }
	return names
}

// Get returns the field with the given name.
func (p *Particles) Get(name string) (Field, bool) {
	i, ok := p.index[name]
	if !ok { return nil, false }
	return p.fields[i], true
}

// Float64s returns the underlying array of a float field.
func (p *Particles) Float64s(name string) ([]float64, bool) {
	f, ok := p.Get(name)
	if !ok { return nil, false }
	x, ok := f.Data().([]float64)
	return x, ok
}

// Int64s returns the underlying array of an integer field.
func (p *Particles) Int64s(name string) ([]int64, bool) {
	f, ok := p.Get(name)
	if !ok { return nil, false }
	x, ok := f.Data().([]int64)
	return x, ok
}

// Take returns a new, detached collection containing the particles at the
// given indices, in the given order, with the same column layout as p.
func (p *Particles) Take(idx []int) (*Particles, error) {
	n := p.Len()
	for _, i := range idx {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("Index %d is outside the range of a " +
				"collection with %d particles.", i, n)
		}
	}

	to := make([]int, len(idx))
	for i := range to { to[i] = i }

	out := New()
	for _, f := range p.fields {
		if err := f.CreateDestination(out, len(idx)); err != nil {
			return nil, err
		}
		if err := f.Transfer(out, idx, to); err != nil { return nil, err }
	}
	return out, nil
}

// Int64 implements the Field interface for []int64 data. See the Field
// interface for documentation of this struct's methods.
type Int64 struct {
	name string
	data []int64
}

// NewInt64 creates a field with a given name associated with a given array.
func NewInt64(name string, x []int64) *Int64 {
	return &Int64{ name, x }
}

func (x *Int64) Name() string { return x.name }
func (x *Int64) Len() int { return len(x.data) }
func (x *Int64) Data() interface{} { return x.data }

func (x *Int64) CreateDestination(p *Particles, n int) error {
	return p.Add(NewInt64(x.name, make([]int64, n)))
}

func (x *Int64) Transfer(dest *Particles, from, to []int) error {
	destData, ok := dest.Int64s(x.name)
	if !ok {
		return fmt.Errorf("Destination Particles object does not contain " +
			"an []int64 field named '%s'.", x.name)
	}

	if len(from) != len(to) {
		return fmt.Errorf("'from' index array has length %d, but 'to' has " +
			"length %d.", len(from), len(to))
	}

	for i := range from {
		destData[to[i]] = x.data[from[i]]
	}

	return nil
}

// Float64 implements the Field interface for []float64 data. See the Field
// interface for documentation of this struct's methods.
type Float64 struct {
	name string
	data []float64
}

// NewFloat64 creates a field with a given name associated with a given array.
func NewFloat64(name string, x []float64) *Float64 {
	return &Float64{ name, x }
}

func (x *Float64) Name() string { return x.name }
func (x *Float64) Len() int { return len(x.data) }
func (x *Float64) Data() interface{} { return x.data }

func (x *Float64) CreateDestination(p *Particles, n int) error {
	return p.Add(NewFloat64(x.name, make([]float64, n)))
}

func (x *Float64) Transfer(dest *Particles, from, to []int) error {
	destData, ok := dest.Float64s(x.name)
	if !ok {
		return fmt.Errorf("Destination Particles object does not contain " +
			"a []float64 field named '%s'.", x.name)
	}

	if len(from) != len(to) {
		return fmt.Errorf("'from' index array has length %d, but 'to' has " +
			"length %d.", len(from), len(to))
	}

	for i := range from {
		destData[to[i]] = x.data[from[i]]
	}

	return nil
}
