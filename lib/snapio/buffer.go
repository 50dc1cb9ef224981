package snapio

/* This file handles the in-memory store of named arrays shared by File and
Writer. Most of this code is just type switches.
*/

import (
	"fmt"

	g_error "github.com/phil-mansfield/lpadiag/lib/error"
)

// Buffer stores a set of named arrays in insertion order.
type Buffer struct {
	names []string
	varType map[string]string
	index map[string]int
	unit map[string]string

	f64 [][]float64
	i64 [][]int64
}

// newBuffer returns an empty Buffer.
func newBuffer() *Buffer {
	return &Buffer{
		varType: map[string]string{ }, index: map[string]int{ },
		unit: map[string]string{ },
	}
}

// add stores x under name. x must be a []float64 or []int64. The buffer takes
// ownership of x. Names cannot be used more than once.
func (buf *Buffer) add(name, unit string, x interface{}) error {
	if len(name) == 0 {
		return fmt.Errorf("Arrays must have non-empty names.")
	} else if len(name) > maxNameLen || len(unit) > maxNameLen {
		return fmt.Errorf("The name '%.32s...' or its unit is longer than " +
			"the %d-byte limit.", name, maxNameLen)
	} else if _, ok := buf.varType[name]; ok {
		return fmt.Errorf("The array name '%s' is used more than once.", name)
	}

	switch xx := x.(type) {
	case []float64:
		buf.f64 = append(buf.f64, xx)
		buf.index[name] = len(buf.f64) - 1
		buf.varType[name] = "f64"
	case []int64:
		buf.i64 = append(buf.i64, xx)
		buf.index[name] = len(buf.i64) - 1
		buf.varType[name] = "i64"
	default:
		return fmt.Errorf("The array '%s' has type %T, but only []float64 " +
			"and []int64 arrays can be stored.", name, x)
	}

	buf.names = append(buf.names, name)
	buf.unit[name] = unit
	return nil
}

// Get returns an interface pointing to the slice associated with a given
// name.
func (buf *Buffer) Get(name string) (interface{}, bool) {
	varType, ok := buf.varType[name]
	if !ok { return nil, false }

	idx := buf.index[name]
	switch varType {
	case "f64": return buf.f64[idx], true
	case "i64": return buf.i64[idx], true
	}

	g_error.Internal("Array '%s' has the unknown type '%s'.", name, varType)
	return nil, false
}

// length returns the number of elements in the named array.
func (buf *Buffer) length(name string) int {
	x, ok := buf.Get(name)
	if !ok { return 0 }
	switch xx := x.(type) {
	case []float64: return len(xx)
	case []int64: return len(xx)
	}
	g_error.Internal("Array '%s' is stored as a %T.", name, x)
	return 0
}
