/*package snapio reads and writes lpadiag bundle files: flat key-value
collections of named numeric arrays, such as the per-particle quantities of a
single simulation timestep or the per-species arrays of an exported spectrum.

A bundle is laid out as:

   magic uint32 | version uint32 | nBlocks uint32 | block ...

and each block as:

   name | unit | type uint32 | codec uint32 | n int64 | size int64 | payload

where strings are a uint32 length followed by raw bytes. Everything is stored
in the byte order of the machine that wrote the file, which readers detect
from the magic number. Types follow the usual convention: "f64" is a 64-bit
float and "i64" is a 64-bit signed integer.
*/
package snapio

import (
	"errors"
	"fmt"
)

const (
	// MagicNumber is an arbitrary number at the start of every bundle which
	// helps identify when the code is run on something else by accident.
	MagicNumber = 0xbea3f00d
	// ReverseMagicNumber is the magic number if read on a machine with
	// flipped endianness.
	ReverseMagicNumber = 0x0df0a3be
	Version = 1

	// maxNameLen bounds the length of names and units. Anything longer is
	// assumed to be a corrupted length word.
	maxNameLen = 1<<12
	// zstdMaxRatio bounds how many bytes a single compressed byte can
	// expand to: a zstd RLE block is four bytes for at most 128 KiB.
	zstdMaxRatio = 1<<15
)

// TypeFlag identifies the element type of a block.
type TypeFlag uint32
const (
	Float64Flag TypeFlag = iota
	Int64Flag
)

var (
	// ErrCorrupt is returned when a file is not a valid bundle.
	ErrCorrupt = errors.New("file is not a valid bundle")
	// ErrMissingField is returned (wrapped in a MissingFieldError) when a
	// requested array isn't stored in the bundle.
	ErrMissingField = errors.New("missing field")
)

// MissingFieldError reports that File does not contain the array Field.
type MissingFieldError struct {
	File, Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("The field '%s' is not stored in %s.", e.Field, e.File)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// typeName converts a TypeFlag to the corresponding type string.
func typeName(flag TypeFlag) (string, bool) {
	switch flag {
	case Float64Flag: return "f64", true
	case Int64Flag: return "i64", true
	}
	return "", false
}
