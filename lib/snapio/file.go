package snapio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/phil-mansfield/lpadiag/lib/compress"
	g_error "github.com/phil-mansfield/lpadiag/lib/error"
)

// File is a decoded bundle. Accessors return copies, so callers own the
// arrays they get back.
type File struct {
	fileName string
	order binary.ByteOrder
	version uint32
	buf *Buffer
}

// Open reads and decodes the bundle stored at fileName.
func Open(fileName string) (*File, error) {
	info, err := os.Stat(fileName)
	if err != nil {
		return nil, fmt.Errorf("The file %s cannot be opened. The system " +
			"error is: \"%w\"", fileName, err)
	} else if info.IsDir() {
		return nil, fmt.Errorf("The file %s is a directory, not a bundle.",
			fileName)
	}

	b, err := os.ReadFile(fileName)
	if err != nil { return nil, err }

	return decode(bytes.NewReader(b), fileName)
}

// Decode decodes a bundle from rd. The whole stream is read into memory
// first.
func Decode(rd io.Reader) (*File, error) {
	b, err := io.ReadAll(rd)
	if err != nil { return nil, err }
	return decode(bytes.NewReader(b), "<stream>")
}

func decode(rd *bytes.Reader, fileName string) (*File, error) {
	f := &File{ fileName: fileName, buf: newBuffer() }

	magic := uint32(0)
	if err := binary.Read(rd, binary.LittleEndian, &magic); err != nil {
		return nil, corrupt(fileName, "it is too short to contain a header")
	}
	switch magic {
	case MagicNumber: f.order = binary.LittleEndian
	case ReverseMagicNumber: f.order = binary.BigEndian
	default:
		return nil, corrupt(fileName, fmt.Sprintf("its magic number is " +
			"0x%08x instead of 0x%08x", magic, uint32(MagicNumber)))
	}

	nBlocks := uint32(0)
	if err := binary.Read(rd, f.order, &f.version); err != nil {
		return nil, corrupt(fileName, "the header is truncated")
	} else if f.version != Version {
		return nil, corrupt(fileName, fmt.Sprintf("it has version %d, but " +
			"only version %d is supported", f.version, Version))
	} else if err := binary.Read(rd, f.order, &nBlocks); err != nil {
		return nil, corrupt(fileName, "the header is truncated")
	}

	cbuf := compress.NewBuffer()
	for i := 0; i < int(nBlocks); i++ {
		if err := f.readBlock(rd, cbuf); err != nil {
			return nil, corrupt(fileName,
				fmt.Sprintf("block %d cannot be read: %s", i, err.Error()))
		}
	}

	return f, nil
}

// readBlock reads a single block and adds it to the file's buffer.
// Block lengths are checked against the bytes left in rd before anything is
// allocated.
func (f *File) readBlock(rd *bytes.Reader, cbuf *compress.Buffer) error {
	name, err := readString(rd, f.order)
	if err != nil { return err }
	unit, err := readString(rd, f.order)
	if err != nil { return err }

	hd := struct {
		Type TypeFlag
		Codec compress.Codec
		N, Size int64
	}{ }
	if err = binary.Read(rd, f.order, &hd); err != nil { return err }

	if _, ok := typeName(hd.Type); !ok {
		return fmt.Errorf("'%s' has unrecognized type flag %d", name, hd.Type)
	} else if !hd.Codec.Valid() {
		return fmt.Errorf("'%s' has unrecognized codec %d", name, hd.Codec)
	} else if hd.N < 0 || hd.Size < 0 {
		return fmt.Errorf("'%s' has negative length", name)
	} else if hd.Size > int64(rd.Len()) {
		return fmt.Errorf("'%s' claims %d bytes, but only %d remain",
			name, hd.Size, rd.Len())
	} else if hd.N > math.MaxInt64/8 {
		return fmt.Errorf("'%s' claims %d values", name, hd.N)
	} else if hd.Codec == compress.Raw && hd.Size != 8*hd.N {
		return fmt.Errorf("'%s' should have %d bytes for %d values, but " +
			"has %d", name, 8*hd.N, hd.N, hd.Size)
	} else if hd.Codec == compress.ZStd && hd.N > hd.Size*zstdMaxRatio {
		return fmt.Errorf("'%s' claims %d values, more than %d compressed " +
			"bytes can hold", name, hd.N, hd.Size)
	}

	payload := make([]byte, hd.Size)
	if _, err = io.ReadFull(rd, payload); err != nil { return err }

	words := make([]uint64, hd.N)
	err = compress.Decode(bytes.NewReader(payload), hd.Codec, f.order,
		cbuf, words)
	if err != nil { return err }

	switch hd.Type {
	case Float64Flag:
		x := make([]float64, len(words))
		for i := range words { x[i] = math.Float64frombits(words[i]) }
		return f.buf.add(name, unit, x)
	default:
		x := make([]int64, len(words))
		for i := range words { x[i] = int64(words[i]) }
		return f.buf.add(name, unit, x)
	}
}

func readString(rd io.Reader, order binary.ByteOrder) (string, error) {
	n := uint32(0)
	if err := binary.Read(rd, order, &n); err != nil { return "", err }
	if n > maxNameLen {
		return "", fmt.Errorf("string length %d is larger than the %d-byte " +
			"limit", n, maxNameLen)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(rd, b); err != nil { return "", err }
	return string(b), nil
}

func corrupt(fileName, reason string) error {
	return fmt.Errorf("%w: %s cannot be decoded because %s.",
		ErrCorrupt, fileName, reason)
}

// FileName returns the name the bundle was read from.
func (f *File) FileName() string { return f.fileName }

// ByteOrder returns the byte order the bundle was written in.
func (f *File) ByteOrder() binary.ByteOrder { return f.order }

// Names returns the names of every array in the order they were written.
func (f *File) Names() []string {
	return append([]string{ }, f.buf.names...)
}

// Has returns true if the bundle stores an array with the given name.
func (f *File) Has(name string) bool {
	_, ok := f.buf.varType[name]
	return ok
}

// Type returns the type string, "f64" or "i64", of the named array.
func (f *File) Type(name string) (string, error) {
	typ, ok := f.buf.varType[name]
	if !ok { return "", f.missing(name) }
	return typ, nil
}

// Unit returns the unit annotation stored alongside the named array.
func (f *File) Unit(name string) (string, error) {
	if !f.Has(name) { return "", f.missing(name) }
	return f.buf.unit[name], nil
}

// Len returns the length of the named array.
func (f *File) Len(name string) (int, error) {
	if !f.Has(name) { return 0, f.missing(name) }
	return f.buf.length(name), nil
}

// Float64s returns a copy of the named array as floats. Integer arrays are
// converted.
func (f *File) Float64s(name string) ([]float64, error) {
	x, ok := f.buf.Get(name)
	if !ok { return nil, f.missing(name) }

	switch xx := x.(type) {
	case []float64:
		return append([]float64{ }, xx...), nil
	case []int64:
		out := make([]float64, len(xx))
		for i := range xx { out[i] = float64(xx[i]) }
		return out, nil
	}
	g_error.Internal("Array '%s' is stored as a %T.", name, x)
	return nil, nil
}

// Int64s returns a copy of the named array as integers. Float arrays are
// truncated towards zero.
func (f *File) Int64s(name string) ([]int64, error) {
	x, ok := f.buf.Get(name)
	if !ok { return nil, f.missing(name) }

	switch xx := x.(type) {
	case []int64:
		return append([]int64{ }, xx...), nil
	case []float64:
		out := make([]int64, len(xx))
		for i := range xx { out[i] = int64(xx[i]) }
		return out, nil
	}
	g_error.Internal("Array '%s' is stored as a %T.", name, x)
	return nil, nil
}

func (f *File) missing(name string) error {
	return &MissingFieldError{ File: f.fileName, Field: name }
}
