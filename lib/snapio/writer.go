package snapio

import (
	"bufio"
	"encoding/binary"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/phil-mansfield/lpadiag/lib/compress"
	g_error "github.com/phil-mansfield/lpadiag/lib/error"
)

// Writer accumulates named arrays and writes them out as a single bundle. The
// pattern is that you create a Writer with NewWriter, add arrays to it with
// AddFloat64 and AddInt64, and finally call Flush (or Encode) once.
type Writer struct {
	order binary.ByteOrder
	codec compress.Codec
	buf *Buffer
	cbuf *compress.Buffer
}

// NewWriter creates a Writer that encodes blocks with the given codec and
// byte order.
func NewWriter(order binary.ByteOrder, codec compress.Codec) *Writer {
	return &Writer{ order, codec, newBuffer(), compress.NewBuffer() }
}

// AddFloat64 adds a float array with a unit annotation (which may be empty).
// The array is copied.
func (wr *Writer) AddFloat64(name, unit string, x []float64) error {
	return wr.buf.add(name, unit, append([]float64{ }, x...))
}

// AddInt64 adds an integer array with a unit annotation (which may be empty).
// The array is copied.
func (wr *Writer) AddInt64(name, unit string, x []int64) error {
	return wr.buf.add(name, unit, append([]int64{ }, x...))
}

// Len returns the number of arrays added so far.
func (wr *Writer) Len() int { return len(wr.buf.names) }

// Flush writes the bundle to fileName, replacing any existing file.
func (wr *Writer) Flush(fileName string) error {
	fp, err := os.Create(fileName)
	if err != nil { return err }

	bw := bufio.NewWriter(fp)
	if err = wr.Encode(bw); err != nil {
		fp.Close()
		return fmt.Errorf("Could not write %s: %w", fileName, err)
	}
	if err = bw.Flush(); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

// Encode writes the bundle to w.
func (wr *Writer) Encode(w io.Writer) error {
	hd := [3]uint32{ MagicNumber, Version, uint32(len(wr.buf.names)) }
	if err := binary.Write(w, wr.order, hd); err != nil { return err }

	payload := &bytes.Buffer{ }
	for _, name := range wr.buf.names {
		payload.Reset()
		words, flag := wr.words(name)
		err := compress.Encode(words, wr.codec, wr.order, wr.cbuf, payload)
		if err != nil { return err }

		if err = writeString(w, wr.order, name); err != nil { return err }
		if err = writeString(w, wr.order, wr.buf.unit[name]); err != nil {
			return err
		}

		blockHd := struct {
			Type TypeFlag
			Codec compress.Codec
			N, Size int64
		}{ flag, wr.codec, int64(len(words)), int64(payload.Len()) }
		if err = binary.Write(w, wr.order, blockHd); err != nil { return err }

		if _, err = w.Write(payload.Bytes()); err != nil { return err }
	}

	return nil
}

// words returns the named array reinterpreted as 64-bit words.
func (wr *Writer) words(name string) ([]uint64, TypeFlag) {
	x, _ := wr.buf.Get(name)
	switch xx := x.(type) {
	case []float64:
		out := make([]uint64, len(xx))
		for i := range xx { out[i] = math.Float64bits(xx[i]) }
		return out, Float64Flag
	case []int64:
		out := make([]uint64, len(xx))
		for i := range xx { out[i] = uint64(xx[i]) }
		return out, Int64Flag
	}
	g_error.Internal("Array '%s' is stored as a %T.", name, x)
	return nil, Float64Flag
}

func writeString(w io.Writer, order binary.ByteOrder, s string) error {
	if err := binary.Write(w, order, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}
