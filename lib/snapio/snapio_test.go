package snapio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/lpadiag/lib/compress"
)

func testWriter(t *testing.T, order binary.ByteOrder, codec compress.Codec) *Writer {
	wr := NewWriter(order, codec)
	require.NoError(t, wr.AddInt64("ssnum", "", []int64{ 3, 2, 1 }))
	require.NoError(t, wr.AddFloat64("w", "", []float64{ 1e6, 2e6, 3e6 }))
	require.NoError(t, wr.AddFloat64("x", "m", []float64{ -1e-6, 0, 2.5e-6 }))
	require.NoError(t, wr.AddFloat64("empty", "", []float64{ }))
	return wr
}

func TestRoundTrip(t *testing.T) {
	orders := []binary.ByteOrder{ binary.LittleEndian, binary.BigEndian }
	codecs := []compress.Codec{ compress.Raw, compress.ZStd }

	for _, order := range orders {
		for _, codec := range codecs {
			wr := testWriter(t, order, codec)
			b := &bytes.Buffer{ }
			require.NoError(t, wr.Encode(b))

			f, err := Decode(b)
			require.NoError(t, err, "%v %s", order, codec)

			assert.Equal(t, order, f.ByteOrder())
			assert.Equal(t, []string{ "ssnum", "w", "x", "empty" }, f.Names())

			id, err := f.Int64s("ssnum")
			require.NoError(t, err)
			assert.Equal(t, []int64{ 3, 2, 1 }, id)

			x, err := f.Float64s("x")
			require.NoError(t, err)
			assert.Equal(t, []float64{ -1e-6, 0, 2.5e-6 }, x)

			unit, err := f.Unit("x")
			require.NoError(t, err)
			assert.Equal(t, "m", unit)

			n, err := f.Len("empty")
			require.NoError(t, err)
			assert.Equal(t, 0, n)

			typ, err := f.Type("ssnum")
			require.NoError(t, err)
			assert.Equal(t, "i64", typ)
		}
	}
}

func TestConversions(t *testing.T) {
	wr := NewWriter(binary.LittleEndian, compress.Raw)
	require.NoError(t, wr.AddFloat64("ssnum", "", []float64{ 1.9, 2, -3.5 }))
	require.NoError(t, wr.AddInt64("i", "", []int64{ 7, -1 }))
	b := &bytes.Buffer{ }
	require.NoError(t, wr.Encode(b))

	f, err := Decode(b)
	require.NoError(t, err)

	id, err := f.Int64s("ssnum")
	require.NoError(t, err)
	assert.Equal(t, []int64{ 1, 2, -3 }, id)

	x, err := f.Float64s("i")
	require.NoError(t, err)
	assert.Equal(t, []float64{ 7, -1 }, x)
}

func TestAccessorsCopy(t *testing.T) {
	b := &bytes.Buffer{ }
	require.NoError(t, testWriter(t, binary.LittleEndian, compress.Raw).Encode(b))
	f, err := Decode(b)
	require.NoError(t, err)

	w, _ := f.Float64s("w")
	w[0] = -1
	w2, _ := f.Float64s("w")
	assert.Equal(t, 1e6, w2[0])
}

func TestMissingField(t *testing.T) {
	b := &bytes.Buffer{ }
	require.NoError(t, testWriter(t, binary.LittleEndian, compress.Raw).Encode(b))
	f, err := Decode(b)
	require.NoError(t, err)

	_, err = f.Float64s("bz")
	assert.ErrorIs(t, err, ErrMissingField)

	var mfe *MissingFieldError
	require.True(t, errors.As(err, &mfe))
	assert.Equal(t, "bz", mfe.Field)

	_, err = f.Int64s("bz")
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = f.Unit("bz")
	assert.ErrorIs(t, err, ErrMissingField)
	assert.False(t, f.Has("bz"))
}

func TestWriterFailure(t *testing.T) {
	wr := NewWriter(binary.LittleEndian, compress.Raw)
	require.NoError(t, wr.AddFloat64("x", "", []float64{ 1 }))
	assert.Error(t, wr.AddFloat64("x", "", []float64{ 2 }))
	assert.Error(t, wr.AddInt64("x", "", []int64{ 2 }))
	assert.Error(t, wr.AddInt64("", "", []int64{ 2 }))
	assert.Equal(t, 1, wr.Len())
}

// blockHeader returns a one-block bundle whose block header claims n values
// stored in size bytes, followed by payload.
func blockHeader(
	t *testing.T, codec compress.Codec, n, size int64, payload []byte,
) []byte {
	t.Helper()
	b := &bytes.Buffer{ }
	order := binary.LittleEndian
	for _, x := range []interface{}{
		uint32(MagicNumber), uint32(Version), uint32(1),
		uint32(1), []byte("w"), uint32(0),
		Float64Flag, codec, n, size,
	} {
		require.NoError(t, binary.Write(b, order, x))
	}
	b.Write(payload)
	return b.Bytes()
}

func TestCorruptLengths(t *testing.T) {
	tests := []struct{
		codec compress.Codec
		n, size int64
		payload []byte
	} {
		{compress.Raw, 1 << 61, math.MaxInt64, nil},
		{compress.Raw, 1 << 61, 1 << 62, make([]byte, 16)},
		{compress.Raw, 1 << 62, 0, nil},
		{compress.Raw, 4, 32, make([]byte, 16)},
		{compress.ZStd, 1 << 40, 16, make([]byte, 16)},
		{compress.ZStd, 1 << 61, 0, nil},
		{compress.ZStd, 4, 1 << 50, make([]byte, 16)},
	}

	for i := range tests {
		data := blockHeader(t, tests[i].codec, tests[i].n, tests[i].size,
			tests[i].payload)
		_, err := Decode(bytes.NewReader(data))
		if !errors.Is(err, ErrCorrupt) {
			t.Errorf("%d) Expected ErrCorrupt, got %v.", i, err)
		}
	}

	data := blockHeader(t, compress.Raw, 2, 16, make([]byte, 16))
	f, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	x, err := f.Float64s("w")
	require.NoError(t, err)
	assert.Equal(t, []float64{ 0, 0 }, x)
}

func TestCorrupt(t *testing.T) {
	good := &bytes.Buffer{ }
	require.NoError(t, testWriter(t, binary.LittleEndian, compress.ZStd).Encode(good))
	full := good.Bytes()

	tests := [][]byte{
		{ },
		{ 1, 2, 3 },
		{ 4, 8, 15, 16, 23, 42, 0, 0, 0, 0, 0, 0 },
		full[:4],
		full[:12],
		full[:len(full) - 1],
	}

	for i := range tests {
		_, err := Decode(bytes.NewReader(tests[i]))
		if !errors.Is(err, ErrCorrupt) {
			t.Errorf("%d) Expected ErrCorrupt, got %v.", i, err)
		}
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	fileName := filepath.Join(dir, "snap.bundle")
	require.NoError(t, testWriter(t, binary.BigEndian, compress.ZStd).Flush(fileName))

	f, err := Open(fileName)
	require.NoError(t, err)
	assert.Equal(t, fileName, f.FileName())
	assert.True(t, f.Has("w"))

	_, err = Open(filepath.Join(dir, "file_that_doesn't_exist.bundle"))
	assert.Error(t, err)
	_, err = Open(dir)
	assert.Error(t, err)

	junk := filepath.Join(dir, "tiny_file.txt")
	require.NoError(t, os.WriteFile(junk, []byte("meow"), 0644))
	_, err = Open(junk)
	assert.ErrorIs(t, err, ErrCorrupt)
}
