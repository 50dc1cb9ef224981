/*package compress contains the block codecs used by lpadiag's bundle files.

The zstd codec splits every 64-bit word into eight byte "columns" and
compresses each column separately. Neighbouring particles usually share their
high bytes (exponents, sign bits, leading zeros of IDs), so the high-order
columns compress to almost nothing while the noisy mantissa columns are left
to the entropy coder.
*/
package compress

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/DataDog/zstd"
)

// Codec is a flag identifying how a block's payload was encoded.
type Codec uint32
const (
	// Raw stores words directly in the file's byte order.
	Raw Codec = iota
	// ZStd stores eight zstd-compressed byte columns.
	ZStd
	numCodecs
)

// Level is the zstd compression level used by ZStd blocks.
var Level = 3

// String returns the codec's name.
func (c Codec) String() string {
	switch c {
	case Raw: return "raw"
	case ZStd: return "zstd"
	}
	return fmt.Sprintf("Codec(%d)", uint32(c))
}

// Valid returns true if c is a codec this package knows how to decode.
func (c Codec) Valid() bool { return c < numCodecs }

// Buffer holds the scratch space used while encoding and decoding so that
// repeated calls don't need to make new heap allocations.
type Buffer struct {
	b, bZStd []byte
}

// NewBuffer creates an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{ []byte{ }, []byte{ } }
}

// Encode writes x to wr using the given codec. Raw blocks use the byte order
// order; the column lengths of ZStd blocks are always little endian.
func Encode(
	x []uint64, codec Codec, order binary.ByteOrder,
	buf *Buffer, wr io.Writer,
) error {
	switch codec {
	case Raw:
		return binary.Write(wr, order, x)
	case ZStd:
		return encodeZStd(x, buf, wr)
	}
	return fmt.Errorf("Unrecognized block codec, %d.", uint32(codec))
}

// Decode reads len(x) words from rd into x. The codec and byte order must
// match the ones used when the block was encoded.
func Decode(
	rd io.Reader, codec Codec, order binary.ByteOrder,
	buf *Buffer, x []uint64,
) error {
	switch codec {
	case Raw:
		return binary.Read(rd, order, x)
	case ZStd:
		return decodeZStd(rd, buf, x)
	}
	return fmt.Errorf("Unrecognized block codec, %d.", uint32(codec))
}

func encodeZStd(x []uint64, buf *Buffer, wr io.Writer) error {
	// Empty blocks carry no columns.
	if len(x) == 0 { return nil }
	buf.b = resizeBytes(buf.b, len(x))

	for col := 0; col < 8; col++ {
		// Each column gets its own frame so the high-significance columns
		// aren't mixed in with the noisy low bytes.
		wordToByte(x, buf.b, col)

		var err error
		buf.bZStd, err = zstd.CompressLevel(buf.bZStd[:0], buf.b, Level)
		if err != nil { return err }

		err = binary.Write(wr, binary.LittleEndian, int64(len(buf.bZStd)))
		if err != nil { return err }

		_, err = wr.Write(buf.bZStd)
		if err != nil { return err }
	}

	return nil
}

// lener is implemented by readers that know how many bytes are left, such
// as *bytes.Reader.
type lener interface { Len() int }

func decodeZStd(rd io.Reader, buf *Buffer, x []uint64) error {
	if len(x) == 0 { return nil }
	for i := range x { x[i] = 0 }
	lr, isLen := rd.(lener)

	for col := 0; col < 8; col++ {
		nBuf := int64(0)
		err := binary.Read(rd, binary.LittleEndian, &nBuf)
		if err != nil { return err }
		if nBuf < 0 || (isLen && nBuf > int64(lr.Len())) {
			return fmt.Errorf("Column %d of a zstd block claims to have " +
				"%d bytes.", col, nBuf)
		}

		buf.bZStd = resizeBytes(buf.bZStd, int(nBuf))
		_, err = io.ReadFull(rd, buf.bZStd)
		if err != nil { return err }

		buf.b, err = zstd.Decompress(resizeBytes(buf.b, len(x)), buf.bZStd)
		if err != nil { return err }
		if len(buf.b) != len(x) {
			return fmt.Errorf("Column %d of a zstd block decompressed to %d " +
				"bytes, but the block holds %d values.", col, len(buf.b), len(x))
		}

		byteToWord(buf.b, x, col)
	}

	return nil
}

// wordToByte writes byte column col of every word in x to b.
func wordToByte(x []uint64, b []byte, col int) {
	for i := range x {
		b[i] = byte((x[i] >> (8*col)) & 0xff)
	}
}

// byteToWord adds a one-byte column back into x.
func byteToWord(b []byte, x []uint64, col int) {
	for i := range x {
		x[i] |= uint64(b[i]) << (8*col)
	}
}

// resizeBytes resizes a byte buffer to have length n.
func resizeBytes(b []byte, n int) []byte {
	if cap(b) >= n {
		return b[:n]
	}
	b = b[:cap(b)]
	return append(b, make([]byte, n - len(b))...)
}
