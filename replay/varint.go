package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrTruncated indicates the data ended in the middle of an integer.
	ErrTruncated = errors.New("replay: truncated data")

	// ErrOverflow indicates an integer encoding longer than 64 bits.
	ErrOverflow = errors.New("replay: integer overflows 64 bits")

	// ErrMalformedToken indicates a token that cannot be decoded.
	ErrMalformedToken = errors.New("replay: malformed token")
)

const (
	shortLimit   = 192  // values below are written as a single byte
	lowBitsMask  = 0x3F // 6 bits carried by the marker byte
	groupMask    = 0x7F
	continuation = 0x80
	lastShift    = 62 // the group at this shift carries only 2 bits
)

// WriteInt appends v in the variable-length encoding.
// Complexity: O(1), at most 11 bytes.
func WriteInt(w io.ByteWriter, v int) error {
	u := uint64(v)
	if u < shortLimit {
		return w.WriteByte(byte(u))
	}
	if err := w.WriteByte(byte(shortLimit + u&lowBitsMask)); err != nil {
		return err
	}
	u >>= 6
	for u >= continuation {
		if err := w.WriteByte(byte(u&groupMask | continuation)); err != nil {
			return err
		}
		u >>= 7
	}
	return w.WriteByte(byte(u))
}

// ReadInt reads one integer written by WriteInt.
func ReadInt(r io.ByteReader) (int, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("ReadInt: %w", ErrTruncated)
	}
	if b < shortLimit {
		return int(b), nil
	}
	res := uint64(b - shortLimit)
	for shift := 6; ; shift += 7 {
		next, err := r.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("ReadInt: %w", ErrTruncated)
		}
		if shift == lastShift && (next&continuation != 0 || next&groupMask>>(64-lastShift) != 0) {
			return 0, fmt.Errorf("ReadInt: %w", ErrOverflow)
		}
		res |= uint64(next&groupMask) << shift
		if next&continuation == 0 {
			return int(res), nil
		}
	}
}

// AppendInts encodes values into a fresh byte slice.
func AppendInts(values []int) []byte {
	var buf bytes.Buffer
	for _, v := range values {
		// bytes.Buffer.WriteByte never fails.
		_ = WriteInt(&buf, v)
	}
	return buf.Bytes()
}

// Decode returns the integers encoded in data, in order.
func Decode(data []byte) ([]int, error) {
	r := bytes.NewReader(data)
	var out []int
	for r.Len() > 0 {
		v, err := ReadInt(r)
		if err != nil {
			return nil, fmt.Errorf("Decode at value %d: %w", len(out), err)
		}
		out = append(out, v)
	}
	return out, nil
}
