package replay

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// Token header layout: one format byte, then the payload length as uint32 LE.
const (
	formatRaw      byte = 0
	formatLZ4      byte = 1
	headerSize          = 5
	maxPayloadSize      = 1 << 24
)

var tokenEncoding = base64.RawURLEncoding

// EncodeToken compresses data with LZ4 and returns it as a URL-safe token.
// Incompressible payloads are stored raw.
func EncodeToken(data []byte) (string, error) {
	if len(data) > maxPayloadSize {
		return "", fmt.Errorf("EncodeToken: %d bytes exceeds %d", len(data), maxPayloadSize)
	}
	out := make([]byte, headerSize, headerSize+lz4.CompressBlockBound(len(data)))
	binary.LittleEndian.PutUint32(out[1:], uint32(len(data)))

	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return "", fmt.Errorf("EncodeToken: compress: %w", err)
	}
	if written == 0 || written >= len(data) {
		out[0] = formatRaw
		out = append(out, data...)
	} else {
		out[0] = formatLZ4
		out = append(out, compressed[:written]...)
	}
	return tokenEncoding.EncodeToString(out), nil
}

// DecodeToken reverses EncodeToken.
func DecodeToken(token string) ([]byte, error) {
	raw, err := tokenEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("DecodeToken: %w: %v", ErrMalformedToken, err)
	}
	if len(raw) < headerSize {
		return nil, fmt.Errorf("DecodeToken: %w: short header", ErrMalformedToken)
	}
	size := int(binary.LittleEndian.Uint32(raw[1:headerSize]))
	if size > maxPayloadSize {
		return nil, fmt.Errorf("DecodeToken: %w: payload size %d", ErrMalformedToken, size)
	}
	payload := raw[headerSize:]

	switch raw[0] {
	case formatRaw:
		if len(payload) != size {
			return nil, fmt.Errorf("DecodeToken: %w: length %d, header says %d", ErrMalformedToken, len(payload), size)
		}
		return payload, nil
	case formatLZ4:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil || n != size {
			return nil, fmt.Errorf("DecodeToken: %w: lz4 payload", ErrMalformedToken)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("DecodeToken: %w: format %d", ErrMalformedToken, raw[0])
	}
}
