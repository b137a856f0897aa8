// Package replay implements the byte format that lets a shrunk counterexample
// be reproduced later.
//
// What:
//
//   - WriteInt/ReadInt: a variable-length integer code. Values in [0,192) take
//     one byte; anything else is a marker byte 192+(low 6 bits) followed by
//     7-bit groups, least significant first, with a continuation bit.
//   - Decode: turns a serialized trace back into the flat list of integer
//     decisions, in pre-order.
//   - EncodeToken/DecodeToken: wrap the bytes into a short printable token
//     (LZ4 block compression + URL-safe base64) suitable for a test log.
//
// Why:
//
//	A trace serializes as the concatenation of its leaf values with no framing
//	for composite nodes. Re-running the same generator while feeding these
//	integers back in place of fresh randomness rebuilds the identical tree, so
//	the shape does not need to be stored.
//
// Errors:
//
//   - ErrTruncated: the input ended inside an integer.
//   - ErrOverflow: an integer encoding is longer than 64 bits.
//   - ErrMalformedToken: a token is not valid base64, has an unknown header
//     or its payload does not decompress to the recorded length.
package replay
