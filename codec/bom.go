package codec

import "bytes"

// Byte-order marks, longest first so a UTF-32 LE mark is not mistaken for
// UTF-16 LE.
var boms = [][]byte{
	{0x00, 0x00, 0xFE, 0xFF}, // UTF-32 BE
	{0xFF, 0xFE, 0x00, 0x00}, // UTF-32 LE
	{0xEF, 0xBB, 0xBF},       // UTF-8
	{0xFE, 0xFF},             // UTF-16 BE
	{0xFF, 0xFE},             // UTF-16 LE
}

// StripBOM removes a leading byte-order mark from body.
func StripBOM(body []byte) []byte {
	for _, bom := range boms {
		if bytes.HasPrefix(body, bom) {
			return body[len(bom):]
		}
	}
	return body
}
