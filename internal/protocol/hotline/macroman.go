package hotline

import (
	"golang.org/x/text/encoding/charmap"
)

// macRomanToUTF8 decodes legacy Mac Roman text used by old Hotline servers
// for news listings, article metadata, and tracker server names. If the
// bytes do not decode cleanly, the raw bytes are returned reinterpreted as
// UTF-8 rather than dropping data.
func macRomanToUTF8(b []byte) string {
	decoded, err := charmap.Macintosh.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}

// utf8ToMacRoman encodes a string back to Mac Roman for servers that expect
// it. If any character has no Mac Roman representation, the encoder fails
// and the whole string is returned as its UTF-8 bytes, unencoded.
func utf8ToMacRoman(s string) []byte {
	encoded, err := charmap.Macintosh.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return encoded
}
