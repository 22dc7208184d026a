package hotline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMacRomanASCIIRoundTrip(t *testing.T) {
	s := "General Discussion"
	encoded := utf8ToMacRoman(s)
	assert.Equal(t, s, macRomanToUTF8(encoded))
}

func TestMacRomanExtendedCharacter(t *testing.T) {
	// 0x91 is "e" with an umlaut in Mac Roman.
	decoded := macRomanToUTF8([]byte{0x91})
	assert.Equal(t, "ë", decoded)
}
