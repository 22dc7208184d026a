package hotline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathRoundTrip(t *testing.T) {
	segments := []string{"Files", "Pictures", "vacation.jpg"}
	encoded := EncodePath(segments)
	decoded := DecodePath(encoded)
	assert.Equal(t, segments, decoded)
}

func TestPathRoundTripEmptyList(t *testing.T) {
	encoded := EncodePath(nil)
	decoded := DecodePath(encoded)
	assert.Empty(t, decoded)
}

func TestPathTruncatedStopsCleanly(t *testing.T) {
	encoded := EncodePath([]string{"a", "bb", "ccc"})
	truncated := encoded[:len(encoded)-1]
	decoded := DecodePath(truncated)
	assert.Equal(t, []string{"a", "bb"}, decoded)
}

func TestPStringRoundTrip(t *testing.T) {
	encoded := EncodePString("General Discussion")
	decoded, n := DecodePString(encoded)
	assert.Equal(t, "General Discussion", decoded)
	assert.Equal(t, len(encoded), n)
}

func TestPStringTooShortReturnsZero(t *testing.T) {
	s, n := DecodePString([]byte{5, 'h', 'i'})
	assert.Equal(t, "", s)
	assert.Equal(t, 0, n)
}
