package hotline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserNameWithInfoRoundTrip(t *testing.T) {
	u := UserNameWithInfo{ID: 7, IconID: 414, Flags: UserFlagAdmin, Name: "sysop"}
	encoded := u.Encode()

	decoded, err := DecodeUserNameWithInfo(encoded)
	require.NoError(t, err)
	assert.Equal(t, u, decoded)
	assert.True(t, decoded.IsAdmin())
	assert.False(t, decoded.IsIdle())
}

func TestUserNameWithInfoTruncatedNameIsMalformed(t *testing.T) {
	u := UserNameWithInfo{ID: 1, Name: "overflow"}
	encoded := u.Encode()
	truncated := encoded[:len(encoded)-3]

	_, err := DecodeUserNameWithInfo(truncated)
	require.Error(t, err)
	var malformed *MalformedFieldError
	assert.ErrorAs(t, err, &malformed)
}
