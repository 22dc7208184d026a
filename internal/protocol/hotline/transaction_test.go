package hotline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionEncodeDecodeRoundTrip(t *testing.T) {
	tr := NewRequest(1, TranLogin,
		NewObfuscatedField(FieldUserLogin, "guest"),
		NewObfuscatedField(FieldUserPassword, ""),
		NewUint16Field(FieldUserIconId, 414),
		NewStringField(FieldUserName, "guest"),
		NewUint16Field(FieldVersion, 123),
	)

	encoded := tr.Encode()
	assert.Len(t, encoded, HeaderSize+int(tr.dataSize()))

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	assert.Equal(t, tr.Type, decoded.Type)
	assert.Equal(t, tr.ID, decoded.ID)
	assert.False(t, decoded.IsReply)
	assert.Equal(t, uint32(0), decoded.ErrorCode)
	require.Len(t, decoded.Fields, len(tr.Fields))

	for i, f := range tr.Fields {
		assert.Equal(t, f.Type, decoded.Fields[i].Type)
		assert.Equal(t, f.Payload, decoded.Fields[i].Payload)
	}
}

func TestTransactionLoginEncodingLiteral(t *testing.T) {
	// Concrete scenario: display "guest", login "guest", empty password,
	// icon 414.
	tr := NewRequest(1, TranLogin,
		NewObfuscatedField(FieldUserLogin, "guest"),
		NewObfuscatedField(FieldUserPassword, ""),
		NewUint16Field(FieldUserIconId, 414),
		NewStringField(FieldUserName, "guest"),
	)

	loginField, ok := tr.Field(FieldUserLogin)
	require.True(t, ok)
	assert.Equal(t, []byte{0x98, 0x8A, 0x9A, 0x8C, 0x8B}, loginField.Payload)
	assert.Equal(t, "guest", loginField.Obfuscated())

	encoded := tr.Encode()
	decodedHeader, dataSize, err := DecodeHeader(encoded[:HeaderSize])
	require.NoError(t, err)
	assert.Equal(t, TranLogin, decodedHeader.Type)
	assert.False(t, decodedHeader.IsReply)
	assert.Equal(t, uint32(1), decodedHeader.ID)
	assert.Equal(t, uint32(0), decodedHeader.ErrorCode)
	assert.Equal(t, tr.dataSize(), dataSize)
}

func TestDecodeZeroDataSizeYieldsNoFields(t *testing.T) {
	tr := &Transaction{Type: TranKeepAlive, ID: 5}
	encoded := tr.Encode()

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Empty(t, decoded.Fields)
}

func TestDecodeTruncatedTrailingFieldStopsWithoutError(t *testing.T) {
	tr := NewRequest(2, TranChatSend, NewStringField(FieldData, "hello"), NewStringField(FieldChatOptions, "x"))
	encoded := tr.Encode()

	// Truncate after the first field is fully present but before the
	// second field's payload completes.
	truncated := encoded[:HeaderSize+2+4+5+2]

	decoded, err := Decode(truncated)
	require.NoError(t, err)
	require.Len(t, decoded.Fields, 1)
	assert.Equal(t, "hello", decoded.Fields[0].String())
}

func TestFieldUint16MalformedLength(t *testing.T) {
	f := Field{Type: FieldUserIconId, Payload: []byte{1, 2, 3}}
	_, err := f.Uint16()
	require.Error(t, err)
	var malformed *MalformedFieldError
	assert.ErrorAs(t, err, &malformed)
}

func TestFieldEmptyPayloadDecodesCleanly(t *testing.T) {
	f := Field{Type: FieldData, Payload: nil}
	assert.Equal(t, "", f.String())

	_, err := f.Uint32()
	assert.Error(t, err)
}

func TestObfuscationIsInvolution(t *testing.T) {
	f := NewObfuscatedField(FieldUserPassword, "sw0rdfish")
	assert.Equal(t, "sw0rdfish", f.Obfuscated())
}

func TestReplyRoutingOutOfOrder(t *testing.T) {
	reqA := NewRequest(5, TranGetMsgs)
	reqB := NewRequest(6, TranGetMsgs)

	replyB := &Transaction{Type: TranGetMsgs, ID: reqB.ID, IsReply: true}
	replyA := &Transaction{Type: TranGetMsgs, ID: reqA.ID, IsReply: true}

	decodedB, err := Decode(replyB.Encode())
	require.NoError(t, err)
	decodedA, err := Decode(replyA.Encode())
	require.NoError(t, err)

	assert.Equal(t, reqB.ID, decodedB.ID)
	assert.Equal(t, reqA.ID, decodedA.ID)
}
