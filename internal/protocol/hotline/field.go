package hotline

import "encoding/binary"

// Field is a single tagged, length-prefixed payload within a transaction's
// field block: a 16-bit type tag, a 16-bit length, and that many bytes.
type Field struct {
	Type    FieldType
	Payload []byte
}

// NewStringField builds a field holding a UTF-8 string payload.
func NewStringField(t FieldType, s string) Field {
	return Field{Type: t, Payload: []byte(s)}
}

// NewObfuscatedField builds a field holding a string payload bytewise XORed
// with 0xFF, the obfuscation the protocol mandates for UserLogin and
// UserPassword.
func NewObfuscatedField(t FieldType, s string) Field {
	return Field{Type: t, Payload: obfuscate([]byte(s))}
}

// NewUint16Field builds a field holding a big-endian 16-bit integer.
func NewUint16Field(t FieldType, v uint16) Field {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, v)
	return Field{Type: t, Payload: buf}
}

// NewUint32Field builds a field holding a big-endian 32-bit integer.
func NewUint32Field(t FieldType, v uint32) Field {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, v)
	return Field{Type: t, Payload: buf}
}

// NewBytesField builds a field holding an opaque byte payload, used for
// pre-encoded sub-formats like paths and user/file info blobs.
func NewBytesField(t FieldType, b []byte) Field {
	return Field{Type: t, Payload: b}
}

// obfuscate returns a new slice with every byte XORed against 0xFF. It is
// its own inverse: obfuscate(obfuscate(b)) == b.
func obfuscate(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[i] = c ^ 0xFF
	}
	return out
}

// String decodes the field payload as a UTF-8 string.
func (f Field) String() string {
	return string(f.Payload)
}

// MacRomanString decodes the field payload as legacy Mac Roman text,
// falling back to the raw bytes interpreted as UTF-8 if the decode fails.
func (f Field) MacRomanString() string {
	return macRomanToUTF8(f.Payload)
}

// Obfuscated reverses the UserLogin/UserPassword XOR obfuscation and
// returns the plaintext string.
func (f Field) Obfuscated() string {
	return string(obfuscate(f.Payload))
}

// Uint16 decodes the payload as a big-endian 16-bit integer.
func (f Field) Uint16() (uint16, error) {
	if len(f.Payload) != 2 {
		return 0, &MalformedFieldError{Field: f.Type, Want: "2 bytes", Got: len(f.Payload)}
	}
	return binary.BigEndian.Uint16(f.Payload), nil
}

// Uint32 decodes the payload as a big-endian 32-bit integer.
func (f Field) Uint32() (uint32, error) {
	if len(f.Payload) != 4 {
		return 0, &MalformedFieldError{Field: f.Type, Want: "4 bytes", Got: len(f.Payload)}
	}
	return binary.BigEndian.Uint32(f.Payload), nil
}

// Len returns the wire length of this field's payload.
func (f Field) Len() int {
	return len(f.Payload)
}

// encodedSize is the number of bytes this field occupies on the wire,
// including its 4-byte type+length prefix.
func (f Field) encodedSize() int {
	return 4 + len(f.Payload)
}
