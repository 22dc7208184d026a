package hotline

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the fixed length of a transaction header, before the
// variable-length field block.
const HeaderSize = 20

// Transaction is a single frame on the control channel: a fixed header and
// a field-count-prefixed block of tagged fields.
type Transaction struct {
	Flags     byte
	IsReply   bool
	Type      TranType
	ID        uint32
	ErrorCode uint32
	Fields    []Field
}

// NewRequest builds an outgoing, non-reply transaction of the given type
// and id carrying fields.
func NewRequest(id uint32, t TranType, fields ...Field) *Transaction {
	return &Transaction{
		Type:   t,
		ID:     id,
		Fields: fields,
	}
}

// dataSize computes the length of the encoded field block: a 16-bit field
// count followed by each field's type+length+payload.
func (t *Transaction) dataSize() uint32 {
	size := 2
	for _, f := range t.Fields {
		size += f.encodedSize()
	}
	return uint32(size)
}

// Encode serializes the transaction to its wire representation. The
// returned slice has length HeaderSize + dataSize().
func (t *Transaction) Encode() []byte {
	dataSize := t.dataSize()
	buf := make([]byte, HeaderSize+int(dataSize))

	buf[0] = t.Flags
	if t.IsReply {
		buf[1] = 1
	}
	binary.BigEndian.PutUint16(buf[2:4], uint16(t.Type))
	binary.BigEndian.PutUint32(buf[4:8], t.ID)
	binary.BigEndian.PutUint32(buf[8:12], t.ErrorCode)
	binary.BigEndian.PutUint32(buf[12:16], dataSize)
	binary.BigEndian.PutUint32(buf[16:20], dataSize)

	binary.BigEndian.PutUint16(buf[20:22], uint16(len(t.Fields)))
	offset := 22
	for _, f := range t.Fields {
		binary.BigEndian.PutUint16(buf[offset:offset+2], uint16(f.Type))
		binary.BigEndian.PutUint16(buf[offset+2:offset+4], uint16(len(f.Payload)))
		copy(buf[offset+4:], f.Payload)
		offset += f.encodedSize()
	}

	return buf
}

// DecodeHeader parses the fixed 20-byte header and reports the data_size
// a caller must read next to obtain the full frame.
func DecodeHeader(buf []byte) (*Transaction, uint32, error) {
	if len(buf) != HeaderSize {
		return nil, 0, &HeaderError{Reason: fmt.Sprintf("want %d bytes, got %d", HeaderSize, len(buf))}
	}

	t := &Transaction{
		Flags:     buf[0],
		IsReply:   buf[1] != 0,
		Type:      TranType(binary.BigEndian.Uint16(buf[2:4])),
		ID:        binary.BigEndian.Uint32(buf[4:8]),
		ErrorCode: binary.BigEndian.Uint32(buf[8:12]),
	}
	dataSize := binary.BigEndian.Uint32(buf[16:20])
	return t, dataSize, nil
}

// DecodeFields parses the variable field block that follows the header.
// Decoding is permissive: it stops at the declared field count or when the
// buffer is exhausted, whichever comes first, and a truncated trailing
// field stops iteration without returning an error for the whole frame.
func DecodeFields(t *Transaction, buf []byte) {
	if len(buf) < 2 {
		return
	}
	count := binary.BigEndian.Uint16(buf[0:2])
	offset := 2

	for i := uint16(0); i < count; i++ {
		if offset+4 > len(buf) {
			break
		}
		fieldType := FieldType(binary.BigEndian.Uint16(buf[offset : offset+2]))
		length := int(binary.BigEndian.Uint16(buf[offset+2 : offset+4]))
		offset += 4

		if offset+length > len(buf) {
			break
		}
		payload := make([]byte, length)
		copy(payload, buf[offset:offset+length])
		offset += length

		t.Fields = append(t.Fields, Field{Type: fieldType, Payload: payload})
	}
}

// Decode parses a complete frame: a 20-byte header followed by its field
// block. It is the inverse of Encode for well-formed input.
func Decode(buf []byte) (*Transaction, error) {
	if len(buf) < HeaderSize {
		return nil, &HeaderError{Reason: fmt.Sprintf("frame too short: %d bytes", len(buf))}
	}
	t, dataSize, err := DecodeHeader(buf[:HeaderSize])
	if err != nil {
		return nil, err
	}
	body := buf[HeaderSize:]
	if uint32(len(body)) < dataSize {
		body = body[:len(body)]
	} else {
		body = body[:dataSize]
	}
	DecodeFields(t, body)
	return t, nil
}

// Field returns the first field of the given type, and whether one was
// found. A transaction may legally carry repeated fields of the same type
// (e.g. batched UserNameWithInfo); callers that need all of them should use
// FieldsOfType instead.
func (t *Transaction) Field(ft FieldType) (Field, bool) {
	for _, f := range t.Fields {
		if f.Type == ft {
			return f, true
		}
	}
	return Field{}, false
}

// FieldsOfType returns every field matching the given type, in wire order.
func (t *Transaction) FieldsOfType(ft FieldType) []Field {
	var out []Field
	for _, f := range t.Fields {
		if f.Type == ft {
			out = append(out, f)
		}
	}
	return out
}

// ErrorText returns the ErrorText field's contents, if present.
func (t *Transaction) ErrorText() (string, bool) {
	f, ok := t.Field(FieldErrorText)
	if !ok {
		return "", false
	}
	return f.String(), true
}
