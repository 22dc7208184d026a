package hotline

import "encoding/binary"

// User flag bits, as carried in UserNameWithInfo.Flags and the UserFlags
// field. The exact bit assignment varies slightly across server forks;
// these follow the common convention.
const (
	UserFlagIdle  uint16 = 1 << 0
	UserFlagAdmin uint16 = 1 << 1
)

// UserNameWithInfo is the batched-user-list sub-format: a 16-bit user id,
// icon id, flags, and a length-prefixed display name.
type UserNameWithInfo struct {
	ID     uint16
	IconID uint16
	Flags  uint16
	Name   string
}

// IsIdle reports whether the idle flag bit is set.
func (u UserNameWithInfo) IsIdle() bool {
	return u.Flags&UserFlagIdle != 0
}

// IsAdmin reports whether the admin flag bit is set.
func (u UserNameWithInfo) IsAdmin() bool {
	return u.Flags&UserFlagAdmin != 0
}

// Encode serializes a UserNameWithInfo to its wire form.
func (u UserNameWithInfo) Encode() []byte {
	name := []byte(u.Name)
	buf := make([]byte, 8+len(name))
	binary.BigEndian.PutUint16(buf[0:2], u.ID)
	binary.BigEndian.PutUint16(buf[2:4], u.IconID)
	binary.BigEndian.PutUint16(buf[4:6], u.Flags)
	binary.BigEndian.PutUint16(buf[6:8], uint16(len(name)))
	copy(buf[8:], name)
	return buf
}

// DecodeUserNameWithInfo parses a UserNameWithInfo payload. It returns a
// MalformedFieldError if the declared name length exceeds the remaining
// buffer, rather than reading past the end.
func DecodeUserNameWithInfo(buf []byte) (UserNameWithInfo, error) {
	if len(buf) < 8 {
		return UserNameWithInfo{}, &MalformedFieldError{Field: FieldUserNameWithInfo, Want: "at least 8 bytes", Got: len(buf)}
	}
	nameLen := int(binary.BigEndian.Uint16(buf[6:8]))
	if 8+nameLen > len(buf) {
		return UserNameWithInfo{}, &MalformedFieldError{Field: FieldUserNameWithInfo, Want: "name within payload", Got: len(buf)}
	}
	return UserNameWithInfo{
		ID:     binary.BigEndian.Uint16(buf[0:2]),
		IconID: binary.BigEndian.Uint16(buf[2:4]),
		Flags:  binary.BigEndian.Uint16(buf[4:6]),
		Name:   string(buf[8 : 8+nameLen]),
	}, nil
}
