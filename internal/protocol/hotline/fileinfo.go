package hotline

import "encoding/binary"

// folderTypeCode is the 4-byte file-type code that marks a FileNameWithInfo
// entry as a folder rather than a regular file.
const folderTypeCode = "fldr"

// FileNameWithInfo is the batched-file-list sub-format: Mac-style type and
// creator codes, a 32-bit size, reserved bytes, and a length-prefixed name.
type FileNameWithInfo struct {
	FileType    string
	Creator     string
	Size        uint32
	NameScript  uint16
	Name        string
}

// IsFolder reports whether the file-type code marks this entry as a folder.
func (f FileNameWithInfo) IsFolder() bool {
	return f.FileType == folderTypeCode
}

// Encode serializes a FileNameWithInfo to its wire form: 4-byte type, 4-byte
// creator, 32-bit size, 4 reserved bytes, 2 reserved/flags bytes, 16-bit
// name length, name bytes.
func (f FileNameWithInfo) Encode() []byte {
	name := []byte(f.Name)
	buf := make([]byte, 20+len(name))
	copy(buf[0:4], padCode(f.FileType))
	copy(buf[4:8], padCode(f.Creator))
	binary.BigEndian.PutUint32(buf[8:12], f.Size)
	// buf[12:16] reserved
	binary.BigEndian.PutUint16(buf[16:18], f.NameScript)
	binary.BigEndian.PutUint16(buf[18:20], uint16(len(name)))
	copy(buf[20:], name)
	return buf
}

// DecodeFileNameWithInfo parses a FileNameWithInfo payload. A declared name
// length that overruns the remaining buffer is reported as a
// MalformedFieldError instead of reading past the end.
func DecodeFileNameWithInfo(buf []byte) (FileNameWithInfo, error) {
	if len(buf) < 20 {
		return FileNameWithInfo{}, &MalformedFieldError{Field: FieldFileNameWithInfo, Want: "at least 20 bytes", Got: len(buf)}
	}
	nameLen := int(binary.BigEndian.Uint16(buf[18:20]))
	if 20+nameLen > len(buf) {
		return FileNameWithInfo{}, &MalformedFieldError{Field: FieldFileNameWithInfo, Want: "name within payload", Got: len(buf)}
	}
	return FileNameWithInfo{
		FileType:   trimCode(buf[0:4]),
		Creator:    trimCode(buf[4:8]),
		Size:       binary.BigEndian.Uint32(buf[8:12]),
		NameScript: binary.BigEndian.Uint16(buf[16:18]),
		Name:       macRomanToUTF8(buf[20 : 20+nameLen]),
	}, nil
}

func padCode(s string) []byte {
	b := make([]byte, 4)
	copy(b, s)
	for i := len(s); i < 4; i++ {
		b[i] = ' '
	}
	return b
}

func trimCode(b []byte) string {
	return string(b)
}
