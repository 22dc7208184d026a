package hotline

import (
	"encoding/binary"
	"io"
)

// handshake performs the control-channel opening exchange: the client
// sends "TRTP", "HOTL", protocol version 0x0001, sub-version 0x0002 (12
// bytes); the server replies "TRTP" followed by a 32-bit error code (8
// bytes). A nonzero code fails the session.
func (s *Session) handshake() error {
	out := make([]byte, 12)
	copy(out[0:4], "TRTP")
	copy(out[4:8], "HOTL")
	binary.BigEndian.PutUint16(out[8:10], 0x0001)
	binary.BigEndian.PutUint16(out[10:12], 0x0002)

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return newError(KindTransport, "not connected")
	}

	if _, err := conn.Write(out); err != nil {
		return wrapError(KindTransport, err)
	}

	in := make([]byte, 8)
	if _, err := io.ReadFull(s.reader, in); err != nil {
		return wrapError(KindTransport, err)
	}

	if string(in[0:4]) != "TRTP" {
		return newError(KindProtocol, "bad handshake magic from server")
	}

	code := binary.BigEndian.Uint32(in[4:8])
	if code != 0 {
		return &Error{Kind: KindProtocol, Code: code, Message: "handshake rejected by server"}
	}

	return nil
}
