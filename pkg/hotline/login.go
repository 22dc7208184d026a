package hotline

import (
	"context"
	"io"

	hl "github.com/hotline-go/hotline/internal/protocol/hotline"
)

// versionNumber is the VersionNumber field value sent on login.
const versionNumber uint16 = 123

// login sends the Login transaction and reads exactly one frame — the
// login reply — before the receive loop starts. This avoids a race where
// the receive loop would otherwise consume the login reply itself.
func (s *Session) login(ctx context.Context) error {
	id := s.nextTransactionID()
	t := hl.NewRequest(id, hl.TranLogin,
		hl.NewObfuscatedField(hl.FieldUserLogin, s.opts.Login),
		hl.NewObfuscatedField(hl.FieldUserPassword, s.opts.Password),
		hl.NewUint16Field(hl.FieldUserIconId, s.opts.IconID),
		hl.NewStringField(hl.FieldUserName, s.opts.DisplayName),
		hl.NewUint16Field(hl.FieldVersion, versionNumber),
	)

	if err := s.writeTransaction(t); err != nil {
		return err
	}

	reply, err := s.readOneFrame()
	if err != nil {
		return wrapError(KindTransport, err)
	}

	if reply.ErrorCode != 0 {
		text, ok := reply.ErrorText()
		if !ok {
			text = authErrorMessage(reply.ErrorCode)
		}
		return &Error{Kind: KindAuth, Code: reply.ErrorCode, Message: text}
	}

	s.mu.Lock()
	if f, ok := reply.Field(hl.FieldServerName); ok {
		s.server.Name = f.String()
	}
	if f, ok := reply.Field(hl.FieldVersion); ok {
		if v, err := f.Uint16(); err == nil {
			s.server.VersionNumber = v
		}
	}
	if f, ok := reply.Field(hl.FieldData); ok {
		s.server.Description = f.String()
	}
	s.mu.Unlock()

	return nil
}

// readOneFrame reads a single complete transaction frame: a 20-byte header
// followed by its declared field block.
func (s *Session) readOneFrame() (*hl.Transaction, error) {
	header := make([]byte, hl.HeaderSize)
	if _, err := io.ReadFull(s.reader, header); err != nil {
		return nil, err
	}

	t, dataSize, err := hl.DecodeHeader(header)
	if err != nil {
		return nil, err
	}

	if dataSize > 0 {
		body := make([]byte, dataSize)
		if _, err := io.ReadFull(s.reader, body); err != nil {
			return nil, err
		}
		hl.DecodeFields(t, body)
	}

	return t, nil
}

// AcceptAgreement acknowledges the server's use agreement. It tolerates
// all three possible outcomes — a reply within the agreement
// deadline, a closed slot, or a timeout — as success, since servers vary in
// whether they reply at all. It then issues GetUserNameList to complete the
// join handshake.
func (s *Session) AcceptAgreement() error {
	id := s.nextTransactionID()
	t := hl.NewRequest(id, hl.TranAgreed,
		hl.NewStringField(hl.FieldUserName, s.opts.DisplayName),
		hl.NewUint16Field(hl.FieldUserIconId, s.opts.IconID),
		hl.NewUint32Field(hl.FieldOptions, 0),
	)

	_, err := s.request(t, s.opts.AgreementTimeout)
	if err != nil {
		var herr *Error
		ok := asError(err, &herr)
		tolerated := ok && (herr.Kind == KindTimeout || herr.Kind == KindCancelled || herr.Kind == KindServerReported)
		if !tolerated {
			return err
		}
	}

	return s.GetUserNameList()
}

func asError(err error, target **Error) bool {
	he, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = he
	return true
}
