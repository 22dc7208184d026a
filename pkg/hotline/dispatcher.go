package hotline

import (
	"github.com/hotline-go/hotline/internal/logger"
	hl "github.com/hotline-go/hotline/internal/protocol/hotline"
)

// dispatch classifies a decoded frame: replies carrying batched user or
// file lists are consumed here and fanned out as events rather than
// delivered to a waiting slot; other replies go to the router; non-reply
// frames are classified by transaction type and emitted as typed events.
func (s *Session) dispatch(t *hl.Transaction) {
	if t.IsReply {
		s.dispatchReply(t)
		return
	}

	s.dispatchUnsolicited(t)
}

func (s *Session) dispatchReply(t *hl.Transaction) {
	users := t.FieldsOfType(hl.FieldUserNameWithInfo)
	files := t.FieldsOfType(hl.FieldFileNameWithInfo)

	if len(users) > 0 {
		for _, f := range users {
			u, err := hl.DecodeUserNameWithInfo(f.Payload)
			if err != nil {
				logger.Warn("malformed UserNameWithInfo in reply", logger.Err(err))
				continue
			}
			s.emit(Event{Type: EventUserJoined, UserJoined: &UserJoined{
				UserID:   u.ID,
				UserName: u.Name,
				IconID:   u.IconID,
				Flags:    u.Flags,
			}})
		}
		return
	}

	if len(files) > 0 {
		path, _ := s.files.take(t.ID)
		entries := make([]FileListEntry, 0, len(files))
		for _, f := range files {
			info, err := hl.DecodeFileNameWithInfo(f.Payload)
			if err != nil {
				logger.Warn("malformed FileNameWithInfo in reply", logger.Err(err))
				continue
			}
			entries = append(entries, FileListEntry{
				Name:  info.Name,
				Size:  info.Size,
				IsDir: info.IsFolder(),
			})
		}
		s.emit(Event{Type: EventFileList, Files: &FileList{Path: path, Entries: entries}})
		return
	}

	if delivered := s.router.deliver(t); !delivered {
		logger.Debug("reply with no waiting caller", logger.TransactionID(t.ID))
	}
}

func (s *Session) dispatchUnsolicited(t *hl.Transaction) {
	switch t.Type {
	case hl.TranChatMsg:
		chat := &ChatMessage{}
		if f, ok := t.Field(hl.FieldUserId); ok {
			v, _ := f.Uint16()
			chat.UserID = v
		}
		if f, ok := t.Field(hl.FieldUserName); ok {
			chat.UserName = f.String()
		}
		if f, ok := t.Field(hl.FieldData); ok {
			chat.Text = f.String()
		}
		s.emit(Event{Type: EventChatMessage, Chat: chat})

	case hl.TranServerMsg:
		if f, ok := t.Field(hl.FieldUserId); ok {
			userID, _ := f.Uint16()
			text := ""
			if d, ok := t.Field(hl.FieldData); ok {
				text = d.String()
			}
			s.emit(Event{Type: EventPrivateMessage, Private: &PrivateMessage{UserID: userID, Text: text}})
			return
		}
		text := ""
		if d, ok := t.Field(hl.FieldData); ok {
			text = d.String()
		}
		s.emit(Event{Type: EventServerMessage, Server: &ServerMessage{Text: text}})

	case hl.TranNewMsg:
		text := ""
		if d, ok := t.Field(hl.FieldData); ok {
			text = d.String()
		}
		s.emit(Event{Type: EventNewMessageBoardPost, MessageBoard: &NewMessageBoardPost{Text: text}})

	case hl.TranShowAgreement:
		text := ""
		if f, ok := t.Field(hl.FieldServerAgreement); ok {
			text = f.String()
		} else if f, ok := t.Field(hl.FieldData); ok {
			text = f.String()
		} else if len(t.Fields) > 0 {
			text = t.Fields[0].String()
		}
		s.emit(Event{Type: EventAgreementRequired, Agreement: &AgreementRequired{Text: text}})

	case hl.TranNotifyChangeUser:
		uc := &UserChanged{}
		if f, ok := t.Field(hl.FieldUserId); ok {
			v, _ := f.Uint16()
			uc.UserID = v
		}
		if f, ok := t.Field(hl.FieldUserName); ok {
			uc.UserName = f.String()
		}
		if f, ok := t.Field(hl.FieldUserIconId); ok {
			v, _ := f.Uint16()
			uc.IconID = v
		}
		if f, ok := t.Field(hl.FieldUserFlags); ok {
			v, _ := f.Uint16()
			uc.Flags = v
		}
		s.emit(Event{Type: EventUserChanged, UserChanged: uc})

	case hl.TranNotifyDeleteUser:
		ul := &UserLeft{}
		if f, ok := t.Field(hl.FieldUserId); ok {
			v, _ := f.Uint16()
			ul.UserID = v
		}
		s.emit(Event{Type: EventUserLeft, UserLeft: ul})

	default:
		logger.Debug("unhandled unsolicited transaction", logger.TransactionType(t.Type))
	}
}
