package hotline

import (
	hl "github.com/hotline-go/hotline/internal/protocol/hotline"
)

// SendChat broadcasts a line of chat to the public chat room. If announce
// is true the server renders it with server-wide emphasis (the protocol's
// "announce" chat option) instead of as a normal line.
func (s *Session) SendChat(text string, announce bool) error {
	options := uint16(0)
	if announce {
		options = 1
	}

	id := s.nextTransactionID()
	t := hl.NewRequest(id, hl.TranChatSend,
		hl.NewStringField(hl.FieldData, text),
		hl.NewUint16Field(hl.FieldChatOptions, options),
	)
	return s.writeTransaction(t)
}

// SendInstantMessage sends a private message to a specific user.
func (s *Session) SendInstantMessage(userID uint16, text string) error {
	id := s.nextTransactionID()
	t := hl.NewRequest(id, hl.TranSendInstantMsg,
		hl.NewUint16Field(hl.FieldUserId, userID),
		hl.NewStringField(hl.FieldData, text),
	)
	_, err := s.request(t, s.opts.ReplyTimeout)
	return err
}

// GetUserNameList requests the batched user list. Its reply fans out to
// UserJoined events rather than being returned inline, so this call is
// fire-and-forget: it returns as soon as the write completes.
func (s *Session) GetUserNameList() error {
	id := s.nextTransactionID()
	t := hl.NewRequest(id, hl.TranGetUserNameList)
	return s.writeTransaction(t)
}

// GetMessageBoard requests the full message board text.
func (s *Session) GetMessageBoard() (string, error) {
	id := s.nextTransactionID()
	t := hl.NewRequest(id, hl.TranGetMsgs)
	reply, err := s.request(t, s.opts.ReplyTimeout)
	if err != nil {
		return "", err
	}
	if f, ok := reply.Field(hl.FieldData); ok {
		return f.String(), nil
	}
	return "", nil
}

// PostMessageBoard appends an entry to the message board.
func (s *Session) PostMessageBoard(text string) error {
	id := s.nextTransactionID()
	t := hl.NewRequest(id, hl.TranOldPostNews, hl.NewStringField(hl.FieldData, text))
	_, err := s.request(t, s.opts.ReplyTimeout)
	return err
}

// NewsCategoryEntry is one entry in a news category listing.
type NewsCategoryEntry struct {
	Name       string
	IsBundle   bool
	ChildCount uint16
}

// GetNewsCategoryList lists the categories and bundles at path (nil or
// empty for the root of the news tree).
func (s *Session) GetNewsCategoryList(path []string) ([]NewsCategoryEntry, error) {
	id := s.nextTransactionID()
	fields := []hl.Field{}
	if len(path) > 0 {
		fields = append(fields, hl.NewBytesField(hl.FieldNewsPath, hl.EncodePath(path)))
	}
	t := hl.NewRequest(id, hl.TranGetNewsCatNameList, fields...)

	reply, err := s.request(t, s.opts.ReplyTimeout)
	if err != nil {
		return nil, err
	}

	var entries []NewsCategoryEntry
	for _, f := range reply.FieldsOfType(hl.FieldNewsCatListData15) {
		cat, err := hl.DecodeNewsCategory(f.Payload)
		if err != nil {
			continue
		}
		entries = append(entries, NewsCategoryEntry{Name: cat.Name, IsBundle: cat.IsBundle(), ChildCount: cat.ChildCount})
	}
	return entries, nil
}

// ListNewsTree recursively descends bundles under path, returning every
// category discovered and the path it lives at. This composes
// GetNewsCategoryList; it introduces no new wire operation.
func (s *Session) ListNewsTree(path []string) (map[string][]NewsCategoryEntry, error) {
	tree := make(map[string][]NewsCategoryEntry)

	var walk func(p []string) error
	walk = func(p []string) error {
		entries, err := s.GetNewsCategoryList(p)
		if err != nil {
			return err
		}
		key := joinPath(p)
		tree[key] = entries

		for _, e := range entries {
			if !e.IsBundle {
				continue
			}
			child := append(append([]string{}, p...), e.Name)
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(path); err != nil {
		return nil, err
	}
	return tree, nil
}

func joinPath(p []string) string {
	out := ""
	for i, seg := range p {
		if i > 0 {
			out += "/"
		}
		out += seg
	}
	return out
}

// GetNewsArticleList requests the article listing for a leaf category.
func (s *Session) GetNewsArticleList(path []string) (hl.NewsArticleList, error) {
	id := s.nextTransactionID()
	t := hl.NewRequest(id, hl.TranGetNewsArtNameList,
		hl.NewBytesField(hl.FieldNewsPath, hl.EncodePath(path)),
	)
	reply, err := s.request(t, s.opts.ReplyTimeout)
	if err != nil {
		return hl.NewsArticleList{}, err
	}
	f, ok := reply.Field(hl.FieldNewsArtListData)
	if !ok {
		return hl.NewsArticleList{}, newError(KindProtocol, "reply missing NewsArticleListData")
	}
	return hl.DecodeNewsArticleList(f.Payload)
}

// GetNewsArticleData fetches the body of a single news article.
func (s *Session) GetNewsArticleData(path []string, articleID uint32) (string, error) {
	id := s.nextTransactionID()
	t := hl.NewRequest(id, hl.TranGetNewsArtData,
		hl.NewBytesField(hl.FieldNewsPath, hl.EncodePath(path)),
		hl.NewUint32Field(hl.FieldNewsArtId, articleID),
	)
	reply, err := s.request(t, s.opts.ReplyTimeout)
	if err != nil {
		return "", err
	}
	if f, ok := reply.Field(hl.FieldNewsArtData); ok {
		return f.String(), nil
	}
	return "", nil
}

// PostNewsArticle posts a new article in the category at path.
func (s *Session) PostNewsArticle(path []string, title, text string) error {
	id := s.nextTransactionID()
	t := hl.NewRequest(id, hl.TranPostNewsArt,
		hl.NewBytesField(hl.FieldNewsPath, hl.EncodePath(path)),
		hl.NewStringField(hl.FieldNewsArtTitle, title),
		hl.NewStringField(hl.FieldNewsArtData, text),
	)
	_, err := s.request(t, s.opts.ReplyTimeout)
	return err
}

// GetFileNameList requests the directory listing at path. The reply is
// fire-and-forget: it fans out to a FileList event rather than being
// returned here. The memo recorded here lets the dispatcher tag that
// event with path.
func (s *Session) GetFileNameList(path []string) error {
	id := s.nextTransactionID()
	s.files.put(id, path)

	fields := []hl.Field{}
	if len(path) > 0 {
		fields = append(fields, hl.NewBytesField(hl.FieldFilePath, hl.EncodePath(path)))
	}
	t := hl.NewRequest(id, hl.TranGetFileNameList, fields...)

	if err := s.writeTransaction(t); err != nil {
		s.files.take(id)
		return err
	}
	return nil
}

// DisconnectUser kicks another user off the server. Requires operator
// privileges on the server side.
func (s *Session) DisconnectUser(userID uint16) error {
	id := s.nextTransactionID()
	t := hl.NewRequest(id, hl.TranDisconnectUser, hl.NewUint16Field(hl.FieldUserId, userID))
	_, err := s.request(t, s.opts.ReplyTimeout)
	return err
}

// GetUserAccess fetches the server-granted access bits for the current
// login.
func (s *Session) GetUserAccess() (uint32, error) {
	id := s.nextTransactionID()
	t := hl.NewRequest(id, hl.TranUserAccess)
	reply, err := s.request(t, s.opts.ReplyTimeout)
	if err != nil {
		return 0, err
	}
	if f, ok := reply.Field(hl.FieldUserAccess); ok {
		return f.Uint32()
	}
	return 0, nil
}

// SetDisplayName updates the name other users see without reconnecting.
func (s *Session) SetDisplayName(name string, iconID uint16) error {
	s.mu.Lock()
	s.opts.DisplayName = name
	s.opts.IconID = iconID
	s.mu.Unlock()

	id := s.nextTransactionID()
	t := hl.NewRequest(id, hl.TranSetClientUserInfo,
		hl.NewStringField(hl.FieldUserName, name),
		hl.NewUint16Field(hl.FieldUserIconId, iconID),
	)
	return s.writeTransaction(t)
}
