package hotline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hl "github.com/hotline-go/hotline/internal/protocol/hotline"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(Options{
		Address:     "localhost",
		Port:        5500,
		DisplayName: "tester",
	})
	require.NoError(t, err)
	return s
}

// ============================================================================
// Reply fan-out precedence
// ============================================================================

func TestDispatchReplyWithUserNameWithInfoDoesNotReachRouter(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	slot := s.router.register(10)

	user := hl.UserNameWithInfo{ID: 1, IconID: 2, Flags: 0, Name: "Alice"}
	reply := hl.NewRequest(10, hl.TranGetUserNameList, hl.NewBytesField(hl.FieldUserNameWithInfo, user.Encode()))
	reply.IsReply = true

	s.dispatch(reply)

	select {
	case <-slot.ch:
		t.Fatal("router slot should not receive a reply that fans out to UserJoined events")
	case <-time.After(50 * time.Millisecond):
	}

	select {
	case ev := <-s.events:
		require.Equal(t, EventUserJoined, ev.Type)
		assert.Equal(t, "Alice", ev.UserJoined.UserName)
	case <-time.After(time.Second):
		t.Fatal("expected a UserJoined event")
	}
}

func TestDispatchReplyWithFileNameWithInfoTagsPathFromMemo(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	s.files.put(20, []string{"Uploads"})

	file := hl.FileNameWithInfo{FileType: "TEXT", Creator: "ttxt", Size: 1024, Name: "readme.txt"}
	reply := hl.NewRequest(20, hl.TranGetFileNameList, hl.NewBytesField(hl.FieldFileNameWithInfo, file.Encode()))
	reply.IsReply = true

	s.dispatch(reply)

	select {
	case ev := <-s.events:
		require.Equal(t, EventFileList, ev.Type)
		assert.Equal(t, []string{"Uploads"}, ev.Files.Path)
		require.Len(t, ev.Files.Entries, 1)
		assert.Equal(t, "readme.txt", ev.Files.Entries[0].Name)
	case <-time.After(time.Second):
		t.Fatal("expected a FileList event")
	}
}

func TestDispatchOrdinaryReplyGoesToRouter(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	slot := s.router.register(30)

	reply := hl.NewRequest(30, hl.TranUserAccess, hl.NewUint32Field(hl.FieldUserAccess, 7))
	reply.IsReply = true

	s.dispatch(reply)

	select {
	case got := <-slot.ch:
		assert.Equal(t, uint32(30), got.ID)
	case <-time.After(time.Second):
		t.Fatal("ordinary reply should have been delivered to the router")
	}
}

// ============================================================================
// Unsolicited transaction classification
// ============================================================================

func TestDispatchUnsolicitedChatMessage(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	tr := hl.NewRequest(0, hl.TranChatMsg,
		hl.NewUint16Field(hl.FieldUserId, 5),
		hl.NewStringField(hl.FieldUserName, "Bob"),
		hl.NewStringField(hl.FieldData, "hello there"),
	)

	s.dispatch(tr)

	ev := <-s.events
	require.Equal(t, EventChatMessage, ev.Type)
	assert.Equal(t, uint16(5), ev.Chat.UserID)
	assert.Equal(t, "Bob", ev.Chat.UserName)
	assert.Equal(t, "hello there", ev.Chat.Text)
}

func TestDispatchUnsolicitedServerMessageVsPrivateMessage(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)

	broadcast := hl.NewRequest(0, hl.TranServerMsg, hl.NewStringField(hl.FieldData, "server going down"))
	s.dispatch(broadcast)
	ev := <-s.events
	require.Equal(t, EventServerMessage, ev.Type)
	assert.Equal(t, "server going down", ev.Server.Text)

	private := hl.NewRequest(0, hl.TranServerMsg,
		hl.NewUint16Field(hl.FieldUserId, 9),
		hl.NewStringField(hl.FieldData, "hey"),
	)
	s.dispatch(private)
	ev = <-s.events
	require.Equal(t, EventPrivateMessage, ev.Type)
	assert.Equal(t, uint16(9), ev.Private.UserID)
	assert.Equal(t, "hey", ev.Private.Text)
}

func TestDispatchUnsolicitedUserLeft(t *testing.T) {
	t.Parallel()

	s := newTestSession(t)
	tr := hl.NewRequest(0, hl.TranNotifyDeleteUser, hl.NewUint16Field(hl.FieldUserId, 42))

	s.dispatch(tr)

	ev := <-s.events
	require.Equal(t, EventUserLeft, ev.Type)
	assert.Equal(t, uint16(42), ev.UserLeft.UserID)
}
