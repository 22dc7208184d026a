package hotline

// Status is the session's connection lifecycle state.
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
	StatusLoggingIn
	StatusLoggedIn
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusDisconnected:
		return "Disconnected"
	case StatusConnecting:
		return "Connecting"
	case StatusConnected:
		return "Connected"
	case StatusLoggingIn:
		return "LoggingIn"
	case StatusLoggedIn:
		return "LoggedIn"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// EventType discriminates the Event union.
type EventType int

const (
	EventStatusChanged EventType = iota
	EventChatMessage
	EventPrivateMessage
	EventServerMessage
	EventNewMessageBoardPost
	EventAgreementRequired
	EventUserJoined
	EventUserChanged
	EventUserLeft
	EventFileList
)

// ChatMessage is a broadcast chat line from the public chat room.
type ChatMessage struct {
	UserID   uint16
	UserName string
	Text     string
}

// PrivateMessage is an instant message addressed to this client.
type PrivateMessage struct {
	UserID uint16
	Text   string
}

// ServerMessage is a message from the server itself, not attributable to a
// user.
type ServerMessage struct {
	Text string
}

// NewMessageBoardPost announces a new entry on the message board.
type NewMessageBoardPost struct {
	Text string
}

// AgreementRequired carries the server agreement text that must be accepted
// with Session.AcceptAgreement before the session is treated as joined.
type AgreementRequired struct {
	Text string
}

// UserJoined announces a user present in a batched user-list reply. One
// event is emitted per user in the batch.
type UserJoined struct {
	UserID   uint16
	UserName string
	IconID   uint16
	Flags    uint16
}

// UserChanged announces a user's name, icon, or flags changing.
type UserChanged struct {
	UserID   uint16
	UserName string
	IconID   uint16
	Flags    uint16
}

// UserLeft announces a user disconnecting.
type UserLeft struct {
	UserID uint16
}

// FileListEntry is one file or folder in a FileList event.
type FileListEntry struct {
	Name   string
	Size   uint32
	IsDir  bool
}

// FileList is the fan-out of a GetFileNameList reply, tagged with the path
// that was requested.
type FileList struct {
	Path    []string
	Entries []FileListEntry
}

// Event is the envelope delivered on a Session's event channel. Exactly one
// of the typed fields is non-nil/non-zero, selected by Type.
type Event struct {
	Type EventType

	Status         Status
	Chat           *ChatMessage
	Private        *PrivateMessage
	Server         *ServerMessage
	MessageBoard   *NewMessageBoardPost
	Agreement      *AgreementRequired
	UserJoined     *UserJoined
	UserChanged    *UserChanged
	UserLeft       *UserLeft
	Files          *FileList
}
