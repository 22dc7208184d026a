// Package hotline implements a client for the Hotline protocol: the
// transaction codec, the connection lifecycle, the request/reply
// correlator, the unsolicited-event dispatcher, the file-transfer
// subsystem, and the tracker listing client.
package hotline

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hotline-go/hotline/internal/logger"
	hl "github.com/hotline-go/hotline/internal/protocol/hotline"
	"golang.org/x/sync/errgroup"
)

// ServerInfo is cached from the login reply.
type ServerInfo struct {
	Name          string
	Description   string
	VersionNumber uint16
}

// Session is a single connection to a Hotline server. It owns the split
// read/write halves of the control-channel TCP stream, the transaction-ID
// counter, the pending-reply table, and the file-list path memo. A Session
// is safe for concurrent use by multiple goroutines.
type Session struct {
	opts Options

	mu         sync.Mutex
	status     Status
	conn       net.Conn
	writeMu    sync.Mutex
	reader     *bufio.Reader
	server     ServerInfo
	running    atomic.Bool

	nextID uint32 // atomic fetch-add, starts at 1

	router *router
	files  *fileListMemo

	events chan Event

	cancelLoops context.CancelFunc
	loopGroup   *errgroup.Group
}

// NewSession constructs a Session from the given options. It performs no
// I/O; call Connect to open the TCP connection.
func NewSession(opts Options) (*Session, error) {
	opts.defaults()
	if err := opts.validateOptions(); err != nil {
		return nil, wrapError(KindProtocol, err)
	}

	return &Session{
		opts:   opts,
		status: StatusDisconnected,
		router: newRouter(),
		files:  newFileListMemo(),
		events: make(chan Event, 64),
	}, nil
}

// Events returns the channel on which the session delivers status changes
// and unsolicited server events. Callers should drain it continuously;
// once its 64-event buffer is full, further events are dropped with a
// warning.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Status returns the session's current connection status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// ServerInfo returns the server info cached from the login reply. It is
// only meaningful once the session reaches LoggedIn.
func (s *Session) ServerInfo() ServerInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.server
}

func (s *Session) setStatus(status Status) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
	s.emit(Event{Type: EventStatusChanged, Status: status})
}

func (s *Session) emit(ev Event) {
	select {
	case s.events <- ev:
	default:
		logger.Warn("event channel full, dropping event", "event_type", ev.Type)
	}
}

// nextTransactionID returns the next transaction id, assigned under an
// atomic fetch-add so ids are unique and strictly increasing even when
// multiple callers race to send.
func (s *Session) nextTransactionID() uint32 {
	return atomic.AddUint32(&s.nextID, 1)
}

// Connect opens the TCP connection, performs the control-channel handshake
// and login, and starts the background receive and keep-alive loops.
func (s *Session) Connect(ctx context.Context) error {
	s.setStatus(StatusConnecting)

	dialer := net.Dialer{Timeout: s.opts.ConnectTimeout}
	addr := fmt.Sprintf("%s:%d", s.opts.Address, s.opts.Port)
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		s.setStatus(StatusFailed)
		return wrapError(KindTransport, err)
	}

	s.mu.Lock()
	s.conn = conn
	s.reader = bufio.NewReaderSize(conn, 64<<10)
	s.nextID = 0
	s.mu.Unlock()

	s.setStatus(StatusConnected)

	if err := s.handshake(); err != nil {
		s.closeConn()
		s.setStatus(StatusFailed)
		return err
	}

	s.setStatus(StatusLoggingIn)

	if err := s.login(ctx); err != nil {
		s.closeConn()
		s.setStatus(StatusFailed)
		return err
	}

	s.setStatus(StatusLoggedIn)

	loopCtx, cancel := context.WithCancel(context.Background())
	s.cancelLoops = cancel
	s.running.Store(true)

	g, gctx := errgroup.WithContext(loopCtx)
	s.loopGroup = g
	g.Go(func() error {
		s.receiveLoop(gctx)
		return nil
	})
	g.Go(func() error {
		s.keepAliveLoop(gctx)
		return nil
	})

	// Complete the join handshake: fire-and-forget, the reply fans out to
	// UserJoined events rather than a scalar return.
	if err := s.GetUserNameList(); err != nil {
		logger.Warn("initial GetUserNameList failed", logger.Err(err))
	}

	return nil
}

// Disconnect aborts the background loops, drops the connection, drains
// outstanding pending replies, and transitions to Disconnected.
func (s *Session) Disconnect() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	if s.cancelLoops != nil {
		s.cancelLoops()
	}
	if s.loopGroup != nil {
		_ = s.loopGroup.Wait()
	}

	s.closeConn()
	s.router.drain()
	s.setStatus(StatusDisconnected)
}

func (s *Session) closeConn() {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.reader = nil
	s.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
}

// writeTransaction serializes access to the write half: acquire, write the
// complete frame, release. Callers never hold this lock across a wait for
// a reply.
func (s *Session) writeTransaction(t *hl.Transaction) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		return newError(KindTransport, "not connected")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_, err := conn.Write(t.Encode())
	if err != nil {
		return wrapError(KindTransport, err)
	}
	return nil
}

// request sends t and waits for its reply under deadline, honoring the
// router's insert-before-write discipline. A slot is always removed before
// this function returns, whether by delivery, timeout, or the channel
// closing on disconnect.
func (s *Session) request(t *hl.Transaction, deadline time.Duration) (*hl.Transaction, error) {
	start := time.Now()
	slot := s.router.register(t.ID)

	if err := s.writeTransaction(t); err != nil {
		s.router.forget(t.ID)
		s.opts.Metrics.observeRequest(start, "error")
		return nil, err
	}

	timer := time.NewTimer(deadline)
	defer timer.Stop()

	select {
	case reply, ok := <-slot.ch:
		if !ok {
			s.opts.Metrics.observeRequest(start, "cancelled")
			return nil, newError(KindCancelled, "session disconnected while waiting for reply")
		}
		if reply.ErrorCode != 0 {
			text, _ := reply.ErrorText()
			s.opts.Metrics.observeRequest(start, "server_error")
			return reply, &Error{Kind: KindServerReported, Code: reply.ErrorCode, Message: text}
		}
		s.opts.Metrics.observeRequest(start, "ok")
		return reply, nil
	case <-timer.C:
		s.router.forget(t.ID)
		s.opts.Metrics.observeRequest(start, "timeout")
		return nil, newError(KindTimeout, fmt.Sprintf("no reply to transaction %d within %s", t.ID, deadline))
	}
}
