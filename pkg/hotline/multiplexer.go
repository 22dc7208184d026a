package hotline

import (
	"context"
	"io"
	"time"

	"github.com/hotline-go/hotline/internal/logger"
	hl "github.com/hotline-go/hotline/internal/protocol/hotline"
)

// receiveLoop is the single reader of the control channel. Per iteration:
// read the 20-byte header, decode it to learn data_size, read that many
// further bytes if nonzero, decode the full frame, and dispatch it. Any
// read error or EOF is fatal to the session: the loop tears down both
// endpoints and transitions to Disconnected.
func (s *Session) receiveLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		t, err := s.readOneFrame()
		if err != nil {
			if err == io.EOF {
				logger.Debug("control channel closed by server")
			} else {
				logger.Warn("receive loop read error", logger.Err(err))
			}
			s.handleFatalDisconnect()
			return
		}

		s.dispatch(t)
	}
}

// handleFatalDisconnect tears down the session following a fatal receive
// error, mirroring Disconnect but safe to call from within the receive
// loop itself (it must not wait on the loop group for its own goroutine).
func (s *Session) handleFatalDisconnect() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	if s.cancelLoops != nil {
		s.cancelLoops()
	}
	s.closeConn()
	s.router.drain()
	s.setStatus(StatusDisconnected)
}

// keepAliveLoop sends a GetUserNameList frame every KeepAliveInterval,
// chosen because all servers accept it regardless of protocol version. On
// write failure it exits silently; the receive loop independently detects
// the closed socket.
func (s *Session) keepAliveLoop(ctx context.Context) {
	ticker := time.NewTicker(s.opts.KeepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			id := s.nextTransactionID()
			t := hl.NewRequest(id, hl.TranGetUserNameList)
			if err := s.writeTransaction(t); err != nil {
				logger.Debug("keep-alive write failed, exiting", logger.Err(err))
				return
			}
		}
	}
}
