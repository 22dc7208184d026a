package hotline

import (
	"sync"

	hl "github.com/hotline-go/hotline/internal/protocol/hotline"
)

// replySlot is a one-shot channel a waiting caller receives its matching
// reply transaction on. It is buffered by one so a late delivery from the
// receive loop never blocks on a caller that has already timed out.
type replySlot struct {
	ch chan *hl.Transaction
}

// router is the transaction-ID keyed pending-reply table. Insert happens
// under the exclusive lock before the request frame is written; remove
// happens on delivery, timeout, or cancellation — whichever comes first —
// so a slot is never left dangling.
type router struct {
	mu    sync.RWMutex
	slots map[uint32]*replySlot
}

func newRouter() *router {
	return &router{slots: make(map[uint32]*replySlot)}
}

// register inserts a fresh slot for id. It must be called before the
// request frame is written, never after.
func (r *router) register(id uint32) *replySlot {
	slot := &replySlot{ch: make(chan *hl.Transaction, 1)}
	r.mu.Lock()
	r.slots[id] = slot
	r.mu.Unlock()
	return slot
}

// deliver routes an incoming reply to its waiting slot, if one is
// registered. It reports whether a slot consumed the reply.
func (r *router) deliver(t *hl.Transaction) bool {
	r.mu.Lock()
	slot, ok := r.slots[t.ID]
	if ok {
		delete(r.slots, t.ID)
	}
	r.mu.Unlock()

	if !ok {
		return false
	}
	slot.ch <- t
	return true
}

// forget removes id's slot without delivering anything, used on timeout or
// cancellation so the table never accumulates dead entries.
func (r *router) forget(id uint32) {
	r.mu.Lock()
	delete(r.slots, id)
	r.mu.Unlock()
}

// drain empties the table, used when the session transitions to
// Disconnected. Waiting callers observe their channel close rather than
// receive a transaction, which they treat as KindCancelled.
func (r *router) drain() {
	r.mu.Lock()
	slots := r.slots
	r.slots = make(map[uint32]*replySlot)
	r.mu.Unlock()

	for _, slot := range slots {
		close(slot.ch)
	}
}

// fileListMemo maps a GetFileNameList transaction id to the path that was
// requested, so the eventual FileList event can be tagged with it. It has
// the same insert-before-send, remove-on-consume lifecycle as router.
type fileListMemo struct {
	mu    sync.RWMutex
	paths map[uint32][]string
}

func newFileListMemo() *fileListMemo {
	return &fileListMemo{paths: make(map[uint32][]string)}
}

func (m *fileListMemo) put(id uint32, path []string) {
	m.mu.Lock()
	m.paths[id] = path
	m.mu.Unlock()
}

func (m *fileListMemo) take(id uint32) ([]string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path, ok := m.paths[id]
	if ok {
		delete(m.paths, id)
	}
	return path, ok
}
