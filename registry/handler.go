package registry

import (
	"sync/atomic"
	"unsafe"

	"github.com/clothesline-http/clothesline/engine"
)

// UpdatableHandler is an engine.Handler that can be swapped out for a
// new one at any time without disturbing a request already being
// Handled by the old one — adapted from the atomic-pointer-swap
// UpdatableSpec this package's sibling engine package split away
// from, generalized from a single spec pointer to a full Handler.
type UpdatableHandler struct {
	p unsafe.Pointer // *engine.Handler
}

// NewUpdatableHandler wraps an initial Handler.
func NewUpdatableHandler(h *engine.Handler) *UpdatableHandler {
	return &UpdatableHandler{p: unsafe.Pointer(h)}
}

// Set atomically replaces the underlying Handler.
func (u *UpdatableHandler) Set(h *engine.Handler) {
	atomic.StorePointer(&u.p, unsafe.Pointer(h))
}

// Handler returns the Handler currently in effect.
func (u *UpdatableHandler) Handler() *engine.Handler {
	return (*engine.Handler)(atomic.LoadPointer(&u.p))
}

// Handle drives req through whichever Handler is current at the
// moment of the call.
func (u *UpdatableHandler) Handle(req *engine.Request) (*engine.Response, error) {
	return u.Handler().Handle(req)
}
