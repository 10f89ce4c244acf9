package bridge

import (
	"errors"
	"fmt"

	"github.com/aperturerobotics/go-wasm-macro-host/tokenstream"
)

// Handle is an opaque reference to a host-owned token stream. Handles are
// scoped to a single invocation and never cross invocation boundaries.
type Handle = uint32

// ErrUnknownHandle is the contract-violation error for stale, double-taken
// or fabricated handles. It is never exposed to extension authors as a
// recoverable condition: inside host functions it traps the guest.
var ErrUnknownHandle = errors.New("unknown or stale token stream handle")

// Registry maps handles to token streams for the duration of one invocation.
// It is created fresh per call and discarded after, so handles stay small
// and nothing accumulates across a long compilation. It is not safe for
// concurrent use; an invocation is single-threaded by construction.
type Registry struct {
	next    Handle
	entries map[Handle]*regEntry
}

type regEntry struct {
	stream tokenstream.Stream
	wire   []byte // lazily computed, cached between len and read
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Handle]*regEntry)}
}

// Push inserts a stream and returns a fresh handle. Handles are
// monotonically increasing within the registry's scope.
func (r *Registry) Push(s tokenstream.Stream) Handle {
	r.next++
	r.entries[r.next] = &regEntry{stream: s}
	return r.next
}

// Take removes and returns the stream for a handle. Double-take or take of
// an unknown handle returns ErrUnknownHandle.
func (r *Registry) Take(h Handle) (tokenstream.Stream, error) {
	e, ok := r.entries[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	delete(r.entries, h)
	return e.stream, nil
}

// Len reports the number of live handles. Used to assert nothing leaks
// across invocations.
func (r *Registry) Len() int {
	return len(r.entries)
}

// wireBytes returns the cached wire encoding of a handle's stream.
func (r *Registry) wireBytes(h Handle) ([]byte, error) {
	e, ok := r.entries[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	if e.wire == nil {
		data, err := tokenstream.MarshalWire(e.stream)
		if err != nil {
			return nil, err
		}
		e.wire = data
	}
	return e.wire, nil
}
