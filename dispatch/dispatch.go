// Package dispatch solves the mismatch between the host macro engine's
// invocation contract and dynamically loaded extensions.
//
// The engine wants an extension represented as a plain, capture-free
// function whose identity is known when the host program itself is built.
// A loaded extension's identity (which module, which entry symbol) is known
// only at compilation run time. The bridge between the two is a fixed table
// of statically compiled stub functions: allocating a slot writes a binding
// into table index i, and stub i does nothing but look its binding up and
// forward into the sandbox bridge.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aperturerobotics/go-wasm-macro-host/bridge"
	"github.com/aperturerobotics/go-wasm-macro-host/metadata"
	"github.com/aperturerobotics/go-wasm-macro-host/tokenstream"
)

// The invocation contract of the host macro engine. Every value handed to
// the engine is a top-level function from stubs.go, never a closure.
type (
	// DeriveExpander expands a structural derive: item definition in,
	// generated items out.
	DeriveExpander func(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error)

	// AttrExpander expands an attribute macro: attribute arguments and the
	// annotated item in, replacement item out.
	AttrExpander func(ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error)

	// BangExpander expands a function-like macro.
	BangExpander func(ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error)
)

// Capacity is the number of dispatch slots. Each slot corresponds to one
// statically compiled stub per extension kind, so the table size is fixed
// when the host program is built. Exceeding it fails loudly rather than
// growing unbounded.
const Capacity = 32

// Slot identifies one allocated table entry.
type Slot int

// Binding is the runtime-determined target a slot forwards to.
type Binding struct {
	// Instance is the sandbox instance hosting the extension. The binder
	// keeps the instance and its module alive for as long as the slot is
	// bound.
	Instance *bridge.Instance
	// EntrySymbol is the guest export implementing the extension.
	EntrySymbol string
	// Kind selects which stub family serves this slot.
	Kind metadata.Kind
}

// ErrSlotsExhausted is returned when every slot is already bound.
var ErrSlotsExhausted = fmt.Errorf("all %d dispatch slots are in use", Capacity)

// The binding table is process-wide mutable state shared by every worker
// thread of the host compiler, guarded by a single lock. Allocation happens
// once per loaded extension at setup time; resolution is a short critical
// section once per macro invocation.
var (
	tableMu sync.Mutex
	table   [Capacity]*Binding
)

// Allocate writes a binding into the first free slot and returns it. Slots
// are never freed during a compilation run; extensions live for the run's
// duration.
func Allocate(b Binding) (Slot, error) {
	if b.Instance == nil || b.EntrySymbol == "" {
		return 0, errors.New("dispatch: empty binding")
	}
	tableMu.Lock()
	defer tableMu.Unlock()
	for i := range table {
		if table[i] == nil {
			bound := b
			table[i] = &bound
			return Slot(i), nil
		}
	}
	return 0, ErrSlotsExhausted
}

// Free reports how many slots remain unbound. Binders use it to refuse a
// module wholesale instead of binding half its extensions and then hitting
// exhaustion.
func Free() int {
	tableMu.Lock()
	defer tableMu.Unlock()
	n := 0
	for i := range table {
		if table[i] == nil {
			n++
		}
	}
	return n
}

// Resolve returns the binding for a slot. Resolving an unbound slot means a
// stub was invoked without its binding ever being written, which is a
// programming error, not a recoverable condition.
func Resolve(s Slot) Binding {
	tableMu.Lock()
	defer tableMu.Unlock()
	b := table[s]
	if b == nil {
		panic(fmt.Sprintf("dispatch: slot %d invoked without a binding", s))
	}
	return *b
}

// Reset clears the table. Only tests use this; a compilation run never
// frees slots.
func Reset() {
	tableMu.Lock()
	defer tableMu.Unlock()
	for i := range table {
		table[i] = nil
	}
}

// Derive returns slot s's capture-free derive stub.
func Derive(s Slot) DeriveExpander { return deriveStubs[s] }

// Attr returns slot s's capture-free attribute stub.
func Attr(s Slot) AttrExpander { return attrStubs[s] }

// Bang returns slot s's capture-free function-like stub.
func Bang(s Slot) BangExpander { return bangStubs[s] }

func expandDerive(s Slot, ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	b := Resolve(s)
	return b.Instance.Invoke(ctx, b.EntrySymbol, []tokenstream.Stream{input})
}

func expandAttr(s Slot, ctx context.Context, args, item tokenstream.Stream) (tokenstream.Stream, error) {
	b := Resolve(s)
	return b.Instance.Invoke(ctx, b.EntrySymbol, []tokenstream.Stream{args, item})
}

func expandBang(s Slot, ctx context.Context, input tokenstream.Stream) (tokenstream.Stream, error) {
	b := Resolve(s)
	return b.Instance.Invoke(ctx, b.EntrySymbol, []tokenstream.Stream{input})
}
