package dispatch_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/aperturerobotics/go-wasm-macro-host/bridge"
	"github.com/aperturerobotics/go-wasm-macro-host/dispatch"
	"github.com/aperturerobotics/go-wasm-macro-host/internal/wasmtest"
	"github.com/aperturerobotics/go-wasm-macro-host/metadata"
	"github.com/aperturerobotics/go-wasm-macro-host/tokenstream"
)

func newEcho(t *testing.T, entries ...string) (context.Context, *bridge.Instance) {
	t.Helper()
	ctx := context.Background()
	r, err := bridge.NewRuntime(ctx)
	if err != nil {
		t.Fatal("NewRuntime:", err)
	}
	t.Cleanup(func() { _ = r.Close(ctx) })

	m, err := bridge.NewModule("echo", "echo.wasm", wasmtest.Identity("", entries...))
	if err != nil {
		t.Fatal("NewModule:", err)
	}
	in, err := r.Instantiate(ctx, m)
	if err != nil {
		t.Fatal("Instantiate:", err)
	}
	return ctx, in
}

func TestAllocateExhaustion(t *testing.T) {
	t.Cleanup(dispatch.Reset)
	dispatch.Reset()

	_, in := newEcho(t, "echo_impl")

	var slots []dispatch.Slot
	for i := 0; i < dispatch.Capacity; i++ {
		s, err := dispatch.Allocate(dispatch.Binding{
			Instance:    in,
			EntrySymbol: fmt.Sprintf("entry_%d", i),
			Kind:        metadata.KindBang,
		})
		if err != nil {
			t.Fatalf("Allocate %d: %v", i, err)
		}
		slots = append(slots, s)
	}

	// One past capacity fails deterministically.
	if _, err := dispatch.Allocate(dispatch.Binding{
		Instance:    in,
		EntrySymbol: "overflow",
		Kind:        metadata.KindBang,
	}); !errors.Is(err, dispatch.ErrSlotsExhausted) {
		t.Fatalf("expected ErrSlotsExhausted, got %v", err)
	}

	// And never silently overwrites an existing binding.
	for i, s := range slots {
		if got := dispatch.Resolve(s).EntrySymbol; got != fmt.Sprintf("entry_%d", i) {
			t.Fatalf("slot %d binding overwritten: %q", s, got)
		}
	}
}

func TestAllocateRejectsEmptyBinding(t *testing.T) {
	t.Cleanup(dispatch.Reset)
	dispatch.Reset()
	if _, err := dispatch.Allocate(dispatch.Binding{}); err == nil {
		t.Fatal("expected error for empty binding")
	}
}

func TestConcurrentAllocationIndependence(t *testing.T) {
	t.Cleanup(dispatch.Reset)
	dispatch.Reset()

	_, in := newEcho(t, "echo_impl")

	const k = 16
	var wg sync.WaitGroup
	got := make([]dispatch.Slot, k)
	errs := make([]error, k)
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], errs[i] = dispatch.Allocate(dispatch.Binding{
				Instance:    in,
				EntrySymbol: fmt.Sprintf("entry_%d", i),
				Kind:        metadata.KindDerive,
			})
		}(i)
	}
	wg.Wait()

	seen := make(map[dispatch.Slot]bool)
	for i := 0; i < k; i++ {
		if errs[i] != nil {
			t.Fatalf("Allocate %d: %v", i, errs[i])
		}
		if seen[got[i]] {
			t.Fatalf("slot %d allocated twice", got[i])
		}
		seen[got[i]] = true
		if sym := dispatch.Resolve(got[i]).EntrySymbol; sym != fmt.Sprintf("entry_%d", i) {
			t.Fatalf("slot %d resolved to %q, want entry_%d", got[i], sym, i)
		}
	}
}

func TestStubsDispatchIndependently(t *testing.T) {
	t.Cleanup(dispatch.Reset)
	dispatch.Reset()

	// Two modules whose entries synthesize distinguishable outputs, so a
	// cross-wired stub would be caught by the returned stream.
	ctx := context.Background()
	r, err := bridge.NewRuntime(ctx)
	if err != nil {
		t.Fatal("NewRuntime:", err)
	}
	t.Cleanup(func() { _ = r.Close(ctx) })

	mkInstance := func(name, tag string) *bridge.Instance {
		out := tokenstream.Stream{tokenstream.Ident{Name: tag}}
		payload, err := tokenstream.MarshalWire(out)
		if err != nil {
			t.Fatal("MarshalWire:", err)
		}
		m, err := bridge.NewModule(name, name+".wasm",
			wasmtest.Synthesizing("", name+"_impl", payload))
		if err != nil {
			t.Fatal("NewModule:", err)
		}
		in, err := r.Instantiate(ctx, m)
		if err != nil {
			t.Fatal("Instantiate:", err)
		}
		return in
	}

	alpha := mkInstance("alpha", "from_alpha")
	beta := mkInstance("beta", "from_beta")

	slotA, err := dispatch.Allocate(dispatch.Binding{Instance: alpha, EntrySymbol: "alpha_impl", Kind: metadata.KindDerive})
	if err != nil {
		t.Fatal("Allocate alpha:", err)
	}
	slotB, err := dispatch.Allocate(dispatch.Binding{Instance: beta, EntrySymbol: "beta_impl", Kind: metadata.KindDerive})
	if err != nil {
		t.Fatal("Allocate beta:", err)
	}
	if slotA == slotB {
		t.Fatal("distinct extensions share a slot")
	}

	input := tokenstream.Stream{tokenstream.Ident{Name: "x"}}
	outA, err := dispatch.Derive(slotA)(ctx, input)
	if err != nil {
		t.Fatal("invoke slot A:", err)
	}
	outB, err := dispatch.Derive(slotB)(ctx, input)
	if err != nil {
		t.Fatal("invoke slot B:", err)
	}
	if outA.String() != "from_alpha" {
		t.Fatalf("slot A produced %q, want from_alpha", outA.String())
	}
	if outB.String() != "from_beta" {
		t.Fatalf("slot B produced %q, want from_beta", outB.String())
	}
}

func TestResolveUnboundPanics(t *testing.T) {
	t.Cleanup(dispatch.Reset)
	dispatch.Reset()
	defer func() {
		if recover() == nil {
			t.Error("Resolve of an unbound slot did not panic")
		}
	}()
	dispatch.Resolve(dispatch.Slot(7))
}
