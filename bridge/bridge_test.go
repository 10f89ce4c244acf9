package bridge_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aperturerobotics/go-wasm-macro-host/bridge"
	"github.com/aperturerobotics/go-wasm-macro-host/internal/wasmtest"
	"github.com/aperturerobotics/go-wasm-macro-host/tokenstream"
)

func newRuntime(t *testing.T) (context.Context, *bridge.Runtime) {
	t.Helper()
	ctx := context.Background()
	r, err := bridge.NewRuntime(ctx)
	if err != nil {
		t.Fatal("NewRuntime:", err)
	}
	t.Cleanup(func() { _ = r.Close(ctx) })
	return ctx, r
}

func instantiate(t *testing.T, ctx context.Context, r *bridge.Runtime, name string, wasm []byte) *bridge.Instance {
	t.Helper()
	m, err := bridge.NewModule(name, name+".wasm", wasm)
	if err != nil {
		t.Fatal("NewModule:", err)
	}
	in, err := r.Instantiate(ctx, m)
	if err != nil {
		t.Fatal("Instantiate:", err)
	}
	return in
}

func TestRegistryRoundTrip(t *testing.T) {
	reg := bridge.NewRegistry()
	s := tokenstream.Stream{tokenstream.Ident{Name: "x"}}

	h := reg.Push(s)
	got, err := reg.Take(h)
	if err != nil {
		t.Fatal("Take:", err)
	}
	if !tokenstream.Equal(got, s) {
		t.Fatalf("Take(Push(v)) = %v, want %v", got, s)
	}
	if reg.Len() != 0 {
		t.Fatalf("registry should be empty after take, has %d entries", reg.Len())
	}

	// Double take and unknown handles are contract violations.
	if _, err := reg.Take(h); !errors.Is(err, bridge.ErrUnknownHandle) {
		t.Errorf("double take error = %v, want ErrUnknownHandle", err)
	}
	if _, err := reg.Take(9999); !errors.Is(err, bridge.ErrUnknownHandle) {
		t.Errorf("unknown handle error = %v, want ErrUnknownHandle", err)
	}
}

func TestRegistryHandlesAreFresh(t *testing.T) {
	reg := bridge.NewRegistry()
	a := reg.Push(tokenstream.Stream{tokenstream.Ident{Name: "a"}})
	b := reg.Push(tokenstream.Stream{tokenstream.Ident{Name: "b"}})
	if a == b {
		t.Fatal("two pushes returned the same handle")
	}
	got, err := reg.Take(b)
	if err != nil {
		t.Fatal("Take:", err)
	}
	if got[0].(tokenstream.Ident).Name != "b" {
		t.Fatalf("handle %d resolved to the wrong stream: %v", b, got)
	}
}

func TestInvokeEcho(t *testing.T) {
	ctx, r := newRuntime(t)
	in := instantiate(t, ctx, r, "echo", wasmtest.Identity("derive:Echo:echo_impl\n", "echo_impl"))

	input := tokenstream.Stream{tokenstream.Ident{Name: "x"}}
	out, err := in.Invoke(ctx, "echo_impl", []tokenstream.Stream{input})
	if err != nil {
		t.Fatal("Invoke:", err)
	}
	if !tokenstream.Equal(out, input) {
		t.Fatalf("echo returned %v, want %v", out, input)
	}
}

func TestInvokeMultipleInputs(t *testing.T) {
	// Attribute-shaped invocation: two inputs; the identity entry returns
	// its first argument.
	ctx, r := newRuntime(t)
	in := instantiate(t, ctx, r, "attr", wasmtest.IdentityAttr("attr:route:route_impl\n", "route_impl"))

	args := tokenstream.Stream{tokenstream.Literal{Text: `"/users"`}}
	item := tokenstream.Stream{tokenstream.Ident{Name: "fn"}, tokenstream.Ident{Name: "users"}}
	out, err := in.Invoke(ctx, "route_impl", []tokenstream.Stream{args, item})
	if err != nil {
		t.Fatal("Invoke:", err)
	}
	if !tokenstream.Equal(out, args) {
		t.Fatalf("expected the first input back, got %v", out)
	}
}

func TestInvokeTrap(t *testing.T) {
	ctx, r := newRuntime(t)
	in := instantiate(t, ctx, r, "boom", wasmtest.Trapping("bang:boom:boom_impl\n", "boom_impl"))

	_, err := in.Invoke(ctx, "boom_impl", []tokenstream.Stream{nil})
	var trap *bridge.Trap
	if !errors.As(err, &trap) {
		t.Fatalf("expected *Trap, got %T: %v", err, err)
	}
	if trap.Module != "boom" || trap.Symbol != "boom_impl" {
		t.Fatalf("trap attribution wrong: %+v", trap)
	}

	// The instance stays usable for diagnostics purposes, and a fresh
	// invocation of a different instance on the same runtime succeeds.
	echo := instantiate(t, ctx, r, "echo", wasmtest.Identity("derive:Echo:echo_impl\n", "echo_impl"))
	input := tokenstream.Stream{tokenstream.Ident{Name: "ok"}}
	out, err := echo.Invoke(ctx, "echo_impl", []tokenstream.Stream{input})
	if err != nil {
		t.Fatal("Invoke after trap:", err)
	}
	if !tokenstream.Equal(out, input) {
		t.Fatalf("post-trap invocation returned %v, want %v", out, input)
	}
}

func TestInstantiateMissingWrap(t *testing.T) {
	ctx, r := newRuntime(t)
	m, err := bridge.NewModule("broken", "broken.wasm", wasmtest.MissingWrap("bang:b:b_impl\n"))
	if err != nil {
		t.Fatal("NewModule:", err)
	}
	if _, err := r.Instantiate(ctx, m); !errors.Is(err, bridge.ErrMissingExport) {
		t.Fatalf("expected ErrMissingExport, got %v", err)
	}
}

func TestInvokeUnknownSymbol(t *testing.T) {
	ctx, r := newRuntime(t)
	in := instantiate(t, ctx, r, "echo", wasmtest.Identity("", "echo_impl"))
	if _, err := in.Invoke(ctx, "nope_impl", nil); !errors.Is(err, bridge.ErrMissingExport) {
		t.Fatalf("expected ErrMissingExport, got %v", err)
	}
}

func TestInvokeSynthesizedStream(t *testing.T) {
	// The guest builds its output through the token_stream_new host
	// function rather than echoing a handle, exercising the host half of
	// the marshaling protocol.
	want := tokenstream.Stream{
		tokenstream.Ident{Name: "impl"},
		tokenstream.Ident{Name: "Demo"},
		tokenstream.Group{Delim: tokenstream.DelimBrace, Body: nil},
	}
	payload, err := tokenstream.MarshalWire(want)
	if err != nil {
		t.Fatal("MarshalWire:", err)
	}

	ctx, r := newRuntime(t)
	in := instantiate(t, ctx, r, "synth",
		wasmtest.Synthesizing("derive:Demo:demo_impl\n", "demo_impl", payload))

	out, err := in.Invoke(ctx, "demo_impl", []tokenstream.Stream{nil})
	if err != nil {
		t.Fatal("Invoke:", err)
	}
	if !tokenstream.Equal(out, want) {
		t.Fatalf("synthesized stream = %v, want %v", out, want)
	}
}

func TestHasExport(t *testing.T) {
	ctx, r := newRuntime(t)
	in := instantiate(t, ctx, r, "echo", wasmtest.Identity("", "echo_impl"))
	if !in.HasExport("echo_impl") {
		t.Error("HasExport(echo_impl) = false")
	}
	if in.HasExport("missing_impl") {
		t.Error("HasExport(missing_impl) = true")
	}
}

func TestLoadModule(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "echo.wasm")
	if err := os.WriteFile(path, wasmtest.Identity("derive:Echo:echo_impl\n", "echo_impl"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := bridge.LoadModule("echo", path)
	if err != nil {
		t.Fatal("LoadModule:", err)
	}
	if m.Name != "echo" || m.Path != path || len(m.Bytes) == 0 {
		t.Fatalf("unexpected module: %+v", m)
	}

	if _, err := bridge.LoadModule("gone", filepath.Join(dir, "gone.wasm")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.wasm")
	if err := os.WriteFile(bad, []byte("definitely not wasm"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := bridge.LoadModule("bad", bad); err == nil {
		t.Error("expected error for non-wasm bytes")
	}
}
