package bridge

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tliron/commonlog"

	"github.com/aperturerobotics/go-wasm-macro-host/tokenstream"
)

var log = commonlog.GetLogger("macrohost.bridge")

// callStateKey is the context key for the current invocation's registry.
type callStateKey struct{}

// withCallState attaches an invocation's registry to the context so the
// host functions can reach it.
func withCallState(ctx context.Context, reg *Registry) context.Context {
	return context.WithValue(ctx, callStateKey{}, reg)
}

// callRegistry fetches the current invocation's registry. Calling a host
// function outside an invocation is a guest protocol violation; the panic
// is recovered by the wazero engine and surfaces as a trap on the guest
// call, never as a panic escaping into the host.
func callRegistry(ctx context.Context) *Registry {
	reg, ok := ctx.Value(callStateKey{}).(*Registry)
	if !ok {
		panic("macro_host function called outside an invocation")
	}
	return reg
}

// Runtime wraps a wazero runtime with the macro_host module registered.
// One Runtime hosts any number of extension modules; it does not install
// WASI, so a guest importing filesystem or clock capabilities fails to
// instantiate rather than silently gaining them.
type Runtime struct {
	wz wazero.Runtime
}

// NewRuntime creates a sandbox runtime and registers the host functions.
func NewRuntime(ctx context.Context) (*Runtime, error) {
	wz := wazero.NewRuntime(ctx)
	_, err := wz.NewHostModuleBuilder(HostModuleName).
		NewFunctionBuilder().
		WithFunc(hostStreamLen).
		Export(ImportStreamLen).
		NewFunctionBuilder().
		WithFunc(hostStreamRead).
		Export(ImportStreamRead).
		NewFunctionBuilder().
		WithFunc(hostStreamNew).
		Export(ImportStreamNew).
		Instantiate(ctx)
	if err != nil {
		_ = wz.Close(ctx)
		return nil, fmt.Errorf("register %s module: %w", HostModuleName, err)
	}
	return &Runtime{wz: wz}, nil
}

// Close releases the runtime and every instance created from it.
func (r *Runtime) Close(ctx context.Context) error {
	return r.wz.Close(ctx)
}

// hostStreamLen implements token_stream_len.
func hostStreamLen(ctx context.Context, _ api.Module, h uint32) uint32 {
	data, err := callRegistry(ctx).wireBytes(h)
	if err != nil {
		panic(err)
	}
	return uint32(len(data))
}

// hostStreamRead implements token_stream_read. The guest allocates the
// destination itself after asking token_stream_len, so the host never
// chooses guest addresses.
func hostStreamRead(ctx context.Context, mod api.Module, h, ptr uint32) uint32 {
	data, err := callRegistry(ctx).wireBytes(h)
	if err != nil {
		panic(err)
	}
	if !mod.Memory().Write(ptr, data) {
		panic(fmt.Errorf("token_stream_read: out of bounds write at %d+%d", ptr, len(data)))
	}
	return uint32(len(data))
}

// hostStreamNew implements token_stream_new.
func hostStreamNew(ctx context.Context, mod api.Module, ptr, length uint32) uint32 {
	data, ok := mod.Memory().Read(ptr, length)
	if !ok {
		panic(fmt.Errorf("token_stream_new: out of bounds read at %d+%d", ptr, length))
	}
	s, err := tokenstream.UnmarshalWire(data)
	if err != nil {
		panic(fmt.Errorf("token_stream_new: %w", err))
	}
	return callRegistry(ctx).Push(s)
}
