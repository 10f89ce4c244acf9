package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/aperturerobotics/go-wasm-macro-host/tokenstream"
)

// Protocol errors, detected at instantiate time so a broken module fails
// before its first use.
var (
	// ErrMissingExport means a required wrap/unwrap/memory export is absent.
	ErrMissingExport = errors.New("module missing required export")

	// ErrBadResult means an export returned an unexpected shape.
	ErrBadResult = errors.New("export returned unexpected result shape")
)

// Instance is one instantiated extension module. It must be treated as
// single-threaded: a mutex serializes invocations, accepting that extension
// calls on the same module run one at a time as the cost of instance reuse.
type Instance struct {
	mu   sync.Mutex
	name string
	mod  api.Module

	wrap   api.Function
	unwrap api.Function
}

// Instantiate parses and instantiates a module inside the sandbox, resolves
// the marshaling exports and runs the optional _initialize. Required exports
// are checked here, not deferred to first use.
func (r *Runtime) Instantiate(ctx context.Context, m *Module) (*Instance, error) {
	compiled, err := r.wz.CompileModule(ctx, m.Bytes)
	if err != nil {
		return nil, fmt.Errorf("module %s malformed: %w", m.Name, err)
	}

	config := wazero.NewModuleConfig().
		WithName(m.Name).
		WithStartFunctions() // reactor convention: we run _initialize ourselves
	mod, err := r.wz.InstantiateModule(ctx, compiled, config)
	if err != nil {
		return nil, fmt.Errorf("instantiate module %s: %w", m.Name, err)
	}

	if mod.Memory() == nil {
		_ = mod.Close(ctx)
		return nil, fmt.Errorf("module %s: %w: %s", m.Name, ErrMissingExport, ExportMemory)
	}
	for _, name := range requiredExports {
		if mod.ExportedFunction(name) == nil {
			_ = mod.Close(ctx)
			return nil, fmt.Errorf("module %s: %w: %s", m.Name, ErrMissingExport, name)
		}
	}

	if initFn := mod.ExportedFunction(ExportInitialize); initFn != nil {
		if _, err := initFn.Call(ctx); err != nil {
			_ = mod.Close(ctx)
			return nil, fmt.Errorf("module %s: %s: %w", m.Name, ExportInitialize, err)
		}
	}

	log.Debugf("instantiated module %s (%d bytes)", m.Name, len(m.Bytes))

	return &Instance{
		name:   m.Name,
		mod:    mod,
		wrap:   mod.ExportedFunction(ExportWrap),
		unwrap: mod.ExportedFunction(ExportUnwrap),
	}, nil
}

// Name returns the module name this instance was created from.
func (in *Instance) Name() string {
	return in.name
}

// HasExport reports whether the module exports a function with the given
// name. The binder uses this to verify entry symbols before allocating
// dispatch slots.
func (in *Instance) HasExport(symbol string) bool {
	return in.mod.ExportedFunction(symbol) != nil
}

// Close releases the instance.
func (in *Instance) Close(ctx context.Context) error {
	return in.mod.Close(ctx)
}

// Invoke runs one extension invocation:
//
//  1. push each input into a fresh handle registry,
//  2. wrap each handle into the guest's own representation,
//  3. call the entry symbol with the wrapped inputs,
//  4. unwrap the result back into a handle,
//  5. take the handle, yielding the output stream.
//
// A guest fault at any step aborts the invocation and surfaces as a *Trap.
func (in *Instance) Invoke(ctx context.Context, symbol string, inputs []tokenstream.Stream) (tokenstream.Stream, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	entry := in.mod.ExportedFunction(symbol)
	if entry == nil {
		return nil, fmt.Errorf("module %s: %w: %s", in.name, ErrMissingExport, symbol)
	}

	reg := NewRegistry()
	ctx = withCallState(ctx, reg)

	args := make([]uint64, len(inputs))
	for i, input := range inputs {
		h := reg.Push(input)
		wrapped, err := in.wrap.Call(ctx, uint64(h))
		if err != nil {
			return nil, in.trap(ExportWrap, err)
		}
		if len(wrapped) != 1 {
			return nil, fmt.Errorf("module %s: %s: %w", in.name, ExportWrap, ErrBadResult)
		}
		args[i] = wrapped[0]
	}

	results, err := entry.Call(ctx, args...)
	if err != nil {
		return nil, in.trap(symbol, err)
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("module %s: %s: %w", in.name, symbol, ErrBadResult)
	}

	unwrapped, err := in.unwrap.Call(ctx, results[0])
	if err != nil {
		return nil, in.trap(ExportUnwrap, err)
	}
	if len(unwrapped) != 1 {
		return nil, fmt.Errorf("module %s: %s: %w", in.name, ExportUnwrap, ErrBadResult)
	}

	out, err := reg.Take(Handle(unwrapped[0]))
	if err != nil {
		return nil, fmt.Errorf("module %s: %s: %w", in.name, ExportUnwrap, err)
	}
	return out, nil
}

func (in *Instance) trap(symbol string, cause error) *Trap {
	log.Errorf("trap in module %s at %s: %v", in.name, symbol, cause)
	return &Trap{Module: in.name, Symbol: symbol, Cause: cause}
}
