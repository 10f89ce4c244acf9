package macrohost

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/aperturerobotics/go-wasm-macro-host/bridge"
	"github.com/aperturerobotics/go-wasm-macro-host/dispatch"
	"github.com/aperturerobotics/go-wasm-macro-host/metadata"
)

var log = commonlog.GetLogger("macrohost")

// BindError reports a descriptor that could not be bound: its entry symbol
// is not an export of the instantiated module, its public name collides
// with an already-published extension, or the slot table is exhausted.
type BindError struct {
	// Module is the offending module's name.
	Module string
	// Extension is the public name of the extension that failed, when known.
	Extension string
	// Cause is the underlying failure.
	Cause error
}

func (e *BindError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("bind module %s: %v", e.Module, e.Cause)
	}
	return fmt.Sprintf("bind extension %s in module %s: %v", e.Extension, e.Module, e.Cause)
}

func (e *BindError) Unwrap() error {
	return e.Cause
}

// Host owns one sandbox runtime and the name table of every extension it
// has bound. It is the integration seam with the compiler's resolver: the
// resolver consults Lookup whenever normal crate-based lookup fails.
type Host struct {
	runtime *bridge.Runtime

	mu        sync.Mutex
	byName    map[string]*Extension
	instances []*bridge.Instance
}

// NewHost creates a host with a fresh sandbox runtime.
func NewHost(ctx context.Context) (*Host, error) {
	r, err := bridge.NewRuntime(ctx)
	if err != nil {
		return nil, err
	}
	return &Host{
		runtime: r,
		byName:  make(map[string]*Extension),
	}, nil
}

// Close releases the sandbox runtime and every instance it hosts. Dispatch
// slots stay bound; they are scoped to the compilation run, not the Host.
func (h *Host) Close(ctx context.Context) error {
	return h.runtime.Close(ctx)
}

// LoadModule reads a macro module from disk and binds every extension it
// declares, returning the bound handles. Publication is all-or-nothing for
// the module: a failure at any step publishes no names and leaves the name
// table untouched. Loading the same path twice produces a fresh module and
// fails on the duplicate names.
func (h *Host) LoadModule(ctx context.Context, name, path string) ([]*Extension, error) {
	mod, err := bridge.LoadModule(name, path)
	if err != nil {
		return nil, err
	}
	return h.bind(ctx, mod)
}

// LoadModuleBytes binds a module from already-read bytes.
func (h *Host) LoadModuleBytes(ctx context.Context, name string, wasm []byte) ([]*Extension, error) {
	mod, err := bridge.NewModule(name, "", wasm)
	if err != nil {
		return nil, err
	}
	return h.bind(ctx, mod)
}

func (h *Host) bind(ctx context.Context, mod *bridge.Module) ([]*Extension, error) {
	// Pure data parsing first: no module access.
	descs, err := metadata.ExtractDescriptors(mod.Bytes)
	if err != nil {
		return nil, fmt.Errorf("module %s: %w", mod.Name, err)
	}
	if len(descs) == 0 {
		return nil, fmt.Errorf("module %s: %w: declares no extensions", mod.Name, metadata.ErrNotExtensionModule)
	}

	// Wrap/unwrap and memory exports are checked here, not at first use.
	inst, err := h.runtime.Instantiate(ctx, mod)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// Validate every descriptor before allocating anything, so a failed
	// module binds no slots and publishes no names.
	for _, d := range descs {
		if !inst.HasExport(d.EntrySymbol) {
			_ = inst.Close(ctx)
			return nil, &BindError{Module: mod.Name, Extension: d.Name,
				Cause: fmt.Errorf("entry symbol %q is not an export", d.EntrySymbol)}
		}
		if prev, ok := h.byName[d.Name]; ok {
			_ = inst.Close(ctx)
			return nil, &BindError{Module: mod.Name, Extension: d.Name,
				Cause: fmt.Errorf("name already provided by module %s", prev.Module)}
		}
	}
	if dispatch.Free() < len(descs) {
		_ = inst.Close(ctx)
		return nil, &BindError{Module: mod.Name, Cause: dispatch.ErrSlotsExhausted}
	}

	exts := make([]*Extension, 0, len(descs))
	for _, d := range descs {
		slot, err := dispatch.Allocate(dispatch.Binding{
			Instance:    inst,
			EntrySymbol: d.EntrySymbol,
			Kind:        d.Kind,
		})
		if err != nil {
			// Capacity was checked above under h.mu; the dispatch table has
			// no other writers in this process.
			_ = inst.Close(ctx)
			return nil, &BindError{Module: mod.Name, Extension: d.Name, Cause: err}
		}

		ext := &Extension{
			Name:        d.Name,
			Kind:        d.Kind,
			HelperAttrs: d.HelperAttrs,
			Module:      mod.Name,
		}
		switch d.Kind {
		case metadata.KindDerive:
			ext.Derive = dispatch.Derive(slot)
		case metadata.KindAttr:
			ext.Attr = dispatch.Attr(slot)
		case metadata.KindBang:
			ext.Bang = dispatch.Bang(slot)
		}
		exts = append(exts, ext)
		log.Infof("bound %s macro %s from module %s (entry %s, slot %d)",
			d.Kind, d.Name, mod.Name, d.EntrySymbol, slot)
	}

	// The instance must outlive every slot referencing it; the host keeps
	// it alive for the same lifetime as the bindings.
	h.instances = append(h.instances, inst)
	for _, ext := range exts {
		h.byName[ext.Name] = ext
	}
	return exts, nil
}

// Lookup is the resolver-side hook: it returns the extension published
// under a macro name, if any.
func (h *Host) Lookup(name string) (*Extension, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ext, ok := h.byName[name]
	return ext, ok
}

// Extensions returns every bound extension, sorted by name.
func (h *Host) Extensions() []*Extension {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Extension, 0, len(h.byName))
	for _, ext := range h.byName {
		out = append(out, ext)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
