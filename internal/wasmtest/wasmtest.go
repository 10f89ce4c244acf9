// Package wasmtest assembles tiny wasm guest modules by hand for tests.
//
// The guests follow the macro_host marshaling protocol in its degenerate
// form: macro_wrap and macro_unwrap are identity functions, so the guest's
// internal token-stream representation is the host handle itself. That is
// enough to exercise every step of the invocation protocol without shipping
// a compiled toolchain artifact in the repository.
package wasmtest

import (
	"github.com/aperturerobotics/go-wasm-macro-host/bridge"
	"github.com/aperturerobotics/go-wasm-macro-host/metadata"
)

// Function body bytecode, including the (empty) locals vector.
var (
	bodyIdentity    = []byte{0x00, 0x20, 0x00, 0x0b} // local.get 0; end
	bodyUnreachable = []byte{0x00, 0x00, 0x0b}       // unreachable; end
)

// Identity builds a guest whose wrap, unwrap and every named entry are
// identity functions, with the given declaration section contents attached.
func Identity(decls string, entries ...string) []byte {
	m := &module{}
	m.addFunc(bridge.ExportWrap, typeUnary, bodyIdentity)
	m.addFunc(bridge.ExportUnwrap, typeUnary, bodyIdentity)
	for _, e := range entries {
		m.addFunc(e, typeUnary, bodyIdentity)
	}
	return m.build(decls)
}

// IdentityAttr builds a guest with an attribute-shaped entry: it takes two
// token streams and returns the first.
func IdentityAttr(decls, entry string) []byte {
	m := &module{}
	m.addFunc(bridge.ExportWrap, typeUnary, bodyIdentity)
	m.addFunc(bridge.ExportUnwrap, typeUnary, bodyIdentity)
	m.addFunc(entry, typeBinary, bodyIdentity)
	return m.build(decls)
}

// Trapping builds a guest whose entry executes an unreachable instruction.
func Trapping(decls, entry string) []byte {
	m := &module{}
	m.addFunc(bridge.ExportWrap, typeUnary, bodyIdentity)
	m.addFunc(bridge.ExportUnwrap, typeUnary, bodyIdentity)
	m.addFunc(entry, typeUnary, bodyUnreachable)
	return m.build(decls)
}

// MissingWrap builds a guest without the macro_wrap export, for protocol
// error tests.
func MissingWrap(decls string) []byte {
	m := &module{}
	m.addFunc(bridge.ExportUnwrap, typeUnary, bodyIdentity)
	return m.build(decls)
}

// Synthesizing builds a guest whose entry ignores its input and instead
// returns a stream decoded from payload via the token_stream_new host
// function. The payload bytes live in a data segment at offset 0.
func Synthesizing(decls, entry string, payload []byte) []byte {
	m := &module{}
	m.importHost(bridge.ImportStreamNew, typeBinary)
	m.addFunc(bridge.ExportWrap, typeUnary, bodyIdentity)
	m.addFunc(bridge.ExportUnwrap, typeUnary, bodyIdentity)

	// i32.const 0; i32.const len(payload); call token_stream_new; end
	body := []byte{0x00, 0x41}
	body = appendSleb32(body, 0)
	body = append(body, 0x41)
	body = appendSleb32(body, int32(len(payload)))
	body = append(body, 0x10)
	body = appendUleb32(body, 0) // the sole import is function index 0
	body = append(body, 0x0b)
	m.addFunc(entry, typeUnary, body)

	m.data = payload
	return m.build(decls)
}

// WithDecls attaches a declaration section to an arbitrary prebuilt module.
func WithDecls(wasm []byte, decls string) []byte {
	out, err := metadata.AppendSection(wasm, metadata.SectionName, []byte(decls))
	if err != nil {
		panic(err)
	}
	return out
}

// Type indices into the fixed type section.
const (
	typeUnary  = 0 // (i32) -> i32
	typeBinary = 1 // (i32, i32) -> i32
)

type hostImport struct {
	field   string
	typeIdx uint32
}

type localFunc struct {
	name    string
	typeIdx uint32
	body    []byte
}

type module struct {
	imports []hostImport
	funcs   []localFunc
	data    []byte
}

func (m *module) importHost(field string, typeIdx uint32) {
	m.imports = append(m.imports, hostImport{field: field, typeIdx: typeIdx})
}

func (m *module) addFunc(name string, typeIdx uint32, body []byte) {
	m.funcs = append(m.funcs, localFunc{name: name, typeIdx: typeIdx, body: body})
}

// build assembles the binary: header, type, import, function, memory,
// export and code sections, an optional data segment, and finally the
// declaration custom section.
func (m *module) build(decls string) []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	// Type section: the two fixed signatures.
	out = appendSection(out, 1, func(b []byte) []byte {
		b = appendUleb32(b, 2)
		b = append(b, 0x60, 0x01, 0x7f, 0x01, 0x7f)       // (i32) -> i32
		b = append(b, 0x60, 0x02, 0x7f, 0x7f, 0x01, 0x7f) // (i32, i32) -> i32
		return b
	})

	if len(m.imports) > 0 {
		out = appendSection(out, 2, func(b []byte) []byte {
			b = appendUleb32(b, uint32(len(m.imports)))
			for _, imp := range m.imports {
				b = appendName(b, bridge.HostModuleName)
				b = appendName(b, imp.field)
				b = append(b, 0x00) // function import
				b = appendUleb32(b, imp.typeIdx)
			}
			return b
		})
	}

	// Function section: type index per local function.
	out = appendSection(out, 3, func(b []byte) []byte {
		b = appendUleb32(b, uint32(len(m.funcs)))
		for _, f := range m.funcs {
			b = appendUleb32(b, f.typeIdx)
		}
		return b
	})

	// Memory section: one memory, min 1 page.
	out = appendSection(out, 5, func(b []byte) []byte {
		return append(b, 0x01, 0x00, 0x01)
	})

	// Export section: memory plus every named function. Function indices
	// start after the imports.
	out = appendSection(out, 7, func(b []byte) []byte {
		b = appendUleb32(b, uint32(len(m.funcs))+1)
		b = appendName(b, bridge.ExportMemory)
		b = append(b, 0x02)
		b = appendUleb32(b, 0)
		for i, f := range m.funcs {
			b = appendName(b, f.name)
			b = append(b, 0x00)
			b = appendUleb32(b, uint32(len(m.imports)+i))
		}
		return b
	})

	// Code section.
	out = appendSection(out, 10, func(b []byte) []byte {
		b = appendUleb32(b, uint32(len(m.funcs)))
		for _, f := range m.funcs {
			b = appendUleb32(b, uint32(len(f.body)))
			b = append(b, f.body...)
		}
		return b
	})

	// Data section: payload at offset 0.
	if len(m.data) > 0 {
		out = appendSection(out, 11, func(b []byte) []byte {
			b = appendUleb32(b, 1)
			b = append(b, 0x00)       // active segment, memory 0
			b = append(b, 0x41, 0x00) // i32.const 0
			b = append(b, 0x0b)       // end of offset expression
			b = appendUleb32(b, uint32(len(m.data)))
			b = append(b, m.data...)
			return b
		})
	}

	if decls != "" {
		return WithDecls(out, decls)
	}
	return out
}

func appendSection(out []byte, id byte, fill func([]byte) []byte) []byte {
	contents := fill(nil)
	out = append(out, id)
	out = appendUleb32(out, uint32(len(contents)))
	return append(out, contents...)
}

func appendName(b []byte, s string) []byte {
	b = appendUleb32(b, uint32(len(s)))
	return append(b, s...)
}

func appendUleb32(b []byte, v uint32) []byte {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			c |= 0x80
		}
		b = append(b, c)
		if v == 0 {
			return b
		}
	}
}

func appendSleb32(b []byte, v int32) []byte {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && c&0x40 == 0) || (v == -1 && c&0x40 != 0) {
			return append(b, c)
		}
		b = append(b, c|0x80)
	}
}
