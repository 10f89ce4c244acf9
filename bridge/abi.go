// Package bridge owns the sandboxed execution environment for macro
// extension modules and the marshaling protocol between the host and the
// guest.
//
// Guests never see host memory. A token stream is referenced across the
// boundary by an opaque integer handle into a host-side registry scoped to
// one invocation, and its bytes only ever enter guest linear memory when the
// guest asks for them through the host functions below.
package bridge

// HostModuleName is the import module guests link their host functions from.
const HostModuleName = "macro_host"

// Host functions provided to the guest. All of them operate purely on
// sandbox-local data: no filesystem, no network, no host pointers.
const (
	// ImportStreamLen returns the byte length of a handle's wire encoding.
	// Signature: token_stream_len(handle: i32) -> i32
	ImportStreamLen = "token_stream_len"

	// ImportStreamRead writes a handle's wire encoding into guest memory.
	// Signature: token_stream_read(handle: i32, ptr: i32) -> i32
	// Returns: number of bytes written.
	ImportStreamRead = "token_stream_read"

	// ImportStreamNew decodes wire bytes from guest memory into a fresh
	// host-side token stream and returns its handle.
	// Signature: token_stream_new(ptr: i32, len: i32) -> i32
	ImportStreamNew = "token_stream_new"
)

// Exports the guest must provide. Checked at instantiate time so a broken
// module fails before any macro expansion begins.
const (
	// ExportMemory is the guest's linear memory.
	ExportMemory = "memory"

	// ExportWrap converts a host handle into the guest's own internal
	// token-stream representation.
	// Signature: macro_wrap(handle: i32) -> i32
	ExportWrap = "macro_wrap"

	// ExportUnwrap converts a guest token-stream value back into a host
	// handle.
	// Signature: macro_unwrap(value: i32) -> i32
	ExportUnwrap = "macro_unwrap"

	// ExportInitialize is the optional reactor-style startup function,
	// called once after instantiation when present.
	ExportInitialize = "_initialize"
)

// requiredExports are checked eagerly at instantiate time.
var requiredExports = []string{ExportWrap, ExportUnwrap}
