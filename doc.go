// Package macrohost loads compiler macro extensions distributed as
// sandboxed wasm modules and exposes them to the host compiler's macro
// engine, bypassing the compiler's normal crate and metadata machinery.
//
// A macro module is an ordinary wasm binary carrying a custom section
// (metadata.SectionName) that declares the extensions it exports. Loading a
// module runs in four steps: read the bytes, decode the declaration section,
// instantiate the module in the sandbox (checking the marshaling exports
// eagerly), and bind each declared extension to a dispatch slot. The result
// is a set of Extension handles published in a name table the compiler's
// resolver consults whenever its normal crate-based lookup fails to find a
// macro name. Binding must happen before the compiler begins expanding user
// code that might reference these names.
//
// Failures are per-module and per-extension: a module that fails to load or
// instantiate publishes nothing, and a trap during one invocation does not
// poison other extensions or later invocations.
package macrohost
