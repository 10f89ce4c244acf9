package macrohost

import (
	"github.com/aperturerobotics/go-wasm-macro-host/dispatch"
	"github.com/aperturerobotics/go-wasm-macro-host/metadata"
)

// Extension is the host-compiler-facing handle for one loaded macro
// extension. Exactly one of Derive, Attr or Bang is set, matching Kind; the
// function value is a capture-free dispatch stub, so the handle satisfies an
// invocation interface designed around statically linked extensions.
type Extension struct {
	// Name is the public macro name users invoke.
	Name string
	// Kind classifies the extension.
	Kind metadata.Kind
	// HelperAttrs lists companion attribute names; non-empty only for
	// derives.
	HelperAttrs []string
	// Module is the name of the module this extension came from, so
	// diagnostics can attribute output to its source.
	Module string

	// Derive is set for KindDerive.
	Derive dispatch.DeriveExpander
	// Attr is set for KindAttr.
	Attr dispatch.AttrExpander
	// Bang is set for KindBang.
	Bang dispatch.BangExpander
}
