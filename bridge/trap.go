package bridge

import "fmt"

// Trap reports an unrecoverable fault raised by the guest during an
// invocation: an unreachable instruction, an out-of-bounds access, a host
// function rejecting a bad handle. It is surfaced as a macro-expansion
// failure for that one invocation and never as a panic escaping into the
// host compiler.
type Trap struct {
	// Module is the name of the faulting extension module.
	Module string
	// Symbol is the export that was executing when the fault occurred.
	Symbol string
	// Cause is the underlying engine error.
	Cause error
}

func (t *Trap) Error() string {
	return fmt.Sprintf("trap in module %s at %s: %v", t.Module, t.Symbol, t.Cause)
}

func (t *Trap) Unwrap() error {
	return t.Cause
}
