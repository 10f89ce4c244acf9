package macrohost

// Version is the macro host protocol version. It covers the host function
// set, the wrap/unwrap export contract and the declaration section format;
// an incompatible change to any of those bumps it.
const Version = "0.1.0"
