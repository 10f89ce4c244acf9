package bridge

import (
	"fmt"
	"os"

	"github.com/aperturerobotics/go-wasm-macro-host/metadata"
)

// Module holds the raw bytes of a macro extension module, read once and kept
// alive for the life of the compilation. The bytes are immutable and may be
// shared freely across threads.
type Module struct {
	// Name is the caller-chosen identifier for this module.
	Name string
	// Path is where the bytes were read from, for diagnostics.
	Path string
	// Bytes is the raw wasm binary.
	Bytes []byte
}

// LoadModule reads a module from disk. Re-loading a path always produces a
// fresh Module; callers that want caching cache paths themselves.
func LoadModule(name, path string) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read module %s: %w", name, err)
	}
	return NewModule(name, path, data)
}

// NewModule wraps already-read bytes, verifying they look like wasm.
func NewModule(name, path string, data []byte) (*Module, error) {
	if !metadata.IsModule(data) {
		return nil, fmt.Errorf("module %s (%s): %w", name, path, metadata.ErrBadMagic)
	}
	return &Module{Name: name, Path: path, Bytes: data}, nil
}
