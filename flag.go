package macrohost

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Flag parsing for the NAME=PATH module option the compiler driver accepts.

var (
	ErrBadFlagSyntax = errors.New("expected NAME=PATH")
	ErrBadModuleName = errors.New("module name is not a legal identifier")
)

// ParseModuleFlag validates one NAME=PATH option: NAME must be a legal
// identifier and PATH must name a readable file.
func ParseModuleFlag(spec string) (name, path string, err error) {
	name, path, ok := strings.Cut(spec, "=")
	if !ok || name == "" || path == "" {
		return "", "", fmt.Errorf("%w, got %q", ErrBadFlagSyntax, spec)
	}
	if !IsIdentifier(name) {
		return "", "", fmt.Errorf("%w: %q", ErrBadModuleName, name)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("module %s: %w", name, err)
	}
	info, err := f.Stat()
	_ = f.Close()
	if err != nil {
		return "", "", fmt.Errorf("module %s: %w", name, err)
	}
	if info.IsDir() {
		return "", "", fmt.Errorf("module %s: %s is a directory", name, path)
	}
	return name, path, nil
}

// IsIdentifier reports whether s is a legal extension module name:
// an ASCII letter or underscore followed by letters, digits or underscores.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
