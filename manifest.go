package macrohost

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest is a macros.toml file listing the extension modules a build
// loads, as an alternative to repeating NAME=PATH flags:
//
//	[[module]]
//	name = "serde_derive"
//	path = "target/macros/serde_derive.wasm"
type Manifest struct {
	Module []ManifestModule `toml:"module"`

	// Dir is the directory containing the manifest; relative module paths
	// resolve against it. Set at load time.
	Dir string `toml:"-"`
}

// ManifestModule is one module entry.
type ManifestModule struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// LoadManifest parses a macros.toml file and validates its entries.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	seen := make(map[string]struct{})
	for i, entry := range m.Module {
		if !IsIdentifier(entry.Name) {
			return nil, fmt.Errorf("%s: module %d: %w: %q", path, i, ErrBadModuleName, entry.Name)
		}
		if entry.Path == "" {
			return nil, fmt.Errorf("%s: module %q: missing path", path, entry.Name)
		}
		if _, dup := seen[entry.Name]; dup {
			return nil, fmt.Errorf("%s: module %q listed twice", path, entry.Name)
		}
		seen[entry.Name] = struct{}{}
	}
	m.Dir = filepath.Dir(path)
	return &m, nil
}

// ModulePath resolves an entry's path against the manifest directory.
func (m *Manifest) ModulePath(entry ManifestModule) string {
	if filepath.IsAbs(entry.Path) {
		return entry.Path
	}
	return filepath.Join(m.Dir, entry.Path)
}

// LoadManifest binds every module a manifest lists. The first failing
// module stops the load; modules bound before it stay bound.
func (h *Host) LoadManifest(ctx context.Context, path string) error {
	m, err := LoadManifest(path)
	if err != nil {
		return err
	}
	for _, entry := range m.Module {
		if _, err := h.LoadModule(ctx, entry.Name, m.ModulePath(entry)); err != nil {
			return err
		}
	}
	return nil
}
