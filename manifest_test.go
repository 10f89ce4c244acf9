package macrohost_test

import (
	"os"
	"path/filepath"
	"testing"

	macrohost "github.com/aperturerobotics/go-wasm-macro-host"
	"github.com/aperturerobotics/go-wasm-macro-host/internal/wasmtest"
	"github.com/aperturerobotics/go-wasm-macro-host/tokenstream"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "macros.toml")
	if err := os.WriteFile(manifest, []byte(`
[[module]]
name = "echo"
path = "echo.wasm"

[[module]]
name = "other"
path = "sub/other.wasm"
`), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := macrohost.LoadManifest(manifest)
	if err != nil {
		t.Fatal("LoadManifest:", err)
	}
	if len(m.Module) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(m.Module))
	}
	if got := m.ModulePath(m.Module[0]); got != filepath.Join(dir, "echo.wasm") {
		t.Errorf("relative path resolved to %q", got)
	}
	abs := macrohost.ManifestModule{Name: "abs", Path: "/opt/macros/abs.wasm"}
	if got := m.ModulePath(abs); got != "/opt/macros/abs.wasm" {
		t.Errorf("absolute path resolved to %q", got)
	}
}

func TestLoadManifestRejectsBadEntries(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"bad name": "[[module]]\nname = \"has-dash\"\npath = \"x.wasm\"\n",
		"no path":  "[[module]]\nname = \"ok\"\n",
		"dup name": "[[module]]\nname = \"m\"\npath = \"a.wasm\"\n[[module]]\nname = \"m\"\npath = \"b.wasm\"\n",
		"not toml": "{ json: true }",
	}
	for label, contents := range cases {
		path := filepath.Join(dir, "macros.toml")
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := macrohost.LoadManifest(path); err == nil {
			t.Errorf("%s: expected error", label)
		}
	}
}

func TestHostLoadManifest(t *testing.T) {
	ctx, h := newHost(t)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "echo.wasm"),
		wasmtest.Identity("derive:Echo:echo_impl\n", "echo_impl"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "macros.toml"), []byte(`
[[module]]
name = "echo"
path = "echo.wasm"
`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := h.LoadManifest(ctx, filepath.Join(dir, "macros.toml")); err != nil {
		t.Fatal("Host.LoadManifest:", err)
	}
	ext, ok := h.Lookup("Echo")
	if !ok {
		t.Fatal("Echo not bound from manifest")
	}
	input := tokenstream.Stream{tokenstream.Ident{Name: "z"}}
	out, err := ext.Derive(ctx, input)
	if err != nil {
		t.Fatal("Derive:", err)
	}
	if !tokenstream.Equal(out, input) {
		t.Fatalf("manifest-loaded Echo returned %v", out)
	}
}
