// Command macro-decls lists or injects the macro declaration section of a
// wasm extension module.
//
// Usage:
//
//	macro-decls module.wasm                          # list declared extensions
//	macro-decls -decl derive:Echo:echo_impl \
//	            -o module.out.wasm module.wasm       # inject a section
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/aperturerobotics/go-wasm-macro-host/metadata"
)

type declList []string

func (d *declList) String() string { return strings.Join(*d, ",") }

func (d *declList) Set(v string) error {
	*d = append(*d, v)
	return nil
}

func main() {
	var decls declList
	output := flag.String("o", "", "Output path; with -decl, write the module with the injected section here")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Var(&decls, "decl", "Declaration line to inject (repeatable), e.g. derive:Echo:echo_impl")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: macro-decls [options] module.wasm\n\n")
		fmt.Fprintf(os.Stderr, "Without -decl, lists the extensions the module declares.\n")
		fmt.Fprintf(os.Stderr, "With -decl (and -o), injects a %s section.\n\n", metadata.SectionName)
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	wasm, err := os.ReadFile(path)
	if err != nil {
		fatalf("read %s: %v", path, err)
	}

	if len(decls) == 0 {
		list(path, wasm)
		return
	}

	if *output == "" {
		fatalf("-decl requires -o OUTPUT")
	}
	inject(wasm, decls, *output)
}

func list(path string, wasm []byte) {
	descs, err := metadata.ExtractDescriptors(wasm)
	if err != nil {
		fatalf("%s: %v", path, err)
	}
	for _, d := range descs {
		if len(d.HelperAttrs) > 0 {
			fmt.Printf("%s %s -> %s (helper attrs: %s)\n",
				d.Kind, d.Name, d.EntrySymbol, strings.Join(d.HelperAttrs, ", "))
		} else {
			fmt.Printf("%s %s -> %s\n", d.Kind, d.Name, d.EntrySymbol)
		}
	}
}

func inject(wasm []byte, decls []string, output string) {
	contents := []byte(strings.Join(decls, "\n") + "\n")

	// Validate before writing anything: the injected section must decode.
	if _, err := metadata.Decode(contents); err != nil {
		fatalf("invalid declarations: %v", err)
	}
	if _, found, err := metadata.FindSection(wasm, metadata.SectionName); err != nil {
		fatalf("scan module: %v", err)
	} else if found {
		fatalf("module already has a %s section", metadata.SectionName)
	}

	out, err := metadata.AppendSection(wasm, metadata.SectionName, contents)
	if err != nil {
		fatalf("inject section: %v", err)
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		fatalf("write %s: %v", output, err)
	}
	fmt.Printf("wrote %s (%d declarations)\n", output, len(decls))
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "macro-decls: "+format+"\n", args...)
	os.Exit(1)
}
