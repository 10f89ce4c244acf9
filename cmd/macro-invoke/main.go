// Command macro-invoke loads macro extension modules and runs one
// extension against a token stream, for debugging modules outside a full
// compiler run.
//
// Usage:
//
//	macro-invoke -macro Echo echo=./echo.wasm 'struct Point { x : i64 }'
//	macro-invoke -manifest macros.toml -macro route -args '"/users"' 'fn users ( ) { }'
//
// Modules are given as NAME=PATH arguments or through -manifest; the input
// token stream is the final argument, or stdin when absent.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	macrohost "github.com/aperturerobotics/go-wasm-macro-host"
	"github.com/aperturerobotics/go-wasm-macro-host/metadata"
	"github.com/aperturerobotics/go-wasm-macro-host/tokenstream"
)

func main() {
	macroName := flag.String("macro", "", "Name of the extension to invoke (required)")
	manifest := flag.String("manifest", "", "Load modules from a macros.toml manifest")
	attrArgs := flag.String("args", "", "Attribute arguments (attr macros only)")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: macro-invoke [options] [NAME=PATH ...] [input]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	if *macroName == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	h, err := macrohost.NewHost(ctx)
	if err != nil {
		fatalf("create host: %v", err)
	}
	defer h.Close(ctx)

	if *manifest != "" {
		if err := h.LoadManifest(ctx, *manifest); err != nil {
			fatalf("%v", err)
		}
	}

	// Remaining NAME=PATH args; any trailing non-flag argument is the input.
	var input string
	for _, arg := range flag.Args() {
		if strings.Contains(arg, "=") {
			name, path, err := macrohost.ParseModuleFlag(arg)
			if err != nil {
				fatalf("%v", err)
			}
			if _, err := h.LoadModule(ctx, name, path); err != nil {
				fatalf("%v", err)
			}
			continue
		}
		if input != "" {
			fatalf("multiple input arguments: %q and %q", input, arg)
		}
		input = arg
	}
	if input == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fatalf("read stdin: %v", err)
		}
		input = string(data)
	}

	ext, ok := h.Lookup(*macroName)
	if !ok {
		fatalf("no extension named %q is loaded", *macroName)
	}

	stream, err := tokenstream.Parse(input)
	if err != nil {
		fatalf("parse input: %v", err)
	}

	var out tokenstream.Stream
	switch ext.Kind {
	case metadata.KindDerive:
		out, err = ext.Derive(ctx, stream)
	case metadata.KindAttr:
		args, aerr := tokenstream.Parse(*attrArgs)
		if aerr != nil {
			fatalf("parse -args: %v", aerr)
		}
		out, err = ext.Attr(ctx, args, stream)
	case metadata.KindBang:
		out, err = ext.Bang(ctx, stream)
	}
	if err != nil {
		fatalf("expand %s: %v", *macroName, err)
	}

	fmt.Println(out.String())
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "macro-invoke: "+format+"\n", args...)
	os.Exit(1)
}
