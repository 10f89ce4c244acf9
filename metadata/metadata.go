// Package metadata encodes and decodes the extension declaration section
// embedded in a macro wasm module.
//
// The section is a line-oriented text format, one extension per line:
//
//	derive:<TraitName>:<entry_symbol>[:<comma_separated_helper_attrs>]
//	attr:<name>:<entry_symbol>
//	bang:<name>:<entry_symbol>
//
// Decoding is pure data parsing: it never touches the module's code or
// exports. A module either yields a usable descriptor set or is rejected
// outright; there is no partial-success state.
package metadata

import (
	"errors"
	"fmt"
	"strings"
)

// SectionName is the custom wasm section carrying extension declarations.
const SectionName = ".macro_decls"

// Kind classifies a macro-like extension.
type Kind byte

const (
	// KindDerive is a structural derive macro, invoked on an item definition.
	KindDerive Kind = iota
	// KindAttr is an attribute macro, invoked with (args, item).
	KindAttr
	// KindBang is a function-like macro.
	KindBang
)

func (k Kind) String() string {
	switch k {
	case KindDerive:
		return "derive"
	case KindAttr:
		return "attr"
	case KindBang:
		return "bang"
	}
	return fmt.Sprintf("Kind(%d)", byte(k))
}

// Descriptor describes one extension exported by a module.
type Descriptor struct {
	Kind Kind
	// Name is the public macro name users invoke.
	Name string
	// EntrySymbol is the wasm export implementing the extension. It is
	// checked against the module's actual exports at bind time, not here.
	EntrySymbol string
	// HelperAttrs is non-empty only for KindDerive.
	HelperAttrs []string
}

// Decode errors. All of them wrap ErrNotExtensionModule so callers can treat
// any decode failure as a single "not a valid extension module" condition.
var (
	ErrNotExtensionModule = errors.New("not a valid extension module")
	ErrNoSection          = fmt.Errorf("%w: no %s section", ErrNotExtensionModule, SectionName)
	ErrMalformedLine      = fmt.Errorf("%w: malformed declaration line", ErrNotExtensionModule)
	ErrDuplicateName      = fmt.Errorf("%w: duplicate extension name", ErrNotExtensionModule)
)

// Encode renders descriptors into section contents. It is the producer-side
// half of the contract Decode honors.
func Encode(descs []Descriptor) []byte {
	var sb strings.Builder
	for _, d := range descs {
		sb.WriteString(d.Kind.String())
		sb.WriteByte(':')
		sb.WriteString(d.Name)
		sb.WriteByte(':')
		sb.WriteString(d.EntrySymbol)
		if len(d.HelperAttrs) > 0 {
			sb.WriteByte(':')
			sb.WriteString(strings.Join(d.HelperAttrs, ","))
		}
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// Decode parses section contents into descriptors. Unknown kind tags,
// wrong field counts, empty fields and duplicate public names all reject
// the whole blob.
func Decode(data []byte) ([]Descriptor, error) {
	var out []Descriptor
	seen := make(map[string]struct{})
	for ln, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		d, err := decodeLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w (line %d: %q)", err, ln+1, line)
		}
		if _, dup := seen[d.Name]; dup {
			return nil, fmt.Errorf("%w %q (line %d)", ErrDuplicateName, d.Name, ln+1)
		}
		seen[d.Name] = struct{}{}
		out = append(out, d)
	}
	return out, nil
}

func decodeLine(line string) (Descriptor, error) {
	parts := strings.Split(line, ":")
	var d Descriptor
	switch parts[0] {
	case "derive":
		d.Kind = KindDerive
		if len(parts) != 3 && len(parts) != 4 {
			return d, ErrMalformedLine
		}
		if len(parts) == 4 {
			for _, a := range strings.Split(parts[3], ",") {
				a = strings.TrimSpace(a)
				if a == "" {
					return d, ErrMalformedLine
				}
				d.HelperAttrs = append(d.HelperAttrs, a)
			}
		}
	case "attr":
		d.Kind = KindAttr
		if len(parts) != 3 {
			return d, ErrMalformedLine
		}
	case "bang":
		d.Kind = KindBang
		if len(parts) != 3 {
			return d, ErrMalformedLine
		}
	default:
		return d, ErrMalformedLine
	}
	d.Name, d.EntrySymbol = parts[1], parts[2]
	if d.Name == "" || d.EntrySymbol == "" {
		return d, ErrMalformedLine
	}
	return d, nil
}

// ExtractDescriptors locates the declaration section in raw module bytes and
// decodes it. A module without the section, or with a malformed section, is
// rejected as a whole.
func ExtractDescriptors(wasm []byte) ([]Descriptor, error) {
	contents, ok, err := FindSection(wasm, SectionName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotExtensionModule, err)
	}
	if !ok {
		return nil, ErrNoSection
	}
	return Decode(contents)
}
