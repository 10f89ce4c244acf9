package tokenstream

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// The wire format is the serialized shape a Stream takes when it crosses the
// sandbox boundary. Guests never see host memory; they see these bytes,
// written into or read out of their own linear memory by the host functions.
//
// Canonical CBOR keeps the encoding deterministic, so identical streams
// always produce identical bytes.

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("tokenstream: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Tree kind tags on the wire.
const (
	wireIdent = iota
	wireLiteral
	wirePunct
	wireGroup
)

type wireTree struct {
	Kind     uint8      `cbor:"0,keyasint"`
	Text     string     `cbor:"1,keyasint,omitempty"`
	Ch       int32      `cbor:"2,keyasint,omitempty"`
	Spacing  uint8      `cbor:"3,keyasint,omitempty"`
	Delim    uint8      `cbor:"4,keyasint,omitempty"`
	Children []wireTree `cbor:"5,keyasint,omitempty"`
}

// MarshalWire serializes a Stream to its wire bytes.
func MarshalWire(s Stream) ([]byte, error) {
	return cborEncMode.Marshal(toWire(s))
}

// UnmarshalWire deserializes wire bytes back into a Stream.
func UnmarshalWire(data []byte) (Stream, error) {
	var trees []wireTree
	if err := cbor.Unmarshal(data, &trees); err != nil {
		return nil, fmt.Errorf("tokenstream: unmarshal stream: %w", err)
	}
	return fromWire(trees)
}

func toWire(s Stream) []wireTree {
	out := make([]wireTree, 0, len(s))
	for _, t := range s {
		switch t := t.(type) {
		case Ident:
			out = append(out, wireTree{Kind: wireIdent, Text: t.Name})
		case Literal:
			out = append(out, wireTree{Kind: wireLiteral, Text: t.Text})
		case Punct:
			out = append(out, wireTree{Kind: wirePunct, Ch: t.Ch, Spacing: uint8(t.Spacing)})
		case Group:
			out = append(out, wireTree{Kind: wireGroup, Delim: uint8(t.Delim), Children: toWire(t.Body)})
		}
	}
	return out
}

func fromWire(trees []wireTree) (Stream, error) {
	if len(trees) == 0 {
		return nil, nil
	}
	out := make(Stream, 0, len(trees))
	for _, w := range trees {
		switch w.Kind {
		case wireIdent:
			out = append(out, Ident{Name: w.Text})
		case wireLiteral:
			out = append(out, Literal{Text: w.Text})
		case wirePunct:
			out = append(out, Punct{Ch: w.Ch, Spacing: Spacing(w.Spacing)})
		case wireGroup:
			body, err := fromWire(w.Children)
			if err != nil {
				return nil, err
			}
			out = append(out, Group{Delim: Delimiter(w.Delim), Body: body})
		default:
			return nil, fmt.Errorf("tokenstream: unknown wire tree kind %d", w.Kind)
		}
	}
	return out, nil
}
