package metadata

import (
	"errors"
	"fmt"
)

// Minimal wasm binary scanning: just enough to walk the section table and
// find custom sections by name. Modules are small; a linear scan is fine.

var (
	ErrBadMagic    = errors.New("missing wasm magic number")
	ErrTruncated   = errors.New("truncated wasm module")
	ErrBadVarint   = errors.New("malformed LEB128 length")
)

var wasmHeader = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

// IsModule reports whether data starts with the wasm magic and version.
func IsModule(data []byte) bool {
	if len(data) < len(wasmHeader) {
		return false
	}
	for i, b := range wasmHeader {
		if data[i] != b {
			return false
		}
	}
	return true
}

// FindSection scans the module's section table for a custom section with the
// given name and returns its contents.
func FindSection(wasm []byte, name string) (contents []byte, found bool, err error) {
	if !IsModule(wasm) {
		return nil, false, ErrBadMagic
	}
	pos := len(wasmHeader)
	for pos < len(wasm) {
		id := wasm[pos]
		pos++
		size, n, err := readVaruint32(wasm[pos:])
		if err != nil {
			return nil, false, fmt.Errorf("section size at offset %d: %w", pos, err)
		}
		pos += n
		end := pos + int(size)
		if end > len(wasm) {
			return nil, false, fmt.Errorf("section at offset %d: %w", pos, ErrTruncated)
		}
		if id == 0 {
			nameLen, n, err := readVaruint32(wasm[pos:end])
			if err != nil {
				return nil, false, fmt.Errorf("custom section name at offset %d: %w", pos, err)
			}
			nameStart := pos + n
			nameEnd := nameStart + int(nameLen)
			if nameEnd > end {
				return nil, false, fmt.Errorf("custom section at offset %d: %w", pos, ErrTruncated)
			}
			if string(wasm[nameStart:nameEnd]) == name {
				return wasm[nameEnd:end], true, nil
			}
		}
		pos = end
	}
	return nil, false, nil
}

// AppendSection returns a copy of the module with a custom section of the
// given name inserted directly after the header. Custom sections may appear
// anywhere between other sections, so the front is as good a spot as any and
// keeps the producer trivial.
func AppendSection(wasm []byte, name string, contents []byte) ([]byte, error) {
	if !IsModule(wasm) {
		return nil, ErrBadMagic
	}
	nameBytes := []byte(name)
	body := make([]byte, 0, len(nameBytes)+len(contents)+5)
	body = appendVaruint32(body, uint32(len(nameBytes)))
	body = append(body, nameBytes...)
	body = append(body, contents...)

	out := make([]byte, 0, len(wasm)+len(body)+6)
	out = append(out, wasm[:len(wasmHeader)]...)
	out = append(out, 0) // custom section id
	out = appendVaruint32(out, uint32(len(body)))
	out = append(out, body...)
	out = append(out, wasm[len(wasmHeader):]...)
	return out, nil
}

func readVaruint32(b []byte) (uint32, int, error) {
	var result uint32
	var shift uint
	for i := 0; i < len(b); i++ {
		c := b[i]
		result |= uint32(c&0x7f) << shift
		if c&0x80 == 0 {
			return result, i + 1, nil
		}
		shift += 7
		if shift > 28 {
			return 0, 0, ErrBadVarint
		}
	}
	return 0, 0, ErrTruncated
}

func appendVaruint32(b []byte, v uint32) []byte {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			c |= 0x80
		}
		b = append(b, c)
		if v == 0 {
			return b
		}
	}
}
