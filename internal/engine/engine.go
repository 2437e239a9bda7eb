package engine

import (
	"bytes"
	"fmt"
	"io"

	j "github.com/goccy/go-json"
)

// Streaming decoder that builds an "any" tree from JSON input while enforcing
// a maximum nesting depth. Backed by goccy/go-json's token API.

// Options controls runtime enforcement behavior.
type Options struct {
	// MaxDepth caps container nesting; 0 disables the check.
	MaxDepth int
}

// DepthError reports input nested beyond the configured limit.
type DepthError struct{ Limit int }

func (e DepthError) Error() string {
	return fmt.Sprintf("engine: max depth %d exceeded", e.Limit)
}

// DecodeBytes builds an any value from a JSON document held in memory.
func DecodeBytes(b []byte, opt Options) (any, error) {
	return DecodeReader(bytes.NewReader(b), opt)
}

// DecodeReader builds an any value from streamed JSON. Numbers decode to
// float64; objects to map[string]any; arrays to []any.
func DecodeReader(r io.Reader, opt Options) (any, error) {
	d := &decoder{dec: j.NewDecoder(r), maxDepth: opt.MaxDepth}
	v, err := d.value(0)
	if err != nil {
		return nil, err
	}
	// reject trailing content after the first document
	if d.dec.More() {
		return nil, fmt.Errorf("engine: trailing content after document")
	}
	return v, nil
}

type decoder struct {
	dec      *j.Decoder
	maxDepth int
}

func (d *decoder) value(depth int) (any, error) {
	tok, err := d.dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return d.valueFromToken(tok, depth)
}

func (d *decoder) valueFromToken(tok j.Token, depth int) (any, error) {
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return d.object(depth + 1)
		case '[':
			return d.array(depth + 1)
		default:
			return nil, fmt.Errorf("engine: unexpected delimiter %q", v.String())
		}
	case string:
		return v, nil
	case bool:
		return v, nil
	case float64:
		return v, nil
	case j.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("engine: unexpected token %T", tok)
	}
}

func (d *decoder) object(depth int) (any, error) {
	if d.maxDepth > 0 && depth > d.maxDepth {
		return nil, DepthError{d.maxDepth}
	}
	m := make(map[string]any)
	for d.dec.More() {
		keyTok, err := d.dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("engine: object key is %T, want string", keyTok)
		}
		val, err := d.value(depth)
		if err != nil {
			return nil, err
		}
		m[key] = val
	}
	// consume the closing brace
	if _, err := d.dec.Token(); err != nil {
		return nil, err
	}
	return m, nil
}

func (d *decoder) array(depth int) (any, error) {
	if d.maxDepth > 0 && depth > d.maxDepth {
		return nil, DepthError{d.maxDepth}
	}
	arr := []any{}
	for d.dec.More() {
		v, err := d.value(depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	if _, err := d.dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}
