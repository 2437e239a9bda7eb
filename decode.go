package fapickle

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	eng "github.com/dmpkit/fapickle/internal/engine"
)

// FromBytes decodes a JSON document into the generic value form consumed by
// Reconstruct, enforcing Opt.MaxDepth and Opt.MaxBytes up front. Structural
// failures (invalid JSON, excessive nesting, oversized input) surface as
// malformed_document.
func FromBytes(data []byte, opts ...Opt) (any, error) {
	opt := pickOpt(opts)
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, maxBytesIssue(opt.MaxBytes)
	}
	v, err := eng.DecodeBytes(data, eng.Options{MaxDepth: opt.MaxDepth})
	if err != nil {
		return nil, decodeIssue(err)
	}
	return v, nil
}

// FromReader decodes a JSON document streamed from r. When MaxBytes is set it
// enforces the size cap while reading.
func FromReader(r io.Reader, opts ...Opt) (any, error) {
	opt := pickOpt(opts)
	if opt.MaxBytes > 0 {
		lr := io.LimitReader(r, opt.MaxBytes+1)
		data, err := io.ReadAll(lr)
		if err != nil {
			return nil, Issues{Issue{Code: CodeMalformedDocument, Message: "read failed", Cause: err}}
		}
		if int64(len(data)) > opt.MaxBytes {
			return nil, maxBytesIssue(opt.MaxBytes)
		}
		return FromBytes(data, opt)
	}
	v, err := eng.DecodeReader(r, eng.Options{MaxDepth: opt.MaxDepth})
	if err != nil {
		return nil, decodeIssue(err)
	}
	return v, nil
}

// FromYAML decodes a YAML document carrying the same tagged convention into
// the generic value form, enforcing Opt.MaxDepth and Opt.MaxBytes like
// FromBytes. YAML scalars are normalized to their JSON equivalents (integers
// become float64, non-string-keyed maps are rejected).
func FromYAML(data []byte, opts ...Opt) (any, error) {
	opt := pickOpt(opts)
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, maxBytesIssue(opt.MaxBytes)
	}
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, Issues{Issue{Code: CodeMalformedDocument, Message: "invalid YAML", Cause: err}}
	}
	return normalizeYAML(node, 0, opt.MaxDepth)
}

func maxBytesIssue(max int64) Issues {
	return Issues{Issue{Code: CodeMalformedDocument, Message: "max bytes exceeded", Params: map[string]any{"max": max}}}
}

func maxDepthIssue(max int) Issues {
	return Issues{Issue{Code: CodeMalformedDocument, Message: "max depth exceeded", Params: map[string]any{"max": max}}}
}

func decodeIssue(err error) Issues {
	var de eng.DepthError
	if errors.As(err, &de) {
		return maxDepthIssue(de.Limit)
	}
	return Issues{Issue{Code: CodeMalformedDocument, Message: "invalid JSON", Cause: err}}
}

// normalizeYAML converts YAML-decoded values (which may contain map[any]any
// and native integer kinds) into the JSON-like shape Reconstruct expects,
// rejecting container nesting past maxDepth.
func normalizeYAML(v any, depth, maxDepth int) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		if maxDepth > 0 && depth+1 > maxDepth {
			return nil, maxDepthIssue(maxDepth)
		}
		out := make(map[string]any, len(t))
		for k, vv := range t {
			nv, err := normalizeYAML(vv, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			out[k] = nv
		}
		return out, nil
	case map[any]any:
		if maxDepth > 0 && depth+1 > maxDepth {
			return nil, maxDepthIssue(maxDepth)
		}
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, Issues{Issue{Code: CodeMalformedDocument, Message: "non-string mapping key", Params: map[string]any{"actual": kindName(k)}}}
			}
			nv, err := normalizeYAML(vv, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			out[ks] = nv
		}
		return out, nil
	case []any:
		if maxDepth > 0 && depth+1 > maxDepth {
			return nil, maxDepthIssue(maxDepth)
		}
		out := make([]any, len(t))
		for i := range t {
			nv, err := normalizeYAML(t[i], depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case float64, string, bool, nil:
		return t, nil
	default:
		return nil, Issues{Issue{Code: CodeMalformedDocument, Message: "unsupported YAML value", Params: map[string]any{"actual": kindName(t)}}}
	}
}
