package fapickle

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeMissingTypeTag     = "missing_type_tag"
	CodeMalformedTypeTag   = "malformed_type_tag"
	CodeUnknownType        = "unknown_type"
	CodeCapabilityMismatch = "capability_mismatch"
	CodeMissingField       = "missing_field"
	CodeFieldShapeMismatch = "field_shape_mismatch"
	CodeShapeMismatch      = "shape_mismatch"
	CodeMalformedDocument  = "malformed_document"
	// Reported only when Opt.StrictFields is set; unknown fields are
	// otherwise ignored for forward compatibility.
	CodeUnknownField = "unknown_field"
)

// Issue represents a single reconstruction failure.
type Issue struct {
	Path    string // JSON Pointer from the document root (for example: /modelParameters/centers/2).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, offending tag names, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"want":3, "got":2})
	// for observability.
	Params map[string]any
}

// Issues is a collection of reconstruction errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		p := it.Path
		if p == "" {
			p = "/"
		}
		// e.g. unknown_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, p)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// rebaseIssues re-anchors child issue paths under base. Non-Issues errors are
// wrapped with the given code at base.
func rebaseIssues(base string, code string, err error) Issues {
	if err == nil {
		return nil
	}
	child, ok := AsIssues(err)
	if !ok {
		return Issues{Issue{Path: base, Code: code, Message: err.Error(), Cause: err}}
	}
	var out Issues
	for _, it := range child {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case p[0] == '/':
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		out = AppendIssues(out, it)
	}
	return out
}
