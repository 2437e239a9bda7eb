package fapickle

import "fmt"

// Reserved keys of the tagged-object convention. TagKey names the concrete
// type of the object; RefKey carries the serializer's opaque instance id used
// for shared-reference bookkeeping. RefKey is never resolved here: every
// occurrence of an object is rebuilt independently (deep copy per occurrence).
const (
	TagKey = "py/object"
	RefKey = "py/id"
)

// TagOf extracts the reserved tag key from a decoded JSON object. It resolves
// nothing against any registry; resolution is the registry's job. The returned
// error is an Issues value anchored at the object itself.
func TagOf(m map[string]any) (string, error) {
	raw, ok := m[TagKey]
	if !ok {
		return "", Issues{Issue{
			Code:    CodeMissingTypeTag,
			Message: "type tag missing",
			Hint:    fmt.Sprintf("reserved key %q absent", TagKey),
		}}
	}
	tag, ok := raw.(string)
	if !ok {
		return "", Issues{Issue{
			Code:    CodeMalformedTypeTag,
			Message: "type tag is not a string",
			Params:  map[string]any{"actual": kindName(raw)},
		}}
	}
	if tag == "" {
		return "", Issues{Issue{
			Code:    CodeMalformedTypeTag,
			Message: "type tag is empty",
		}}
	}
	return tag, nil
}

// kindName renders the JSON kind of a decoded value for diagnostics.
func kindName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
