package pve

import "strconv"

// Value wraps a decoded API payload. The Proxmox API is loose about
// shapes: a collection endpoint may answer with a list of objects, a
// single bare object, or nothing at all. Value absorbs that ambiguity
// so callers only ever deal with a uniform []Map.
type Value struct {
	raw any
}

// NewValue wraps an already-decoded payload. Production code gets
// Values from Client.Get; this exists for fakes standing in for the
// gateway.
func NewValue(raw any) Value {
	return Value{raw: raw}
}

// IsNil reports whether the payload was absent, null, or undecodable
func (v Value) IsNil() bool {
	return v.raw == nil
}

// List normalizes the payload to a list of objects. A single object
// becomes a one-element list; anything else (null, scalars, lists of
// scalars) degrades to an empty list.
func (v Value) List() []Map {
	switch raw := v.raw.(type) {
	case []any:
		var out []Map
		for _, item := range raw {
			if m, ok := item.(map[string]any); ok {
				out = append(out, Map(m))
			}
		}
		return out
	case map[string]any:
		return []Map{Map(raw)}
	default:
		return nil
	}
}

// Map is a single decoded API object with typed field accessors
type Map map[string]any

// Str returns the named field as a string, or "" when absent or not
// string-shaped
func (m Map) Str(key string) string {
	s, _ := m[key].(string)
	return s
}

// Int returns the named field as an int. Proxmox is inconsistent about
// numeric fields (vmid in particular arrives as a number or a string
// depending on the endpoint), so both forms are accepted.
func (m Map) Int(key string) int {
	switch n := m[key].(type) {
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	default:
		return 0
	}
}
