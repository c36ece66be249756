// =============================================================================
// H2K to HPXML Translator - XML Document Module
// =============================================================================
//
// This module provides the generic document representation shared by the H2K
// source document and the HPXML template document. A parsed document is a
// tree of ordered objects: each element maps child names to values in the
// order they first appeared, which keeps serialization deterministic.
//
// VALUE KINDS:
//   *Object  - an element with children and/or attributes
//   string   - a text leaf
//   []any    - repeated sibling elements with the same name
//
// Attributes are stored under "@name" keys and mixed text under "#text",
// following the usual mapping-document convention for XML-as-dictionaries.
//
// =============================================================================

package xmldoc

// Object is an insertion-ordered mapping of element names to values.
type Object struct {
	keys []string
	vals map[string]any
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{vals: make(map[string]any)}
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not modify it.
func (o *Object) Keys() []string {
	return o.keys
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.vals[key]
	return ok
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Set stores a value under key. A key keeps its original position when
// overwritten.
func (o *Object) Set(key string, v any) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Append adds a value under key, promoting the existing value to a list when
// the key repeats. This is how repeated sibling elements accumulate during
// parsing.
func (o *Object) Append(key string, v any) {
	existing, ok := o.vals[key]
	if !ok {
		o.Set(key, v)
		return
	}
	if list, isList := existing.([]any); isList {
		o.vals[key] = append(list, v)
		return
	}
	o.vals[key] = []any{existing, v}
}

// Delete removes key and its value.
func (o *Object) Delete(key string) {
	if _, ok := o.vals[key]; !ok {
		return
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Child returns the object stored under key, or nil when the key is absent
// or holds a non-object value.
func (o *Object) Child(key string) *Object {
	v, ok := o.vals[key]
	if !ok {
		return nil
	}
	child, _ := v.(*Object)
	return child
}

// EnsureChild returns the object stored under key, creating it when absent.
func (o *Object) EnsureChild(key string) *Object {
	if child := o.Child(key); child != nil {
		return child
	}
	child := NewObject()
	o.Set(key, child)
	return child
}

// Text returns the string stored under key, or "" when absent or non-string.
func (o *Object) Text(key string) string {
	v, ok := o.vals[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// IsContainer reports whether v is a navigable container, i.e. an object or
// a list of values. Field accessors use this to detect that a path resolution
// bottomed out on an ancestor instead of reaching a leaf.
func IsContainer(v any) bool {
	switch v.(type) {
	case *Object, []any:
		return true
	}
	return false
}

// List normalizes a value that may hold either a single record or a list of
// records into a uniform slice. A nil value yields an empty slice; source
// documents routinely leave a lone record unwrapped.
func List(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{t}
	}
}

// Objects filters List(v) down to the object-valued entries.
func Objects(v any) []*Object {
	items := List(v)
	out := make([]*Object, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(*Object); ok {
			out = append(out, obj)
		}
	}
	return out
}
