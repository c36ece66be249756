package xmldoc

import "strconv"

// Resolve walks path one key at a time starting from node.
//
// The fallback contract is deliberate and load-bearing: when a key is absent
// (or the current value cannot be navigated further) Resolve returns the last
// successfully reached value rather than nil or an error. Addresses in the
// field-mapping tables are allowed to point past the bottom of optional
// subtrees; callers detect that outcome by checking IsContainer on the
// result, not by checking for nil.
func Resolve(node any, path ...string) any {
	current := node
	for _, key := range path {
		switch c := current.(type) {
		case *Object:
			next, ok := c.Get(key)
			if !ok {
				return c
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(key)
			if err != nil || idx < 0 || idx >= len(c) {
				return c
			}
			current = c[idx]
		default:
			return current
		}
	}
	return current
}
